package plan

import (
	"regexp"
	"strings"
)

// The interpreter classifies an inbound message into a typed Action using a
// prioritized, closed set of command templates the UI is known to emit.
// It never checks whether a referenced theme/topic exists: the engine is the
// sole authority on legality. Pure function of (message, session snapshot).

type rule struct {
	pattern *regexp.Regexp
	build   func(m []string) Action
}

var rules = []rule{
	{
		// "select topic Epiduraal within theme Pijnbestrijding"
		pattern: regexp.MustCompile(`(?i)^select\s+topic\s+(.+?)\s+within\s+theme\s+(.+)$`),
		build:   func(m []string) Action { return SelectTopic(cleanName(m[2]), cleanName(m[1])) },
	},
	{
		pattern: regexp.MustCompile(`(?i)^select\s+theme\s+(.+)$`),
		build:   func(m []string) Action { return SelectTheme(cleanName(m[1])) },
	},
	{
		pattern: regexp.MustCompile(`(?i)^remove\s+theme\s+(.+)$`),
		build:   func(m []string) Action { return RemoveTheme(cleanName(m[1])) },
	},
	{
		// "edit answer to question <q> to: <a>"
		pattern: regexp.MustCompile(`(?i)^edit\s+answer\s+to\s+question\s+(.+?)\s+to:\s*(.+)$`),
		build:   func(m []string) Action { return EditAnswer(cleanName(m[1]), strings.TrimSpace(m[2])) },
	},
	{
		pattern: regexp.MustCompile(`(?i)^(export\s+plan|advance\s+review|finish\s+plan)$`),
		build:   func(m []string) Action { return AdvanceReview() },
	},
	{
		pattern: regexp.MustCompile(`(?i)^(hi|hello|hey|hallo|hoi|goedemorgen|goedemiddag|start|begin)\b`),
		build:   func(m []string) Action { return Greet() },
	},
}

// Interpret matches the message against the command grammar. Unmatched text
// is a free-text answer while a question is open, otherwise a greeting no-op.
func Interpret(message string, s *Session) Action {
	trimmed := strings.TrimSpace(message)
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(trimmed); m != nil {
			return r.build(m)
		}
	}
	if s != nil && s.Stage == StageAnswering && trimmed != "" {
		return FreeTextAnswer(trimmed)
	}
	return Greet()
}

// cleanName strips surrounding quotes the UI adds around names with spaces.
func cleanName(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"'`)
	return strings.TrimSpace(v)
}
