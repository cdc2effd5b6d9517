package plan

import "time"

// ExportDocument is the canonical machine-readable dump of a finished plan:
// per theme in insertion order, its chosen topics and ordered Q&A pairs.
type ExportDocument struct {
	SessionID  string        `json:"session_id"`
	ExportedAt time.Time     `json:"exported_at"`
	Themes     []ExportTheme `json:"themes"`
}

type ExportTheme struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Topics      []string   `json:"topics"`
	QA          []ExportQA `json:"qa"`
}

type ExportQA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Export serializes the session into an ExportDocument. Pure and
// deterministic: theme order is insertion order, qa order is record order.
// Export authorization (stage gating) lives with the caller, not here.
func Export(s *Session) *ExportDocument {
	doc := &ExportDocument{
		SessionID:  s.ID,
		ExportedAt: time.Now(),
		Themes:     make([]ExportTheme, 0, len(s.Themes)),
	}
	for _, theme := range s.Themes {
		et := ExportTheme{
			Name:        theme.Name,
			Description: theme.Description,
			Topics:      append([]string{}, s.ThemeTopics(theme.Name)...),
			QA:          []ExportQA{},
		}
		for _, qa := range s.QA {
			if equalFold(qa.Theme, theme.Name) {
				et.QA = append(et.QA, ExportQA{Question: qa.Question, Answer: qa.Answer})
			}
		}
		doc.Themes = append(doc.Themes, et)
	}
	return doc
}

// Exportable reports whether the session has reached a stage in which the
// document may be handed out.
func Exportable(s *Session) error {
	if s.Stage != StageReview && s.Stage != StageExported {
		return ErrExportNotReady
	}
	if len(s.QA) == 0 {
		return ErrNothingToExport
	}
	return nil
}
