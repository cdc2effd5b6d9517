package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"birthplan-agent-be/internal/constant"
	"birthplan-agent-be/pkg/llm"
	"birthplan-agent-be/pkg/plan"
)

// Question is the next assistant utterance for a topic, with optional
// answer suggestions for the UI.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// QuestionGenerator produces the next question for a topic given what was
// already answered within the theme. External capability: may be slow, may
// fail; callers treat it as best-effort enrichment.
type QuestionGenerator interface {
	NextQuestion(ctx context.Context, theme, topic string, answered []plan.QAEntry) (*Question, error)
}

// llmGenerator asks the configured chat model for a question in strict JSON.
type llmGenerator struct {
	provider llm.LLMProvider
}

func NewLLMGenerator(provider llm.LLMProvider) QuestionGenerator {
	return &llmGenerator{provider: provider}
}

func (g *llmGenerator) NextQuestion(ctx context.Context, theme, topic string, answered []plan.QAEntry) (*Question, error) {
	history := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.QuestionSystemPromptV1},
		{Role: constant.ChatMessageRoleUser, Content: buildUserPrompt(theme, topic, answered)},
	}

	raw, err := g.provider.Chat(ctx, history,
		llm.WithTemperature(constant.QuestionTemperature),
		llm.WithMaxTokens(constant.QuestionMaxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	return parseQuestion(raw)
}

func buildUserPrompt(theme, topic string, answered []plan.QAEntry) string {
	history := constant.QuestionHistoryEmptyV1
	if len(answered) > 0 {
		var b strings.Builder
		for _, qa := range answered {
			fmt.Fprintf(&b, "- V: %s A: %s\n", qa.Question, qa.Answer)
		}
		history = strings.TrimRight(b.String(), "\n")
	}
	return fmt.Sprintf(constant.QuestionUserPromptV1, theme, topic, history)
}

// parseQuestion accepts the strict JSON shape and degrades to treating the
// raw reply as the question text when the model ignores the format.
func parseQuestion(raw string) (*Question, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var q Question
	if err := json.Unmarshal([]byte(trimmed), &q); err == nil && q.Text != "" {
		return &q, nil
	}
	if trimmed == "" {
		return nil, fmt.Errorf("generator returned empty reply")
	}
	return &Question{Text: trimmed, Options: []string{}}, nil
}
