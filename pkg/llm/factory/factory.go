package factory

import (
	"fmt"

	"birthplan-agent-be/pkg/llm"
	"birthplan-agent-be/pkg/llm/ollama"
	"birthplan-agent-be/pkg/llm/openai"
)

// NewLLMProvider selects the chat backend from config values.
// Supported providers: "openai" (the product default) and "ollama" (local dev).
func NewLLMProvider(provider, model, ollamaBaseURL, openAIKey string) (llm.LLMProvider, error) {
	switch provider {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider selected but OPENAI_API_KEY is empty")
		}
		return openai.NewOpenAIProvider(openAIKey, model), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
