package factory

import (
	"fmt"

	"inspire-it-be/pkg/llm"
	"inspire-it-be/pkg/llm/ollama"
)

// NewProvider builds the completion backend named by providerType.
// modelName is the default model; per-request overrides come through
// llm.WithModel so one provider serves every selectable model.
func NewProvider(providerType, modelName, baseURL string) (llm.Provider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
