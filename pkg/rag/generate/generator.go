package generate

import (
	"context"
	"strings"

	"inspire-it-be/internal/pkg/apperrors"
	"inspire-it-be/pkg/llm"
)

// Generator is the completion adapter: it forwards the prompt to the
// provider under the session's model choice and applies the fixed output
// escaping rule. No retries; a failure is terminal for the action.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Complete runs one prompt against the named model. Every literal "$" in
// the output is escaped so downstream markup rendering does not treat it
// as a math/template delimiter.
func (g *Generator) Complete(ctx context.Context, model, promptText string) (string, error) {
	raw, err := g.provider.Generate(ctx, promptText, llm.WithModel(model))
	if err != nil {
		return "", apperrors.Completion("generate.Complete", err)
	}
	return strings.ReplaceAll(raw, "$", `\$`), nil
}

// Chat runs a full message history against the named model, applying the
// same escaping rule to the reply.
func (g *Generator) Chat(ctx context.Context, model string, history []llm.Message) (string, error) {
	raw, err := g.provider.Chat(ctx, history, llm.WithModel(model))
	if err != nil {
		return "", apperrors.Completion("generate.Chat", err)
	}
	return strings.ReplaceAll(raw, "$", `\$`), nil
}
