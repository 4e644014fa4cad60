package generate

import (
	"context"
	"errors"
	"testing"

	"inspire-it-be/internal/pkg/apperrors"
	"inspire-it-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply      string
	err        error
	gotPrompt  string
	gotHistory []llm.Message
	gotOptions llm.Options
	chatCalled bool
	genCalled  bool
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.chatCalled = true
	f.gotHistory = history
	for _, opt := range options {
		opt(&f.gotOptions)
	}
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.genCalled = true
	f.gotPrompt = prompt
	for _, opt := range options {
		opt(&f.gotOptions)
	}
	return f.reply, f.err
}

func TestComplete(t *testing.T) {
	provider := &fakeProvider{reply: "a plain answer"}
	g := NewGenerator(provider)

	out, err := g.Complete(context.Background(), "mistral-large2", "the prompt")
	require.NoError(t, err)

	assert.Equal(t, "a plain answer", out)
	assert.True(t, provider.genCalled)
	assert.Equal(t, "the prompt", provider.gotPrompt)
	assert.Equal(t, "mistral-large2", provider.gotOptions.Model)
}

func TestCompleteEscapesDollarSigns(t *testing.T) {
	provider := &fakeProvider{reply: "costs $5 or $10"}
	g := NewGenerator(provider)

	out, err := g.Complete(context.Background(), "m", "p")
	require.NoError(t, err)
	assert.Equal(t, `costs \$5 or \$10`, out)
}

func TestCompleteWrapsProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	g := NewGenerator(provider)

	_, err := g.Complete(context.Background(), "m", "p")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindCompletion))
}

func TestChat(t *testing.T) {
	provider := &fakeProvider{reply: "history-aware $reply"}
	g := NewGenerator(provider)

	history := []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "the prompt"},
	}

	out, err := g.Chat(context.Background(), "llama3.1-8b", history)
	require.NoError(t, err)

	assert.Equal(t, `history-aware \$reply`, out)
	assert.True(t, provider.chatCalled)
	assert.Equal(t, history, provider.gotHistory)
	assert.Equal(t, "llama3.1-8b", provider.gotOptions.Model)
}

func TestChatWrapsProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model not loaded")}
	g := NewGenerator(provider)

	_, err := g.Chat(context.Background(), "m", nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindCompletion))
}
