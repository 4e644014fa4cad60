package service

import (
	"context"
	"testing"

	"inspire-it-be/internal/constant"
	"inspire-it-be/internal/dto"
	"inspire-it-be/internal/entity"
	"inspire-it-be/internal/pkg/apperrors"
	"inspire-it-be/internal/repository/memory"
	"inspire-it-be/pkg/llm"
	"inspire-it-be/pkg/rag/generate"
	"inspire-it-be/pkg/rag/retrieval"
	"inspire-it-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeRetriever struct {
	results []retrieval.Result
	err     error
	queries []retrieval.Query
}

func (f *fakeRetriever) Search(ctx context.Context, q retrieval.Query) ([]retrieval.Result, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeLLM struct {
	reply      string
	err        error
	genPrompts []string
	chatCalls  [][]llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.chatCalls = append(f.chatCalls, history)
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.genPrompts = append(f.genPrompts, prompt)
	return f.reply, f.err
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fixture struct {
	svc       IAssistantService
	repo      *memory.SessionRepository
	retriever *fakeRetriever
	llm       *fakeLLM
}

func newFixture() *fixture {
	retriever := &fakeRetriever{
		results: []retrieval.Result{
			{Fields: map[string]string{"chunk": "relevant paper text"}},
		},
	}
	llmProvider := &fakeLLM{reply: `{"ideas": []}`}
	repo := memory.NewSessionRepository()
	svc := NewAssistantService(repo, retriever, generate.NewGenerator(llmProvider), noopLogger{})
	return &fixture{svc: svc, repo: repo, retriever: retriever, llm: llmProvider}
}

const ideaBatch = `{"ideas": [
	{"title": "Idea One", "description": "first", "references": ["Ref A", "Ref B"]},
	{"title": "Idea Two", "description": "second"}
]}`

// --- Tests ---

func TestGetStateSeedsDefaults(t *testing.T) {
	f := newFixture()

	state, err := f.svc.GetState(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "s1", state.SessionId)
	assert.Equal(t, store.PageHome, state.Page)
	assert.Equal(t, []string{""}, state.DomainInputs)
	assert.Equal(t, store.DefaultModel, state.Config.Model)
}

func TestNavigate(t *testing.T) {
	t.Run("to explore keeps accumulated state", func(t *testing.T) {
		f := newFixture()
		sess := f.repo.GetOrCreate("s1")
		sess.ChatHistory = []entity.ChatMessage{{Role: "user", Content: "hi"}}
		sess.Ideas = []entity.Idea{{Title: "kept"}}
		f.repo.Save(sess)

		state, err := f.svc.Navigate(context.Background(), "s1", &dto.NavigateRequest{Page: store.PageExplore})
		require.NoError(t, err)

		assert.Equal(t, store.PageExplore, state.Page)
		assert.Len(t, state.ChatHistory, 1)
		assert.Len(t, state.Ideas, 1)
	})

	t.Run("back home clears nothing", func(t *testing.T) {
		f := newFixture()
		sess := f.repo.GetOrCreate("s1")
		sess.Page = store.PageExplore
		sess.ChatHistory = []entity.ChatMessage{{Role: "user", Content: "hi"}}
		f.repo.Save(sess)

		state, err := f.svc.Navigate(context.Background(), "s1", &dto.NavigateRequest{Page: store.PageHome})
		require.NoError(t, err)

		assert.Equal(t, store.PageHome, state.Page)
		assert.Len(t, state.ChatHistory, 1)
	})

	t.Run("to review clears the selection", func(t *testing.T) {
		f := newFixture()
		sess := f.repo.GetOrCreate("s1")
		sess.SelectedIdea = &entity.Idea{Title: "stale"}
		f.repo.Save(sess)

		state, err := f.svc.Navigate(context.Background(), "s1", &dto.NavigateRequest{Page: store.PageReviewIdea})
		require.NoError(t, err)

		assert.Nil(t, state.SelectedIdea)
	})

	t.Run("final paper is not directly navigable", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Navigate(context.Background(), "s1", &dto.NavigateRequest{Page: store.PageFinalPaper})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestAddDomain(t *testing.T) {
	f := newFixture()

	state, err := f.svc.AddDomain(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"", ""}, state.DomainInputs)
}

func TestGenerateIdeas(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = ideaBatch

		resp, err := f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
			Domains:        []string{"Healthcare", "", "IoT"},
			Specifications: "rural clinics",
		})
		require.NoError(t, err)

		require.Len(t, resp.Ideas, 2)
		assert.Equal(t, "Idea One", resp.Ideas[0].Title)
		assert.Equal(t, store.PageGetIdea, resp.Page)
		assert.Nil(t, resp.Debug)

		// Blank domain inputs are dropped from the retrieval query
		require.Len(t, f.retriever.queries, 1)
		q := f.retriever.queries[0]
		assert.Equal(t, "Healthcare IoT rural clinics", q.Text)
		assert.Equal(t, constant.SearchColumns, q.Columns)
		assert.Equal(t, 5, q.Limit)
		require.Len(t, q.Filter.And, 1)
		assert.Equal(t, constant.SearchLanguageKey, q.Filter.And[0].Column)
		assert.Equal(t, constant.SearchLanguage, q.Filter.And[0].Value)

		// Retrieved chunks land in the prompt
		require.Len(t, f.llm.genPrompts, 1)
		assert.Contains(t, f.llm.genPrompts[0], "Context document 1: relevant paper text")
	})

	t.Run("only blank domains is a validation error", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
			Domains:        []string{"", "  "},
			Specifications: "specs",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		assert.Empty(t, f.retriever.queries, "no backend call on invalid input")
	})

	t.Run("parse failure leaves the previous batch", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = ideaBatch

		_, err := f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
			Domains:        []string{"AI"},
			Specifications: "specs",
		})
		require.NoError(t, err)

		f.llm.reply = "not json at all"
		_, err = f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
			Domains:        []string{"AI"},
			Specifications: "specs",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindParse))

		sess, found := f.repo.Get("s1")
		require.True(t, found)
		require.Len(t, sess.Ideas, 2, "failed batch must not clobber the previous one")
		assert.Equal(t, "Idea One", sess.Ideas[0].Title)
	})

	t.Run("retrieval failure aborts the action", func(t *testing.T) {
		f := newFixture()
		f.retriever.err = apperrors.Retrieval("test", assert.AnError)

		_, err := f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
			Domains:        []string{"AI"},
			Specifications: "specs",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindRetrieval))
		assert.Empty(t, f.llm.genPrompts, "no completion after failed retrieval")
	})

	t.Run("debug toggle attaches prompt and context", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = ideaBatch
		sess := f.repo.GetOrCreate("s1")
		sess.Config.Debug = true
		f.repo.Save(sess)

		resp, err := f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
			Domains:        []string{"AI"},
			Specifications: "specs",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Debug)
		assert.Contains(t, resp.Debug.Prompt, "Domains: AI")
		assert.Contains(t, resp.Debug.ContextText, "relevant paper text")
	})
}

func TestSubmitSuggestion(t *testing.T) {
	f := newFixture()
	f.llm.reply = ideaBatch

	_, err := f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
		Domains:        []string{"AI"},
		Specifications: "original specs",
	})
	require.NoError(t, err)

	resp, err := f.svc.SubmitSuggestion(context.Background(), "s1", &dto.SubmitSuggestionRequest{
		Suggestion: "focus on low-power hardware",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Ideas, 2)

	sess, found := f.repo.Get("s1")
	require.True(t, found)
	assert.Equal(t, "original specs", sess.PreviousPrompt)
	assert.Equal(t, "original specs\nAdditional context: focus on low-power hardware", sess.Specifications)
	assert.False(t, sess.GenerateNew, "one-shot marker is consumed by the regeneration")

	// The amended specifications drive the second retrieval
	require.Len(t, f.retriever.queries, 2)
	assert.Contains(t, f.retriever.queries[1].Text, "Additional context: focus on low-power hardware")
}

func TestSubmitSuggestionBlank(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SubmitSuggestion(context.Background(), "s1", &dto.SubmitSuggestionRequest{Suggestion: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestDevelopIdea(t *testing.T) {
	t.Run("selects and derives the final idea", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = ideaBatch
		_, err := f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
			Domains:        []string{"AI"},
			Specifications: "specs",
		})
		require.NoError(t, err)

		resp, err := f.svc.DevelopIdea(context.Background(), "s1", &dto.DevelopIdeaRequest{Index: 0})
		require.NoError(t, err)

		assert.Equal(t, store.PageFinalPaper, resp.Page)
		require.NotNil(t, resp.SelectedIdea)
		assert.Equal(t, "Idea One", resp.SelectedIdea.Title)
		require.NotNil(t, resp.FinalIdea)
		assert.Equal(t, "first", resp.FinalIdea.Idea)
		assert.Equal(t, "Ref A, Ref B", resp.FinalIdea.Topics)
	})

	t.Run("index out of range", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.DevelopIdea(context.Background(), "s1", &dto.DevelopIdeaRequest{Index: 3})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})
}

func TestGeneratePaper(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = `{"abstract": "the abstract", "references": ["r1"], "opportunities": ["o1"]}`

		resp, err := f.svc.GeneratePaper(context.Background(), "s1", &dto.GeneratePaperRequest{
			Idea:   "my idea",
			Topics: "my topics",
		})
		require.NoError(t, err)

		assert.Equal(t, store.PageFinalPaper, resp.Page)
		require.NotNil(t, resp.Outline)
		assert.Equal(t, "the abstract", resp.Outline.Abstract)
		assert.Equal(t, []string{"r1"}, resp.Outline.References)
	})

	t.Run("blank fields are rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GeneratePaper(context.Background(), "s1", &dto.GeneratePaperRequest{Idea: " ", Topics: "t"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestRenderPaper(t *testing.T) {
	t.Run("requires a developed idea", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.RenderPaper(context.Background(), "s1")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run("re-derives on every visit", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = `{"abstract": "a", "references": [], "opportunities": []}`

		_, err := f.svc.GeneratePaper(context.Background(), "s1", &dto.GeneratePaperRequest{Idea: "i", Topics: "t"})
		require.NoError(t, err)

		_, err = f.svc.RenderPaper(context.Background(), "s1")
		require.NoError(t, err)
		_, err = f.svc.RenderPaper(context.Background(), "s1")
		require.NoError(t, err)

		assert.Len(t, f.llm.genPrompts, 3, "no cached outline, each render queries again")
	})
}

func TestChat(t *testing.T) {
	t.Run("first message uses a bare completion", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = "hello there"

		resp, err := f.svc.Chat(context.Background(), "s1", &dto.ChatRequest{Message: "what is RAG?"})
		require.NoError(t, err)

		assert.Equal(t, constant.ChatMessageRoleAssistant, resp.Reply.Role)
		assert.Equal(t, "hello there", resp.Reply.Content)
		assert.Empty(t, f.llm.chatCalls, "no history yet, Generate path is used")
		require.Len(t, f.llm.genPrompts, 1)
		assert.Contains(t, f.llm.genPrompts[0], "User question: what is RAG?")

		// Exactly one user turn and one reply are appended
		require.Len(t, resp.ChatHistory, 2)
		assert.Equal(t, constant.ChatMessageRoleUser, resp.ChatHistory[0].Role)
		assert.Equal(t, "what is RAG?", resp.ChatHistory[0].Content)
		assert.Equal(t, constant.ChatMessageRoleAssistant, resp.ChatHistory[1].Role)

		sess, found := f.repo.Get("s1")
		require.True(t, found)
		assert.Equal(t, store.PageExplore, sess.Page)
	})

	t.Run("later messages carry the history window", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = "reply"

		_, err := f.svc.Chat(context.Background(), "s1", &dto.ChatRequest{Message: "first"})
		require.NoError(t, err)
		_, err = f.svc.Chat(context.Background(), "s1", &dto.ChatRequest{Message: "second"})
		require.NoError(t, err)

		require.Len(t, f.llm.chatCalls, 1)
		history := f.llm.chatCalls[0]
		// Two prior turns plus the prompt-bearing user message
		require.Len(t, history, 3)
		assert.Equal(t, "first", history[0].Content)
		assert.Equal(t, constant.ChatMessageRoleUser, history[2].Role)
		assert.Contains(t, history[2].Content, "User question: second")
	})

	t.Run("history window is bounded by config", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = "reply"
		sess := f.repo.GetOrCreate("s1")
		sess.Config.NumChatMessages = 2
		f.repo.Save(sess)

		for _, msg := range []string{"one", "two", "three"} {
			_, err := f.svc.Chat(context.Background(), "s1", &dto.ChatRequest{Message: msg})
			require.NoError(t, err)
		}

		last := f.llm.chatCalls[len(f.llm.chatCalls)-1]
		// Window of 2 prior messages plus the new prompt
		require.Len(t, last, 3)
		assert.Equal(t, "two", last[0].Content)
		assert.Equal(t, "reply", last[1].Content)
	})

	t.Run("history disabled always uses bare completion", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = "reply"
		sess := f.repo.GetOrCreate("s1")
		sess.Config.UseChatHistory = false
		f.repo.Save(sess)

		_, err := f.svc.Chat(context.Background(), "s1", &dto.ChatRequest{Message: "first"})
		require.NoError(t, err)
		_, err = f.svc.Chat(context.Background(), "s1", &dto.ChatRequest{Message: "second"})
		require.NoError(t, err)

		assert.Empty(t, f.llm.chatCalls)
		assert.Len(t, f.llm.genPrompts, 2)
	})
}

func TestReset(t *testing.T) {
	f := newFixture()
	f.llm.reply = ideaBatch

	sess := f.repo.GetOrCreate("s1")
	sess.Config.Model = "llama3.1-8b"
	sess.Config.Debug = true
	f.repo.Save(sess)

	_, err := f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
		Domains:        []string{"AI"},
		Specifications: "specs",
	})
	require.NoError(t, err)

	state, err := f.svc.Reset(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, store.PageHome, state.Page)
	assert.Empty(t, state.Ideas)
	assert.Empty(t, state.Specifications)
	assert.Equal(t, []string{""}, state.DomainInputs)

	// Config survives the reset
	assert.Equal(t, "llama3.1-8b", state.Config.Model)
	assert.True(t, state.Config.Debug)
}

func TestUpdateConfig(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		f := newFixture()
		off := false

		resp, err := f.svc.UpdateConfig(context.Background(), "s1", &dto.UpdateConfigRequest{
			Model:          "llama3.1-70b",
			NumChunks:      8,
			UseChatHistory: &off,
		})
		require.NoError(t, err)

		assert.Equal(t, "llama3.1-70b", resp.Config.Model)
		assert.Equal(t, 8, resp.Config.NumChunks)
		assert.Equal(t, 5, resp.Config.NumChatMessages, "untouched field keeps its value")
		assert.False(t, resp.Config.UseChatHistory)
		assert.Equal(t, constant.Models, resp.Models)
	})

	t.Run("unknown model is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateConfig(context.Background(), "s1", &dto.UpdateConfigRequest{Model: "gpt-9"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))

		cfg, err := f.svc.GetConfig(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, store.DefaultModel, cfg.Config.Model)
	})

	t.Run("chunk limit respected on retrieval", func(t *testing.T) {
		f := newFixture()
		f.llm.reply = ideaBatch

		_, err := f.svc.UpdateConfig(context.Background(), "s1", &dto.UpdateConfigRequest{NumChunks: 3})
		require.NoError(t, err)

		_, err = f.svc.GenerateIdeas(context.Background(), "s1", &dto.GenerateIdeasRequest{
			Domains:        []string{"AI"},
			Specifications: "specs",
		})
		require.NoError(t, err)

		require.Len(t, f.retriever.queries, 1)
		assert.Equal(t, 3, f.retriever.queries[0].Limit)
	})
}
