package service

import (
	"context"
	"fmt"
	"strings"

	"inspire-it-be/internal/constant"
	"inspire-it-be/internal/dto"
	"inspire-it-be/internal/entity"
	"inspire-it-be/internal/pkg/apperrors"
	"inspire-it-be/internal/pkg/logger"
	"inspire-it-be/internal/repository/memory"
	"inspire-it-be/pkg/llm"
	"inspire-it-be/pkg/rag/generate"
	"inspire-it-be/pkg/rag/prompt"
	"inspire-it-be/pkg/rag/response"
	"inspire-it-be/pkg/rag/retrieval"
	"inspire-it-be/pkg/store"
)

// IAssistantService drives the page flow: every user action is one
// synchronous retrieval -> completion -> parse -> state mutation sequence.
type IAssistantService interface {
	GetState(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error)
	Navigate(ctx context.Context, sessionId string, request *dto.NavigateRequest) (*dto.SessionStateResponse, error)
	AddDomain(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error)
	GenerateIdeas(ctx context.Context, sessionId string, request *dto.GenerateIdeasRequest) (*dto.GenerateIdeasResponse, error)
	SubmitSuggestion(ctx context.Context, sessionId string, request *dto.SubmitSuggestionRequest) (*dto.GenerateIdeasResponse, error)
	DevelopIdea(ctx context.Context, sessionId string, request *dto.DevelopIdeaRequest) (*dto.DevelopIdeaResponse, error)
	GeneratePaper(ctx context.Context, sessionId string, request *dto.GeneratePaperRequest) (*dto.PaperResponse, error)
	RenderPaper(ctx context.Context, sessionId string) (*dto.PaperResponse, error)
	Chat(ctx context.Context, sessionId string, request *dto.ChatRequest) (*dto.ChatResponse, error)
	Reset(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error)
	GetConfig(ctx context.Context, sessionId string) (*dto.ConfigResponse, error)
	UpdateConfig(ctx context.Context, sessionId string, request *dto.UpdateConfigRequest) (*dto.ConfigResponse, error)
}

type assistantService struct {
	sessionRepo *memory.SessionRepository
	retriever   retrieval.Retriever
	generator   *generate.Generator
	log         logger.ILogger
}

func NewAssistantService(
	sessionRepo *memory.SessionRepository,
	retriever retrieval.Retriever,
	generator *generate.Generator,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		sessionRepo: sessionRepo,
		retriever:   retriever,
		generator:   generator,
		log:         log,
	}
}

func (s *assistantService) session(sessionId string) *store.Session {
	return s.sessionRepo.GetOrCreate(sessionId)
}

// retrieve runs one search with the session's chunk limit and the shared
// language restriction, returning the flattened context text.
func (s *assistantService) retrieve(ctx context.Context, sess *store.Session, queryText string) (string, error) {
	results, err := s.retriever.Search(ctx, retrieval.Query{
		Text:    queryText,
		Columns: constant.SearchColumns,
		Filter: retrieval.Filter{
			And: []retrieval.Eq{{Column: constant.SearchLanguageKey, Value: constant.SearchLanguage}},
		},
		Limit: sess.Config.NumChunks,
	})
	if err != nil {
		return "", err
	}
	return retrieval.BuildContext(results, constant.SearchDisplayColumn), nil
}

func (s *assistantService) GetState(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error) {
	return s.stateResponse(s.session(sessionId)), nil
}

func (s *assistantService) Navigate(ctx context.Context, sessionId string, request *dto.NavigateRequest) (*dto.SessionStateResponse, error) {
	sess := s.session(sessionId)

	if request.Page == store.PageFinalPaper {
		return nil, apperrors.Validation("assistant.Navigate",
			"the paper page is reached by developing an idea or generating a paper")
	}

	// Entering review from navigation starts a clean review; developing an
	// idea is the only path that carries a selection in.
	if request.Page == store.PageReviewIdea {
		sess.SelectedIdea = nil
	}

	// The persistent home action never clears accumulated state.
	sess.Page = request.Page
	s.sessionRepo.Save(sess)
	return s.stateResponse(sess), nil
}

func (s *assistantService) AddDomain(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error) {
	sess := s.session(sessionId)
	sess.DomainInputs = append(sess.DomainInputs, "")
	s.sessionRepo.Save(sess)
	return s.stateResponse(sess), nil
}

func (s *assistantService) GenerateIdeas(ctx context.Context, sessionId string, request *dto.GenerateIdeasRequest) (*dto.GenerateIdeasResponse, error) {
	sess := s.session(sessionId)

	sess.Page = store.PageGetIdea
	sess.DomainInputs = request.Domains
	sess.Specifications = request.Specifications
	s.sessionRepo.Save(sess)

	return s.runIdeaGeneration(ctx, sess)
}

func (s *assistantService) SubmitSuggestion(ctx context.Context, sessionId string, request *dto.SubmitSuggestionRequest) (*dto.GenerateIdeasResponse, error) {
	sess := s.session(sessionId)

	suggestion := strings.TrimSpace(request.Suggestion)
	if suggestion == "" {
		return nil, apperrors.Validation("assistant.SubmitSuggestion", "suggestion must not be empty")
	}

	sess.PreviousPrompt = sess.Specifications
	sess.Specifications = fmt.Sprintf("%s\nAdditional context: %s", sess.Specifications, suggestion)
	sess.GenerateNew = true
	s.sessionRepo.Save(sess)

	// Regenerate in place; the page does not change.
	return s.runIdeaGeneration(ctx, sess)
}

// runIdeaGeneration is the shared generation path. On any failure the
// session's idea batch is left untouched so the user can retry.
func (s *assistantService) runIdeaGeneration(ctx context.Context, sess *store.Session) (*dto.GenerateIdeasResponse, error) {
	domains := make([]string, 0, len(sess.DomainInputs))
	for _, d := range sess.DomainInputs {
		if strings.TrimSpace(d) != "" {
			domains = append(domains, d)
		}
	}
	if len(domains) == 0 || strings.TrimSpace(sess.Specifications) == "" {
		return nil, apperrors.Validation("assistant.GenerateIdeas",
			"please fill in at least one domain and specifications")
	}

	queryText := strings.Join(append(append([]string{}, domains...), sess.Specifications), " ")
	contextText, err := s.retrieve(ctx, sess, queryText)
	if err != nil {
		return nil, err
	}

	promptText := prompt.NewIdeaBuilder(domains, sess.Specifications, contextText).Build()

	raw, err := s.generator.Complete(ctx, sess.Config.Model, promptText)
	if err != nil {
		return nil, err
	}

	ideas, err := response.ParseIdeas(raw)
	if err != nil {
		s.log.Warn("assistant", "idea batch discarded", map[string]interface{}{
			"session": sess.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	// Replace the batch wholesale; the one-shot marker is consumed here.
	sess.Ideas = ideas
	sess.GenerateNew = false
	s.sessionRepo.Save(sess)

	s.log.Info("assistant", "ideas generated", map[string]interface{}{
		"session": sess.ID,
		"count":   len(ideas),
		"model":   sess.Config.Model,
	})

	resp := &dto.GenerateIdeasResponse{
		Ideas: ideas,
		Page:  sess.Page,
	}
	if sess.Config.Debug {
		resp.Debug = &dto.DebugInfo{Prompt: promptText, ContextText: contextText}
	}
	return resp, nil
}

func (s *assistantService) DevelopIdea(ctx context.Context, sessionId string, request *dto.DevelopIdeaRequest) (*dto.DevelopIdeaResponse, error) {
	sess := s.session(sessionId)

	if request.Index < 0 || request.Index >= len(sess.Ideas) {
		return nil, apperrors.NotFound("assistant.DevelopIdea", "no idea at that index")
	}

	idea := sess.Ideas[request.Index]
	sess.SelectedIdea = &idea
	sess.FinalIdea = &entity.FinalIdea{
		Idea:   idea.Description,
		Topics: strings.Join(idea.References, ", "),
	}
	sess.GenerateNew = false
	sess.Page = store.PageFinalPaper
	s.sessionRepo.Save(sess)

	return &dto.DevelopIdeaResponse{
		Page:         sess.Page,
		SelectedIdea: sess.SelectedIdea,
		FinalIdea:    sess.FinalIdea,
	}, nil
}

func (s *assistantService) GeneratePaper(ctx context.Context, sessionId string, request *dto.GeneratePaperRequest) (*dto.PaperResponse, error) {
	sess := s.session(sessionId)

	if strings.TrimSpace(request.Idea) == "" || strings.TrimSpace(request.Topics) == "" {
		return nil, apperrors.Validation("assistant.GeneratePaper",
			"please provide both idea details and topics")
	}

	sess.FinalIdea = &entity.FinalIdea{Idea: request.Idea, Topics: request.Topics}
	sess.Page = store.PageFinalPaper
	s.sessionRepo.Save(sess)

	return s.derivePaper(ctx, sess)
}

// RenderPaper re-derives the outline on every visit; repeated renders
// re-query the backend rather than serving a cached outline.
func (s *assistantService) RenderPaper(ctx context.Context, sessionId string) (*dto.PaperResponse, error) {
	sess := s.session(sessionId)

	if sess.FinalIdea == nil {
		return nil, apperrors.Validation("assistant.RenderPaper", "no idea selected for paper generation")
	}
	return s.derivePaper(ctx, sess)
}

func (s *assistantService) derivePaper(ctx context.Context, sess *store.Session) (*dto.PaperResponse, error) {
	queryText := fmt.Sprintf("%s %s", sess.FinalIdea.Idea, sess.FinalIdea.Topics)
	contextText, err := s.retrieve(ctx, sess, queryText)
	if err != nil {
		return nil, err
	}

	promptText := prompt.NewPaperBuilder(sess.FinalIdea.Idea, sess.FinalIdea.Topics, contextText).Build()

	raw, err := s.generator.Complete(ctx, sess.Config.Model, promptText)
	if err != nil {
		return nil, err
	}

	outline, err := response.ParsePaper(raw)
	if err != nil {
		s.log.Warn("assistant", "paper outline discarded", map[string]interface{}{
			"session": sess.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	resp := &dto.PaperResponse{
		Outline: outline,
		Page:    sess.Page,
	}
	if sess.Config.Debug {
		resp.Debug = &dto.DebugInfo{Prompt: promptText, ContextText: contextText}
	}
	return resp, nil
}

func (s *assistantService) Chat(ctx context.Context, sessionId string, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sess := s.session(sessionId)
	sess.Page = store.PageExplore

	contextText, err := s.retrieve(ctx, sess, request.Message)
	if err != nil {
		return nil, err
	}

	promptText := prompt.NewChatBuilder(request.Message, contextText).Build()

	var reply string
	if sess.Config.UseChatHistory && len(sess.ChatHistory) > 0 {
		history := s.historyWindow(sess)
		history = append(history, llm.Message{Role: constant.ChatMessageRoleUser, Content: promptText})
		reply, err = s.generator.Chat(ctx, sess.Config.Model, history)
	} else {
		reply, err = s.generator.Complete(ctx, sess.Config.Model, promptText)
	}
	if err != nil {
		return nil, err
	}

	// Exactly two messages per round trip: the user turn, then the reply.
	sess.ChatHistory = append(sess.ChatHistory,
		entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: request.Message},
		entity.ChatMessage{Role: constant.ChatMessageRoleAssistant, Content: reply},
	)
	s.sessionRepo.Save(sess)

	resp := &dto.ChatResponse{
		Reply:       entity.ChatMessage{Role: constant.ChatMessageRoleAssistant, Content: reply},
		ChatHistory: sess.ChatHistory,
	}
	if sess.Config.Debug {
		resp.Debug = &dto.DebugInfo{Prompt: promptText, ContextText: contextText}
	}
	return resp, nil
}

// historyWindow maps the last N chat turns into provider messages
func (s *assistantService) historyWindow(sess *store.Session) []llm.Message {
	window := sess.Config.NumChatMessages
	history := sess.ChatHistory
	if len(history) > window {
		history = history[len(history)-window:]
	}
	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return messages
}

func (s *assistantService) Reset(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error) {
	sess := s.session(sessionId)
	sess.Reset()
	s.sessionRepo.Save(sess)

	s.log.Info("assistant", "conversation cleared", map[string]interface{}{"session": sess.ID})
	return s.stateResponse(sess), nil
}

func (s *assistantService) GetConfig(ctx context.Context, sessionId string) (*dto.ConfigResponse, error) {
	sess := s.session(sessionId)
	return &dto.ConfigResponse{Config: sess.Config, Models: constant.Models}, nil
}

func (s *assistantService) UpdateConfig(ctx context.Context, sessionId string, request *dto.UpdateConfigRequest) (*dto.ConfigResponse, error) {
	sess := s.session(sessionId)

	if request.Model != "" {
		if !constant.IsKnownModel(request.Model) {
			return nil, apperrors.Validation("assistant.UpdateConfig", "unknown model: "+request.Model)
		}
		sess.Config.Model = request.Model
	}
	if request.NumChunks != 0 {
		sess.Config.NumChunks = request.NumChunks
	}
	if request.NumChatMessages != 0 {
		sess.Config.NumChatMessages = request.NumChatMessages
	}
	if request.UseChatHistory != nil {
		sess.Config.UseChatHistory = *request.UseChatHistory
	}
	if request.Debug != nil {
		sess.Config.Debug = *request.Debug
	}
	s.sessionRepo.Save(sess)

	return &dto.ConfigResponse{Config: sess.Config, Models: constant.Models}, nil
}

func (s *assistantService) stateResponse(sess *store.Session) *dto.SessionStateResponse {
	return &dto.SessionStateResponse{
		SessionId:      sess.ID,
		Page:           sess.Page,
		DomainInputs:   sess.DomainInputs,
		Specifications: sess.Specifications,
		PreviousPrompt: sess.PreviousPrompt,
		Ideas:          sess.Ideas,
		SelectedIdea:   sess.SelectedIdea,
		FinalIdea:      sess.FinalIdea,
		ChatHistory:    sess.ChatHistory,
		Config:         sess.Config,
	}
}
