package dto

import (
	"inspire-it-be/internal/entity"
	"inspire-it-be/pkg/store"
)

type NavigateRequest struct {
	Page string `json:"page" validate:"required,oneof=home get_idea review_idea final_paper explore"`
}

type GenerateIdeasRequest struct {
	Domains        []string `json:"domains" validate:"required,min=1"`
	Specifications string   `json:"specifications" validate:"required"`
}

type SubmitSuggestionRequest struct {
	Suggestion string `json:"suggestion" validate:"required"`
}

type DevelopIdeaRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

type GeneratePaperRequest struct {
	Idea   string `json:"idea" validate:"required"`
	Topics string `json:"topics" validate:"required"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type UpdateConfigRequest struct {
	Model           string `json:"model,omitempty"`
	NumChunks       int    `json:"num_chunks,omitempty" validate:"omitempty,min=1,max=10"`
	NumChatMessages int    `json:"num_chat_messages,omitempty" validate:"omitempty,min=1,max=10"`
	UseChatHistory  *bool  `json:"use_chat_history,omitempty"`
	Debug           *bool  `json:"debug,omitempty"`
}

// DebugInfo carries the constructed prompt and retrieved context when the
// debug toggle is on; omitted otherwise.
type DebugInfo struct {
	Prompt      string `json:"prompt"`
	ContextText string `json:"context_text"`
}

type SessionStateResponse struct {
	SessionId      string               `json:"session_id"`
	Page           string               `json:"page"`
	DomainInputs   []string             `json:"domain_inputs"`
	Specifications string               `json:"specifications"`
	PreviousPrompt string               `json:"previous_prompt"`
	Ideas          []entity.Idea        `json:"ideas"`
	SelectedIdea   *entity.Idea         `json:"selected_idea"`
	FinalIdea      *entity.FinalIdea    `json:"final_idea"`
	ChatHistory    []entity.ChatMessage `json:"chat_history"`
	Config         store.Config         `json:"config"`
}

type GenerateIdeasResponse struct {
	Ideas []entity.Idea `json:"ideas"`
	Page  string        `json:"page"`
	Debug *DebugInfo    `json:"debug,omitempty"`
}

type DevelopIdeaResponse struct {
	Page         string            `json:"page"`
	SelectedIdea *entity.Idea      `json:"selected_idea"`
	FinalIdea    *entity.FinalIdea `json:"final_idea"`
}

type PaperResponse struct {
	Outline *entity.PaperOutline `json:"outline"`
	Page    string               `json:"page"`
	Debug   *DebugInfo           `json:"debug,omitempty"`
}

type ChatResponse struct {
	Reply       entity.ChatMessage   `json:"reply"`
	ChatHistory []entity.ChatMessage `json:"chat_history"`
	Debug       *DebugInfo           `json:"debug,omitempty"`
}

type ConfigResponse struct {
	Config store.Config `json:"config"`
	Models []string     `json:"models"`
}
