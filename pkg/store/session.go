package store

import "inspire-it-be/internal/entity"

// Page names for the assistant flow
const (
	PageHome       = "home"
	PageGetIdea    = "get_idea"
	PageReviewIdea = "review_idea"
	PageFinalPaper = "final_paper"
	PageExplore    = "explore"
)

// DefaultModel is seeded into new sessions; the full selectable list lives
// in internal/constant.
const DefaultModel = "mistral-large2"

// Config holds the user-tunable generation options for a session
type Config struct {
	Model           string `json:"model"`
	NumChunks       int    `json:"num_chunks"`        // retrieved context chunks, 1-10
	NumChatMessages int    `json:"num_chat_messages"` // history window for chat, 1-10
	UseChatHistory  bool   `json:"use_chat_history"`
	Debug           bool   `json:"debug"`
}

// Session represents the active user session state in memory.
// One logical thread of control per session: a single browser drives one
// synchronous action at a time, so the last write wins on a double click.
type Session struct {
	ID   string `json:"id"`
	Page string `json:"page"`

	DomainInputs   []string `json:"domain_inputs"`
	Specifications string   `json:"specifications"`
	PreviousPrompt string   `json:"previous_prompt"`

	Ideas        []entity.Idea     `json:"ideas"`
	SelectedIdea *entity.Idea      `json:"selected_idea"`
	FinalIdea    *entity.FinalIdea `json:"final_idea"`

	ChatHistory []entity.ChatMessage `json:"chat_history"`

	// GenerateNew is a one-shot marker set by the suggestion flow so the
	// next render of get_idea re-triggers generation.
	GenerateNew bool `json:"generate_new"`

	Config Config `json:"config"`

	defaultsSet bool
}

// EnsureDefaults seeds absent fields so a first visit has working state.
// Idempotent: values already set, by seeding or by the user, are left
// untouched. Called at the start of every request cycle.
func (s *Session) EnsureDefaults() {
	if s.Page == "" {
		s.Page = PageHome
	}
	if s.DomainInputs == nil {
		s.DomainInputs = []string{""}
	}
	if s.Ideas == nil {
		s.Ideas = []entity.Idea{}
	}
	if s.ChatHistory == nil {
		s.ChatHistory = []entity.ChatMessage{}
	}
	if s.Config.Model == "" {
		s.Config.Model = DefaultModel
	}
	if s.Config.NumChunks == 0 {
		s.Config.NumChunks = 5
	}
	if s.Config.NumChatMessages == 0 {
		s.Config.NumChatMessages = 5
	}
	// UseChatHistory defaults to on, but only on the very first seeding so
	// an explicit user toggle to off is never clobbered.
	if !s.defaultsSet {
		s.Config.UseChatHistory = true
		s.defaultsSet = true
	}
}

// Reset implements the "clear conversation" action: accumulated work is
// dropped and the page returns to home. Config survives.
func (s *Session) Reset() {
	s.Page = PageHome
	s.DomainInputs = []string{""}
	s.Specifications = ""
	s.PreviousPrompt = ""
	s.Ideas = []entity.Idea{}
	s.SelectedIdea = nil
	s.FinalIdea = nil
	s.ChatHistory = []entity.ChatMessage{}
	s.GenerateNew = false
}
