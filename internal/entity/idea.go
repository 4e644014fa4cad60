package entity

// Idea is one generated research/business idea. Produced only by parsing a
// completion response; immutable once created.
type Idea struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Opportunities []string `json:"opportunities"`
	Drawbacks     []string `json:"drawbacks"`
	References    []string `json:"references"`
	PaperURL      string   `json:"paper_url,omitempty"`
}

// FinalIdea is the idea/topics pair the paper outline is derived from
type FinalIdea struct {
	Idea   string `json:"idea"`
	Topics string `json:"topics"`
}

// PaperOutline is the parsed result of the paper generation flow
type PaperOutline struct {
	Abstract      string   `json:"abstract"`
	References    []string `json:"references"`
	Opportunities []string `json:"opportunities"`
}
