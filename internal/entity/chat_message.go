package entity

// ChatMessage is one turn of the explore chat. Ordering inside the session's
// history is chronological and authoritative for prompt replay.
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}
