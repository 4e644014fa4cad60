package entity

import "github.com/google/uuid"

// ScoredDocument is one indexed chunk returned by similarity search,
// hydrated with its metadata and ranking score.
type ScoredDocument struct {
	Id       uuid.UUID
	Content  string
	Metadata map[string]string
	Score    float64
}
