package contract

import (
	"context"

	"inspire-it-be/internal/entity"
)

// DocumentChunkRepository reads the pgvector-backed document index. The
// index itself is owned by an external ingestion process; this side only
// queries it.
type DocumentChunkRepository interface {
	// SearchSimilar returns the limit nearest chunks by cosine distance,
	// restricted to rows whose metadata matches every filter entry.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, filter map[string]string) ([]*entity.ScoredDocument, error)
	Count(ctx context.Context) (int64, error)
}
