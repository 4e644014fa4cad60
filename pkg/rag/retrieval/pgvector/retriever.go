package pgvector

import (
	"context"
	"fmt"

	"inspire-it-be/internal/pkg/apperrors"
	"inspire-it-be/internal/repository/contract"
	"inspire-it-be/pkg/embedding"
	"inspire-it-be/pkg/rag/retrieval"
)

// Retriever runs similarity search over the local pgvector document index.
// It is the direct-client variant of the search backend: the query is
// embedded here and matched against pre-ingested chunks.
type Retriever struct {
	embeddingProvider embedding.Provider
	chunkRepo         contract.DocumentChunkRepository
}

var _ retrieval.Retriever = &Retriever{}

func NewRetriever(embeddingProvider embedding.Provider, chunkRepo contract.DocumentChunkRepository) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		chunkRepo:         chunkRepo,
	}
}

// Search embeds the query text and returns the nearest chunks. Each filter
// predicate is matched against the chunk metadata; requested columns are
// served from content ("chunk") or metadata.
func (r *Retriever) Search(ctx context.Context, q retrieval.Query) ([]retrieval.Result, error) {
	const op = "retrieval.pgvector.Search"

	embeddingRes, err := r.embeddingProvider.Generate(q.Text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, apperrors.Retrieval(op, fmt.Errorf("embedding generation failed: %w", err))
	}

	filter := make(map[string]string, len(q.Filter.And))
	for _, eq := range q.Filter.And {
		filter[eq.Column] = eq.Value
	}

	docs, err := r.chunkRepo.SearchSimilar(ctx, embeddingRes.Values, q.Limit, filter)
	if err != nil {
		return nil, apperrors.Retrieval(op, err)
	}

	results := make([]retrieval.Result, 0, len(docs))
	for _, doc := range docs {
		fields := make(map[string]string, len(q.Columns))
		for _, col := range q.Columns {
			if col == "chunk" {
				fields[col] = doc.Content
				continue
			}
			fields[col] = doc.Metadata[col]
		}
		results = append(results, retrieval.Result{Fields: fields})
	}
	return results, nil
}

// Ping verifies the index is reachable. A failure at startup is fatal.
func (r *Retriever) Ping(ctx context.Context) error {
	if _, err := r.chunkRepo.Count(ctx); err != nil {
		return apperrors.Connection("retrieval.pgvector.Ping", err)
	}
	return nil
}
