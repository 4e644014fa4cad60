package embedding

// Response carries the embedding vector for one input text
type Response struct {
	Values []float32
}

// Provider defines the interface for generating text embeddings. Only the
// pgvector retrieval variant needs one; the hosted search service embeds
// queries on its own side.
type Provider interface {
	Generate(text string, taskType string) (*Response, error)
}
