package mapper

import (
	"fmt"

	"inspire-it-be/internal/entity"
	"inspire-it-be/internal/model"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToScoredEntity(chunk *model.DocumentChunk, score float64) *entity.ScoredDocument {
	metadata := make(map[string]string, len(chunk.Metadata))
	for k, v := range chunk.Metadata {
		if s, ok := v.(string); ok {
			metadata[k] = s
		} else {
			metadata[k] = fmt.Sprintf("%v", v)
		}
	}
	return &entity.ScoredDocument{
		Id:       chunk.Id,
		Content:  chunk.Content,
		Metadata: metadata,
		Score:    score,
	}
}
