package contract

import (
	"context"

	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/repository/specification"
)

// ScoredSectionEmbedding wraps SectionEmbedding with its similarity score
type ScoredSectionEmbedding struct {
	Embedding  *entity.SectionEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type SectionEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.SectionEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId string) error
	DeleteAll(ctx context.Context) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SectionEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredSectionEmbedding, error)
}
