package service

import (
	"context"

	"kb-assist-be/internal/repository/unitofwork"
	"kb-assist-be/pkg/vector"
)

// sectionVectorStore exposes the pgvector-backed embedding repository
// through the vector.Store contract.
type sectionVectorStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSectionVectorStore(uowFactory unitofwork.RepositoryFactory) vector.Store {
	return &sectionVectorStore{
		uowFactory: uowFactory,
	}
}

func (s *sectionVectorStore) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, threshold float64) ([]vector.ScoredSection, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.SectionEmbeddingRepository().SearchSimilarWithScore(ctx, queryEmbedding, limit, threshold)
	if err != nil {
		return nil, err
	}

	sections := make([]vector.ScoredSection, len(scored))
	for i, item := range scored {
		sections[i] = vector.ScoredSection{
			DocumentID: item.Embedding.DocumentId,
			Header:     item.Embedding.Header,
			FolderPath: item.Embedding.FolderPath,
			Content:    item.Embedding.Document,
			Similarity: item.Similarity,
		}
	}
	return sections, nil
}
