package vector

import (
	"context"
	"fmt"
	"log"

	"kb-assist-be/pkg/embedding"
	"kb-assist-be/pkg/retrieval"
)

// ScoredSection is one stored section with its cosine similarity to a
// query embedding.
type ScoredSection struct {
	DocumentID string
	Header     string
	FolderPath string
	Content    string
	Similarity float64
}

// Store is the persistence side of vector search. The repository layer
// implements it over pgvector.
type Store interface {
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, threshold float64) ([]ScoredSection, error)
}

// Retriever embeds the query and searches the store, satisfying the
// retrieval.VectorRetriever contract.
type Retriever struct {
	provider embedding.EmbeddingProvider
	store    Store
	logger   *log.Logger
}

var _ retrieval.VectorRetriever = &Retriever{}

func NewRetriever(provider embedding.EmbeddingProvider, store Store, logger *log.Logger) *Retriever {
	return &Retriever{
		provider: provider,
		store:    store,
		logger:   logger,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, similarityThreshold float64) ([]retrieval.VectorResult, error) {
	res, err := r.provider.Generate(query, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	sections, err := r.store.SearchSimilar(ctx, res.Embedding.Values, topK, similarityThreshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	results := make([]retrieval.VectorResult, len(sections))
	for i, s := range sections {
		results[i] = retrieval.VectorResult{
			DocumentID: s.DocumentID,
			Content:    s.Content,
			Score:      s.Similarity,
			Metadata: map[string]interface{}{
				"header":      s.Header,
				"folder_path": s.FolderPath,
			},
		}
	}
	return results, nil
}
