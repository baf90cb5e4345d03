package implementation

import (
	"context"

	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/mapper"
	"kb-assist-be/internal/model"
	"kb-assist-be/internal/repository/contract"
	"kb-assist-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SectionEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SectionEmbeddingMapper
}

func NewSectionEmbeddingRepository(db *gorm.DB) contract.SectionEmbeddingRepository {
	return &SectionEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewSectionEmbeddingMapper(),
	}
}

func (r *SectionEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SectionEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.SectionEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.SectionEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *SectionEmbeddingRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId string) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.SectionEmbedding{}).Error
}

// DeleteAll hard-deletes every embedding, used before a full reindex
func (r *SectionEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(&model.SectionEmbedding{}).Error
}

func (r *SectionEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SectionEmbedding, error) {
	var models []*model.SectionEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SectionEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SectionEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold
func (r *SectionEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredSectionEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.SectionEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("section_embeddings").
		Select("section_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("section_embeddings.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredSectionEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredSectionEmbedding{
			Embedding:  r.mapper.ToEntity(&res.SectionEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
