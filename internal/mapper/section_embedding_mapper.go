package mapper

import (
	"time"

	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SectionEmbeddingMapper struct{}

func NewSectionEmbeddingMapper() *SectionEmbeddingMapper {
	return &SectionEmbeddingMapper{}
}

func (m *SectionEmbeddingMapper) ToEntity(e *model.SectionEmbedding) *entity.SectionEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.SectionEmbedding{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		Header:         e.Header,
		FolderPath:     e.FolderPath,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *SectionEmbeddingMapper) ToModel(e *entity.SectionEmbedding) *model.SectionEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.SectionEmbedding{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		Header:         e.Header,
		FolderPath:     e.FolderPath,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *SectionEmbeddingMapper) ToEntities(embeddings []*model.SectionEmbedding) []*entity.SectionEmbedding {
	entities := make([]*entity.SectionEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *SectionEmbeddingMapper) ToModels(embeddings []*entity.SectionEmbedding) []*model.SectionEmbedding {
	models := make([]*model.SectionEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
