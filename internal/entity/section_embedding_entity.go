package entity

import (
	"time"

	"github.com/google/uuid"
)

// SectionEmbedding is one indexed chunk of a knowledge-base document
// with its embedding vector. DocumentId is the document's relative path
// within the corpus root.
type SectionEmbedding struct {
	Id             uuid.UUID
	DocumentId     string
	Header         string
	FolderPath     string
	Document       string // the chunk text that was embedded
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
