package unitofwork

import (
	"context"

	"kb-assist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FeedbackRepository() contract.FeedbackRepository
	SectionEmbeddingRepository() contract.SectionEmbeddingRepository
}
