package contract

import (
	"context"

	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/repository/specification"
)

// RatingCount is one bucket of the rating distribution
type RatingCount struct {
	Rating int
	Count  int64
}

// TypeCount is one bucket of the feedback-type distribution
type TypeCount struct {
	Type  string
	Count int64
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.FeedbackEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeedbackEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	CountByRating(ctx context.Context) ([]RatingCount, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
}
