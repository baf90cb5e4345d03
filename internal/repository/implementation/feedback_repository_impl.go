package implementation

import (
	"context"

	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/mapper"
	"kb-assist-be/internal/model"
	"kb-assist-be/internal/repository/contract"
	"kb-assist-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeedbackMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeedbackMapper(),
	}
}

func (r *FeedbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.FeedbackEntry) error {
	m := r.mapper.ToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeedbackEntry, error) {
	var models []*model.Feedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeedbackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Feedback{}).Count(&count).Error
	return count, err
}

func (r *FeedbackRepositoryImpl) AverageRating(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	// AVG over zero rows is NULL
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *FeedbackRepositoryImpl) CountByRating(ctx context.Context) ([]contract.RatingCount, error) {
	var results []contract.RatingCount
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("rating, COUNT(*) as count").
		Group("rating").
		Order("rating").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *FeedbackRepositoryImpl) CountByType(ctx context.Context) ([]contract.TypeCount, error) {
	var results []contract.TypeCount
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
