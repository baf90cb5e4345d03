package service

import (
	"context"

	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/pkg/logger"
	"kb-assist-be/internal/repository/contract"
	"kb-assist-be/internal/repository/specification"
	"kb-assist-be/internal/repository/unitofwork"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}

type fakeFeedbackRepo struct {
	entries    []*entity.FeedbackEntry
	created    []*entity.FeedbackEntry
	avg        float64
	ratingDist []contract.RatingCount
	typeDist   []contract.TypeCount
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, feedback *entity.FeedbackEntry) error {
	r.created = append(r.created, feedback)
	return nil
}

func (r *fakeFeedbackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeedbackEntry, error) {
	return r.entries, nil
}

func (r *fakeFeedbackRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.entries)), nil
}

func (r *fakeFeedbackRepo) AverageRating(ctx context.Context) (float64, error) {
	return r.avg, nil
}

func (r *fakeFeedbackRepo) CountByRating(ctx context.Context) ([]contract.RatingCount, error) {
	return r.ratingDist, nil
}

func (r *fakeFeedbackRepo) CountByType(ctx context.Context) ([]contract.TypeCount, error) {
	return r.typeDist, nil
}

type fakeSectionRepo struct {
	deleteAllCalls int
	count          int64
	countErr       error
}

func (r *fakeSectionRepo) CreateBulk(ctx context.Context, embeddings []*entity.SectionEmbedding) error {
	return nil
}

func (r *fakeSectionRepo) DeleteByDocumentId(ctx context.Context, documentId string) error {
	return nil
}

func (r *fakeSectionRepo) DeleteAll(ctx context.Context) error {
	r.deleteAllCalls++
	return nil
}

func (r *fakeSectionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SectionEmbedding, error) {
	return nil, nil
}

func (r *fakeSectionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return r.count, r.countErr
}

func (r *fakeSectionRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredSectionEmbedding, error) {
	return nil, nil
}

type fakeUnitOfWork struct {
	feedback *fakeFeedbackRepo
	sections *fakeSectionRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) FeedbackRepository() contract.FeedbackRepository {
	return u.feedback
}

func (u *fakeUnitOfWork) SectionEmbeddingRepository() contract.SectionEmbeddingRepository {
	return u.sections
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeUowFactory() (*fakeUowFactory, *fakeFeedbackRepo, *fakeSectionRepo) {
	feedbackRepo := &fakeFeedbackRepo{}
	sectionRepo := &fakeSectionRepo{}
	factory := &fakeUowFactory{uow: &fakeUnitOfWork{feedback: feedbackRepo, sections: sectionRepo}}
	return factory, feedbackRepo, sectionRepo
}
