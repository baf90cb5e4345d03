package service

import (
	"context"
	"sort"
	"time"

	"kb-assist-be/internal/constant"
	"kb-assist-be/internal/dto"
	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/pkg/logger"
	"kb-assist-be/internal/repository/specification"
	"kb-assist-be/internal/repository/unitofwork"
	"kb-assist-be/pkg/feedback"

	"github.com/google/uuid"
)

type IFeedbackService interface {
	Submit(ctx context.Context, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error)
	Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error)
	Insights(ctx context.Context) (*dto.FeedbackInsightsResponse, error)
	RebuildPatterns(ctx context.Context) (*dto.RebuildPatternsResponse, error)
}

type feedbackService struct {
	uowFactory unitofwork.RepositoryFactory
	adapter    *feedback.Adapter
	logger     logger.ILogger
}

func NewFeedbackService(
	uowFactory unitofwork.RepositoryFactory,
	adapter *feedback.Adapter,
	sysLogger logger.ILogger,
) IFeedbackService {
	return &feedbackService{
		uowFactory: uowFactory,
		adapter:    adapter,
		logger:     sysLogger,
	}
}

func (s *feedbackService) Submit(ctx context.Context, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error) {
	feedbackType := req.Type
	if feedbackType == "" {
		feedbackType = "neutral"
	}

	entry := entity.FeedbackEntry{
		Id:        uuid.New(),
		Query:     req.Query,
		Answer:    req.Answer,
		Rating:    req.Rating,
		Type:      feedbackType,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FeedbackRepository().Create(ctx, &entry); err != nil {
		return nil, err
	}

	signals := feedback.ClassifySignals(req.Comment)
	signalStrings := make([]string, len(signals))
	for i, sig := range signals {
		signalStrings[i] = string(sig)
	}

	s.logger.Info("FeedbackService", "Feedback recorded", map[string]interface{}{
		"rating":  req.Rating,
		"type":    feedbackType,
		"signals": signalStrings,
	})

	return &dto.SubmitFeedbackResponse{
		Id:      entry.Id,
		Signals: signalStrings,
	}, nil
}

func (s *feedbackService) Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.FeedbackRepository()

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	avg, err := repo.AverageRating(ctx)
	if err != nil {
		return nil, err
	}

	buckets, err := repo.CountByRating(ctx)
	if err != nil {
		return nil, err
	}

	distribution := make(map[int]int64, len(buckets))
	for _, b := range buckets {
		distribution[b.Rating] = b.Count
	}

	typeBuckets, err := repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	typeDistribution := make(map[string]int64, len(typeBuckets))
	for _, b := range typeBuckets {
		typeDistribution[b.Type] = b.Count
	}

	return &dto.FeedbackStatsResponse{
		TotalEntries:       total,
		AverageRating:      avg,
		RatingDistribution: distribution,
		TypeDistribution:   typeDistribution,
	}, nil
}

func (s *feedbackService) Insights(ctx context.Context) (*dto.FeedbackInsightsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.FeedbackRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.PatternSampleLimit},
	)
	if err != nil {
		return nil, err
	}

	reinforce := make(map[feedback.QueryCategory]int)
	suppress := make(map[feedback.QueryCategory]int)

	for _, entry := range entries {
		category := feedback.CategorizeQuery(entry.Query)
		switch {
		case entry.Rating >= constant.ReinforceRatingMin:
			reinforce[category]++
		case entry.Rating <= constant.SuppressRatingMax:
			suppress[category]++
		}
	}

	// Issue and override aggregation is the pattern builder's job.
	bundle := BuildPatternBundle(entries)

	var issues []string
	for sig := range bundle.CommonIssues {
		issues = append(issues, string(sig))
	}
	sort.Strings(issues)

	var overrideQueries []string
	for query := range bundle.Overrides {
		overrideQueries = append(overrideQueries, query)
	}
	sort.Strings(overrideQueries)

	categorySet := make(map[feedback.QueryCategory]struct{})
	for c := range reinforce {
		categorySet[c] = struct{}{}
	}
	for c := range suppress {
		categorySet[c] = struct{}{}
	}

	var categories []dto.CategoryInsight
	for c := range categorySet {
		categories = append(categories, dto.CategoryInsight{
			Category:       string(c),
			ReinforceCount: reinforce[c],
			SuppressCount:  suppress[c],
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return &dto.FeedbackInsightsResponse{
		CommonIssues:    issues,
		Categories:      categories,
		OverrideQueries: overrideQueries,
		AnalyzedEntries: int64(len(entries)),
	}, nil
}

func (s *feedbackService) RebuildPatterns(ctx context.Context) (*dto.RebuildPatternsResponse, error) {
	if err := s.adapter.Refresh(); err != nil {
		return nil, err
	}

	bundle := s.adapter.Bundle()
	response := &dto.RebuildPatternsResponse{
		UpdatedAt: time.Now(),
	}
	if bundle != nil {
		response.PatternCount = len(bundle.Patterns)
		response.UpdatedAt = bundle.UpdatedAt
	}

	s.logger.Info("FeedbackService", "Scoring patterns rebuilt", map[string]interface{}{
		"pattern_count": response.PatternCount,
	})
	return response, nil
}
