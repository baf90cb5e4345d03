package service

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-assist-be/internal/dto"
	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/repository/contract"
	"kb-assist-be/pkg/feedback"
)

func newFeedbackFixture(repo *fakeFeedbackRepo) IFeedbackService {
	factory := &fakeUowFactory{uow: &fakeUnitOfWork{feedback: repo, sections: &fakeSectionRepo{}}}
	adapter := feedback.NewAdapter(NewFeedbackPatternSource(factory), log.New(io.Discard, "", 0))
	return NewFeedbackService(factory, adapter, nopLogger{})
}

func TestFeedbackSubmitDefaultsTypeToNeutral(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	svc := newFeedbackFixture(repo)

	res, err := svc.Submit(context.Background(), &dto.SubmitFeedbackRequest{
		Query:   "how do I deploy",
		Rating:  2,
		Comment: "answer was irrelevant",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "neutral", repo.created[0].Type)
	assert.Equal(t, []string{string(feedback.SignalIrrelevant)}, res.Signals)

	_, err = svc.Submit(context.Background(), &dto.SubmitFeedbackRequest{
		Query:  "how do I deploy",
		Rating: 5,
		Type:   "thumbs_up",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 2)
	assert.Equal(t, "thumbs_up", repo.created[1].Type)
}

func TestFeedbackStatsIncludesDistributions(t *testing.T) {
	repo := &fakeFeedbackRepo{
		entries: []*entity.FeedbackEntry{
			entry("a", 5, ""),
			entry("b", 5, ""),
			entry("c", 1, ""),
		},
		avg: 3.67,
		ratingDist: []contract.RatingCount{
			{Rating: 1, Count: 1},
			{Rating: 5, Count: 2},
		},
		typeDist: []contract.TypeCount{
			{Type: "neutral", Count: 1},
			{Type: "thumbs_up", Count: 2},
		},
	}
	svc := newFeedbackFixture(repo)

	res, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.TotalEntries)
	assert.Equal(t, 3.67, res.AverageRating)
	assert.Equal(t, map[int]int64{1: 1, 5: 2}, res.RatingDistribution)
	assert.Equal(t, map[string]int64{"neutral": 1, "thumbs_up": 2}, res.TypeDistribution)
}

func TestFeedbackInsightsAggregatesCategoriesAndIssues(t *testing.T) {
	repo := &fakeFeedbackRepo{entries: []*entity.FeedbackEntry{
		entry("how do I deploy", 5, ""),
		entry("what is docker", 4, ""),
		entry("why use go", 4, ""),
		entry("find my notes", 1, "irrelevant"),
		entry("search for recipes", 2, "totally irrelevant"),
		entry("find deployment docs", 1, "irrelevant again"),
		entry("describe the setup", 3, "meh"), // middling, ignored
	}}
	svc := newFeedbackFixture(repo)

	res, err := svc.Insights(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.AnalyzedEntries)
	assert.Equal(t, []dto.CategoryInsight{
		{Category: string(feedback.CategoryQuestion), ReinforceCount: 3, SuppressCount: 0},
		{Category: string(feedback.CategorySearch), ReinforceCount: 0, SuppressCount: 3},
	}, res.Categories)
	assert.Equal(t, []string{string(feedback.SignalIrrelevant)}, res.CommonIssues)
	assert.Empty(t, res.OverrideQueries)
}
