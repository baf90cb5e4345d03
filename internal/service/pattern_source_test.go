package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-assist-be/internal/entity"
	"kb-assist-be/pkg/feedback"
)

func entry(query string, rating int, comment string) *entity.FeedbackEntry {
	return &entity.FeedbackEntry{Query: query, Rating: rating, Comment: comment}
}

func TestBuildPatternBundleEmpty(t *testing.T) {
	bundle := BuildPatternBundle(nil)
	require.NotNil(t, bundle)
	assert.Empty(t, bundle.Patterns)
	assert.Empty(t, bundle.CommonIssues)
	assert.Empty(t, bundle.Overrides)
	assert.False(t, bundle.UpdatedAt.IsZero())
}

func TestBuildPatternBundleRequiresSupport(t *testing.T) {
	// Two high ratings for questions: below the support threshold.
	bundle := BuildPatternBundle([]*entity.FeedbackEntry{
		entry("how do I deploy", 5, ""),
		entry("what is a goroutine", 4, ""),
	})
	assert.Empty(t, bundle.Patterns)

	// The third entry tips the category into a pattern.
	bundle = BuildPatternBundle([]*entity.FeedbackEntry{
		entry("how do I deploy", 5, ""),
		entry("what is a goroutine", 4, ""),
		entry("why does this fail", 4, ""),
	})
	require.Len(t, bundle.Patterns, 1)
	assert.Equal(t, feedback.CategoryQuestion, bundle.Patterns[0].Category)
	assert.Equal(t, feedback.OutcomeReinforce, bundle.Patterns[0].Outcome)
	assert.Equal(t, 1.0, bundle.Patterns[0].Weight)
}

func TestBuildPatternBundleSuppressAndIssues(t *testing.T) {
	entries := []*entity.FeedbackEntry{
		entry("find my notes", 1, "totally irrelevant"),
		entry("search for recipes", 2, "irrelevant again"),
		entry("find deployment docs", 1, "irrelevant to what I asked"),
	}
	bundle := BuildPatternBundle(entries)

	require.Len(t, bundle.Patterns, 1)
	assert.Equal(t, feedback.CategorySearch, bundle.Patterns[0].Category)
	assert.Equal(t, feedback.OutcomeSuppress, bundle.Patterns[0].Outcome)

	assert.True(t, bundle.CommonIssues[feedback.SignalIrrelevant])
	assert.False(t, bundle.CommonIssues[feedback.SignalIncorrect])
}

func TestBuildPatternBundleMiddlingRatingsIgnored(t *testing.T) {
	bundle := BuildPatternBundle([]*entity.FeedbackEntry{
		entry("how do I deploy", 3, "incomplete answer"),
		entry("what is docker", 3, ""),
		entry("why use go", 3, ""),
	})
	assert.Empty(t, bundle.Patterns)
	// Signals only count on low-rated entries.
	assert.Empty(t, bundle.CommonIssues)
	assert.Empty(t, bundle.Overrides)
}

func TestBuildPatternBundleIncompleteOverride(t *testing.T) {
	bundle := BuildPatternBundle([]*entity.FeedbackEntry{
		entry("  How Do I Deploy ", 1, "answer was incomplete"),
	})

	override, ok := bundle.Overrides["how do i deploy"]
	require.True(t, ok, "low-rated incomplete feedback must register an override under the normalized query")
	assert.Contains(t, override.Tags, feedback.OverrideMoreDetail)

	// A single entry is not enough for a suppress pattern or common issue.
	assert.Empty(t, bundle.Patterns)
	assert.Empty(t, bundle.CommonIssues)
}
