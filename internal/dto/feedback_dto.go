package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitFeedbackRequest struct {
	Query   string `json:"query" validate:"required"`
	Answer  string `json:"answer"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Type    string `json:"feedback_type" validate:"omitempty,oneof=thumbs_up thumbs_down neutral"`
	Comment string `json:"comment"`
}

type SubmitFeedbackResponse struct {
	Id      uuid.UUID `json:"id"`
	Signals []string  `json:"detected_signals,omitempty"`
}

type FeedbackStatsResponse struct {
	TotalEntries       int64            `json:"total_entries"`
	AverageRating      float64          `json:"average_rating"`
	RatingDistribution map[int]int64    `json:"rating_distribution"`
	TypeDistribution   map[string]int64 `json:"type_distribution"`
}

// CategoryInsight summarizes learned behavior for one query category
type CategoryInsight struct {
	Category       string `json:"category"`
	ReinforceCount int    `json:"reinforce_count"`
	SuppressCount  int    `json:"suppress_count"`
}

type FeedbackInsightsResponse struct {
	CommonIssues    []string          `json:"common_issues"`
	Categories      []CategoryInsight `json:"categories"`
	OverrideQueries []string          `json:"override_queries"`
	AnalyzedEntries int64             `json:"analyzed_entries"`
}

type RebuildPatternsResponse struct {
	PatternCount int       `json:"pattern_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}
