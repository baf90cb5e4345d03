package service

import (
	"context"
	"time"

	"kb-assist-be/internal/constant"
	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/repository/specification"
	"kb-assist-be/internal/repository/unitofwork"
	"kb-assist-be/pkg/feedback"
)

// feedbackPatternSource builds scoring patterns from stored feedback.
// It implements feedback.Source, so the ranking adapter stays unaware
// of where patterns come from.
type feedbackPatternSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFeedbackPatternSource(uowFactory unitofwork.RepositoryFactory) feedback.Source {
	return &feedbackPatternSource{
		uowFactory: uowFactory,
	}
}

func (s *feedbackPatternSource) Load() (*feedback.Bundle, error) {
	ctx := context.Background()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.FeedbackRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.PatternSampleLimit},
	)
	if err != nil {
		return nil, err
	}

	return BuildPatternBundle(entries), nil
}

// BuildPatternBundle aggregates feedback entries into the pattern
// snapshot the ranking adapter consumes. High ratings reinforce the
// query's category, low ratings suppress it, and a category only
// produces a pattern once enough entries agree.
func BuildPatternBundle(entries []*entity.FeedbackEntry) *feedback.Bundle {
	reinforce := make(map[feedback.QueryCategory]int)
	suppress := make(map[feedback.QueryCategory]int)
	issueCounts := make(map[feedback.Signal]int)
	overrides := make(map[string]feedback.Override)

	for _, entry := range entries {
		category := feedback.CategorizeQuery(entry.Query)

		switch {
		case entry.Rating >= constant.ReinforceRatingMin:
			reinforce[category]++
		case entry.Rating <= constant.SuppressRatingMax:
			suppress[category]++

			for _, sig := range feedback.ClassifySignals(entry.Comment) {
				issueCounts[sig]++
				if sig == feedback.SignalIncomplete {
					overrides[feedback.NormalizeQuery(entry.Query)] = feedback.Override{
						Tags: []string{feedback.OverrideMoreDetail},
					}
				}
			}
		}
	}

	var patterns []feedback.Pattern
	for category, count := range reinforce {
		if count >= constant.MinPatternSupport {
			patterns = append(patterns, feedback.Pattern{
				Category: category,
				Outcome:  feedback.OutcomeReinforce,
				Weight:   1.0,
			})
		}
	}
	for category, count := range suppress {
		if count >= constant.MinPatternSupport {
			patterns = append(patterns, feedback.Pattern{
				Category: category,
				Outcome:  feedback.OutcomeSuppress,
				Weight:   1.0,
			})
		}
	}

	commonIssues := make(map[feedback.Signal]bool)
	for sig, count := range issueCounts {
		if count >= constant.MinPatternSupport {
			commonIssues[sig] = true
		}
	}

	return &feedback.Bundle{
		Patterns:     patterns,
		CommonIssues: commonIssues,
		Overrides:    overrides,
		UpdatedAt:    time.Now(),
	}
}
