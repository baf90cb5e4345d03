package feedback

import (
	"log"
	"sync"
)

const (
	// Scores below this are considered marginal when the pattern set
	// flags a systemic irrelevant-response issue.
	lowScoreThreshold = 2.0

	// Body length a section must exceed before the more-detail
	// override rewards it.
	detailBodyLength = 200

	marginalPenalty = 0.5
	matchBonus      = 1.0
)

// Source loads the learned pattern snapshot, typically from the
// feedback store. Read-only from the adapter's perspective.
type Source interface {
	Load() (*Bundle, error)
}

// Adapter perturbs raw keyword scores using accumulated user feedback.
// It is safe for concurrent use: scoring passes read a shared snapshot,
// which is only replaced wholesale by Refresh.
type Adapter struct {
	source Source
	logger *log.Logger

	mu     sync.RWMutex
	bundle *Bundle
	loaded bool
}

// NewAdapter creates an adapter backed by the given pattern source
func NewAdapter(source Source, logger *log.Logger) *Adapter {
	return &Adapter{
		source: source,
		logger: logger,
	}
}

// Refresh reloads the pattern snapshot from the source. A load failure
// clears the snapshot so the adapter degrades to a no-op instead of
// failing queries.
func (a *Adapter) Refresh() error {
	bundle, err := a.source.Load()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loaded = true
	if err != nil {
		a.logger.Printf("[WARN] Failed to load feedback patterns: %v", err)
		a.bundle = nil
		return err
	}
	a.bundle = bundle
	return nil
}

// Bundle returns the currently loaded pattern snapshot, nil when none
func (a *Adapter) Bundle() *Bundle {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bundle
}

// snapshot returns the current bundle, lazily loading it on first use.
// Nil means "no patterns available" and the adapter no-ops.
func (a *Adapter) snapshot() *Bundle {
	a.mu.RLock()
	if a.loaded {
		defer a.mu.RUnlock()
		return a.bundle
	}
	a.mu.RUnlock()

	_ = a.Refresh()

	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bundle
}

// Adapt applies learned adjustments to a raw score. Each step is
// independently skipped when its data is absent. The adapter is
// monotonic-safe: bonuses only apply to already-positive scores, and
// the marginal-score penalty only ever reduces, so feedback rules can
// never resurrect a section the keyword scorer rejected.
func (a *Adapter) Adapt(score float64, query string, sectionBody string) float64 {
	bundle := a.snapshot()
	if bundle == nil {
		return score
	}

	adapted := score
	category := CategorizeQuery(query)

	for _, pattern := range bundle.Patterns {
		if pattern.Category != category {
			continue
		}
		weight := pattern.Weight
		if weight == 0 {
			weight = matchBonus
		}
		switch pattern.Outcome {
		case OutcomeReinforce:
			if adapted > 0 {
				adapted += weight
			}
		case OutcomeSuppress:
			adapted -= weight
			if adapted < 0 {
				adapted = 0
			}
		}
	}

	// Systemic noise: sharpen the separation between marginal and
	// solid matches.
	if bundle.CommonIssues[SignalIrrelevant] && adapted < lowScoreThreshold {
		adapted *= marginalPenalty
	}

	if override, ok := bundle.Overrides[NormalizeQuery(query)]; ok {
		for _, tag := range override.Tags {
			if tag == OverrideMoreDetail && len(sectionBody) > detailBodyLength && adapted > 0 {
				adapted += matchBonus
				break
			}
		}
	}

	return adapted
}
