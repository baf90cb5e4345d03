package feedback

import (
	"strings"
	"time"
)

// Signal is a tagged classification of an issue reported in free-text
// feedback. Detection (how we find a signal in text) is separated from
// what the ranking adapter does with it, so the detection rules can be
// replaced without touching the scoring contract.
type Signal string

const (
	SignalTooVerbose Signal = "too_verbose"
	SignalTooBrief   Signal = "too_brief"
	SignalIrrelevant Signal = "irrelevant"
	SignalIncomplete Signal = "incomplete"
	SignalUnclear    Signal = "unclear"
	SignalIncorrect  Signal = "incorrect"
)

// signalMarkers maps free-text phrases to signals. Keyword presence is
// deliberately simple; the markers mirror what users actually type.
var signalMarkers = map[Signal][]string{
	SignalTooVerbose: {"too long", "verbose"},
	SignalTooBrief:   {"too short", "too brief"},
	SignalIrrelevant: {"irrelevant", "not helpful", "not relevant"},
	SignalIncomplete: {"more detail", "incomplete", "missing"},
	SignalUnclear:    {"confusing", "unclear"},
	SignalIncorrect:  {"wrong", "incorrect", "inaccurate"},
}

// ClassifySignals extracts issue signals from free-text feedback
func ClassifySignals(text string) []Signal {
	lower := strings.ToLower(text)
	var signals []Signal
	for _, sig := range []Signal{
		SignalTooVerbose, SignalTooBrief, SignalIrrelevant,
		SignalIncomplete, SignalUnclear, SignalIncorrect,
	} {
		for _, marker := range signalMarkers[sig] {
			if strings.Contains(lower, marker) {
				signals = append(signals, sig)
				break
			}
		}
	}
	return signals
}

// QueryCategory groups queries by intent for pattern matching
type QueryCategory string

const (
	CategoryQuestion    QueryCategory = "question"
	CategoryExplanation QueryCategory = "explanation"
	CategorySearch      QueryCategory = "search"
	CategoryComparison  QueryCategory = "comparison"
	CategoryGeneral     QueryCategory = "general"
)

// CategorizeQuery classifies a query by simple keyword presence. This
// is a pure function of the query string, independent of the corpus.
func CategorizeQuery(query string) QueryCategory {
	lower := strings.ToLower(query)
	switch {
	case containsAny(lower, "how", "what", "why", "when", "where"):
		return CategoryQuestion
	case containsAny(lower, "explain", "describe", "tell me about"):
		return CategoryExplanation
	case containsAny(lower, "find", "search", "look for"):
		return CategorySearch
	case containsAny(lower, "compare", "difference", "vs"):
		return CategoryComparison
	default:
		return CategoryGeneral
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Outcome records how a learned pattern should influence scoring
type Outcome string

const (
	OutcomeReinforce Outcome = "reinforce"
	OutcomeSuppress  Outcome = "suppress"
)

// Pattern is one learned adjustment rule for a query category
type Pattern struct {
	Category QueryCategory `json:"query_category"`
	Outcome  Outcome       `json:"observed_outcome"`
	Weight   float64       `json:"weight_delta"`
}

// Override carries query-specific learned adjustments, keyed by the
// normalized query text
type Override struct {
	Tags []string `json:"tags"`
}

// OverrideMoreDetail asks the adapter to favor longer sections for a
// specific query.
const OverrideMoreDetail = "add_more_details"

// Bundle is the read-only pattern snapshot a scoring pass works
// against. It is rebuilt by the feedback ingestion job, never mutated
// during scoring.
type Bundle struct {
	Patterns     []Pattern           `json:"patterns"`
	CommonIssues map[Signal]bool     `json:"common_issues"`
	Overrides    map[string]Override `json:"overrides"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NormalizeQuery produces the override lookup key for a query
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
