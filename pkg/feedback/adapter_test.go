package feedback

import (
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticSource struct {
	bundle *Bundle
	err    error
}

func (s *staticSource) Load() (*Bundle, error) {
	return s.bundle, s.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestAdapter(bundle *Bundle) *Adapter {
	a := NewAdapter(&staticSource{bundle: bundle}, testLogger())
	_ = a.Refresh()
	return a
}

func TestAdapterNoOpWithoutPatterns(t *testing.T) {
	a := newTestAdapter(nil)
	assert.Equal(t, 3.0, a.Adapt(3.0, "how do I deploy", "body"))
}

func TestAdapterLoadFailureDegradesToNoOp(t *testing.T) {
	a := NewAdapter(&staticSource{err: errors.New("table missing")}, testLogger())
	assert.Error(t, a.Refresh())
	assert.Equal(t, 2.5, a.Adapt(2.5, "how do I deploy", "body"))
}

func TestAdapterReinforce(t *testing.T) {
	a := newTestAdapter(&Bundle{
		Patterns: []Pattern{
			{Category: CategoryQuestion, Outcome: OutcomeReinforce, Weight: 1},
		},
	})

	assert.Equal(t, 4.0, a.Adapt(3.0, "how do I deploy", "body"))
	// Different category: untouched.
	assert.Equal(t, 3.0, a.Adapt(3.0, "find deployment notes", "body"))
}

func TestAdapterReinforceNeverResurrects(t *testing.T) {
	a := newTestAdapter(&Bundle{
		Patterns: []Pattern{
			{Category: CategoryQuestion, Outcome: OutcomeReinforce, Weight: 5},
		},
	})

	// A section the scorer rejected stays rejected.
	assert.Equal(t, 0.0, a.Adapt(0.0, "how do I deploy", "body"))
	assert.Equal(t, -1.0, a.Adapt(-1.0, "how do I deploy", "body"))
}

func TestAdapterSuppressClampsAtZero(t *testing.T) {
	a := newTestAdapter(&Bundle{
		Patterns: []Pattern{
			{Category: CategorySearch, Outcome: OutcomeSuppress, Weight: 2},
		},
	})

	assert.Equal(t, 1.0, a.Adapt(3.0, "find my notes", "body"))
	assert.Equal(t, 0.0, a.Adapt(1.0, "find my notes", "body"))
}

func TestAdapterMarginalPenalty(t *testing.T) {
	a := newTestAdapter(&Bundle{
		CommonIssues: map[Signal]bool{SignalIrrelevant: true},
	})

	// Below the marginal threshold: halved.
	assert.Equal(t, 0.75, a.Adapt(1.5, "anything", "body"))
	// At or above: untouched.
	assert.Equal(t, 2.0, a.Adapt(2.0, "anything", "body"))
	assert.Equal(t, 5.0, a.Adapt(5.0, "anything", "body"))
}

func TestAdapterMoreDetailOverride(t *testing.T) {
	a := newTestAdapter(&Bundle{
		Overrides: map[string]Override{
			"how do i deploy": {Tags: []string{OverrideMoreDetail}},
		},
	})

	longBody := strings.Repeat("detailed content ", 20) // > 200 chars
	shortBody := "short"

	// Long sections get the boost for the overridden query.
	assert.Equal(t, 4.0, a.Adapt(3.0, "How do I deploy", longBody))
	// Short sections and other queries do not.
	assert.Equal(t, 3.0, a.Adapt(3.0, "How do I deploy", shortBody))
	assert.Equal(t, 3.0, a.Adapt(3.0, "other query", longBody))
	// No resurrection through the override either.
	assert.Equal(t, 0.0, a.Adapt(0.0, "How do I deploy", longBody))
}

func TestAdapterDefaultWeight(t *testing.T) {
	a := newTestAdapter(&Bundle{
		Patterns: []Pattern{
			{Category: CategoryQuestion, Outcome: OutcomeReinforce}, // zero weight
		},
	})

	assert.Equal(t, 4.0, a.Adapt(3.0, "what is this", "body"))
}

func TestAdapterLazyLoadOnFirstUse(t *testing.T) {
	source := &staticSource{bundle: &Bundle{
		Patterns: []Pattern{
			{Category: CategoryQuestion, Outcome: OutcomeReinforce, Weight: 1},
		},
	}}
	a := NewAdapter(source, testLogger())

	// No explicit Refresh: first Adapt pulls the bundle itself.
	assert.Equal(t, 4.0, a.Adapt(3.0, "what is this", "body"))
}
