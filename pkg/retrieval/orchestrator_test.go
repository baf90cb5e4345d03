package retrieval

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"kb-assist-be/pkg/corpus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVectorRetriever struct {
	results []VectorResult
	err     error
	calls   int
}

func (f *fakeVectorRetriever) Retrieve(ctx context.Context, query string, topK int, threshold float64) ([]VectorResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testDocs() []corpus.Document {
	return []corpus.Document{
		{ID: "a.md", Filename: "a.md", FolderPath: corpus.RootFolder, Content: "# Docker\nrestart the container"},
		{ID: "b.md", Filename: "b.md", FolderPath: corpus.RootFolder, Content: "# Cooking\npasta with docker mentioned"},
	}
}

func TestOrchestratorKeywordMode(t *testing.T) {
	scorer := NewKeywordScorer(SimpleScorerConfig(), nil)
	vector := &fakeVectorRetriever{}
	o := NewOrchestrator(scorer, vector, testLogger())

	result := o.Retrieve(context.Background(), "docker", testDocs(), Options{Mode: ModeKeyword, Limit: 5})

	assert.Equal(t, ModeKeyword, result.ModeUsed)
	assert.Equal(t, 0, vector.calls, "keyword mode must not touch the vector backend")
	require.NotEmpty(t, result.Candidates)
	assert.Equal(t, "a.md", result.Candidates[0].DocumentID)
}

func TestOrchestratorEmptyCorpus(t *testing.T) {
	o := NewOrchestrator(NewKeywordScorer(SimpleScorerConfig(), nil), nil, testLogger())

	result := o.Retrieve(context.Background(), "docker", nil, Options{Mode: ModeHybrid})

	assert.True(t, result.EmptyCorpus)
	assert.Empty(t, result.Candidates)
	assert.NotNil(t, result.Candidates, "empty result must still be a valid slice")
}

func TestOrchestratorEmptyQuery(t *testing.T) {
	o := NewOrchestrator(NewKeywordScorer(SimpleScorerConfig(), nil), nil, testLogger())

	result := o.Retrieve(context.Background(), "   ", testDocs(), Options{Mode: ModeKeyword})

	assert.False(t, result.EmptyCorpus)
	assert.Empty(t, result.Candidates)
}

func TestOrchestratorHybridFusion(t *testing.T) {
	scorer := NewKeywordScorer(SimpleScorerConfig(), nil)
	vector := &fakeVectorRetriever{
		results: []VectorResult{
			{DocumentID: "c.md", Content: "semantic hit", Score: 0.95},
		},
	}
	o := NewOrchestrator(scorer, vector, testLogger())

	result := o.Retrieve(context.Background(), "docker", testDocs(), Options{
		Mode:         ModeHybrid,
		Limit:        5,
		HybridWeight: 0.7,
	})

	assert.Equal(t, ModeHybrid, result.ModeUsed)
	assert.Equal(t, 1, vector.calls)
	assert.Equal(t, 1, result.VectorCount)
	assert.True(t, result.KeywordCount >= 1)

	found := false
	for _, c := range result.Candidates {
		if c.DocumentID == "c.md" {
			found = true
			assert.Equal(t, SourceVector, c.Source)
		}
	}
	assert.True(t, found, "vector result missing from fused list")
}

func TestOrchestratorVectorFailureFallsBack(t *testing.T) {
	scorer := NewKeywordScorer(SimpleScorerConfig(), nil)
	vector := &fakeVectorRetriever{err: errors.New("connection refused")}
	o := NewOrchestrator(scorer, vector, testLogger())

	for _, mode := range []Mode{ModeVector, ModeHybrid} {
		result := o.Retrieve(context.Background(), "docker", testDocs(), Options{Mode: mode, Limit: 5})

		assert.Equal(t, ModeFallback, result.ModeUsed, "mode %s", mode)
		assert.Equal(t, mode, result.Mode, "requested mode is preserved")
		assert.NotEmpty(t, result.Candidates, "fallback must still return keyword results")
		assert.Equal(t, 0, result.VectorCount)
	}
}

func TestOrchestratorNilVectorBackend(t *testing.T) {
	o := NewOrchestrator(NewKeywordScorer(SimpleScorerConfig(), nil), nil, testLogger())

	result := o.Retrieve(context.Background(), "docker", testDocs(), Options{Mode: ModeVector, Limit: 5})

	assert.Equal(t, ModeFallback, result.ModeUsed)
	assert.NotEmpty(t, result.Candidates)
}

func TestOrchestratorDeterministic(t *testing.T) {
	scorer := NewKeywordScorer(RichScorerConfig(), nil)
	o := NewOrchestrator(scorer, nil, testLogger())

	first := o.Retrieve(context.Background(), "docker restart", testDocs(), Options{Mode: ModeKeyword, Limit: 5})

	for i := 0; i < 10; i++ {
		again := o.Retrieve(context.Background(), "docker restart", testDocs(), Options{Mode: ModeKeyword, Limit: 5})
		require.Equal(t, len(first.Candidates), len(again.Candidates))
		for j := range first.Candidates {
			assert.Equal(t, first.Candidates[j].DocumentID, again.Candidates[j].DocumentID)
			assert.Equal(t, first.Candidates[j].Score, again.Candidates[j].Score)
		}
	}
}

func TestOrchestratorLimitDefaults(t *testing.T) {
	scorer := NewKeywordScorer(SimpleScorerConfig(), nil)
	o := NewOrchestrator(scorer, nil, testLogger())

	var docs []corpus.Document
	for i := 0; i < 20; i++ {
		docs = append(docs, corpus.Document{
			ID:         string(rune('a'+i)) + ".md",
			Filename:   string(rune('a'+i)) + ".md",
			FolderPath: corpus.RootFolder,
			Content:    "# Docker\ndocker notes",
		})
	}

	result := o.Retrieve(context.Background(), "docker", docs, Options{})
	assert.Len(t, result.Candidates, defaultLimit)
	assert.Equal(t, ModeKeyword, result.ModeUsed)
}
