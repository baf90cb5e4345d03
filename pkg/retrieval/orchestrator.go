package retrieval

import (
	"context"
	"log"
	"strings"
	"time"

	"kb-assist-be/pkg/corpus"
)

// Options controls one retrieval call
type Options struct {
	Mode                Mode
	Limit               int
	SimilarityThreshold float64
	HybridWeight        float64
}

const defaultLimit = 5

// Orchestrator routes a query through the keyword scorer and the vector
// backend according to the requested mode, fuses the results, and
// reports which mode actually ran. It owns the fallback decision: a
// failing or absent vector backend downgrades the call to keyword
// search instead of surfacing an error.
type Orchestrator struct {
	scorer *KeywordScorer
	vector VectorRetriever
	logger *log.Logger
}

// NewOrchestrator builds an orchestrator. vector may be nil when no
// embedding backend is configured; vector and hybrid requests then fall
// back to keyword search.
func NewOrchestrator(scorer *KeywordScorer, vector VectorRetriever, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		scorer: scorer,
		vector: vector,
		logger: logger,
	}
}

// Retrieve runs one retrieval pass over the given corpus snapshot.
// Empty corpus and empty query are defined outcomes that return an
// empty result set, never an error.
func (o *Orchestrator) Retrieve(ctx context.Context, query string, documents []corpus.Document, opts Options) ResultSet {
	start := time.Now()

	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Mode == "" {
		opts.Mode = ModeKeyword
	}
	if opts.HybridWeight <= 0 || opts.HybridWeight > 1 {
		opts.HybridWeight = DefaultHybridWeight
	}

	result := ResultSet{
		Query: query,
		Mode:  opts.Mode,
	}

	if len(documents) == 0 {
		result.EmptyCorpus = true
		result.ModeUsed = opts.Mode
		result.Candidates = []Candidate{}
		result.SearchTimeMs = time.Since(start).Milliseconds()
		return result
	}
	if strings.TrimSpace(query) == "" {
		result.ModeUsed = opts.Mode
		result.Candidates = []Candidate{}
		result.SearchTimeMs = time.Since(start).Milliseconds()
		return result
	}

	var keyword, vector []Candidate
	modeUsed := opts.Mode
	weight := opts.HybridWeight

	switch opts.Mode {
	case ModeVector:
		vector = o.retrieveVector(ctx, query, opts)
		if vector == nil {
			keyword = o.scorer.Search(query, documents)
			modeUsed = ModeFallback
			weight = 0
		} else {
			weight = 1
		}
	case ModeHybrid:
		// Over-fetch per branch so dedup and fusion still fill the
		// final window.
		overfetch := opts.Limit * 2
		keyword = topByScore(o.scorer.Search(query, documents), overfetch)
		vector = o.retrieveVector(ctx, query, Options{
			Limit:               overfetch,
			SimilarityThreshold: opts.SimilarityThreshold,
		})
		if vector == nil {
			modeUsed = ModeFallback
			weight = 0
		}
	default:
		keyword = o.scorer.Search(query, documents)
		weight = 0
	}

	result.ModeUsed = modeUsed
	result.KeywordCount = len(keyword)
	result.VectorCount = len(vector)
	result.Candidates = Merge(keyword, vector, opts.Limit, weight)
	if result.Candidates == nil {
		result.Candidates = []Candidate{}
	}
	result.SearchTimeMs = time.Since(start).Milliseconds()
	return result
}

// retrieveVector queries the vector backend, converting its results to
// candidates. Any failure (or no backend at all) returns nil, which the
// caller treats as "fall back to keyword".
func (o *Orchestrator) retrieveVector(ctx context.Context, query string, opts Options) []Candidate {
	if o.vector == nil {
		return nil
	}

	results, err := o.vector.Retrieve(ctx, query, opts.Limit, opts.SimilarityThreshold)
	if err != nil {
		o.logger.Printf("[WARN] Vector backend unavailable, falling back to keyword search: %v", err)
		return nil
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		c := Candidate{
			DocumentID: r.DocumentID,
			Filename:   r.DocumentID,
			Content:    r.Content,
			Score:      r.Score,
			Relevance:  roundPct(r.Score * 100),
			Source:     SourceVector,
		}
		if meta, ok := r.Metadata["folder_path"].(string); ok {
			c.FolderPath = meta
		}
		if header, ok := r.Metadata["header"].(string); ok {
			c.Header = header
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// topByScore keeps the n highest-scoring candidates without disturbing
// relative order among equals.
func topByScore(candidates []Candidate, n int) []Candidate {
	if n <= 0 || len(candidates) <= n {
		return candidates
	}
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sortCandidatesByScore(sorted)
	return sorted[:n]
}
