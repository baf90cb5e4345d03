package retrieval

import "context"

// SourceKind tags which signal produced a candidate
type SourceKind string

const (
	SourceKeyword SourceKind = "keyword"
	SourceVector  SourceKind = "vector"
)

// Mode selects the retrieval strategy for a query
type Mode string

const (
	ModeKeyword Mode = "keyword"
	ModeVector  Mode = "vector"
	ModeHybrid  Mode = "hybrid"
	// ModeFallback is reported when a vector/hybrid request was
	// transparently downgraded to keyword search.
	ModeFallback Mode = "fallback"
)

// Candidate is one scored passage produced for a query. Transient per
// query, never persisted.
type Candidate struct {
	DocumentID string     `json:"document_id"`
	Filename   string     `json:"filename"`
	FolderPath string     `json:"folder_path"`
	Header     string     `json:"header"`
	Content    string     `json:"content"`
	Score      float64    `json:"score"`     // raw signal score
	Relevance  float64    `json:"relevance"` // display percentage, not a ranking input
	Source     SourceKind `json:"source_type"`
	Combined   float64    `json:"combined_score"`
}

// ResultSet is the ranked, deduplicated answer to one retrieval call
type ResultSet struct {
	Query        string      `json:"query"`
	Mode         Mode        `json:"search_mode"` // requested mode
	ModeUsed     Mode        `json:"mode_used"`   // mode actually executed
	Candidates   []Candidate `json:"results"`
	SearchTimeMs int64       `json:"search_time_ms"`
	KeywordCount int         `json:"keyword_results"`
	VectorCount  int         `json:"vector_results"`
	EmptyCorpus  bool        `json:"empty_corpus,omitempty"`
}

// VectorResult is one passage returned by the vector backend. Scores
// are comparable within one call; higher is better.
type VectorResult struct {
	DocumentID string
	Content    string
	Score      float64
	Metadata   map[string]interface{}
}

// VectorRetriever is the contract the external embedding/index backend
// must satisfy. The core does not care how it is implemented.
type VectorRetriever interface {
	Retrieve(ctx context.Context, query string, topK int, similarityThreshold float64) ([]VectorResult, error)
}
