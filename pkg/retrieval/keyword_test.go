package retrieval

import (
	"math"
	"testing"

	"kb-assist-be/pkg/corpus"
)

func doc(id, folder, content string) corpus.Document {
	filename := id
	if idx := lastSlash(id); idx >= 0 {
		filename = id[idx+1:]
	}
	return corpus.Document{
		ID:         id,
		Filename:   filename,
		FolderPath: folder,
		Content:    content,
	}
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func findCandidate(t *testing.T, candidates []Candidate, documentID string) Candidate {
	t.Helper()
	for _, c := range candidates {
		if c.DocumentID == documentID {
			return c
		}
	}
	t.Fatalf("candidate for %s not found", documentID)
	return Candidate{}
}

func TestKeywordScorerEmptyQuery(t *testing.T) {
	scorer := NewKeywordScorer(SimpleScorerConfig(), nil)
	docs := []corpus.Document{doc("a.md", corpus.RootFolder, "# Title\nsome body")}

	for _, query := range []string{"", "   ", "\t\n"} {
		if got := scorer.Search(query, docs); got != nil {
			t.Errorf("Search(%q) = %d candidates, want none", query, len(got))
		}
	}
}

func TestKeywordScorerNoMatchDiscarded(t *testing.T) {
	scorer := NewKeywordScorer(SimpleScorerConfig(), nil)
	docs := []corpus.Document{doc("a.md", corpus.RootFolder, "# Cooking\npasta recipe")}

	if got := scorer.Search("kubernetes networking", docs); len(got) != 0 {
		t.Errorf("got %d candidates for unrelated query, want 0", len(got))
	}
}

func TestKeywordScorerHeaderBeatsBody(t *testing.T) {
	scorer := NewKeywordScorer(SimpleScorerConfig(), nil)
	docs := []corpus.Document{
		doc("header.md", corpus.RootFolder, "# Docker\nunrelated text here"),
		doc("body.md", corpus.RootFolder, "# Other\ndocker appears in the body"),
	}

	candidates := scorer.Search("docker", docs)
	headerHit := findCandidate(t, candidates, "header.md")
	bodyHit := findCandidate(t, candidates, "body.md")

	if headerHit.Score <= bodyHit.Score {
		t.Errorf("header match score %.2f should beat body match score %.2f", headerHit.Score, bodyHit.Score)
	}
}

func TestKeywordScorerRelevancePct(t *testing.T) {
	scorer := NewKeywordScorer(SimpleScorerConfig(), nil)
	docs := []corpus.Document{
		doc("a.md", corpus.RootFolder, "# Docker\nrestart the container"),
	}

	// One query token matching both header and body: 1 (token) + 2
	// (header bonus) over denominator 1+2 is exactly 100%.
	candidates := scorer.Search("docker", docs)
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].Relevance != 100 {
		t.Errorf("Relevance = %.2f, want 100", candidates[0].Relevance)
	}
	if candidates[0].Source != SourceKeyword {
		t.Errorf("Source = %q, want %q", candidates[0].Source, SourceKeyword)
	}
}

func TestKeywordScorerRichBonuses(t *testing.T) {
	scorer := NewKeywordScorer(RichScorerConfig(), nil)
	docs := []corpus.Document{
		doc("projects/medscribe.md", "projects", "# Deployment\nrelease steps for the service"),
		doc("misc/other.md", "misc", "# Deployment\nrelease steps for the service"),
	}

	candidates := scorer.Search("medscribe deployment", docs)
	filenameHit := findCandidate(t, candidates, "projects/medscribe.md")
	plain := findCandidate(t, candidates, "misc/other.md")

	if filenameHit.Score <= plain.Score {
		t.Errorf("filename match %.2f should outrank plain section %.2f", filenameHit.Score, plain.Score)
	}
	// The gap is dominated by the filename bonus.
	if diff := filenameHit.Score - plain.Score; math.Abs(diff-10) > 0.01 {
		t.Errorf("score gap = %.2f, want 10", diff)
	}
}

func TestKeywordScorerFolderBonuses(t *testing.T) {
	scorer := NewKeywordScorer(RichScorerConfig(), nil)
	docs := []corpus.Document{
		doc("recipes/pasta.md", "recipes", "# Carbonara\negg and cheese"),
		doc("notes/pasta-ideas.md", "notes", "# Carbonara\negg and cheese"),
	}

	// "recipes" appears verbatim as the folder: both the token bonus
	// and the exact-match bonus apply.
	candidates := scorer.Search("recipes", docs)
	folderHit := findCandidate(t, candidates, "recipes/pasta.md")

	for _, c := range candidates {
		if c.DocumentID == "notes/pasta-ideas.md" {
			t.Fatalf("unrelated folder should not match at all")
		}
	}
	if folderHit.Score < 23 {
		t.Errorf("folder + exact bonuses = %.2f, want >= 23", folderHit.Score)
	}
}

func TestKeywordScorerAdjusterHook(t *testing.T) {
	zeroed := NewKeywordScorer(SimpleScorerConfig(), func(score float64, query, body string) float64 {
		return 0
	})
	docs := []corpus.Document{doc("a.md", corpus.RootFolder, "# Docker\nrestart it")}

	if got := zeroed.Search("docker", docs); len(got) != 0 {
		t.Errorf("adjuster zeroed scores but %d candidates survived", len(got))
	}

	boosted := NewKeywordScorer(SimpleScorerConfig(), func(score float64, query, body string) float64 {
		return score + 5
	})
	candidates := boosted.Search("docker", docs)
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].Score != 8 { // 1 token + 2 header + 5 boost
		t.Errorf("Score = %.2f, want 8", candidates[0].Score)
	}
}

func TestKeywordScorerLengthBonusRichOnly(t *testing.T) {
	longBody := "# Topic\n"
	for i := 0; i < 400; i++ {
		longBody += "word "
	}

	docs := []corpus.Document{doc("a.md", corpus.RootFolder, longBody)}

	simple := NewKeywordScorer(SimpleScorerConfig(), nil).Search("topic", docs)
	rich := NewKeywordScorer(RichScorerConfig(), nil).Search("topic", docs)

	if len(simple) != 1 || len(rich) != 1 {
		t.Fatalf("expected one candidate each, got %d and %d", len(simple), len(rich))
	}

	// Simple: 1 token + 2 header. Rich: 1 token + 5 header + capped
	// length bonus of 3.
	if simple[0].Score != 3 {
		t.Errorf("simple Score = %.2f, want 3", simple[0].Score)
	}
	if rich[0].Score != 9 {
		t.Errorf("rich Score = %.2f, want 9", rich[0].Score)
	}
}
