package retrieval

import (
	"math"
	"strings"

	"kb-assist-be/pkg/corpus"
	"kb-assist-be/pkg/markdown"
)

// ScorerConfig holds the bonus constants for keyword scoring. The
// magnitudes are tunables; the ordering contracts (header beats a
// single body token, filename beats folder, exact folder match beats
// partial) must hold for any configuration.
type ScorerConfig struct {
	HeaderBonus      float64
	FilenameBonus    float64
	FolderBonus      float64
	ExactFolderBonus float64
	// LengthBonusCap caps the body-word-count bonus; zero disables it.
	LengthBonusCap float64
}

// SimpleScorerConfig matches plain section search: header bonus only
func SimpleScorerConfig() ScorerConfig {
	return ScorerConfig{
		HeaderBonus: 2,
	}
}

// RichScorerConfig also rewards filename/folder matches and more
// substantive sections
func RichScorerConfig() ScorerConfig {
	return ScorerConfig{
		HeaderBonus:      5,
		FilenameBonus:    10,
		FolderBonus:      8,
		ExactFolderBonus: 15,
		LengthBonusCap:   3,
	}
}

// ScoreAdjuster perturbs a raw section score, typically with learned
// feedback patterns. A nil adjuster leaves scores unchanged.
type ScoreAdjuster func(score float64, query string, sectionBody string) float64

// KeywordScorer computes word-overlap relevance for (query, section)
// pairs with header, filename, and folder bonuses.
type KeywordScorer struct {
	cfg      ScorerConfig
	adjuster ScoreAdjuster
}

// NewKeywordScorer creates a scorer with the given bonus configuration
func NewKeywordScorer(cfg ScorerConfig, adjuster ScoreAdjuster) *KeywordScorer {
	return &KeywordScorer{
		cfg:      cfg,
		adjuster: adjuster,
	}
}

// Search scores every section of every document against the query and
// returns all candidates with a positive score, unsorted. An empty
// query (zero tokens) yields no candidates; that is a defined outcome,
// not an error.
func (s *KeywordScorer) Search(query string, documents []corpus.Document) []Candidate {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}
	queryLower := strings.ToLower(strings.TrimSpace(query))

	var candidates []Candidate
	for i := range documents {
		doc := &documents[i]
		docBonus := s.documentBonus(queryTokens, queryLower, doc)

		for _, section := range markdown.SplitSections(doc.Content) {
			score := s.scoreSection(queryTokens, section, docBonus)
			if s.adjuster != nil {
				score = s.adjuster(score, query, section.Content)
			}
			if score <= 0 {
				continue
			}

			candidates = append(candidates, Candidate{
				DocumentID: doc.ID,
				Filename:   doc.ID,
				FolderPath: doc.FolderPath,
				Header:     section.Header,
				Content:    section.Content,
				Score:      score,
				Relevance:  relevancePct(score, len(queryTokens)),
				Source:     SourceKeyword,
			})
		}
	}

	return candidates
}

// documentBonus computes the filename/folder contribution shared by
// every section of a document.
func (s *KeywordScorer) documentBonus(queryTokens map[string]struct{}, queryLower string, doc *corpus.Document) float64 {
	bonus := 0.0
	filenameLower := strings.ToLower(doc.Filename)
	folderLower := strings.ToLower(doc.FolderPath)

	if anyTokenIn(queryTokens, filenameLower) {
		bonus += s.cfg.FilenameBonus
	}
	if anyTokenIn(queryTokens, folderLower) {
		bonus += s.cfg.FolderBonus
	}
	// Exact-category queries ("show me my QA notes") deserve a larger
	// reward when the whole query and folder name subsume each other.
	if s.cfg.ExactFolderBonus > 0 && queryLower != "" && folderLower != corpus.RootFolder {
		if strings.Contains(folderLower, queryLower) || strings.Contains(queryLower, folderLower) {
			bonus += s.cfg.ExactFolderBonus
		}
	}
	return bonus
}

func (s *KeywordScorer) scoreSection(queryTokens map[string]struct{}, section markdown.Section, docBonus float64) float64 {
	searchText := strings.ToLower(section.Header + " " + section.Content)
	sectionTokens := tokenize(searchText)

	score := 0.0
	for token := range queryTokens {
		if _, ok := sectionTokens[token]; ok {
			score++
		}
	}

	if anyTokenIn(queryTokens, strings.ToLower(section.Header)) {
		score += s.cfg.HeaderBonus
	}

	score += docBonus

	// Length rewards substance, it never creates a match on its own.
	if s.cfg.LengthBonusCap > 0 && score > 0 {
		words := float64(len(strings.Fields(section.Content)))
		score += math.Min(words/100, s.cfg.LengthBonusCap)
	}

	return score
}

// relevancePct converts a raw score into the display percentage. The
// +2 denominator offset keeps header/content bonuses from pushing the
// percentage past 100.
func relevancePct(score float64, queryTokenCount int) float64 {
	pct := score / float64(queryTokenCount+2) * 100
	return math.Round(pct*100) / 100
}

func tokenize(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}

func anyTokenIn(tokens map[string]struct{}, text string) bool {
	for token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
