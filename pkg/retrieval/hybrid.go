package retrieval

import (
	"math"
	"sort"
)

// DefaultHybridWeight is the share of the combined score given to the
// vector signal when fusing result lists.
const DefaultHybridWeight = 0.7

// Merge fuses keyword and vector candidate lists into one ranked list.
// Keyword candidates contribute rawScore*(1-weight), vector candidates
// similarity*weight. Duplicates (same DocumentID) keep the entry with
// the higher combined score; on an exact tie the earlier entry stays,
// which favors keyword since keyword candidates are concatenated first.
// The fused list is sorted by combined score descending with a stable
// sort, so equal-score candidates keep their concatenation order, and
// truncated to limit.
func Merge(keyword, vector []Candidate, limit int, weight float64) []Candidate {
	merged := make([]Candidate, 0, len(keyword)+len(vector))
	index := make(map[string]int, len(keyword)+len(vector))

	add := func(c Candidate, combined float64) {
		c.Combined = combined
		if pos, ok := index[c.DocumentID]; ok {
			if combined > merged[pos].Combined {
				merged[pos] = c
			}
			return
		}
		index[c.DocumentID] = len(merged)
		merged = append(merged, c)
	}

	for _, c := range keyword {
		add(c, c.Score*(1-weight))
	}
	for _, c := range vector {
		add(c, c.Score*weight)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Combined > merged[j].Combined
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func sortCandidatesByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

func roundPct(pct float64) float64 {
	return math.Round(pct*100) / 100
}
