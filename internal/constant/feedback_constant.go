package constant

// Rating thresholds for pattern learning. Ratings in between are
// treated as neutral and contribute nothing.
const (
	ReinforceRatingMin = 4
	SuppressRatingMax  = 2
)

// MinPatternSupport is how many agreeing feedback entries a category
// needs before it produces a scoring pattern.
const MinPatternSupport = 3

// PatternSampleLimit caps how many recent entries a rebuild reads.
const PatternSampleLimit = 500
