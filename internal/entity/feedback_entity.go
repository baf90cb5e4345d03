package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackEntry is one user judgement on a generated answer
type FeedbackEntry struct {
	Id        uuid.UUID
	Query     string
	Answer    string
	Rating    int    // 1 (worst) to 5 (best)
	Type      string // thumbs_up, thumbs_down or neutral
	Comment   string
	CreatedAt time.Time
}
