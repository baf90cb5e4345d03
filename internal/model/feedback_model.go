package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Query     string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text"`
	Rating    int       `gorm:"not null;index"`
	Type      string    `gorm:"type:text;default:'neutral';index"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Feedback) TableName() string {
	return "feedback_entries"
}
