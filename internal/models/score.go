package models

import "time"

// Score represents one leaderboard entry.
type Score struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	Nickname string `gorm:"type:text;not null" json:"nickname"` // Player name, 2-20 chars.
	Score    int64  `gorm:"not null" json:"score"`              // Points, never negative.
	Time     string `gorm:"type:text;not null" json:"time"`     // Run duration in MM:SS.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"` // Creation timestamp.

	// CreatedByID is a weak reference to the admin who authored the entry.
	// It is lookup-only: deleting or disabling an admin never touches scores.
	CreatedByID *uint64 `gorm:"index" json:"createdBy,omitempty"`
}
