package domain

import "time"

// DefaultEaseFactor is the ease a learning item starts with.
const DefaultEaseFactor = 2.5

// LearningItem is one flashcard-like unit owned by a single user.
// Scheduling fields are mutated only by review outcomes; the variant
// pointer is independent of scheduling.
type LearningItem struct {
	ID                  int64
	OwnerID             int64
	Variants            []string
	CurrentVariantIndex int
	EaseFactor          float64
	CurrentIntervalMs   int64
	ConsecutiveCorrect  int
	LastReviewedAt      *time.Time
	NextReviewAt        time.Time
	CreatedAt           time.Time
}
