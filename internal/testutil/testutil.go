package testutil

import (
	"time"

	"lingualift/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestItem creates a learning item in its initial scheduling state
func NewTestItem(id, ownerID int64, variants ...string) *domain.LearningItem {
	now := time.Now().UTC()
	return &domain.LearningItem{
		ID:           id,
		OwnerID:      ownerID,
		Variants:     variants,
		EaseFactor:   domain.DefaultEaseFactor,
		NextReviewAt: now,
		CreatedAt:    now,
	}
}

// NewTestAccount creates a progress account
func NewTestAccount(userID int64, streak int, lastActive *time.Time, premium bool) *domain.ProgressAccount {
	return &domain.ProgressAccount{
		UserID:           userID,
		MonthlyXPResetAt: time.Now().UTC(),
		StreakCount:      streak,
		LastActiveDate:   lastActive,
		IsPremium:        premium,
	}
}
