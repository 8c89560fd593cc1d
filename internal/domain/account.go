package domain

import "time"

// ProgressAccount tracks a user's XP totals and daily streak. TotalXP
// never decreases; MonthlyXP is reseeded on the first award of a new
// calendar month.
type ProgressAccount struct {
	UserID           int64
	TotalXP          int64
	MonthlyXP        int64
	MonthlyXPResetAt time.Time
	StreakCount      int
	LastActiveDate   *time.Time
	IsPremium        bool
}

// AwardResult is what the ledger reports back after a successful award.
type AwardResult struct {
	TotalXP     int64
	StreakCount int
}
