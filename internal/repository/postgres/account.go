package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingualift/internal/domain"

	"github.com/lib/pq"
)

// maxAwardAttempts bounds how often an award transaction is retried on
// serialization failure before it surfaces as contention.
const maxAwardAttempts = 3

// AccountRepo implements repository.AccountRepository.
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo creates a new progress account repository
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// CreateAccount provisions an empty progress account.
func (r *AccountRepo) CreateAccount(userID int64, premium bool, now time.Time) error {
	query := `
		INSERT INTO progress_accounts (user_id, is_premium, monthly_xp_reset_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID, premium, now)
	return err
}

// GetAccount returns the account, or nil if it does not exist.
func (r *AccountRepo) GetAccount(userID int64) (*domain.ProgressAccount, error) {
	query := `
		SELECT user_id, total_xp, monthly_xp, monthly_xp_reset_at,
			streak_count, last_active_date, is_premium
		FROM progress_accounts
		WHERE user_id = $1
	`

	var acc domain.ProgressAccount
	var lastActive sql.NullTime
	err := r.db.QueryRow(query, userID).Scan(
		&acc.UserID, &acc.TotalXP, &acc.MonthlyXP, &acc.MonthlyXPResetAt,
		&acc.StreakCount, &lastActive, &acc.IsPremium,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastActive.Valid {
		acc.LastActiveDate = &lastActive.Time
	}

	return &acc, nil
}

// AwardXP applies one reward atomically: XP counters via in-database
// increments, monthly rollover, and the streak continuity rule, all in
// a single serializable transaction. Serialization failures are retried
// up to maxAwardAttempts before surfacing as ErrLedgerContention.
func (r *AccountRepo) AwardXP(userID int64, amount int, now time.Time) (*domain.AwardResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxAwardAttempts; attempt++ {
		result, err := r.awardOnce(userID, amount, now)
		if err == nil {
			return result, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrLedgerContention, lastErr)
}

func (r *AccountRepo) awardOnce(userID int64, amount int, now time.Time) (*domain.AwardResult, error) {
	tx, err := r.db.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var (
		streakCount int
		lastActive  sql.NullTime
		resetAt     time.Time
		premium     bool
	)
	query := `
		SELECT streak_count, last_active_date, monthly_xp_reset_at, is_premium
		FROM progress_accounts
		WHERE user_id = $1
		FOR UPDATE
	`
	err = tx.QueryRow(query, userID).Scan(&streakCount, &lastActive, &resetAt, &premium)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: account %d", domain.ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}

	var lastActiveDate *time.Time
	if lastActive.Valid {
		lastActiveDate = &lastActive.Time
	}
	newStreak := domain.NextStreak(streakCount, lastActiveDate, premium, now)

	var update string
	if domain.SameMonth(resetAt, now) {
		update = `
			UPDATE progress_accounts
			SET total_xp = total_xp + $2, monthly_xp = monthly_xp + $2,
				streak_count = $3, last_active_date = $4
			WHERE user_id = $1
			RETURNING total_xp
		`
	} else {
		// First award of a new calendar month: reseed instead of increment.
		update = `
			UPDATE progress_accounts
			SET total_xp = total_xp + $2, monthly_xp = $2, monthly_xp_reset_at = $4,
				streak_count = $3, last_active_date = $4
			WHERE user_id = $1
			RETURNING total_xp
		`
	}

	result := domain.AwardResult{StreakCount: newStreak}
	if err := tx.QueryRow(update, userID, amount, newStreak, now).Scan(&result.TotalXP); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &result, nil
}

// retryable reports whether the error is a PostgreSQL serialization or
// deadlock failure worth retrying.
func retryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
