package service

import (
	"fmt"
	"time"

	"lingualift/internal/domain"
	"lingualift/internal/repository"

	"go.uber.org/zap"
)

// LedgerService awards XP from the fixed tariff and serves progress
// reads. It is the only component that touches the account write path.
type LedgerService struct {
	accounts repository.AccountRepository
	logger   *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(accounts repository.AccountRepository, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		accounts: accounts,
		logger:   logger,
	}
}

// ProgressSnapshot is the read-only view served to dashboards.
type ProgressSnapshot struct {
	TotalXP         int64
	MonthlyXP       int64
	StreakCount     int
	EffectiveStreak int
	IsPremium       bool
}

// Award applies the reward mapped to reason. Reasons outside the
// tariff are rejected; an arbitrary amount is not accepted anywhere on
// this path.
func (s *LedgerService) Award(userID int64, reason domain.RewardReason) (*domain.AwardResult, error) {
	amount, ok := reason.Amount()
	if !ok {
		return nil, fmt.Errorf("%w: unknown reward reason %q", domain.ErrValidation, reason)
	}

	result, err := s.accounts.AwardXP(userID, amount, time.Now().UTC())
	if err != nil {
		s.logger.Error("award failed",
			zap.Int64("user_id", userID),
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("xp awarded",
		zap.Int64("user_id", userID),
		zap.String("reason", string(reason)),
		zap.Int("amount", amount),
		zap.Int("streak", result.StreakCount),
	)

	return result, nil
}

// Progress returns the stored counters together with the display
// streak. Never writes: a stale streak shows as 0 here while the
// stored value decays lazily on the next award.
func (s *LedgerService) Progress(userID int64) (*ProgressSnapshot, error) {
	acc, err := s.accounts.GetAccount(userID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("%w: account %d", domain.ErrNotFound, userID)
	}

	return &ProgressSnapshot{
		TotalXP:         acc.TotalXP,
		MonthlyXP:       acc.MonthlyXP,
		StreakCount:     acc.StreakCount,
		EffectiveStreak: domain.EffectiveStreak(acc.StreakCount, acc.LastActiveDate, acc.IsPremium, time.Now().UTC()),
		IsPremium:       acc.IsPremium,
	}, nil
}
