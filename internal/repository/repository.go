package repository

import (
	"time"

	"lingualift/internal/domain"
)

// ItemRepository defines learning item persistence.
type ItemRepository interface {
	CreateItem(ownerID int64, variants []string, now time.Time) (*domain.LearningItem, error)
	GetItem(itemID int64) (*domain.LearningItem, error)
	UpdateSchedule(item *domain.LearningItem) error
	UpdateVariantIndex(itemID int64, index int) error
	DeleteItem(itemID, ownerID int64) error
	ListDue(ownerID int64, now time.Time, limit int) ([]domain.LearningItem, error)
}

// AccountRepository defines progress account persistence. AwardXP must
// apply the XP counters, the monthly rollover and the streak update as
// one atomic transaction: no partial write may ever be observable.
type AccountRepository interface {
	CreateAccount(userID int64, premium bool, now time.Time) error
	GetAccount(userID int64) (*domain.ProgressAccount, error)
	AwardXP(userID int64, amount int, now time.Time) (*domain.AwardResult, error)
}
