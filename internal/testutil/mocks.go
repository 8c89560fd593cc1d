package testutil

import (
	"time"

	"lingualift/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock for ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) CreateItem(ownerID int64, variants []string, now time.Time) (*domain.LearningItem, error) {
	args := m.Called(ownerID, variants, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningItem), args.Error(1)
}

func (m *MockItemRepository) GetItem(itemID int64) (*domain.LearningItem, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningItem), args.Error(1)
}

func (m *MockItemRepository) UpdateSchedule(item *domain.LearningItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateVariantIndex(itemID int64, index int) error {
	args := m.Called(itemID, index)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteItem(itemID, ownerID int64) error {
	args := m.Called(itemID, ownerID)
	return args.Error(0)
}

func (m *MockItemRepository) ListDue(ownerID int64, now time.Time, limit int) ([]domain.LearningItem, error) {
	args := m.Called(ownerID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LearningItem), args.Error(1)
}

// MockAccountRepository is a mock for AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(userID int64, premium bool, now time.Time) error {
	args := m.Called(userID, premium, now)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccount(userID int64) (*domain.ProgressAccount, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressAccount), args.Error(1)
}

func (m *MockAccountRepository) AwardXP(userID int64, amount int, now time.Time) (*domain.AwardResult, error) {
	args := m.Called(userID, amount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AwardResult), args.Error(1)
}
