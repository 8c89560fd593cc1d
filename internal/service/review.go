package service

import (
	"fmt"
	"time"

	"lingualift/internal/domain"
	"lingualift/internal/repository"
	"lingualift/internal/srs"

	"go.uber.org/zap"
)

// Review listing limits.
const (
	defaultDueLimit = 20
	maxDueLimit     = 100
)

// ReviewService handles learning item scheduling and lifecycle.
type ReviewService struct {
	items  repository.ItemRepository
	logger *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(items repository.ItemRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		items:  items,
		logger: logger,
	}
}

// loadOwned fetches an item and verifies ownership. A foreign item is
// reported as not found so existence never leaks.
func (s *ReviewService) loadOwned(requesterID, itemID int64) (*domain.LearningItem, error) {
	item, err := s.items.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OwnerID != requesterID {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, itemID)
	}
	return item, nil
}

// SubmitReview applies a review outcome and persists the new schedule.
func (s *ReviewService) SubmitReview(requesterID, itemID int64, outcome srs.Outcome) (*domain.LearningItem, error) {
	item, err := s.loadOwned(requesterID, itemID)
	if err != nil {
		return nil, err
	}

	updated, err := srs.Review(*item, outcome, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.items.UpdateSchedule(&updated); err != nil {
		return nil, err
	}

	s.logger.Debug("review applied",
		zap.Int64("item_id", itemID),
		zap.String("outcome", string(outcome)),
		zap.Int64("interval_ms", updated.CurrentIntervalMs),
	)

	return &updated, nil
}

// RotateVariant advances the item's context sentence pointer. This is
// a mutation and is never reachable from a read-only listing.
func (s *ReviewService) RotateVariant(requesterID, itemID int64) (*domain.LearningItem, error) {
	item, err := s.loadOwned(requesterID, itemID)
	if err != nil {
		return nil, err
	}

	updated, err := srs.Rotate(*item)
	if err != nil {
		return nil, err
	}

	if err := s.items.UpdateVariantIndex(itemID, updated.CurrentVariantIndex); err != nil {
		return nil, err
	}

	return &updated, nil
}

// CreateItem creates a new learning item for the owner.
func (s *ReviewService) CreateItem(ownerID int64, variants []string) (*domain.LearningItem, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: at least one variant is required", domain.ErrValidation)
	}
	return s.items.CreateItem(ownerID, variants, time.Now().UTC())
}

// DeleteItem removes an item owned by the requester.
func (s *ReviewService) DeleteItem(requesterID, itemID int64) error {
	return s.items.DeleteItem(itemID, requesterID)
}

// DueItems returns the requester's items due for review.
func (s *ReviewService) DueItems(ownerID int64, limit int) ([]domain.LearningItem, error) {
	if limit <= 0 || limit > maxDueLimit {
		limit = defaultDueLimit
	}
	return s.items.ListDue(ownerID, time.Now().UTC(), limit)
}
