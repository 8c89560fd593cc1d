package postgres

import (
	"database/sql"
	"time"

	"lingualift/internal/domain"

	"github.com/lib/pq"
)

// ItemRepo implements repository.ItemRepository.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo creates a new learning item repository
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// CreateItem inserts a fresh item with default scheduling state:
// due immediately, default ease, zero interval.
func (r *ItemRepo) CreateItem(ownerID int64, variants []string, now time.Time) (*domain.LearningItem, error) {
	item := &domain.LearningItem{
		OwnerID:      ownerID,
		Variants:     variants,
		EaseFactor:   domain.DefaultEaseFactor,
		NextReviewAt: now,
		CreatedAt:    now,
	}

	query := `
		INSERT INTO learning_items (owner_id, variants, ease_factor, next_review_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(query, ownerID, pq.Array(variants), domain.DefaultEaseFactor, now, now).Scan(&item.ID)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetItem returns the item, or nil if it does not exist.
func (r *ItemRepo) GetItem(itemID int64) (*domain.LearningItem, error) {
	query := `
		SELECT id, owner_id, variants, current_variant_index, ease_factor,
			current_interval_ms, consecutive_correct, last_reviewed_at,
			next_review_at, created_at
		FROM learning_items
		WHERE id = $1
	`

	var item domain.LearningItem
	var variants pq.StringArray
	var lastReviewed sql.NullTime
	err := r.db.QueryRow(query, itemID).Scan(
		&item.ID, &item.OwnerID, &variants, &item.CurrentVariantIndex,
		&item.EaseFactor, &item.CurrentIntervalMs, &item.ConsecutiveCorrect,
		&lastReviewed, &item.NextReviewAt, &item.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	item.Variants = variants
	if lastReviewed.Valid {
		item.LastReviewedAt = &lastReviewed.Time
	}

	return &item, nil
}

// UpdateSchedule persists the scheduling fields computed by a review.
func (r *ItemRepo) UpdateSchedule(item *domain.LearningItem) error {
	query := `
		UPDATE learning_items
		SET ease_factor = $2, current_interval_ms = $3, consecutive_correct = $4,
			last_reviewed_at = $5, next_review_at = $6
		WHERE id = $1
	`
	_, err := r.db.Exec(query, item.ID, item.EaseFactor, item.CurrentIntervalMs,
		item.ConsecutiveCorrect, item.LastReviewedAt, item.NextReviewAt)
	return err
}

// UpdateVariantIndex persists the rotation pointer only.
func (r *ItemRepo) UpdateVariantIndex(itemID int64, index int) error {
	query := `
		UPDATE learning_items
		SET current_variant_index = $2
		WHERE id = $1
	`
	_, err := r.db.Exec(query, itemID, index)
	return err
}

// DeleteItem removes the item if the caller owns it. A missing or
// foreign item both report not found.
func (r *ItemRepo) DeleteItem(itemID, ownerID int64) error {
	query := `
		DELETE FROM learning_items
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.Exec(query, itemID, ownerID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ListDue returns the owner's items due for review, most overdue first.
func (r *ItemRepo) ListDue(ownerID int64, now time.Time, limit int) ([]domain.LearningItem, error) {
	query := `
		SELECT id, owner_id, variants, current_variant_index, ease_factor,
			current_interval_ms, consecutive_correct, last_reviewed_at,
			next_review_at, created_at
		FROM learning_items
		WHERE owner_id = $1 AND next_review_at <= $2
		ORDER BY next_review_at ASC
		LIMIT $3
	`

	rows, err := r.db.Query(query, ownerID, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LearningItem
	for rows.Next() {
		var item domain.LearningItem
		var variants pq.StringArray
		var lastReviewed sql.NullTime
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &variants, &item.CurrentVariantIndex,
			&item.EaseFactor, &item.CurrentIntervalMs, &item.ConsecutiveCorrect,
			&lastReviewed, &item.NextReviewAt, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Variants = variants
		if lastReviewed.Valid {
			item.LastReviewedAt = &lastReviewed.Time
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
