// Package srs implements the spaced-repetition scheduling rules for
// learning items.
package srs

import (
	"fmt"
	"math"
	"time"

	"lingualift/internal/domain"
)

// Scheduling constants. Ease is clamped to [EaseMin, EaseMax] for every
// reachable review sequence.
const (
	InitialIntervalMs = 900_000 // 15 minutes
	EaseMin           = 1.3
	EaseMax           = 3.0
	EaseStepUp        = 0.1
	EaseStepDown      = 0.2
)

// Outcome is the result of a single review.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ParseOutcome validates a client-supplied outcome string.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeSuccess, OutcomeFailure:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("%w: unknown outcome %q", domain.ErrValidation, s)
}

// Review computes the item's next schedule from a review outcome.
// Pure: the caller persists the returned item.
func Review(item domain.LearningItem, outcome Outcome, now time.Time) (domain.LearningItem, error) {
	switch outcome {
	case OutcomeSuccess:
		if item.CurrentIntervalMs > 0 {
			item.CurrentIntervalMs = int64(math.Round(float64(item.CurrentIntervalMs) * item.EaseFactor))
		} else {
			item.CurrentIntervalMs = InitialIntervalMs
		}
		item.EaseFactor = math.Min(item.EaseFactor+EaseStepUp, EaseMax)
		item.ConsecutiveCorrect++
		item.NextReviewAt = now.Add(time.Duration(item.CurrentIntervalMs) * time.Millisecond)
	case OutcomeFailure:
		// A failed item is immediately due again.
		item.CurrentIntervalMs = 0
		item.EaseFactor = math.Max(item.EaseFactor-EaseStepDown, EaseMin)
		item.ConsecutiveCorrect = 0
		item.NextReviewAt = now
	default:
		return item, fmt.Errorf("%w: unknown outcome %q", domain.ErrValidation, outcome)
	}

	reviewed := now
	item.LastReviewedAt = &reviewed
	return item, nil
}

// Rotate advances the item's context-sentence pointer. It touches no
// scheduling field.
func Rotate(item domain.LearningItem) (domain.LearningItem, error) {
	if len(item.Variants) == 0 {
		return item, fmt.Errorf("%w: item has no variants", domain.ErrValidation)
	}
	item.CurrentVariantIndex = (item.CurrentVariantIndex + 1) % len(item.Variants)
	return item, nil
}
