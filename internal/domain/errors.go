package domain

import "errors"

var (
	// ErrNotFound covers both genuinely missing records and records
	// owned by another user, so existence is never leaked.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input: empty variant lists, unknown
	// outcomes, reasons outside the reward tariff.
	ErrValidation = errors.New("validation failed")

	// ErrLedgerContention is returned when an award transaction could
	// not be serialized within the retry budget. Callers may retry.
	ErrLedgerContention = errors.New("ledger contention")
)
