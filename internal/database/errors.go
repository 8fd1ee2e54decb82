package database

import "errors"

var (
	// ErrNotFound is returned for operations against a missing id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateCode is returned when a promo code's uniqueness constraint
	// is violated.
	ErrDuplicateCode = errors.New("promo code already exists")

	// ErrPromoNotUsable is returned when an atomic redeem finds the code
	// inactive, expired, or at its usage limit.
	ErrPromoNotUsable = errors.New("promo code is not usable")

	// ErrInvalidTransition is returned when a booking status update does not
	// match the expected current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)
