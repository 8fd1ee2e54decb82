package models

import "strings"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// bookingTransitions is the full transition table. pending may be confirmed
// or cancelled; confirmed may be completed or cancelled; completed and
// cancelled are terminal.
var bookingTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValidStatus reports whether s names a booking status at all.
func IsValidStatus(s string) bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransition reports whether a booking may move from one status to
// another. Self-transitions are not allowed.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the valid next statuses from a given one.
func AllowedTransitions(from string) []string {
	return bookingTransitions[from]
}

const (
	// DefaultQuantity is applied when a booking request omits quantity.
	DefaultQuantity = 1

	// PromoDebounceDelayMs is the input-settling delay before a promo code
	// is validated.
	PromoDebounceDelayMs = 500

	// PromoCacheTTL is the read-through cache lifetime for validated promo
	// codes, in seconds.
	PromoCacheTTL = 30

	// CatalogCacheTTL is the in-memory catalog cache lifetime in seconds.
	CatalogCacheTTL = 30 * 60

	// ExportQueueSize bounds the in-memory export task queue.
	ExportQueueSize = 128

	// RateLimitRequests is the default per-client request budget per window.
	RateLimitRequests = 60

	// RateLimitWindow is the rate-limit window in seconds.
	RateLimitWindow = 60
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
