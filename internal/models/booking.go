package models

import "time"

// BookingRequest captures a customer's intent to acquire a card. The card and
// any promo code are copied by value at creation time: later catalog or promo
// edits never alter a past request, and FinalPrice is frozen once computed.
type BookingRequest struct {
	ID              string    `json:"id"`
	CardID          *string   `json:"card_id"` // weak reference, may dangle after card deletion
	CardName        string    `json:"card_name"`
	CardPrice       int64     `json:"card_price"`
	FullName        string    `json:"full_name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Quantity        int64     `json:"quantity"`
	Message         string    `json:"message,omitempty"`
	PromoCode       *string   `json:"promo_code"`
	DiscountPercent *int      `json:"discount_percent"`
	FinalPrice      int64     `json:"final_price"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookingRequestInsert is the validated, normalized input for a new request.
type BookingRequestInsert struct {
	CardID    *string `json:"card_id"`
	CardName  string  `json:"card_name"`
	CardPrice int64   `json:"card_price"`
	FullName  string  `json:"full_name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Quantity  int64   `json:"quantity"`
	Message   string  `json:"message"`

	// Promo snapshot, filled by the service after validation. Both fields are
	// copied from the PromoCode record, never referenced live.
	PromoCode       *string `json:"promo_code"`
	DiscountPercent *int    `json:"discount_percent"`
	FinalPrice      int64   `json:"final_price"`
}

// Validate checks required contact fields. Contact values are unvalidated
// beyond presence.
func (in *BookingRequestInsert) Validate() error {
	if isBlank(in.FullName) {
		return &ValidationError{Field: "full_name", Reason: "is required"}
	}
	if isBlank(in.Phone) {
		return &ValidationError{Field: "phone", Reason: "is required"}
	}
	if isBlank(in.Email) {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if isBlank(in.CardName) {
		return &ValidationError{Field: "card_name", Reason: "is required"}
	}
	if in.CardPrice < 0 {
		return &ValidationError{Field: "card_price", Reason: "must not be negative"}
	}
	return nil
}

// Normalize clamps quantity to the minimum of 1; an absent or invalid
// quantity means "one item", not an error.
func (in *BookingRequestInsert) Normalize() {
	if in.Quantity < 1 {
		in.Quantity = 1
	}
}
