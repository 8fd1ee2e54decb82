package models

import (
	"strings"
	"time"
)

type PromoCode struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"` // stored uppercase
	DiscountPercent int        `json:"discount_percent"`
	Active          bool       `json:"active"`
	UsageLimit      *int64     `json:"usage_limit"` // nil = unlimited
	UsageCount      int64      `json:"usage_count"`
	ExpiresAt       *time.Time `json:"expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsUsable reports whether the code can be applied at the given instant:
// active, not expired, under its usage limit.
func (p *PromoCode) IsUsable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return false
	}
	if p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit {
		return false
	}
	return true
}

// Display statuses for the admin list. Inactivity masks expiry masks
// limit-reached.
const (
	PromoStatusInactive     = "Inactive"
	PromoStatusExpired      = "Expired"
	PromoStatusLimitReached = "Limit Reached"
	PromoStatusActive       = "Active"
)

// DisplayStatus derives the admin-facing label at the given instant. Computed
// on read, never persisted.
func (p *PromoCode) DisplayStatus(now time.Time) string {
	switch {
	case !p.Active:
		return PromoStatusInactive
	case p.ExpiresAt != nil && !p.ExpiresAt.After(now):
		return PromoStatusExpired
	case p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit:
		return PromoStatusLimitReached
	default:
		return PromoStatusActive
	}
}

// NormalizePromoCode trims and uppercases user input. An empty result means
// "no code entered".
func NormalizePromoCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

type PromoCodeInsert struct {
	Code            string     `json:"code"`
	DiscountPercent int        `json:"discount_percent"`
	Active          *bool      `json:"active"` // defaults to true
	UsageLimit      *int64     `json:"usage_limit"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

func (in *PromoCodeInsert) Validate() error {
	if NormalizePromoCode(in.Code) == "" {
		return &ValidationError{Field: "code", Reason: "is required"}
	}
	if in.DiscountPercent < 1 || in.DiscountPercent > 100 {
		return &ValidationError{Field: "discount_percent", Reason: "must be between 1 and 100"}
	}
	if in.UsageLimit != nil && *in.UsageLimit < 1 {
		return &ValidationError{Field: "usage_limit", Reason: "must be at least 1"}
	}
	return nil
}

func (in *PromoCodeInsert) IsActive() bool {
	if in.Active == nil {
		return true
	}
	return *in.Active
}

// PromoCodeUpdate carries a partial update; nil fields are left untouched.
// Clear flags distinguish "unset the column" from "leave it alone".
type PromoCodeUpdate struct {
	Code            *string    `json:"code"`
	DiscountPercent *int       `json:"discount_percent"`
	Active          *bool      `json:"active"`
	UsageLimit      *int64     `json:"usage_limit"`
	ClearUsageLimit bool       `json:"clear_usage_limit"`
	ExpiresAt       *time.Time `json:"expires_at"`
	ClearExpiresAt  bool       `json:"clear_expires_at"`
}

func (up *PromoCodeUpdate) Validate() error {
	if up.Code != nil && NormalizePromoCode(*up.Code) == "" {
		return &ValidationError{Field: "code", Reason: "must not be blank"}
	}
	if up.DiscountPercent != nil && (*up.DiscountPercent < 1 || *up.DiscountPercent > 100) {
		return &ValidationError{Field: "discount_percent", Reason: "must be between 1 and 100"}
	}
	if up.UsageLimit != nil && *up.UsageLimit < 1 {
		return &ValidationError{Field: "usage_limit", Reason: "must be at least 1"}
	}
	return nil
}
