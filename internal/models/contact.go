package models

import "time"

// ContactSetting is one key/value row of storefront contact details
// (phone, email, address, opening hours).
type ContactSetting struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
