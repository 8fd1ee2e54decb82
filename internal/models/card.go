package models

import "time"

type Card struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SetName        string    `json:"set_name"`
	Rarity         string    `json:"rarity"`
	Condition      string    `json:"condition"`
	Price          int64     `json:"price"` // smallest currency unit
	Image          string    `json:"image"`
	CategoryID     *string   `json:"category_id"`
	CollectorNotes string    `json:"collector_notes,omitempty"`
	Featured       bool      `json:"featured"`
	Available      bool      `json:"available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty"`
}

// CardInsert is the validated input for creating or replacing a card.
type CardInsert struct {
	Name           string  `json:"name" yaml:"name"`
	SetName        string  `json:"set_name" yaml:"set_name"`
	Rarity         string  `json:"rarity" yaml:"rarity"`
	Condition      string  `json:"condition" yaml:"condition"`
	Price          int64   `json:"price" yaml:"price"`
	Image          string  `json:"image" yaml:"image"`
	CategoryID     *string `json:"category_id" yaml:"category_id"`
	CollectorNotes string  `json:"collector_notes" yaml:"collector_notes"`
	Featured       bool    `json:"featured" yaml:"featured"`
	Available      *bool   `json:"available" yaml:"available"`
}

func (in *CardInsert) Validate() error {
	if isBlank(in.Name) {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

// IsAvailable resolves the optional availability flag; absent means available.
func (in *CardInsert) IsAvailable() bool {
	if in.Available == nil {
		return true
	}
	return *in.Available
}

// CardFilter narrows a card listing. Zero values mean "no constraint".
type CardFilter struct {
	CategoryID string
	Rarity     string
	Query      string // case-insensitive name substring
	Available  *bool
	Featured   *bool
}
