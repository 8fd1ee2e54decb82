package models

import "time"

// Service is an offered service (grading, framing, sourcing) shown on the
// storefront next to cards. Price is optional: some services are quoted
// individually.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       *int64    `json:"price"`
	Image       string    `json:"image,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServiceInsert struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       *int64 `json:"price" yaml:"price"`
	Image       string `json:"image" yaml:"image"`
	Available   *bool  `json:"available" yaml:"available"`
}

func (in *ServiceInsert) Validate() error {
	if isBlank(in.Name) {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Price != nil && *in.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func (in *ServiceInsert) IsAvailable() bool {
	if in.Available == nil {
		return true
	}
	return *in.Available
}
