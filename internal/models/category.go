package models

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryInsert struct {
	Name string `json:"name" yaml:"name"`
}

func (in *CategoryInsert) Validate() error {
	if isBlank(in.Name) {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}
