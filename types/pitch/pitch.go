package pitch

import (
	"fmt"
)

// PitchCreateRequest represents the request payload for registering a pitch
type PitchCreateRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=255"`
	Location     string  `json:"location" validate:"required,min=1"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,min=0"`
	OpenTime     string  `json:"open_time" validate:"omitempty"`
	CloseTime    string  `json:"close_time" validate:"omitempty"`
}

func (p PitchCreateRequest) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Location == "" {
		return fmt.Errorf("location is required")
	}
	if p.PricePerHour <= 0 {
		return fmt.Errorf("price_per_hour must be positive")
	}
	return nil
}

// PitchUpdateRequest represents the request payload for editing a pitch.
// Zero-valued fields are left unchanged.
type PitchUpdateRequest struct {
	Name         string   `json:"name" validate:"omitempty,max=255"`
	Location     string   `json:"location" validate:"omitempty"`
	PricePerHour float64  `json:"price_per_hour" validate:"omitempty,min=0"`
	OpenTime     string   `json:"open_time" validate:"omitempty"`
	CloseTime    string   `json:"close_time" validate:"omitempty"`
	IsActive     *bool    `json:"is_active" validate:"omitempty"`
}

func (p PitchUpdateRequest) Validate() error {
	if p.PricePerHour < 0 {
		return fmt.Errorf("price_per_hour cannot be negative")
	}
	return nil
}
