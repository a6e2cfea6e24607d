package booking

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// BookingCreateRequest represents the request payload for creating a booking
type BookingCreateRequest struct {
	PitchID     uint    `json:"pitch_id" validate:"required"`
	BookingDate string  `json:"booking_date" validate:"required"`
	StartTime   string  `json:"start_time" validate:"required"`
	Duration    int     `json:"duration" validate:"omitempty,min=1,max=12"`
	TotalPrice  float64 `json:"total_price" validate:"omitempty,min=0"`
	// AmountPaid lets walk-in bookings record an advance at creation.
	AmountPaid    float64 `json:"amount_paid" validate:"omitempty,min=0"`
	CustomerName  string  `json:"customer_name" validate:"required,min=1,max=255"`
	CustomerPhone string  `json:"customer_phone" validate:"required,phone"`
	Source        string  `json:"source" validate:"omitempty,oneof=manual player-app"`
	Notes         string  `json:"notes" validate:"omitempty"`
}

// use first step validation
func (b BookingCreateRequest) Validate() error {
	if b.PitchID == 0 {
		return fmt.Errorf("pitch_id is required")
	}
	if b.BookingDate == "" {
		return fmt.Errorf("booking_date is required")
	}
	if _, err := time.Parse(DateLayout, b.BookingDate); err != nil {
		return fmt.Errorf("booking_date must be in YYYY-MM-DD format")
	}
	if b.StartTime == "" {
		return fmt.Errorf("start_time is required")
	}
	if b.Duration < 0 {
		return fmt.Errorf("duration must be positive")
	}
	if b.TotalPrice < 0 {
		return fmt.Errorf("total_price cannot be negative")
	}
	if b.AmountPaid < 0 {
		return fmt.Errorf("amount_paid cannot be negative")
	}
	if b.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}
	if b.CustomerPhone == "" {
		return fmt.Errorf("customer_phone is required")
	}
	return nil
}

// ParsedDate returns the booking date as a time value. The date is anchored
// in the server's location so booking windows compare against the same
// wall clock the status sweep reads.
func (b BookingCreateRequest) ParsedDate() (time.Time, error) {
	return time.ParseInLocation(DateLayout, b.BookingDate, time.Local)
}

// BookingUpdateRequest represents the request payload for editing a booking's
// schedule or customer details. Zero-valued fields are left unchanged.
type BookingUpdateRequest struct {
	BookingDate   string  `json:"booking_date" validate:"omitempty"`
	StartTime     string  `json:"start_time" validate:"omitempty"`
	Duration      int     `json:"duration" validate:"omitempty,min=1,max=12"`
	TotalPrice    float64 `json:"total_price" validate:"omitempty,min=0"`
	CustomerName  string  `json:"customer_name" validate:"omitempty,max=255"`
	CustomerPhone string  `json:"customer_phone" validate:"omitempty,phone"`
	Notes         string  `json:"notes" validate:"omitempty"`
}

func (b BookingUpdateRequest) Validate() error {
	if b.BookingDate != "" {
		if _, err := time.Parse(DateLayout, b.BookingDate); err != nil {
			return fmt.Errorf("booking_date must be in YYYY-MM-DD format")
		}
	}
	if b.Duration < 0 {
		return fmt.Errorf("duration must be positive")
	}
	if b.TotalPrice < 0 {
		return fmt.Errorf("total_price cannot be negative")
	}
	return nil
}

// ConflictCheckRequest asks whether a candidate slot collides with an
// existing booking on the same pitch and date.
type ConflictCheckRequest struct {
	PitchID     uint   `json:"pitch_id" validate:"required"`
	BookingDate string `json:"booking_date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=12"`
	// ExcludeID skips the booking's own record when re-checking an edit.
	ExcludeID uint `json:"exclude_id" validate:"omitempty"`
}

func (r ConflictCheckRequest) Validate() error {
	if r.PitchID == 0 {
		return fmt.Errorf("pitch_id is required")
	}
	if r.BookingDate == "" {
		return fmt.Errorf("booking_date is required")
	}
	if _, err := time.Parse(DateLayout, r.BookingDate); err != nil {
		return fmt.Errorf("booking_date must be in YYYY-MM-DD format")
	}
	if r.StartTime == "" {
		return fmt.Errorf("start_time is required")
	}
	return nil
}

// BookingListQuery filters the booking list endpoint.
type BookingListQuery struct {
	PitchID     uint   `query:"pitch_id"`
	BookingDate string `query:"booking_date"`
	Status      string `query:"status"`
}
