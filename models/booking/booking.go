package booking

import (
	"errors"
	"time"

	"pitch-booking/models/pitch"
)

// ErrInvalidAmount is returned when a payment amount is non-positive or
// exceeds the remaining balance of the booking.
var ErrInvalidAmount = errors.New("invalid payment amount")

// Booking represents a reservation of a pitch for a date and time window
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// ReferenceID is the externally visible identifier shared with the
	// player app.
	ReferenceID string `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference_id"`

	// Foreign key for pitch relationship
	PitchID   uint        `gorm:"not null;index" json:"pitch_id"`
	PitchInfo pitch.Pitch `gorm:"foreignKey:PitchID" json:"pitch_info"`

	// BookingDate carries the calendar date; the time of day lives in
	// StartTime/EndTime as HH:MM strings scoped to that date. A slot
	// ending exactly at midnight stores EndTime "24:00" so it stays on
	// its own date; EndTime is display-only, windows are always rebuilt
	// from StartTime and Duration.
	BookingDate time.Time `gorm:"type:date;not null;index" json:"booking_date"`
	StartTime   string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`
	Duration    int       `gorm:"not null;default:1" json:"duration"`

	Status BookingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Source BookingSource `gorm:"type:varchar(20);not null" json:"source"`

	TotalPrice float64 `gorm:"not null" json:"total_price"`
	AmountPaid float64 `gorm:"not null;default:0" json:"amount_paid"`

	CustomerName  string  `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string  `gorm:"type:varchar(20);not null" json:"customer_phone"`
	Notes         *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"` // Soft delete field
}

// RemainingBalance returns the unpaid portion of the booking price.
func (b *Booking) RemainingBalance() float64 {
	return b.TotalPrice - b.AmountPaid
}

// ApplyPayment adds amount to AmountPaid. The amount must be positive and
// must not exceed the remaining balance, so AmountPaid never passes
// TotalPrice.
func (b *Booking) ApplyPayment(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > b.RemainingBalance() {
		return ErrInvalidAmount
	}
	b.AmountPaid += amount
	return nil
}

// SetTotalPrice changes the booking price. The price can never drop below
// what has already been collected, so AmountPaid never exceeds TotalPrice.
func (b *Booking) SetTotalPrice(price float64) error {
	if price < 0 || price < b.AmountPaid {
		return ErrInvalidAmount
	}
	b.TotalPrice = price
	return nil
}

// IsFullyPaid reports whether the booking has been paid in full.
func (b *Booking) IsFullyPaid() bool {
	return b.AmountPaid >= b.TotalPrice
}
