package pitch

import (
	"time"
)

// Pitch represents a bookable 5-a-side turf owned by an operator
type Pitch struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// OperatorID is the UUID of the operator who registered the pitch.
	OperatorID string `gorm:"type:varchar(36);not null;index" json:"operator_id"`

	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Location     string  `gorm:"type:text;not null" json:"location"`
	PricePerHour float64 `gorm:"not null" json:"price_per_hour"`

	// Daily operating hours as HH:MM clocks, informational for the
	// player app.
	OpenTime  string `gorm:"type:varchar(5);default:'06:00'" json:"open_time"`
	CloseTime string `gorm:"type:varchar(5);default:'23:00'" json:"close_time"`

	// IsActive gates new bookings; existing bookings are untouched when a
	// pitch is deactivated.
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"` // Soft delete field
}
