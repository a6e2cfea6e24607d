package operator

import (
	"time"
)

// VerificationStatus represents the business verification state of an operator
type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "unverified"
	VerificationStatusPending    VerificationStatus = "pending"
	VerificationStatusVerified   VerificationStatus = "verified"
)

func (vs VerificationStatus) IsValid() bool {
	switch vs {
	case VerificationStatusUnverified, VerificationStatusPending, VerificationStatusVerified:
		return true
	default:
		return false
	}
}

// Operator represents a pitch operator account and business profile
type Operator struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID         string `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	BusinessName string `gorm:"type:varchar(255);not null" json:"business_name"`
	OwnerName    string `gorm:"type:varchar(255);not null" json:"owner_name"`
	Phone        string `gorm:"type:varchar(20);not null;index" json:"phone"`
	Email        *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address      *string `gorm:"type:text" json:"address,omitempty"`

	PhoneVerified      bool               `gorm:"default:false" json:"phone_verified"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null;default:'unverified'" json:"verification_status"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"` // Soft delete field
}
