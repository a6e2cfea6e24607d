package payment

import (
	"time"
)

// PaymentMethod represents how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodBankTransfer  PaymentMethod = "bank_transfer"
	PaymentMethodMobileWallet  PaymentMethod = "mobile_wallet"
	PaymentMethodPlayerAppCard PaymentMethod = "player_app_card"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMobileWallet, PaymentMethodPlayerAppCard:
		return true
	default:
		return false
	}
}

// Payment represents a single payment applied against a booking
type Payment struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID uint          `gorm:"not null;index" json:"booking_id"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Method    PaymentMethod `gorm:"type:varchar(30);not null" json:"method"`
	Reference *string       `gorm:"type:varchar(255)" json:"reference,omitempty"`
	// SlipRequestID links back to the parsed slip when the payment was
	// recorded from an uploaded slip image.
	SlipRequestID *string `gorm:"type:varchar(24);index" json:"slip_request_id,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
