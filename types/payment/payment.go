package payment

import (
	"fmt"
)

// ApplyPaymentRequest records a payment against a booking
type ApplyPaymentRequest struct {
	BookingID uint    `json:"booking_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required"`
	Reference string  `json:"reference" validate:"omitempty,max=255"`
	// SlipRequestID links the payment to a previously parsed slip.
	SlipRequestID string `json:"slip_request_id" validate:"omitempty,len=24"`
}

func (r ApplyPaymentRequest) Validate() error {
	if r.BookingID == 0 {
		return fmt.Errorf("booking_id is required")
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if r.Method == "" {
		return fmt.Errorf("method is required")
	}
	return nil
}

// EarningsQuery filters the earnings summary endpoint. Dates are inclusive
// and use the YYYY-MM-DD format; both default to today.
type EarningsQuery struct {
	From    string `query:"from"`
	To      string `query:"to"`
	PitchID uint   `query:"pitch_id"`
}
