package operator

import (
	"fmt"
)

// RegisterRequest creates an operator business profile
type RegisterRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=1,max=255"`
	OwnerName    string `json:"owner_name" validate:"required,min=1,max=255"`
	Phone        string `json:"phone" validate:"required,phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address" validate:"omitempty"`
}

func (r RegisterRequest) Validate() error {
	if r.BusinessName == "" {
		return fmt.Errorf("business_name is required")
	}
	if r.OwnerName == "" {
		return fmt.Errorf("owner_name is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// UpdateProfileRequest edits the operator profile. Zero-valued fields are
// left unchanged.
type UpdateProfileRequest struct {
	BusinessName string `json:"business_name" validate:"omitempty,max=255"`
	OwnerName    string `json:"owner_name" validate:"omitempty,max=255"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address" validate:"omitempty"`
}

// SendOTPRequest asks for a verification code on the business phone
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

func (r SendOTPRequest) Validate() error {
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// VerifyOTPRequest confirms the code delivered to the business phone
type VerifyOTPRequest struct {
	Phone   string `json:"phone" validate:"required,phone"`
	OTPCode string `json:"otp_code" validate:"required,len=6"`
}

func (r VerifyOTPRequest) Validate() error {
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if r.OTPCode == "" {
		return fmt.Errorf("otp_code is required")
	}
	return nil
}
