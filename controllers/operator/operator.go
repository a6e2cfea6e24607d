package operator

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pitch-booking/logger"
	operatorModel "pitch-booking/models/operator"
	otpModel "pitch-booking/models/otp"
	otpService "pitch-booking/services/otp"
	"pitch-booking/types"
	operatorTypes "pitch-booking/types/operator"
	"pitch-booking/utils"
)

// OperatorController handles operator profile and verification HTTP requests
type OperatorController struct {
	DB  *gorm.DB
	OTP *otpService.Service
}

// NewOperatorController creates a new operator controller
func NewOperatorController(db *gorm.DB) *OperatorController {
	return &OperatorController{
		DB:  db,
		OTP: otpService.NewOTPService(db),
	}
}

// Register creates an operator business profile. The phone starts
// unverified until the OTP flow completes.
func (oc *OperatorController) Register(c *fiber.Ctx) error {
	var req operatorTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	if !utils.ValidatePhoneNumber(req.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid phone number",
			Data:    nil,
		})
	}

	// One profile per business phone
	var existing operatorModel.Operator
	err := oc.DB.Where("phone = ?", req.Phone).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "An operator with this phone number already exists",
			Data:    nil,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing operator", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	op := operatorModel.Operator{
		UUID:               uuid.NewString(),
		BusinessName:       req.BusinessName,
		OwnerName:          req.OwnerName,
		Phone:              req.Phone,
		VerificationStatus: operatorModel.VerificationStatusUnverified,
	}
	if req.Email != "" {
		op.Email = &req.Email
	}
	if req.Address != "" {
		op.Address = &req.Address
	}

	if err := oc.DB.Create(&op).Error; err != nil {
		logger.Error("Failed to create operator", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save operator",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Operator registered successfully with UUID: %s", op.UUID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Operator registered successfully",
		Data:    op,
	})
}

// Profile returns the authenticated operator's profile
func (oc *OperatorController) Profile(c *fiber.Ctx) error {
	operatorUUID, err := utils.OperatorUUIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	op, err := utils.GetOperatorByUUID(operatorUUID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Operator not found",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    op,
	})
}

// UpdateProfile edits the authenticated operator's profile
func (oc *OperatorController) UpdateProfile(c *fiber.Ctx) error {
	var req operatorTypes.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	operatorUUID, err := utils.OperatorUUIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	op, err := utils.GetOperatorByUUID(operatorUUID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Operator not found",
			Data:    nil,
		})
	}

	if req.BusinessName != "" {
		op.BusinessName = req.BusinessName
	}
	if req.OwnerName != "" {
		op.OwnerName = req.OwnerName
	}
	if req.Email != "" {
		op.Email = &req.Email
	}
	if req.Address != "" {
		op.Address = &req.Address
	}

	if err := oc.DB.Save(op).Error; err != nil {
		logger.Error("Failed to update operator profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update profile",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Operator profile updated for UUID: %s", op.UUID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile updated successfully",
		Data:    op,
	})
}

// SendOTP delivers a verification code to the operator's business phone
func (oc *OperatorController) SendOTP(c *fiber.Ctx) error {
	var req operatorTypes.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	if !utils.ValidatePhoneNumber(req.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid phone number",
			Data:    nil,
		})
	}

	var op operatorModel.Operator
	if err := oc.DB.Where("phone = ?", req.Phone).First(&op).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Operator not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find operator", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if op.PhoneVerified {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Phone number is already verified",
			Data:    nil,
		})
	}

	newOTP, err := oc.OTP.SendOTP(req.Phone, otpModel.OTPPurposeBusinessPhoneVerification, op.ID)
	if err != nil {
		retryInfo, infoErr := oc.OTP.GetOTPRetryInfo(req.Phone, otpModel.OTPPurposeBusinessPhoneVerification)
		if infoErr != nil {
			retryInfo = nil
		}
		return c.Status(fiber.StatusTooManyRequests).JSON(types.ApiResponse{
			Status:  fiber.StatusTooManyRequests,
			Message: err.Error(),
			Data:    retryInfo,
		})
	}

	// Mark the verification as in flight
	if op.VerificationStatus == operatorModel.VerificationStatusUnverified {
		op.VerificationStatus = operatorModel.VerificationStatusPending
		if err := oc.DB.Save(&op).Error; err != nil {
			logger.Error("Failed to update verification status", err)
		}
	}

	logger.Success(fmt.Sprintf("OTP sent to operator phone: %s", req.Phone))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP sent successfully",
		Data: map[string]interface{}{
			"phone":      newOTP.Phone,
			"expires_at": newOTP.ExpiresAt,
		},
	})
}

// VerifyOTP confirms the code and marks the operator's phone verified
func (oc *OperatorController) VerifyOTP(c *fiber.Ctx) error {
	var req operatorTypes.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	valid, err := oc.OTP.VerifyOTP(req.Phone, req.OTPCode, otpModel.OTPPurposeBusinessPhoneVerification)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}
	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid OTP",
			Data:    nil,
		})
	}

	var op operatorModel.Operator
	if err := oc.DB.Where("phone = ?", req.Phone).First(&op).Error; err != nil {
		logger.Error("Failed to find operator after OTP verification", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	verifiedAt := time.Now()
	op.PhoneVerified = true
	op.VerificationStatus = operatorModel.VerificationStatusVerified
	op.VerifiedAt = &verifiedAt

	if err := oc.DB.Save(&op).Error; err != nil {
		logger.Error("Failed to save verified operator", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update operator",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Operator phone verified: %s", op.Phone))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Phone verified successfully",
		Data:    op,
	})
}
