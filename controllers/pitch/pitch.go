package pitch

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pitch-booking/logger"
	pitchModel "pitch-booking/models/pitch"
	"pitch-booking/services/schedule"
	"pitch-booking/types"
	pitchTypes "pitch-booking/types/pitch"
	"pitch-booking/utils"
)

// PitchController handles pitch registry HTTP requests
type PitchController struct {
	DB *gorm.DB
}

// NewPitchController creates a new pitch controller
func NewPitchController(db *gorm.DB) *PitchController {
	return &PitchController{DB: db}
}

// Store registers a new pitch under the authenticated operator
func (pc *PitchController) Store(c *fiber.Ctx) error {
	var req pitchTypes.PitchCreateRequest
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

	// Operating hours are optional but must parse when present
	for _, clock := range []string{req.OpenTime, req.CloseTime} {
		if clock == "" {
			continue
		}
		if _, err := schedule.ParseClock(clock); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: fmt.Sprintf("Invalid operating hour: %s", clock),
				Data:    nil,
			})
		}
	}

	operatorUUID, err := utils.OperatorUUIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	newPitch := pitchModel.Pitch{
		OperatorID:   operatorUUID,
		Name:         req.Name,
		Location:     req.Location,
		PricePerHour: req.PricePerHour,
		IsActive:     true,
	}
	if req.OpenTime != "" {
		newPitch.OpenTime = req.OpenTime
	}
	if req.CloseTime != "" {
		newPitch.CloseTime = req.CloseTime
	}

	if err := pc.DB.Create(&newPitch).Error; err != nil {
		logger.Error("Failed to create pitch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save pitch",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Pitch created successfully with ID: %d", newPitch.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Pitch created successfully",
		Data:    newPitch,
	})
}

// Update edits a pitch's details or toggles its active flag
func (pc *PitchController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid pitch id",
			Data:    nil,
		})
	}

	var req pitchTypes.PitchUpdateRequest
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

	var p pitchModel.Pitch
	if err := pc.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Pitch not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find pitch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Location != "" {
		p.Location = req.Location
	}
	if req.PricePerHour != 0 {
		p.PricePerHour = req.PricePerHour
	}
	if req.OpenTime != "" {
		if _, err := schedule.ParseClock(req.OpenTime); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: fmt.Sprintf("Invalid operating hour: %s", req.OpenTime),
				Data:    nil,
			})
		}
		p.OpenTime = req.OpenTime
	}
	if req.CloseTime != "" {
		if _, err := schedule.ParseClock(req.CloseTime); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: fmt.Sprintf("Invalid operating hour: %s", req.CloseTime),
				Data:    nil,
			})
		}
		p.CloseTime = req.CloseTime
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := pc.DB.Save(&p).Error; err != nil {
		logger.Error("Failed to update pitch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update pitch",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Pitch updated successfully with ID: %d", p.ID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pitch updated successfully",
		Data:    p,
	})
}

// Index lists the authenticated operator's pitches
func (pc *PitchController) Index(c *fiber.Ctx) error {
	operatorUUID, err := utils.OperatorUUIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var pitches []pitchModel.Pitch
	if err := pc.DB.Where("operator_id = ?", operatorUUID).Order("created_at ASC").Find(&pitches).Error; err != nil {
		logger.Error("Failed to list pitches", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pitches retrieved successfully",
		Data:    pitches,
	})
}
