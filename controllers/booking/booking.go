package booking

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"pitch-booking/logger"
	bookingModel "pitch-booking/models/booking"
	bookingService "pitch-booking/services/booking"
	"pitch-booking/services/schedule"
	"pitch-booking/types"
	bookingTypes "pitch-booking/types/booking"
	"pitch-booking/utils"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB      *gorm.DB
	Service *bookingService.Service
	Logger  *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, svc *bookingService.Service, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		DB:      db,
		Service: svc,
		Logger:  asyncLogger,
	}
}

// sendResponseWithLog writes the response and queues a sanitized request log
func (bc *BookingController) sendResponseWithLog(c *fiber.Ctx, status int, resp types.ApiResponse) error {
	err := c.Status(status).JSON(resp)
	if bc.Logger != nil {
		bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	}
	return err
}

// Store creates a new booking after checking the slot for conflicts
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
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

	if !utils.ValidatePhoneNumber(req.CustomerPhone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid customer phone number",
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

	created, err := bc.Service.Create(req, operatorUUID)
	if err != nil {
		return bc.mapServiceError(c, err, "Failed to save booking")
	}

	logger.Success(fmt.Sprintf("Booking created successfully with ID: %d", created.ID))

	// Load the complete booking data with relationships
	var createdBooking bookingModel.Booking
	if err := bc.DB.Preload("PitchInfo").First(&createdBooking, created.ID).Error; err != nil {
		logger.Error("Failed to load created booking data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Booking created but failed to retrieve complete data",
			Data:    nil,
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    createdBooking,
	})
}

// Update edits a booking's schedule or customer details
func (bc *BookingController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
			Data:    nil,
		})
	}

	var req bookingTypes.BookingUpdateRequest
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

	operatorUUID, err := utils.OperatorUUIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	updated, err := bc.Service.Update(uint(id), req, operatorUUID)
	if err != nil {
		return bc.mapServiceError(c, err, "Failed to update booking")
	}

	logger.Success(fmt.Sprintf("Booking updated successfully with ID: %d", updated.ID))

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking updated successfully",
		Data:    updated,
	})
}

// Cancel marks a booking cancelled; cancelling twice is harmless
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
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

	cancelled, err := bc.Service.Cancel(uint(id), operatorUUID)
	if err != nil {
		return bc.mapServiceError(c, err, "Failed to cancel booking")
	}

	logger.Success(fmt.Sprintf("Booking cancelled with ID: %d", cancelled.ID))

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking cancelled successfully",
		Data:    cancelled,
	})
}

// Show returns a single booking with its pitch
func (bc *BookingController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
			Data:    nil,
		})
	}

	var b bookingModel.Booking
	if err := bc.DB.Preload("PitchInfo").First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking retrieved successfully",
		Data:    b,
	})
}

// Index lists bookings filtered by pitch, date or status
func (bc *BookingController) Index(c *fiber.Ctx) error {
	var query bookingTypes.BookingListQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid query parameters",
			Data:    nil,
		})
	}

	tx := bc.DB.Preload("PitchInfo").Order("booking_date DESC, start_time ASC")

	if query.PitchID != 0 {
		tx = tx.Where("pitch_id = ?", query.PitchID)
	}
	if query.BookingDate != "" {
		date, err := bookingTypes.BookingCreateRequest{BookingDate: query.BookingDate}.ParsedDate()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "booking_date must be in YYYY-MM-DD format",
				Data:    nil,
			})
		}
		tx = tx.Where("booking_date = ?", now.With(date).BeginningOfDay())
	}
	if query.Status != "" {
		status := bookingModel.BookingStatus(query.Status)
		if !status.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid booking status filter",
				Data:    nil,
			})
		}
		tx = tx.Where("status = ?", status)
	}

	var bookings []bookingModel.Booking
	if err := tx.Find(&bookings).Error; err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings retrieved successfully",
		Data:    bookings,
	})
}

// Destroy removes a booking record entirely
func (bc *BookingController) Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
			Data:    nil,
		})
	}

	var b bookingModel.Booking
	if err := bc.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if err := bc.DB.Delete(&b).Error; err != nil {
		logger.Error("Failed to delete booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete booking",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Booking deleted with ID: %d", b.ID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking deleted successfully",
		Data:    nil,
	})
}

// CheckConflict reports whether a candidate slot collides with an existing
// booking, without creating anything
func (bc *BookingController) CheckConflict(c *fiber.Ctx) error {
	var req bookingTypes.ConflictCheckRequest
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

	date, _ := bookingTypes.BookingCreateRequest{BookingDate: req.BookingDate}.ParsedDate()
	duration := schedule.ResolveDuration(req.Duration)

	conflict, err := bc.Service.HasConflict(req.PitchID, date, req.StartTime, duration, req.ExcludeID)
	if err != nil {
		return bc.mapServiceError(c, err, "Failed to check slot")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Conflict check completed",
		Data: map[string]interface{}{
			"has_conflict": conflict,
		},
	})
}

// mapServiceError translates booking service errors onto HTTP statuses
func (bc *BookingController) mapServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, bookingService.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Time slot already booked",
			Data:    nil,
		})
	case errors.Is(err, schedule.ErrInvalidInterval):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	case errors.Is(err, bookingService.ErrPitchUnavailable):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Pitch not available for booking",
			Data:    nil,
		})
	case errors.Is(err, bookingService.ErrNotEditable):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking can no longer be modified",
			Data:    nil,
		})
	case errors.Is(err, bookingModel.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid payment amount",
			Data:    nil,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Booking not found",
			Data:    nil,
		})
	default:
		logger.Error(fallback, err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: fallback,
			Data:    nil,
		})
	}
}
