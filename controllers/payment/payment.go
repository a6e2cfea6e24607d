package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"pitch-booking/logger"
	bookingModel "pitch-booking/models/booking"
	paymentModel "pitch-booking/models/payment"
	bookingService "pitch-booking/services/booking"
	"pitch-booking/types"
	bookingTypes "pitch-booking/types/booking"
	paymentTypes "pitch-booking/types/payment"
	"pitch-booking/utils"
)

// PaymentController handles payment collection and earnings HTTP requests
type PaymentController struct {
	DB      *gorm.DB
	Service *bookingService.Service
	Logger  *logger.AsyncLogger
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *gorm.DB, svc *bookingService.Service, asyncLogger *logger.AsyncLogger) *PaymentController {
	return &PaymentController{
		DB:      db,
		Service: svc,
		Logger:  asyncLogger,
	}
}

// sendResponseWithLog writes the response and queues a sanitized request log
func (pc *PaymentController) sendResponseWithLog(c *fiber.Ctx, status int, resp types.ApiResponse) error {
	err := c.Status(status).JSON(resp)
	if pc.Logger != nil {
		pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	}
	return err
}

// Apply records a payment against a booking. The booking's paid amount
// never exceeds its total price.
func (pc *PaymentController) Apply(c *fiber.Ctx) error {
	var req paymentTypes.ApplyPaymentRequest
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

	method := paymentModel.PaymentMethod(req.Method)
	if !method.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: fmt.Sprintf("Invalid payment method: %s", req.Method),
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

	updated, err := pc.Service.ApplyPayment(req.BookingID, req.Amount, method, req.Reference, req.SlipRequestID, operatorUUID)
	if err != nil {
		switch {
		case errors.Is(err, bookingModel.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Payment amount exceeds remaining balance or is not positive",
				Data:    nil,
			})
		case errors.Is(err, bookingService.ErrNotEditable):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Cannot record a payment against a cancelled booking",
				Data:    nil,
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
				Data:    nil,
			})
		default:
			logger.Error("Failed to apply payment", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to apply payment",
				Data:    nil,
			})
		}
	}

	logger.Success(fmt.Sprintf("Payment of %.2f applied to booking ID: %d", req.Amount, updated.ID))

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment applied successfully",
		Data: map[string]interface{}{
			"booking":           updated,
			"remaining_balance": updated.RemainingBalance(),
			"fully_paid":        updated.IsFullyPaid(),
		},
	})
}

// earningsRow aggregates payment totals per method
type earningsRow struct {
	Method paymentModel.PaymentMethod `json:"method"`
	Total  float64                    `json:"total"`
	Count  int64                      `json:"count"`
}

// Earnings summarizes collected payments over an inclusive date range,
// optionally scoped to one pitch. Both dates default to today.
func (pc *PaymentController) Earnings(c *fiber.Ctx) error {
	var query paymentTypes.EarningsQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid query parameters",
			Data:    nil,
		})
	}

	from := now.BeginningOfDay()
	if query.From != "" {
		parsed, err := time.ParseInLocation(bookingTypes.DateLayout, query.From, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "from must be in YYYY-MM-DD format",
				Data:    nil,
			})
		}
		from = now.With(parsed).BeginningOfDay()
	}

	to := now.EndOfDay()
	if query.To != "" {
		parsed, err := time.ParseInLocation(bookingTypes.DateLayout, query.To, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "to must be in YYYY-MM-DD format",
				Data:    nil,
			})
		}
		to = now.With(parsed).EndOfDay()
	}

	if to.Before(from) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "to cannot be before from",
			Data:    nil,
		})
	}

	tx := pc.DB.Model(&paymentModel.Payment{}).
		Where("payments.created_at BETWEEN ? AND ?", from, to)
	if query.PitchID != 0 {
		tx = tx.Joins("JOIN bookings ON bookings.id = payments.booking_id").
			Where("bookings.pitch_id = ?", query.PitchID)
	}

	var rows []earningsRow
	err := tx.
		Select("payments.method AS method, SUM(payments.amount) AS total, COUNT(*) AS count").
		Group("payments.method").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to summarize earnings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to summarize earnings",
			Data:    nil,
		})
	}

	var grandTotal float64
	var paymentCount int64
	for _, row := range rows {
		grandTotal += row.Total
		paymentCount += row.Count
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Earnings summarized successfully",
		Data: map[string]interface{}{
			"from":          from.Format(bookingTypes.DateLayout),
			"to":            to.Format(bookingTypes.DateLayout),
			"total":         grandTotal,
			"payment_count": paymentCount,
			"by_method":     rows,
		},
	})
}
