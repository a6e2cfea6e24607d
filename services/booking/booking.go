package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"pitch-booking/logger"
	bookingModel "pitch-booking/models/booking"
	paymentModel "pitch-booking/models/payment"
	pitchModel "pitch-booking/models/pitch"
	"pitch-booking/services/schedule"
	bookingTypes "pitch-booking/types/booking"
)

var (
	// ErrConflict is returned when a requested slot overlaps an existing
	// non-cancelled booking on the same pitch and date.
	ErrConflict = errors.New("time slot already booked")
	// ErrNotEditable is returned when the booking's lifecycle state no
	// longer allows the requested mutation.
	ErrNotEditable = errors.New("booking can no longer be modified")
	// ErrPitchUnavailable is returned when the referenced pitch is missing
	// or inactive.
	ErrPitchUnavailable = errors.New("pitch not available for booking")
)

// Service handles booking scheduling and lifecycle operations
type Service struct {
	DB *gorm.DB
}

// NewBookingService creates a new booking service
func NewBookingService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// snapshotForDate loads every non-cancelled booking of the pitch on the
// given calendar date. The pure conflict rule runs over this snapshot.
func (s *Service) snapshotForDate(tx *gorm.DB, pitchID uint, date time.Time) ([]bookingModel.Booking, error) {
	day := now.With(date).BeginningOfDay()

	var existing []bookingModel.Booking
	err := tx.
		Where("pitch_id = ? AND booking_date = ? AND status <> ?",
			pitchID, day, bookingModel.BookingStatusCancelled).
		Find(&existing).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// HasConflict reports whether the candidate slot collides with an existing
// booking. excludeID skips the booking's own row when re-checking an edit.
func (s *Service) HasConflict(pitchID uint, date time.Time, startTime string, durationHours int, excludeID uint) (bool, error) {
	candidate, err := schedule.NewWindow(date, startTime, durationHours)
	if err != nil {
		return false, err
	}

	existing, err := s.snapshotForDate(s.DB, pitchID, date)
	if err != nil {
		return false, err
	}

	return schedule.HasConflict(existing, candidate, excludeID), nil
}

// Create validates the slot against the pitch's bookings and stores a new
// booking. When the request carries an advance amount a payment record is
// written in the same transaction.
func (s *Service) Create(req bookingTypes.BookingCreateRequest, createdBy string) (*bookingModel.Booking, error) {
	date, err := req.ParsedDate()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", schedule.ErrInvalidInterval, req.BookingDate)
	}

	duration := schedule.ResolveDuration(req.Duration)
	window, err := schedule.NewWindow(date, req.StartTime, duration)
	if err != nil {
		return nil, err
	}

	var pitch pitchModel.Pitch
	if err := s.DB.First(&pitch, req.PitchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPitchUnavailable
		}
		return nil, err
	}
	if !pitch.IsActive {
		return nil, ErrPitchUnavailable
	}

	endTime, err := schedule.EndClock(req.StartTime, duration)
	if err != nil {
		return nil, err
	}

	totalPrice := req.TotalPrice
	if totalPrice == 0 {
		totalPrice = pitch.PricePerHour * float64(duration)
	}

	source := bookingModel.BookingSource(req.Source)
	if source == "" {
		source = bookingModel.BookingSourceManual
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid booking source: %s", req.Source)
	}

	newBooking := bookingModel.Booking{
		ReferenceID:   uuid.NewString(),
		PitchID:       pitch.ID,
		BookingDate:   now.With(date).BeginningOfDay(),
		StartTime:     req.StartTime,
		EndTime:       endTime,
		Duration:      duration,
		Status:        schedule.DeriveStatus(window, time.Now()),
		Source:        source,
		TotalPrice:    totalPrice,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CreatedBy:     createdBy,
	}
	if req.Notes != "" {
		newBooking.Notes = &req.Notes
	}

	// Use DB.Transaction for automatic rollback on error
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.snapshotForDate(tx, pitch.ID, date)
		if err != nil {
			return err
		}
		if schedule.HasConflict(existing, window, 0) {
			return ErrConflict
		}

		if req.AmountPaid > 0 {
			if err := newBooking.ApplyPayment(req.AmountPaid); err != nil {
				return err
			}
		}

		if err := tx.Create(&newBooking).Error; err != nil {
			logger.Error("Failed to create booking", err)
			return err
		}

		if req.AmountPaid > 0 {
			advance := paymentModel.Payment{
				BookingID: newBooking.ID,
				Amount:    req.AmountPaid,
				Method:    paymentModel.PaymentMethodCash,
				CreatedBy: createdBy,
			}
			if err := tx.Create(&advance).Error; err != nil {
				logger.Error("Failed to record advance payment", err)
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &newBooking, nil
}

// Update edits a booking's schedule or customer details, re-running the
// conflict check with the booking's own row excluded.
func (s *Service) Update(id uint, req bookingTypes.BookingUpdateRequest, updatedBy string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.DB.First(&b, id).Error; err != nil {
		return nil, err
	}

	if !b.Status.CanBeUpdated() {
		return nil, ErrNotEditable
	}

	date := b.BookingDate
	if req.BookingDate != "" {
		parsed, err := time.ParseInLocation(bookingTypes.DateLayout, req.BookingDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", schedule.ErrInvalidInterval, req.BookingDate)
		}
		date = parsed
	}

	startTime := b.StartTime
	if req.StartTime != "" {
		startTime = req.StartTime
	}

	duration := b.Duration
	if req.Duration != 0 {
		duration = schedule.ResolveDuration(req.Duration)
	}

	window, err := schedule.NewWindow(date, startTime, duration)
	if err != nil {
		return nil, err
	}

	endTime, err := schedule.EndClock(startTime, duration)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.snapshotForDate(tx, b.PitchID, date)
		if err != nil {
			return err
		}
		if schedule.HasConflict(existing, window, b.ID) {
			return ErrConflict
		}

		b.BookingDate = now.With(date).BeginningOfDay()
		b.StartTime = startTime
		b.EndTime = endTime
		b.Duration = duration
		b.Status = schedule.DeriveStatus(window, time.Now())
		if req.TotalPrice != 0 {
			if err := b.SetTotalPrice(req.TotalPrice); err != nil {
				return err
			}
		}
		if req.CustomerName != "" {
			b.CustomerName = req.CustomerName
		}
		if req.CustomerPhone != "" {
			b.CustomerPhone = req.CustomerPhone
		}
		if req.Notes != "" {
			b.Notes = &req.Notes
		}
		b.UpdatedBy = updatedBy

		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// Cancel marks the booking cancelled. Cancellation is one-way: the sweep
// never moves a cancelled booking again, and cancelling twice is a no-op.
func (s *Service) Cancel(id uint, updatedBy string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.DB.First(&b, id).Error; err != nil {
		return nil, err
	}

	if b.Status == bookingModel.BookingStatusCancelled {
		return &b, nil
	}
	if !b.Status.CanBeCancelled() {
		return nil, ErrNotEditable
	}

	b.Status = bookingModel.BookingStatusCancelled
	b.UpdatedBy = updatedBy
	if err := s.DB.Save(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

// ApplyPayment records a payment against the booking. The booking's
// AmountPaid never exceeds TotalPrice; over-limit and non-positive amounts
// are rejected with booking.ErrInvalidAmount.
func (s *Service) ApplyPayment(bookingID uint, amount float64, method paymentModel.PaymentMethod, reference, slipRequestID, createdBy string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, bookingID).Error; err != nil {
			return err
		}

		if b.Status == bookingModel.BookingStatusCancelled {
			return ErrNotEditable
		}

		if err := b.ApplyPayment(amount); err != nil {
			return err
		}

		record := paymentModel.Payment{
			BookingID: b.ID,
			Amount:    amount,
			Method:    method,
			CreatedBy: createdBy,
		}
		if reference != "" {
			record.Reference = &reference
		}
		if slipRequestID != "" {
			record.SlipRequestID = &slipRequestID
		}

		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// Sweep re-derives the status of every confirmed or ongoing booking at the
// given instant and persists the ones that moved. Cancelled and completed
// bookings are never touched, so running the sweep twice is harmless.
func (s *Service) Sweep(nowAt time.Time) (int, error) {
	var candidates []bookingModel.Booking
	err := s.DB.
		Where("status IN ?", []bookingModel.BookingStatus{
			bookingModel.BookingStatusConfirmed,
			bookingModel.BookingStatusOngoing,
		}).
		Find(&candidates).Error
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range candidates {
		b := &candidates[i]
		next, changed := schedule.NextStatus(b, nowAt)
		if !changed {
			continue
		}

		if err := s.DB.Model(b).Update("status", next).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to update status for booking ID: %d", b.ID), err)
			continue
		}
		updated++
	}

	return updated, nil
}
