package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	bookingModel "pitch-booking/models/booking"
)

// ErrInvalidInterval is returned for malformed HH:MM strings, non-positive
// durations, or windows that would cross midnight.
var ErrInvalidInterval = errors.New("invalid booking interval")

// Window is a half-open [Start, End) time range on a single calendar date.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
// Both fields must be exactly two digits.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 2 || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	return h*60 + m, nil
}

// ResolveDuration maps a missing duration (zero) to the default of one hour.
// Negative values pass through and are rejected by NewWindow.
func ResolveDuration(hours int) int {
	if hours == 0 {
		return 1
	}
	return hours
}

// NewWindow builds the [start, end) window for a booking from its calendar
// date, its HH:MM start time and its duration in hours. The window must not
// cross midnight.
func NewWindow(bookingDate time.Time, startTime string, durationHours int) (Window, error) {
	if durationHours <= 0 {
		return Window{}, fmt.Errorf("%w: duration %d", ErrInvalidInterval, durationHours)
	}

	minutes, err := ParseClock(startTime)
	if err != nil {
		return Window{}, err
	}

	dayStart := now.With(bookingDate).BeginningOfDay()
	start := dayStart.Add(time.Duration(minutes) * time.Minute)
	end := start.Add(time.Duration(durationHours) * time.Hour)

	if end.After(dayStart.Add(24 * time.Hour)) {
		return Window{}, fmt.Errorf("%w: window passes midnight", ErrInvalidInterval)
	}

	return Window{Start: start, End: end}, nil
}

// EndClock derives the HH:MM end time from a start time and duration.
func EndClock(startTime string, durationHours int) (string, error) {
	minutes, err := ParseClock(startTime)
	if err != nil {
		return "", err
	}
	if durationHours <= 0 {
		return "", fmt.Errorf("%w: duration %d", ErrInvalidInterval, durationHours)
	}
	end := minutes + durationHours*60
	if end > 24*60 {
		return "", fmt.Errorf("%w: window passes midnight", ErrInvalidInterval)
	}
	// A slot ending exactly at midnight stays on its own date as 24:00
	if end == 24*60 {
		return "24:00", nil
	}
	return fmt.Sprintf("%02d:%02d", end/60, end%60), nil
}

// Overlaps reports whether two half-open windows intersect: [s1,e1) and
// [s2,e2) overlap iff s1 < e2 && s2 < e1. Back-to-back windows do not
// conflict, which allows tight scheduling.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// HasConflict reports whether the candidate window collides with any
// existing non-cancelled booking in the snapshot. excludeID skips the
// candidate's own record when re-checking an edit; pass 0 for new bookings.
func HasConflict(existing []bookingModel.Booking, candidate Window, excludeID uint) bool {
	for i := range existing {
		b := &existing[i]
		if b.ID == excludeID {
			continue
		}
		if !b.Status.IsActive() {
			continue
		}
		w, err := NewWindow(b.BookingDate, b.StartTime, b.Duration)
		if err != nil {
			// A stored booking that no longer parses cannot be
			// compared; it never blocks new bookings.
			continue
		}
		if candidate.Overlaps(w) {
			return true
		}
	}
	return false
}

// DeriveStatus computes the status a booking should have at the instant now,
// absent manual cancellation. It never returns cancelled.
func DeriveStatus(w Window, nowAt time.Time) bookingModel.BookingStatus {
	if nowAt.Before(w.Start) {
		return bookingModel.BookingStatusConfirmed
	}
	if nowAt.Before(w.End) {
		return bookingModel.BookingStatusOngoing
	}
	return bookingModel.BookingStatusCompleted
}

// NextStatus returns the status the booking should move to at the instant
// now, and whether that differs from its current status. Cancelled bookings
// are terminal and completed bookings never move back, so both report no
// change.
func NextStatus(b *bookingModel.Booking, nowAt time.Time) (bookingModel.BookingStatus, bool) {
	if b.Status == bookingModel.BookingStatusCancelled || b.Status == bookingModel.BookingStatusCompleted {
		return b.Status, false
	}

	w, err := NewWindow(b.BookingDate, b.StartTime, b.Duration)
	if err != nil {
		return b.Status, false
	}

	derived := DeriveStatus(w, nowAt)
	return derived, derived != b.Status
}
