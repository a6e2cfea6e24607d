package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "pitch-booking/models/booking"
	"pitch-booking/services/schedule"
)

func TestParsedDateUsesServerLocation(t *testing.T) {
	req := BookingCreateRequest{BookingDate: "2025-07-14"}
	date, err := req.ParsedDate()
	require.NoError(t, err)

	assert.Equal(t, time.Local, date.Location(),
		"booking dates must live in the server's location, not UTC")
	assert.Equal(t, "2025-07-14", date.Format(DateLayout))
}

// A booking whose slot started an hour ago must derive as ongoing against
// the same wall clock the sweep reads, regardless of the server's zone.
func TestParsedDateAlignsWithStatusDerivation(t *testing.T) {
	req := BookingCreateRequest{BookingDate: "2025-07-14"}
	date, err := req.ParsedDate()
	require.NoError(t, err)

	w, err := schedule.NewWindow(date, "18:05", 2)
	require.NoError(t, err)

	localNow := time.Date(2025, 7, 14, 19, 5, 0, 0, time.Local)
	assert.Equal(t, bookingModel.BookingStatusOngoing, schedule.DeriveStatus(w, localNow),
		"a booking started an hour ago must be ongoing")

	beforeStart := time.Date(2025, 7, 14, 17, 0, 0, 0, time.Local)
	assert.Equal(t, bookingModel.BookingStatusConfirmed, schedule.DeriveStatus(w, beforeStart))

	afterEnd := time.Date(2025, 7, 14, 20, 5, 0, 0, time.Local)
	assert.Equal(t, bookingModel.BookingStatusCompleted, schedule.DeriveStatus(w, afterEnd))
}
