package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPayment(t *testing.T) {
	t.Run("partial payment accumulates", func(t *testing.T) {
		b := Booking{TotalPrice: 100, AmountPaid: 0}
		require.NoError(t, b.ApplyPayment(40))
		require.NoError(t, b.ApplyPayment(30))
		assert.Equal(t, 70.0, b.AmountPaid)
		assert.Equal(t, 30.0, b.RemainingBalance())
		assert.False(t, b.IsFullyPaid())
	})

	t.Run("paying exactly the balance completes payment", func(t *testing.T) {
		b := Booking{TotalPrice: 100, AmountPaid: 80}
		require.NoError(t, b.ApplyPayment(20))
		assert.True(t, b.IsFullyPaid())
	})

	t.Run("rejects payment above remaining balance", func(t *testing.T) {
		b := Booking{TotalPrice: 100, AmountPaid: 80}
		err := b.ApplyPayment(30)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, 80.0, b.AmountPaid, "rejected payment must not mutate the booking")
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		b := Booking{TotalPrice: 100}
		assert.ErrorIs(t, b.ApplyPayment(0), ErrInvalidAmount)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		b := Booking{TotalPrice: 100}
		assert.ErrorIs(t, b.ApplyPayment(-5), ErrInvalidAmount)
	})
}

func TestSetTotalPrice(t *testing.T) {
	t.Run("raising the price keeps the paid amount", func(t *testing.T) {
		b := Booking{TotalPrice: 100, AmountPaid: 60}
		require.NoError(t, b.SetTotalPrice(150))
		assert.Equal(t, 150.0, b.TotalPrice)
		assert.Equal(t, 90.0, b.RemainingBalance())
	})

	t.Run("lowering the price above the paid amount is allowed", func(t *testing.T) {
		b := Booking{TotalPrice: 100, AmountPaid: 60}
		require.NoError(t, b.SetTotalPrice(80))
		assert.Equal(t, 20.0, b.RemainingBalance())
	})

	t.Run("rejects a price below what was already collected", func(t *testing.T) {
		b := Booking{TotalPrice: 100, AmountPaid: 60}
		err := b.SetTotalPrice(50)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, 100.0, b.TotalPrice, "rejected price change must not mutate the booking")
		assert.False(t, b.RemainingBalance() < 0)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		b := Booking{TotalPrice: 100}
		assert.ErrorIs(t, b.SetTotalPrice(-10), ErrInvalidAmount)
	})
}

func TestBookingStatusHelpers(t *testing.T) {
	for _, s := range GetAllBookingStatuses() {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, BookingStatus("unknown").IsValid())

	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.False(t, BookingStatusOngoing.IsTerminal())

	assert.False(t, BookingStatusCancelled.IsActive(), "cancelled bookings free their slot")
	assert.True(t, BookingStatusCompleted.IsActive())

	assert.True(t, BookingStatusConfirmed.CanBeCancelled())
	assert.True(t, BookingStatusOngoing.CanBeCancelled())
	assert.False(t, BookingStatusCompleted.CanBeCancelled())
	assert.False(t, BookingStatusCancelled.CanBeCancelled())
}

func TestBookingSource(t *testing.T) {
	assert.True(t, BookingSourceManual.IsValid())
	assert.True(t, BookingSourcePlayerApp.IsValid())
	assert.False(t, BookingSource("web").IsValid())
}
