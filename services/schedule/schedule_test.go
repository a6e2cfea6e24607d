package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "pitch-booking/models/booking"
)

var testDate = time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

func mustWindow(t *testing.T, startTime string, hours int) Window {
	t.Helper()
	w, err := NewWindow(testDate, startTime, hours)
	require.NoError(t, err)
	return w
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minutes int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", minutes: 0},
		{name: "morning", input: "09:30", minutes: 570},
		{name: "evening", input: "21:05", minutes: 1265},
		{name: "last minute", input: "23:59", minutes: 1439},
		{name: "padded whitespace", input: " 14:00 ", minutes: 840},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "missing colon", input: "1400", wantErr: true},
		{name: "single digit minute", input: "14:0", wantErr: true},
		{name: "single digit hour", input: "9:30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, err := ParseClock(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}

func TestResolveDuration(t *testing.T) {
	assert.Equal(t, 1, ResolveDuration(0), "missing duration defaults to one hour")
	assert.Equal(t, 2, ResolveDuration(2))
	assert.Equal(t, -1, ResolveDuration(-1), "negative values pass through for rejection")
}

func TestNewWindow(t *testing.T) {
	t.Run("builds half-open window on booking date", func(t *testing.T) {
		w, err := NewWindow(testDate, "14:00", 2)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 7, 14, 14, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 7, 14, 16, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("anchors to beginning of day even with a timestamp date", func(t *testing.T) {
		noonDate := time.Date(2025, 7, 14, 12, 34, 56, 0, time.UTC)
		w, err := NewWindow(noonDate, "09:00", 1)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC), w.Start)
	})

	t.Run("slot ending exactly at midnight is allowed", func(t *testing.T) {
		_, err := NewWindow(testDate, "23:00", 1)
		require.NoError(t, err)
	})

	t.Run("rejects window crossing midnight", func(t *testing.T) {
		_, err := NewWindow(testDate, "23:00", 2)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("rejects zero duration", func(t *testing.T) {
		_, err := NewWindow(testDate, "10:00", 0)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("rejects negative duration", func(t *testing.T) {
		_, err := NewWindow(testDate, "10:00", -3)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("rejects malformed start time", func(t *testing.T) {
		_, err := NewWindow(testDate, "25:99", 1)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestEndClock(t *testing.T) {
	tests := []struct {
		start   string
		hours   int
		want    string
		wantErr bool
	}{
		{start: "14:00", hours: 1, want: "15:00"},
		{start: "14:30", hours: 2, want: "16:30"},
		{start: "09:00", hours: 3, want: "12:00"},
		{start: "23:00", hours: 1, want: "24:00"},
		{start: "23:30", hours: 1, wantErr: true},
		{start: "10:00", hours: 0, wantErr: true},
	}

	for _, tt := range tests {
		got, err := EndClock(tt.start, tt.hours)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidInterval)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Window
		b    Window
		want bool
	}{
		{
			name: "back to back does not overlap",
			a:    Window{Start: testDate.Add(14 * time.Hour), End: testDate.Add(15 * time.Hour)},
			b:    Window{Start: testDate.Add(15 * time.Hour), End: testDate.Add(16 * time.Hour)},
			want: false,
		},
		{
			name: "partial overlap",
			a:    Window{Start: testDate.Add(14 * time.Hour), End: testDate.Add(15 * time.Hour)},
			b:    Window{Start: testDate.Add(14*time.Hour + 30*time.Minute), End: testDate.Add(15*time.Hour + 30*time.Minute)},
			want: true,
		},
		{
			name: "containment",
			a:    Window{Start: testDate.Add(10 * time.Hour), End: testDate.Add(14 * time.Hour)},
			b:    Window{Start: testDate.Add(11 * time.Hour), End: testDate.Add(12 * time.Hour)},
			want: true,
		},
		{
			name: "identical windows",
			a:    Window{Start: testDate.Add(10 * time.Hour), End: testDate.Add(11 * time.Hour)},
			b:    Window{Start: testDate.Add(10 * time.Hour), End: testDate.Add(11 * time.Hour)},
			want: true,
		},
		{
			name: "disjoint",
			a:    Window{Start: testDate.Add(8 * time.Hour), End: testDate.Add(9 * time.Hour)},
			b:    Window{Start: testDate.Add(18 * time.Hour), End: testDate.Add(19 * time.Hour)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []bookingModel.Booking{
		{ID: 1, BookingDate: testDate, StartTime: "14:00", Duration: 1, Status: bookingModel.BookingStatusConfirmed},
		{ID: 2, BookingDate: testDate, StartTime: "18:00", Duration: 2, Status: bookingModel.BookingStatusCancelled},
	}

	t.Run("back to back slot is free", func(t *testing.T) {
		assert.False(t, HasConflict(existing, mustWindow(t, "15:00", 1), 0))
	})

	t.Run("overlapping slot conflicts", func(t *testing.T) {
		assert.True(t, HasConflict(existing, mustWindow(t, "14:30", 1), 0))
	})

	t.Run("cancelled bookings never block", func(t *testing.T) {
		assert.False(t, HasConflict(existing, mustWindow(t, "18:00", 2), 0))
	})

	t.Run("editing a booking excludes itself", func(t *testing.T) {
		assert.False(t, HasConflict(existing, mustWindow(t, "14:00", 1), 1))
		assert.True(t, HasConflict(existing, mustWindow(t, "14:00", 1), 99))
	})

	t.Run("unparseable stored booking is skipped", func(t *testing.T) {
		broken := []bookingModel.Booking{
			{ID: 3, BookingDate: testDate, StartTime: "xx:yy", Duration: 1, Status: bookingModel.BookingStatusConfirmed},
		}
		assert.False(t, HasConflict(broken, mustWindow(t, "10:00", 1), 0))
	})
}

func TestDeriveStatus(t *testing.T) {
	w := mustWindow(t, "14:00", 2) // 14:00-16:00

	tests := []struct {
		name string
		now  time.Time
		want bookingModel.BookingStatus
	}{
		{name: "before start", now: testDate.Add(13 * time.Hour), want: bookingModel.BookingStatusConfirmed},
		{name: "exactly at start", now: w.Start, want: bookingModel.BookingStatusOngoing},
		{name: "inside window", now: testDate.Add(15 * time.Hour), want: bookingModel.BookingStatusOngoing},
		{name: "exactly at end", now: w.End, want: bookingModel.BookingStatusCompleted},
		{name: "after end", now: testDate.Add(20 * time.Hour), want: bookingModel.BookingStatusCompleted},
		{name: "previous day window", now: testDate.Add(48 * time.Hour), want: bookingModel.BookingStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(w, tt.now)
			assert.Equal(t, tt.want, got)
			// Re-deriving with the same inputs never changes the answer.
			assert.Equal(t, got, DeriveStatus(w, tt.now))
		})
	}
}

func TestNextStatus(t *testing.T) {
	base := bookingModel.Booking{
		ID:          7,
		BookingDate: testDate,
		StartTime:   "14:00",
		Duration:    2,
	}

	t.Run("confirmed moves to ongoing after start", func(t *testing.T) {
		b := base
		b.Status = bookingModel.BookingStatusConfirmed
		next, changed := NextStatus(&b, testDate.Add(14*time.Hour+30*time.Minute))
		assert.True(t, changed)
		assert.Equal(t, bookingModel.BookingStatusOngoing, next)
	})

	t.Run("confirmed jumps straight to completed after end", func(t *testing.T) {
		b := base
		b.Status = bookingModel.BookingStatusConfirmed
		next, changed := NextStatus(&b, testDate.Add(17*time.Hour))
		assert.True(t, changed)
		assert.Equal(t, bookingModel.BookingStatusCompleted, next)
	})

	t.Run("no change before start", func(t *testing.T) {
		b := base
		b.Status = bookingModel.BookingStatusConfirmed
		next, changed := NextStatus(&b, testDate.Add(10*time.Hour))
		assert.False(t, changed)
		assert.Equal(t, bookingModel.BookingStatusConfirmed, next)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		b := base
		b.Status = bookingModel.BookingStatusCancelled
		next, changed := NextStatus(&b, testDate.Add(17*time.Hour))
		assert.False(t, changed)
		assert.Equal(t, bookingModel.BookingStatusCancelled, next)
	})

	t.Run("completed never moves back", func(t *testing.T) {
		b := base
		b.Status = bookingModel.BookingStatusCompleted
		next, changed := NextStatus(&b, testDate.Add(10*time.Hour))
		assert.False(t, changed)
		assert.Equal(t, bookingModel.BookingStatusCompleted, next)
	})

	t.Run("idempotent once ongoing", func(t *testing.T) {
		b := base
		b.Status = bookingModel.BookingStatusOngoing
		next, changed := NextStatus(&b, testDate.Add(15*time.Hour))
		assert.False(t, changed)
		assert.Equal(t, bookingModel.BookingStatusOngoing, next)
	})
}
