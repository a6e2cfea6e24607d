package booking

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingSource records where the booking originated
type BookingSource string

const (
	BookingSourceManual    BookingSource = "manual"
	BookingSourcePlayerApp BookingSource = "player-app"
)

// Helper methods for BookingStatus
func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusConfirmed, BookingStatusOngoing, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the booking can never leave this state
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusCompleted || bs == BookingStatusCancelled
}

// IsActive returns true if the booking still occupies its time slot.
// Cancelled bookings free the slot and never block new bookings.
func (bs BookingStatus) IsActive() bool {
	return bs != BookingStatusCancelled
}

// CanBeUpdated returns true if the booking schedule can still be edited
func (bs BookingStatus) CanBeUpdated() bool {
	return bs == BookingStatusConfirmed || bs == BookingStatusOngoing
}

// CanBeCancelled returns true if cancellation is still allowed
func (bs BookingStatus) CanBeCancelled() bool {
	return bs == BookingStatusConfirmed || bs == BookingStatusOngoing
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusConfirmed,
		BookingStatusOngoing,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}

func (s BookingSource) IsValid() bool {
	return s == BookingSourceManual || s == BookingSourcePlayerApp
}
