package constants

// Organization permissions
const (
	// Admin permissions
	PermAdminFull    = "pitch-booking.admin.full-permit"
	PermOperatorFull = "pitch-booking.operator.full-permit"
	PermStaffFull    = "pitch-booking.staff.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	BookingManagementPermissions = []string{
		PermAdminFull,
		PermOperatorFull,
		PermStaffFull,
	}
)
