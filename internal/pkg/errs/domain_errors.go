package errs

import "errors"

// Sentinel errors shared across the usecase layers. Handlers map these onto
// HTTP status codes; see handler/httperr.
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSlotConflict        = errors.New("slot conflict")
	ErrInvalidTimeSlot     = errors.New("invalid time slot")
	ErrOutOfBookingWindow  = errors.New("target date outside booking window")
	ErrNotEligible         = errors.New("requester not eligible to book")

	// Waitlist errors
	ErrWaitlistEntryNotFound = errors.New("waitlist entry not found")
	ErrSlotNotBooked         = errors.New("slot is not currently booked")
	ErrWaitlistNotOwned      = errors.New("waitlist entry not owned by user")

	// Guest errors
	ErrInvalidGuest = errors.New("invalid guest details")

	// Availability errors
	ErrBusyFeedUnavailable = errors.New("busy feed unavailable")

	// Maintenance errors
	ErrMaintenanceNotFound = errors.New("maintenance window not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")

	// ErrTransient marks retryable upstream/storage failures; callers may
	// retry with backoff, everything else is user-correctable.
	ErrTransient = errors.New("transient failure")
)

func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
