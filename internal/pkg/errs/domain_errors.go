package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Schedule / availability errors
	ErrScheduleNotFound = errors.New("schedule not found")

	// Booking errors
	ErrTeamFull           = errors.New("team is already full")
	ErrAlreadyOnCourt     = errors.New("user already booked on this court")
	ErrDuplicateDay       = errors.New("user already has a booking on this date")
	ErrBookingInFlight    = errors.New("booking request already in flight")
	ErrNotCancellable     = errors.New("booking can no longer be cancelled")
	ErrInvalidCourtNumber = errors.New("invalid court number")
	ErrInvalidTeamNumber  = errors.New("invalid team number")

	// Validation errors
	ErrInvalidSearchRange = errors.New("invalid search range")
	ErrDomainValidation   = errors.New("domain validation error")

	// Operation errors
	ErrBackendUnavailable = errors.New("backend operation failed")
)
