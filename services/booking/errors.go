package booking

import "errors"

var (
	// ErrBookingNotFound is returned for unknown booking ids and tracking codes.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrServiceNotFound rejects creation against an unknown service id.
	ErrServiceNotFound = errors.New("service not found")

	// ErrTerminalStatus rejects any transition out of COMPLETED or CANCELLED.
	ErrTerminalStatus = errors.New("booking is in a terminal status")

	// ErrInvalidTransition rejects transitions that skip or regress the
	// lifecycle ordering.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateTrackingCode is surfaced by the repository when a generated
	// tracking code collides with an existing booking.
	ErrDuplicateTrackingCode = errors.New("tracking code already exists")

	// ErrTrackingCodeExhausted means repeated collisions; practically
	// unreachable with a 36^6 code space.
	ErrTrackingCodeExhausted = errors.New("could not generate a unique tracking code")
)
