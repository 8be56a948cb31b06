package booking

// BookingStatus is the operational state of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// PaymentStatus tracks what the payment gateway (or cash handover) reported.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// PaymentMethod is chosen by the customer at booking time.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// Helper methods for BookingStatus
func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are allowed out of bs.
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusCompleted || bs == BookingStatusCancelled
}

// CanTransitionTo reports whether the ordered lifecycle permits moving from
// bs to target. The ordering is
// PENDING -> CONFIRMED -> IN_PROGRESS -> COMPLETED, with cancellation allowed
// from PENDING and CONFIRMED only. A same-status "transition" is permitted so
// replayed gateway notifications stay harmless.
func (bs BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if bs == target {
		return true
	}
	if bs.IsTerminal() {
		return false
	}
	switch bs {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusInProgress || target == BookingStatusCancelled
	case BookingStatusInProgress:
		return target == BookingStatusCompleted
	default:
		return false
	}
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusInProgress,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}

func (ps PaymentStatus) String() string {
	return string(ps)
}

func (pm PaymentMethod) String() string {
	return string(pm)
}

func (pm PaymentMethod) IsValid() bool {
	return pm == PaymentMethodCOD || pm == PaymentMethodOnline
}
