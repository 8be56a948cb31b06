package payment

import (
	"errors"
	"fmt"

	"towing-booking/logger"
	bookingModel "towing-booking/models/booking"
	bookingService "towing-booking/services/booking"
	paymentTypes "towing-booking/types/payment"
)

// Verifier authenticates a gateway notification before its payload is
// trusted. Satisfied by httpServices/midtrans.
type Verifier interface {
	VerifySignature(orderID, statusCode, grossAmount, signatureKey string) error
}

// Result reports what a notification did to the booking.
type Result struct {
	Applied       bool
	BookingStatus bookingModel.BookingStatus
	PaymentStatus bookingModel.PaymentStatus
	Reason        string
}

// Reconciler translates Midtrans transaction vocabulary into booking
// lifecycle transitions. It goes through the same UpdateStatus path as staff
// actions, never bypassing the lifecycle invariants, which also makes
// replayed notifications a safe no-op.
type Reconciler struct {
	lifecycle *bookingService.Service
	verifier  Verifier
}

func NewReconciler(lifecycle *bookingService.Service, verifier Verifier) *Reconciler {
	return &Reconciler{
		lifecycle: lifecycle,
		verifier:  verifier,
	}
}

// MapStatuses translates the gateway's transaction/fraud status pair into the
// internal booking and payment statuses. The third return is false when the
// vocabulary is unrecognized and nothing should change.
func MapStatuses(transactionStatus, fraudStatus string) (bookingModel.BookingStatus, bookingModel.PaymentStatus, bool) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return bookingModel.BookingStatusPending, bookingModel.PaymentStatusPending, true
		}
		if fraudStatus == "accept" {
			return bookingModel.BookingStatusConfirmed, bookingModel.PaymentStatusPaid, true
		}
		return "", "", false
	case "settlement":
		return bookingModel.BookingStatusConfirmed, bookingModel.PaymentStatusPaid, true
	case "pending":
		return bookingModel.BookingStatusPending, bookingModel.PaymentStatusPending, true
	case "cancel", "deny", "expire":
		return bookingModel.BookingStatusCancelled, bookingModel.PaymentStatusFailed, true
	default:
		return "", "", false
	}
}

// Apply verifies and applies one notification.
//
// Persistence failures are returned as errors so the HTTP layer answers
// non-200 and the gateway's redelivery becomes the retry mechanism. Outcomes
// that retrying can never fix (unrecognized vocabulary, transitions the
// lifecycle refuses) are acknowledged with Applied=false instead.
func (r *Reconciler) Apply(n paymentTypes.Notification) (Result, error) {
	if err := r.verifier.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey); err != nil {
		return Result{}, err
	}

	logger.Info(fmt.Sprintf("Payment notification for order %s: transaction_status=%s fraud_status=%s",
		n.OrderID, n.TransactionStatus, n.FraudStatus))

	targetBooking, targetPayment, ok := MapStatuses(n.TransactionStatus, n.FraudStatus)
	if !ok {
		logger.Warning(fmt.Sprintf("Unrecognized transaction status %q for order %s, leaving booking untouched",
			n.TransactionStatus, n.OrderID))
		return Result{Applied: false, Reason: "unrecognized transaction status"}, nil
	}

	_, err := r.lifecycle.UpdateStatus(n.OrderID, targetBooking, "midtrans")
	if err != nil {
		// A transition the lifecycle refuses (terminal booking, regression
		// after staff already advanced it) will refuse it on every
		// redelivery too; acknowledge so the gateway stops retrying.
		if errors.Is(err, bookingService.ErrTerminalStatus) || errors.Is(err, bookingService.ErrInvalidTransition) {
			logger.Warning(fmt.Sprintf("Notification for order %s not applied: %v", n.OrderID, err))
			return Result{Applied: false, Reason: err.Error()}, nil
		}
		return Result{}, err
	}

	if err := r.lifecycle.SetPaymentStatus(n.OrderID, targetPayment); err != nil {
		return Result{}, err
	}

	return Result{Applied: true, BookingStatus: targetBooking, PaymentStatus: targetPayment}, nil
}
