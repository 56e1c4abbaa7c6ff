package model

import (
	"time"
	"trek/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldTourID    = "tour_id"
	FieldSessionID = "session_id"
	FieldStatus    = "status"
)

const (
	TravelerTableName  = "travelers"
	TravelerEntityName = "traveler"

	TravelerFieldID        = "id"
	TravelerFieldBookingID = "booking_id"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

const (
	PaymentStatusNotPaid     = "Not Paid"
	PaymentStatusDepositPaid = "Deposit Paid"
	PaymentStatusPaidInFull  = "Paid in Full"
	PaymentStatusRefunded    = "Refunded"
)

const (
	EventBookingFinalized = "booking.finalized"
	EventReconciliation   = "checkout.reconciliation.required"
)

type Booking struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	TourID           string    `db:"tour_id"`
	SessionID        string    `db:"session_id"`
	StartDate        time.Time `db:"start_date"`
	EndDate          time.Time `db:"end_date"`
	TravelerCount    int       `db:"traveler_count"`
	PaymentPlan      string    `db:"payment_plan"`
	PaymentReference string    `db:"payment_reference"`
	TotalCents       int64     `db:"total_cents"`
	AmountPaidCents  int64     `db:"amount_paid_cents"`
	Currency         string    `db:"currency"`
	Status           string    `db:"status"`
	PaymentStatus    string    `db:"payment_status"`
	model.Metadata
}

type Traveler struct {
	ID          string `db:"id"`
	BookingID   string `db:"booking_id"`
	Position    int    `db:"position"`
	FullName    string `db:"full_name"`
	Gender      string `db:"gender"`
	DateOfBirth string `db:"date_of_birth"`
	model.Metadata
}

// FinalizedEvent is the payload published on the booking events topic once a
// checkout lands durably.
type FinalizedEvent struct {
	Type             string `json:"type"`
	BookingID        string `json:"booking_id"`
	SessionID        string `json:"session_id"`
	UserID           string `json:"user_id"`
	TourID           string `json:"tour_id"`
	PaymentReference string `json:"payment_reference"`
	AmountPaidCents  int64  `json:"amount_paid_cents"`
	Currency         string `json:"currency"`
}

// ReconciliationEvent is published when a payment was captured but the
// booking write failed. A consumer keyed by payment reference picks it up;
// the payment is never retried from here.
type ReconciliationEvent struct {
	Type             string `json:"type"`
	SessionID        string `json:"session_id"`
	UserID           string `json:"user_id"`
	TourID           string `json:"tour_id"`
	PaymentReference string `json:"payment_reference"`
	AmountPaidCents  int64  `json:"amount_paid_cents"`
	Currency         string `json:"currency"`
	Reason           string `json:"reason"`
}
