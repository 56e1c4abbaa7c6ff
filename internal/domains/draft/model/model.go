package model

import (
	"time"
	"trek/infras/paygate"
	"trek/internal/domains/pricing"
)

// State is the checkout state machine position, persisted inside the envelope
// so any instance can resume the flow.
type State string

const (
	StateDrafting        State = "DRAFTING"
	StateSubmitting      State = "SUBMITTING"
	StateIdentityBlocked State = "IDENTITY_BLOCKED"
	StateVerifying       State = "VERIFYING"
	StateAuthorizing     State = "AUTHORIZING"
	StateConfirming      State = "CONFIRMING"
	StateFinalizing      State = "FINALIZING"
	StateDone            State = "DONE"
)

const VerificationPending = "pending"

// Traveler is the per-traveler detail stub captured in the form.
type Traveler struct {
	FullName    string `json:"full_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

// Draft is the working checkout form state. It has no server id until it is
// finalized into a Booking; the checkout session id scopes its storage slot.
type Draft struct {
	TourID         string     `json:"tour_id"`
	StartDate      string     `json:"start_date"`
	TravelerCount  int        `json:"traveler_count"`
	Travelers      []Traveler `json:"travelers"`
	AddOnCodes     []string   `json:"add_on_codes"`
	PaymentPlan    string     `json:"payment_plan"`
	LeadName       string     `json:"lead_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Country        string     `json:"country"`
	Gender         string     `json:"gender"`
	DateOfBirth    string     `json:"date_of_birth"`
	ReferralSource string     `json:"referral_source"`
	TermsAccepted  bool       `json:"terms_accepted"`
}

// VerificationAttempt tracks an in-flight one-time credential. There is no
// in-app expiry; the attempt lives until consumed or cancelled.
type VerificationAttempt struct {
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	Digits      int       `json:"digits"`
	ResendAfter time.Time `json:"resend_after"`
}

// UserRef is the authenticated identity bound to the session after
// verification succeeds.
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Envelope is the single-slot write-ahead record for one checkout session.
// Every transition writes the whole envelope at once; it is never patched
// field by field, so a concurrent reader always sees a consistent snapshot.
type Envelope struct {
	SessionID        string                 `json:"session_id"`
	State            State                  `json:"state"`
	Draft            Draft                  `json:"draft"`
	Pricing          *pricing.Breakdown     `json:"pricing,omitempty"`
	Verification     *VerificationAttempt   `json:"verification,omitempty"`
	Authorization    *paygate.Authorization `json:"authorization,omitempty"`
	User             *UserRef               `json:"user,omitempty"`
	BookingID        string                 `json:"booking_id,omitempty"`
	PaymentReference string                 `json:"payment_reference,omitempty"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// Verified reports whether the session holds an authenticated identity.
func (e *Envelope) Verified() bool {
	return e.User != nil && e.User.ID != ""
}

// VerificationInFlight reports whether a one-time credential is pending.
func (e *Envelope) VerificationInFlight() bool {
	return e.Verification != nil && e.Verification.Status == VerificationPending
}
