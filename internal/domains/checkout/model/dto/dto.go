package dto

import (
	"time"
	"trek/infras/jwt"
	"trek/infras/paygate"
	draftModel "trek/internal/domains/draft/model"
	"trek/internal/domains/pricing"
)

type TravelerRequest struct {
	FullName    string `json:"full_name"     validate:"required,max=100"`
	Gender      string `json:"gender"        validate:"omitempty,oneof=male female other"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty"`
}

// UpsertDraftRequest accepts partial form state. Full-field validation only
// happens at submission; here the shape just has to be storable.
type UpsertDraftRequest struct {
	TourID         string            `json:"tour_id"         validate:"required"`
	StartDate      string            `json:"start_date"      validate:"omitempty"`
	TravelerCount  int               `json:"traveler_count"  validate:"required,min=1"`
	Travelers      []TravelerRequest `json:"travelers"       validate:"omitempty,dive"`
	AddOnCodes     []string          `json:"add_on_codes"    validate:"omitempty,dive,required"`
	PaymentPlan    string            `json:"payment_plan"    validate:"omitempty,oneof=full partial"`
	LeadName       string            `json:"lead_name"       validate:"omitempty,max=100"`
	Email          string            `json:"email"           validate:"omitempty,email,max=100"`
	Phone          string            `json:"phone"           validate:"omitempty,max=20"`
	Country        string            `json:"country"         validate:"omitempty,max=100"`
	Gender         string            `json:"gender"          validate:"omitempty,oneof=male female other"`
	DateOfBirth    string            `json:"date_of_birth"   validate:"omitempty"`
	ReferralSource string            `json:"referral_source" validate:"omitempty,max=100"`
	TermsAccepted  bool              `json:"terms_accepted"`
}

func (r UpsertDraftRequest) ToDraft() draftModel.Draft {
	plan := r.PaymentPlan
	if plan == "" {
		plan = pricing.PlanFull
	}

	travelers := make([]draftModel.Traveler, len(r.Travelers))
	for i, traveler := range r.Travelers {
		travelers[i] = draftModel.Traveler{
			FullName:    traveler.FullName,
			Gender:      traveler.Gender,
			DateOfBirth: traveler.DateOfBirth,
		}
	}

	return draftModel.Draft{
		TourID:         r.TourID,
		StartDate:      r.StartDate,
		TravelerCount:  r.TravelerCount,
		Travelers:      travelers,
		AddOnCodes:     r.AddOnCodes,
		PaymentPlan:    plan,
		LeadName:       r.LeadName,
		Email:          r.Email,
		Phone:          r.Phone,
		Country:        r.Country,
		Gender:         r.Gender,
		DateOfBirth:    r.DateOfBirth,
		ReferralSource: r.ReferralSource,
		TermsAccepted:  r.TermsAccepted,
	}
}

type VerifyRequest struct {
	Code string `json:"code" validate:"required"`
}

type ConfirmRequest struct {
	Method string `json:"method" validate:"required"`
	Token  string `json:"token"  validate:"required"`
}

func (r *ConfirmRequest) ToInstrument() paygate.Instrument {
	return paygate.Instrument{
		Method: r.Method,
		Token:  r.Token,
	}
}

// VerificationStatus is the client-visible slice of an in-flight attempt.
// The credential itself never leaves the provider.
type VerificationStatus struct {
	Email       string    `json:"email"`
	Digits      int       `json:"digits"`
	ResendAfter time.Time `json:"resend_after"`
}

// PaymentInstruction carries what the client needs to drive the gateway's
// confirmation UI.
type PaymentInstruction struct {
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

type StatusResponse struct {
	SessionID    string              `json:"session_id"`
	State        draftModel.State    `json:"state"`
	Draft        draftModel.Draft    `json:"draft"`
	Pricing      *pricing.Breakdown  `json:"pricing,omitempty"`
	Verification *VerificationStatus `json:"verification,omitempty"`
	Payment      *PaymentInstruction `json:"payment,omitempty"`
	BookingID    string              `json:"booking_id,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func (r *StatusResponse) FromEnvelope(env draftModel.Envelope) {
	r.SessionID = env.SessionID
	r.State = env.State
	r.Draft = env.Draft
	r.Pricing = env.Pricing
	r.BookingID = env.BookingID
	r.UpdatedAt = env.UpdatedAt

	if env.Verification != nil {
		r.Verification = &VerificationStatus{
			Email:       env.Verification.Email,
			Digits:      env.Verification.Digits,
			ResendAfter: env.Verification.ResendAfter,
		}
	}

	if env.Authorization != nil {
		r.Payment = &PaymentInstruction{
			Reference:    env.Authorization.Reference,
			ClientSecret: env.Authorization.ClientSecret,
			AmountCents:  env.Authorization.AmountCents,
			Currency:     env.Authorization.Currency,
		}
	}
}

type VerifyResponse struct {
	StatusResponse
	Tokens *jwt.TokenPair `json:"tokens,omitempty"`
}
