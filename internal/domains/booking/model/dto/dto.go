package dto

import (
	"trek/internal/domains/booking/model"
	"trek/shared/constant"
	gDto "trek/shared/dto"
)

type TravelerResponse struct {
	Position    int    `json:"position"`
	FullName    string `json:"full_name"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

type BookingResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	TourID          string             `json:"tour_id"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	TravelerCount   int                `json:"traveler_count"`
	PaymentPlan     string             `json:"payment_plan"`
	TotalCents      int64              `json:"total_cents"`
	AmountPaidCents int64              `json:"amount_paid_cents"`
	Currency        string             `json:"currency"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"payment_status"`
	Travelers       []TravelerResponse `json:"travelers"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking, travelers []model.Traveler) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.TourID = mod.TourID
	r.StartDate = mod.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = mod.EndDate.Format(constant.DateOnlyFormat)
	r.TravelerCount = mod.TravelerCount
	r.PaymentPlan = mod.PaymentPlan
	r.TotalCents = mod.TotalCents
	r.AmountPaidCents = mod.AmountPaidCents
	r.Currency = mod.Currency
	r.Status = mod.Status
	r.PaymentStatus = mod.PaymentStatus
	r.Metadata.FromModel(mod.Metadata)

	r.Travelers = make([]TravelerResponse, len(travelers))
	for i, traveler := range travelers {
		r.Travelers[i] = TravelerResponse{
			Position:    traveler.Position,
			FullName:    traveler.FullName,
			Gender:      traveler.Gender,
			DateOfBirth: traveler.DateOfBirth,
		}
	}
}
