package dto

import (
	"trek/internal/domains/tour/model"
	"trek/shared"
	gDto "trek/shared/dto"
)

type TourAddOnResponse struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	SurchargeCents int64  `json:"surcharge_cents"`
}

func (r *TourAddOnResponse) FromModel(mod model.TourAddOn) {
	r.Code = mod.Code
	r.Name = mod.Name
	r.SurchargeCents = mod.SurchargeCents
}

type TourResponse struct {
	ID                    string              `json:"id"`
	Name                  string              `json:"name"`
	Slug                  string              `json:"slug"`
	Region                string              `json:"region"`
	Description           string              `json:"description"`
	DurationDays          int                 `json:"duration_days"`
	PricePerTravelerCents int64               `json:"price_per_traveler_cents"`
	PermitFeeCents        int64               `json:"permit_fee_cents"`
	DiscountCents         int64               `json:"discount_cents"`
	AddOns                []TourAddOnResponse `json:"add_ons"`
	gDto.Metadata
}

func (r *TourResponse) FromModel(mod model.Tour, addons []model.TourAddOn) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Slug = mod.Slug
	r.Region = mod.Region
	r.Description = mod.Description
	r.DurationDays = mod.DurationDays
	r.PricePerTravelerCents = mod.PricePerTravelerCents
	r.PermitFeeCents = mod.PermitFeeCents
	r.DiscountCents = mod.DiscountCents
	r.Metadata.FromModel(mod.Metadata)

	r.AddOns = make([]TourAddOnResponse, len(addons))
	for i, addon := range addons {
		r.AddOns[i].FromModel(addon)
	}
}

type GetToursResponse struct {
	Tours     []TourResponse `json:"tours"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetToursResponse) FromModels(models []model.Tour, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tours = make([]TourResponse, len(models))
	for i, mod := range models {
		r.Tours[i].FromModel(mod, nil)
	}
}
