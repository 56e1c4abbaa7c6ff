package model

import (
	"trek/shared/model"
)

const (
	TableName  = "tours"
	EntityName = "tour"

	FieldID           = "id"
	FieldName         = "name"
	FieldSlug         = "slug"
	FieldRegion       = "region"
	FieldDurationDays = "duration_days"
	FieldActive       = "active"
)

const (
	AddOnTableName  = "tour_addons"
	AddOnEntityName = "tour_addon"

	AddOnFieldID     = "id"
	AddOnFieldTourID = "tour_id"
	AddOnFieldCode   = "code"
)

type Tour struct {
	ID                    string `db:"id"`
	Name                  string `db:"name"`
	Slug                  string `db:"slug"`
	Region                string `db:"region"`
	Description           string `db:"description"`
	DurationDays          int    `db:"duration_days"`
	PricePerTravelerCents int64  `db:"price_per_traveler_cents"`
	PermitFeeCents        int64  `db:"permit_fee_cents"`
	DiscountCents         int64  `db:"discount_cents"`
	Active                bool   `db:"active"`
	model.Metadata
}

type TourAddOn struct {
	ID             string `db:"id"`
	TourID         string `db:"tour_id"`
	Code           string `db:"code"`
	Name           string `db:"name"`
	SurchargeCents int64  `db:"surcharge_cents"`
	model.Metadata
}
