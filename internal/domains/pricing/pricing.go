package pricing

import (
	"trek/shared/constant"
)

const (
	PlanFull    = "full"
	PlanPartial = "partial"
)

// Input carries everything the calculator needs. All amounts are integer
// cents, rates are basis points.
type Input struct {
	TravelerCount         int
	PricePerTravelerCents int64
	PermitFeePerPaxCents  int64
	AddOnSurchargeCents   []int64
	DiscountCents         int64
	TaxRateBps            int64
	DepositBps            int64
	Currency              string
}

// Breakdown is the itemized result. It is always replaced wholesale, never
// patched field by field.
type Breakdown struct {
	BaseCents     int64  `json:"base_cents"`
	FeeCents      int64  `json:"fee_cents"`
	AddOnCents    int64  `json:"add_on_cents"`
	DiscountCents int64  `json:"discount_cents"`
	SubtotalCents int64  `json:"subtotal_cents"`
	TaxCents      int64  `json:"tax_cents"`
	TotalCents    int64  `json:"total_cents"`
	PartialCents  int64  `json:"partial_cents"`
	Currency      string `json:"currency"`
}

// Calculate is pure and deterministic. Invalid inputs such as negative
// traveler counts are rejected upstream by request validation.
func Calculate(in Input) Breakdown {
	base := in.PricePerTravelerCents * int64(in.TravelerCount)
	fees := in.PermitFeePerPaxCents * int64(in.TravelerCount)

	var addons int64
	for _, surcharge := range in.AddOnSurchargeCents {
		addons += surcharge
	}

	subtotal := base + fees + addons + in.DiscountCents
	tax := subtotal * in.TaxRateBps / constant.BasisPointScale
	total := subtotal + tax
	partial := total * in.DepositBps / constant.BasisPointScale

	return Breakdown{
		BaseCents:     base,
		FeeCents:      fees,
		AddOnCents:    addons,
		DiscountCents: in.DiscountCents,
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    total,
		PartialCents:  partial,
		Currency:      in.Currency,
	}
}

// AmountDue returns the amount an authorization must be created for under
// the selected payment plan.
func (b Breakdown) AmountDue(plan string) int64 {
	if plan == PlanPartial {
		return b.PartialCents
	}

	return b.TotalCents
}
