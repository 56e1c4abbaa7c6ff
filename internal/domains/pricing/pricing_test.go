package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trek/internal/domains/pricing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   pricing.Input
		want pricing.Breakdown
	}{
		{
			// 2 travelers at $1200, private room $350, $50/traveler fee,
			// -$500 promo, 10% tax, 20% deposit.
			name: "two travelers with add-on and discount",
			in: pricing.Input{
				TravelerCount:         2,
				PricePerTravelerCents: 120000,
				PermitFeePerPaxCents:  5000,
				AddOnSurchargeCents:   []int64{35000},
				DiscountCents:         -50000,
				TaxRateBps:            1000,
				DepositBps:            2000,
				Currency:              "USD",
			},
			want: pricing.Breakdown{
				BaseCents:     240000,
				FeeCents:      10000,
				AddOnCents:    35000,
				DiscountCents: -50000,
				SubtotalCents: 235000,
				TaxCents:      23500,
				TotalCents:    258500,
				PartialCents:  51700,
				Currency:      "USD",
			},
		},
		{
			name: "single traveler no extras",
			in: pricing.Input{
				TravelerCount:         1,
				PricePerTravelerCents: 80000,
				TaxRateBps:            1000,
				DepositBps:            2000,
				Currency:              "USD",
			},
			want: pricing.Breakdown{
				BaseCents:     80000,
				SubtotalCents: 80000,
				TaxCents:      8000,
				TotalCents:    88000,
				PartialCents:  17600,
				Currency:      "USD",
			},
		},
		{
			name: "zero tax rate",
			in: pricing.Input{
				TravelerCount:         3,
				PricePerTravelerCents: 10000,
				PermitFeePerPaxCents:  1000,
				DepositBps:            2500,
				Currency:              "USD",
			},
			want: pricing.Breakdown{
				BaseCents:     30000,
				FeeCents:      3000,
				SubtotalCents: 33000,
				TotalCents:    33000,
				PartialCents:  8250,
				Currency:      "USD",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Calculate(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.SubtotalCents+got.TaxCents, got.TotalCents)
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	in := pricing.Input{
		TravelerCount:         2,
		PricePerTravelerCents: 120000,
		AddOnSurchargeCents:   []int64{35000, 12500},
		TaxRateBps:            1000,
		DepositBps:            2000,
		Currency:              "USD",
	}

	assert.Equal(t, pricing.Calculate(in), pricing.Calculate(in))
}

func TestBreakdown_AmountDue(t *testing.T) {
	breakdown := pricing.Breakdown{TotalCents: 258500, PartialCents: 51700}

	assert.Equal(t, int64(258500), breakdown.AmountDue(pricing.PlanFull))
	assert.Equal(t, int64(51700), breakdown.AmountDue(pricing.PlanPartial))
	assert.Equal(t, int64(258500), breakdown.AmountDue(""))
}
