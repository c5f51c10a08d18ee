package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculator_Summarize(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	tests := []struct {
		name    string
		items   []Item
		promo   bool
		want    Summary
	}{
		{
			name:  "empty cart is all zeros",
			items: nil,
			want:  Summary{},
		},
		{
			name:  "below threshold pays shipping",
			items: []Item{{PriceCents: 2500, Quantity: 2}}, // subtotal 5000
			want: Summary{
				SubtotalCents: 5000,
				ShippingCents: 899,
				TaxCents:      767, // (5000 + 899) * 0.13 = 766.87 → 767
				TotalCents:    6666,
			},
		},
		{
			name:  "at threshold ships free",
			items: []Item{{PriceCents: 10000, Quantity: 1}},
			want: Summary{
				SubtotalCents: 10000,
				TaxCents:      1300,
				TotalCents:    11300,
			},
		},
		{
			name:  "above threshold ships free",
			items: []Item{{PriceCents: 7500, Quantity: 2}}, // subtotal 15000
			want: Summary{
				SubtotalCents: 15000,
				TaxCents:      1950,
				TotalCents:    16950,
			},
		},
		{
			name:  "promo discounts the subtotal",
			items: []Item{{PriceCents: 5000, Quantity: 2}}, // subtotal 10000
			promo: true,
			want: Summary{
				SubtotalCents: 10000,
				DiscountCents: 2500,
				TaxCents:      975, // (10000 - 2500 + 0) * 0.13
				TotalCents:    8475,
			},
		},
		{
			name:  "promo with shipping below threshold",
			items: []Item{{PriceCents: 1090, Quantity: 3}}, // subtotal 3270
			promo: true,
			want: Summary{
				SubtotalCents: 3270,
				ShippingCents: 899,
				DiscountCents: 818, // 3270 * 0.25 = 817.5 → 818
				TaxCents:      436, // (3270 - 818 + 899) * 0.13 = 435.63 → 436
				TotalCents:    3787,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.Summarize(tt.items, tt.promo))
		})
	}
}

func TestCalculator_ConfigurableRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PromoDiscountRate = decimal.RequireFromString("0.15")
	calc := NewCalculator(cfg)

	got := calc.Summarize([]Item{{PriceCents: 10000, Quantity: 1}}, true)
	assert.Equal(t, int64(1500), got.DiscountCents)
	// tax = (10000 - 1500) * 0.13 = 1105
	assert.Equal(t, int64(1105), got.TaxCents)
	assert.Equal(t, int64(9605), got.TotalCents)
}

func TestCalculator_TotalIsSumOfParts(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	items := []Item{
		{PriceCents: 1090, Quantity: 2},
		{PriceCents: 2095, Quantity: 1},
		{PriceCents: 3599, Quantity: 4},
	}
	for _, promo := range []bool{false, true} {
		s := calc.Summarize(items, promo)
		assert.Equal(t,
			s.SubtotalCents-s.DiscountCents+s.ShippingCents+s.TaxCents,
			s.TotalCents)
	}
}
