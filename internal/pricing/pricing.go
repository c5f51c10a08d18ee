// Package pricing computes the checkout summary: subtotal, shipping tier,
// promo discount, tax, and grand total. It is a pure function of the cart
// contents and the promo flag; it owns no state and persists nothing.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Config holds the pricing rules. The promo discount rate and total formula
// are deliberately configuration, not literals: checkout variants have
// shipped with both 15% and 25%, and the chosen formula here always
// recomputes tax on the discounted subtotal plus shipping.
type Config struct {
	// ShippingFeeCents is charged when the subtotal is below the free
	// shipping threshold (and the cart is non-empty).
	ShippingFeeCents int64
	// FreeShippingThresholdCents is the subtotal at which shipping
	// becomes free.
	FreeShippingThresholdCents int64
	// PromoDiscountRate is the fraction of the subtotal discounted when a
	// valid promo code has been applied, e.g. 0.25.
	PromoDiscountRate decimal.Decimal
	// TaxRate is applied to (subtotal - discount + shipping), e.g. 0.13.
	TaxRate decimal.Decimal
}

// DefaultConfig returns the standard storefront pricing rules.
func DefaultConfig() Config {
	return Config{
		ShippingFeeCents:           899,
		FreeShippingThresholdCents: 10000,
		PromoDiscountRate:          decimal.RequireFromString("0.25"),
		TaxRate:                    decimal.RequireFromString("0.13"),
	}
}

// Item is a cart line as seen by the calculator: the price snapshot taken
// at add time, never a live catalog price.
type Item struct {
	PriceCents int64
	Quantity   int
}

// Summary is the computed checkout breakdown, all amounts in cents.
type Summary struct {
	SubtotalCents int64
	ShippingCents int64
	DiscountCents int64
	TaxCents      int64
	TotalCents    int64
}

// Calculator derives checkout summaries from cart items.
type Calculator struct {
	cfg Config
}

// NewCalculator returns a Calculator with the given rules.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Summarize computes the checkout breakdown for the given items.
// promoApplied activates the configured percentage discount on the subtotal.
func (c *Calculator) Summarize(items []Item, promoApplied bool) Summary {
	var subtotal int64
	for _, item := range items {
		subtotal += item.PriceCents * int64(item.Quantity)
	}

	var shipping int64
	if subtotal > 0 && subtotal < c.cfg.FreeShippingThresholdCents {
		shipping = c.cfg.ShippingFeeCents
	}

	var discount int64
	if promoApplied {
		discount = decimal.NewFromInt(subtotal).
			Mul(c.cfg.PromoDiscountRate).
			Round(0).
			IntPart()
	}

	taxable := decimal.NewFromInt(subtotal - discount + shipping)
	tax := taxable.Mul(c.cfg.TaxRate).Round(0).IntPart()

	return Summary{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		DiscountCents: discount,
		TaxCents:      tax,
		TotalCents:    subtotal - discount + shipping + tax,
	}
}
