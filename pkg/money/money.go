// Package money formats cent amounts for display. It is a presentation
// helper, not part of the state core.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Format renders a cent amount as a dollar display string, e.g. 1090 →
// "$10.90". Negative amounts keep their sign: -50 → "-$0.50".
func Format(cents int64) string {
	d := decimal.NewFromInt(cents).Div(hundred)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
