package pricing

import "github.com/shopspring/decimal"

// CeilTo rounds amount to cents and then up to the next multiple of increment.
// Rounding an already rounded amount returns it unchanged. A non-positive
// increment only rounds to cents.
func CeilTo(amount, increment float64) float64 {
	d := decimal.NewFromFloat(amount).Round(2)
	if increment <= 0 {
		return d.InexactFloat64()
	}
	step := decimal.NewFromFloat(increment)
	return d.Div(step).Ceil().Mul(step).InexactFloat64()
}
