package payments

import "github.com/shopspring/decimal"

// PlatformFee computes the marketplace cut of a collaboration amount, rounded
// half-up to cents. Rates are fractions (0.05 = 5%). Non-positive inputs
// yield zero rather than an error; validation belongs to the caller.
func PlatformFee(amount, rate float64) float64 {
	if amount <= 0 || rate <= 0 {
		return 0
	}
	fee := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate))
	f, _ := fee.Round(2).Float64()
	return f
}

// NetAmount is what the KOL receives after the platform fee.
func NetAmount(amount, rate float64) float64 {
	if amount <= 0 {
		return 0
	}
	net := decimal.NewFromFloat(amount).Sub(decimal.NewFromFloat(PlatformFee(amount, rate)))
	f, _ := net.Round(2).Float64()
	return f
}
