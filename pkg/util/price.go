package util

import "math"

// EffectivePrice returns a product's price after applying its percentage
// discount. A nil, zero or >=100 percent discount leaves the base price
// unchanged: a discount of 100% or more means "no discount applied", not
// "free".
func EffectivePrice(basePrice float64, discountPercent *float64) float64 {
	if discountPercent == nil {
		return basePrice
	}
	d := *discountPercent
	if d <= 0 || d >= 100 {
		return basePrice
	}
	return basePrice * (1 - d/100)
}

// RoundPrice rounds a monetary amount to 2 decimal places
func RoundPrice(amount float64) float64 {
	return math.Round(amount*100) / 100
}
