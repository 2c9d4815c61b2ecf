package curves

import (
	"math"
	"math/big"
)

// RoundFixed rounds v to digits decimals, resolving exact ties upward in
// magnitude. This matches Number.prototype.toFixed followed by parseFloat,
// which works on the exact binary value rather than its shortest decimal form.
func RoundFixed(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if v < 0 {
		return -RoundFixed(-v, digits)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	x := new(big.Float).SetPrec(0).SetFloat64(v)
	x.SetPrec(2048).Mul(x, new(big.Float).SetInt(scale))
	x.Add(x, big.NewFloat(0.5))

	n, _ := x.Int(nil) // truncates toward zero; x is non-negative
	q := new(big.Rat).SetFrac(n, scale)
	f, _ := q.Float64()
	return f
}

// RoundInt rounds to the nearest integer with ties toward +Inf, like Math.round.
func RoundInt(v float64) float64 {
	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}
	return f
}
