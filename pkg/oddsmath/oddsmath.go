// Package oddsmath provides the numeric primitives for American-odds
// conversion and vig removal. All functions are pure and allocation-free.
package oddsmath

import (
	"errors"
	"math"
)

// ProbEpsilon is the tolerance used for every floating-point equality and
// sum-to-one check on probabilities across the engine.
const ProbEpsilon = 1e-9

// ErrInvalidOdds is returned when an American odds value is zero or not
// finite. Zero is never a valid quote.
var ErrInvalidOdds = errors.New("invalid American odds: cannot be 0")

// ImpliedProbability converts American odds to the implied probability of
// the outcome, before vig removal.
// +150 → 100/(150+100) = 0.40
// -150 → 150/(150+100) = 0.60
func ImpliedProbability(odds int) (float64, error) {
	if odds == 0 {
		return 0, ErrInvalidOdds
	}

	if odds > 0 {
		return 100.0 / (float64(odds) + 100.0), nil
	}

	return float64(-odds) / (float64(-odds) + 100.0), nil
}

// NormalizeTwoWay strips the bookmaker's overround from a two-outcome market
// by proportional scaling. The returned pair sums to 1.0 within ProbEpsilon.
//
// Example: -110/-110 → 0.5238/0.5238 implied → 0.50/0.50 fair.
func NormalizeTwoWay(p1, p2 float64) (fair1, fair2 float64) {
	total := p1 + p2
	if total <= 0 {
		return 0, 0
	}

	return p1 / total, p2 / total
}

// ToDecimal converts American odds to decimal (European) odds. Decimal odds
// are directly comparable across mixed signs: the larger value always pays
// more per unit staked.
// +150 → 2.50
// -150 → 1.67
func ToDecimal(odds int) (float64, error) {
	if odds == 0 {
		return 0, ErrInvalidOdds
	}

	if odds > 0 {
		return 1.0 + float64(odds)/100.0, nil
	}

	return 1.0 + 100.0/float64(-odds), nil
}

// DecimalToAmerican converts decimal odds back to American odds, rounding to
// the nearest integer price.
func DecimalToAmerican(dec float64) (int, error) {
	if dec <= 1.0 {
		return 0, errors.New("invalid decimal odds: must be > 1.0")
	}

	if dec >= 2.0 {
		return int(math.Round((dec - 1.0) * 100.0)), nil
	}

	return int(math.Round(-100.0 / (dec - 1.0))), nil
}

// Variance returns the population variance of the given values, 0 for fewer
// than two values.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}

	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of the given values.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Mean returns the arithmetic mean of the given values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// Clamp01 clamps v to the [0, 1] interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
