// Package policy implements the points/currency conversion rules.
// All functions are pure; the conversion rate is fixed at 5 points per XAF.
package policy

import "errors"

// PointsPerUnit is the number of points equal to one currency unit (XAF).
const PointsPerUnit = 5

// ErrNegativeInput is returned when a conversion function receives a
// negative amount or point count.
var ErrNegativeInput = errors.New("negative input")

// PointsToCurrency converts a point count to currency units, truncating
// toward zero. The truncated remainder stays on the user's balance.
func PointsToCurrency(points int64) (int64, error) {
	if points < 0 {
		return 0, ErrNegativeInput
	}
	return points / PointsPerUnit, nil
}

// CurrencyToPoints converts a currency amount to the points required to
// cover it. Exact at every amount; the lossy direction is PointsToCurrency.
func CurrencyToPoints(amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeInput
	}
	return amount * PointsPerUnit, nil
}

// Fee computes the processing fee for a withdrawal amount at the given
// percentage. Fee percents come from the method catalog and are fractional
// (1.2, 1.5, 2.0), so the result is a float.
func Fee(amount int64, feePercent float64) (float64, error) {
	if amount < 0 || feePercent < 0 || feePercent > 100 {
		return 0, ErrNegativeInput
	}
	return float64(amount) * feePercent / 100, nil
}

// Net computes the amount paid out after the fee is deducted.
func Net(amount int64, feePercent float64) (float64, error) {
	fee, err := Fee(amount, feePercent)
	if err != nil {
		return 0, err
	}
	return float64(amount) - fee, nil
}
