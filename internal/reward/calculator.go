// Package reward computes point awards for user activities. Calculations
// are pure; callers pass the result to the earning workflow.
package reward

import (
	"errors"
	"math"
)

// Calculation errors.
var (
	ErrInvalidWeight = errors.New("invalid weight: must be positive")
	ErrInvalidScore  = errors.New("invalid quiz score")
)

// ScanAward computes the points earned for depositing weightKg of a waste
// type rewarded at pointsPerKg. The award is rounded to the nearest point.
func ScanAward(pointsPerKg int64, weightKg float64) (int64, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return 0, ErrInvalidWeight
	}
	if pointsPerKg < 0 {
		return 0, ErrInvalidWeight
	}
	return int64(math.Round(float64(pointsPerKg) * weightKg)), nil
}

// QuizAward computes the points earned for a quiz worth quizPoints when the
// user answered correct out of total questions. Partial scores truncate
// toward zero.
func QuizAward(quizPoints int64, correct, total int) (int64, error) {
	if total <= 0 || correct < 0 || correct > total {
		return 0, ErrInvalidScore
	}
	if quizPoints < 0 {
		return 0, ErrInvalidScore
	}
	return quizPoints * int64(correct) / int64(total), nil
}
