package domain

import "math"

// QualityRating is the learner's recall quality on the internal 0..7 scale.
type QualityRating int

const (
	QualityMin QualityRating = 0
	QualityMax QualityRating = 7
)

// AllQualities lists every rating on the internal scale in ascending order.
var AllQualities = [...]QualityRating{0, 1, 2, 3, 4, 5, 6, 7}

// Clamp forces q into [QualityMin, QualityMax]. Out-of-range input is never
// an error.
func (q QualityRating) Clamp() QualityRating {
	if q < QualityMin {
		return QualityMin
	}
	if q > QualityMax {
		return QualityMax
	}
	return q
}

// ThreeButton is the answer of a three-button UI.
type ThreeButton string

const (
	ThreeButtonAgain ThreeButton = "AGAIN"
	ThreeButtonVague ThreeButton = "VAGUE"
	ThreeButtonGood  ThreeButton = "GOOD"
)

// FourButton is the answer of a four-button UI.
type FourButton string

const (
	FourButtonAgain FourButton = "AGAIN"
	FourButtonHard  FourButton = "HARD"
	FourButtonGood  FourButton = "GOOD"
	FourButtonEasy  FourButton = "EASY"
)

// FromThreeButton maps Again/Vague/Good onto 1/3/5.
func FromThreeButton(b ThreeButton) (QualityRating, bool) {
	switch b {
	case ThreeButtonAgain:
		return 1, true
	case ThreeButtonVague:
		return 3, true
	case ThreeButtonGood:
		return 5, true
	}
	return 0, false
}

// FromFourButton maps Again/Hard/Good/Easy onto 1/4/5/7.
func FromFourButton(b FourButton) (QualityRating, bool) {
	switch b {
	case FourButtonAgain:
		return 1, true
	case FourButtonHard:
		return 4, true
	case FourButtonGood:
		return 5, true
	case FourButtonEasy:
		return 7, true
	}
	return 0, false
}

// FromLegacy rescales a 0..5 rating onto 0..7, rounding half away from zero.
func FromLegacy(q int) QualityRating {
	if q < 0 {
		q = 0
	}
	if q > 5 {
		q = 5
	}
	return QualityRating(math.Round(float64(q) * 7 / 5))
}
