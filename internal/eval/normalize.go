package eval

import "math"

// NormalizationScale is the raw score at which the normalized score
// reaches tanh(1) of its range, about 762.
const NormalizationScale = 1000

// MaxScore bounds the magnitude of a normalized score.
const MaxScore = 999

// Normalize squashes an unbounded raw score into [-MaxScore, MaxScore]
// along a tanh curve. It is monotonic and odd, and Normalize(0) == 0.
func Normalize(raw int) int {
	n := int(math.Round(1000 * math.Tanh(float64(raw)/NormalizationScale)))
	// float64 tanh rounds to ±1 for large inputs.
	switch {
	case n > MaxScore:
		return MaxScore
	case n < -MaxScore:
		return -MaxScore
	}
	return n
}
