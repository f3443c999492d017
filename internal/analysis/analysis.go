// Package analysis computes descriptive statistics over evaluation scores
// and calibrates static scores against engine evaluations.
package analysis

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrTooFewSamples is returned when a computation needs more data points.
var ErrTooFewSamples = errors.New("analysis: too few samples")

// ErrLengthMismatch is returned when paired samples differ in length.
var ErrLengthMismatch = errors.New("analysis: sample lengths differ")

// Summary holds descriptive statistics for a set of scores.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	P90    float64
}

// Summarize describes scores. An empty input yields a zero Summary.
func Summarize(scores []float64) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	s := Summary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// Calibration relates static scores to engine scores with a least-squares
// line engine = Intercept + Slope*static.
type Calibration struct {
	Samples     int
	Correlation float64
	Intercept   float64
	Slope       float64
	RSquared    float64
}

// Calibrate fits engine scores against static scores.
func Calibrate(static, engine []float64) (Calibration, error) {
	if len(static) != len(engine) {
		return Calibration{}, ErrLengthMismatch
	}
	if len(static) < 2 {
		return Calibration{}, ErrTooFewSamples
	}

	alpha, beta := stat.LinearRegression(static, engine, nil, false)
	return Calibration{
		Samples:     len(static),
		Correlation: stat.Correlation(static, engine, nil),
		Intercept:   alpha,
		Slope:       beta,
		RSquared:    stat.RSquared(static, engine, nil, alpha, beta),
	}, nil
}
