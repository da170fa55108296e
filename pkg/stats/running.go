// Package stats maintains the session-adaptive baselines used to normalize
// stroke features. Each feature keeps a Welford running mean and variance so
// z-scores describe the current user rather than a fixed population.
package stats

import "math"

// zEpsilon is the smallest standard deviation treated as informative.
const zEpsilon = 1e-9

// RunningStatistics is a single-pass mean/variance accumulator (Welford).
// The zero value is ready to use.
type RunningStatistics struct {
	count int
	mean  float64
	m2    float64
}

// Push folds one sample into the accumulator.
func (r *RunningStatistics) Push(v float64) {
	r.count++
	delta := v - r.mean
	r.mean += delta / float64(r.count)
	delta2 := v - r.mean
	r.m2 += delta * delta2
}

// Count returns the number of samples pushed.
func (r RunningStatistics) Count() int {
	return r.count
}

// Mean returns the running mean (0 before any sample).
func (r RunningStatistics) Mean() float64 {
	return r.mean
}

// Variance returns the sample variance, or 0 with fewer than 2 samples.
func (r RunningStatistics) Variance() float64 {
	if r.count < 2 {
		return 0
	}
	return r.m2 / float64(r.count-1)
}

// PopVariance returns the population variance, or 0 before any sample.
func (r RunningStatistics) PopVariance() float64 {
	if r.count == 0 {
		return 0
	}
	return r.m2 / float64(r.count)
}

// StdDev returns the sample standard deviation.
// With fewer than 2 samples it reports 1.0 so early z-scores stay finite.
func (r RunningStatistics) StdDev() float64 {
	if r.count < 2 {
		return 1.0
	}
	return math.Sqrt(r.m2 / float64(r.count-1))
}

// ZScore returns (v - mean) / stddev, or 0 when the spread is degenerate.
func (r RunningStatistics) ZScore(v float64) float64 {
	s := r.StdDev()
	if s < zEpsilon {
		return 0
	}
	return (v - r.mean) / s
}

// Reset clears the accumulator.
func (r *RunningStatistics) Reset() {
	*r = RunningStatistics{}
}

// ClampZ maps a z-score into [-1, 1] by clamping to [-2, 2] and halving.
// NaN maps to 0.
func ClampZ(z float64) float64 {
	if math.IsNaN(z) {
		return 0
	}
	return math.Max(-2, math.Min(2, z)) / 2
}
