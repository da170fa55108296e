// Package smoothing stabilizes per-frame mood scores with a softmax, an
// exponential moving average and a dwell-time gate on mood switches.
package smoothing

import (
	"math"
	"time"

	"github.com/Hean-Yi/Aura/pkg/mood"
)

const expSumFloor = 1e-9

// Config holds smoother parameters.
type Config struct {
	// Alpha is the EMA weight of the newest distribution.
	Alpha float64

	// SwitchDelay is the minimum time between two accepted mood switches.
	SwitchDelay time.Duration
}

// DefaultConfig returns the standard smoothing parameters.
func DefaultConfig() Config {
	return Config{
		Alpha:       0.35,
		SwitchDelay: 600 * time.Millisecond,
	}
}

// Smoother blends successive score vectors and debounces mood switches.
// It is not safe for concurrent use.
type Smoother struct {
	config Config

	previous    mood.Scores
	hasPrevious bool

	lastSwitch    time.Time
	hasLastSwitch bool
}

// New creates a smoother. Out-of-range alpha falls back to the default.
func New(cfg Config) *Smoother {
	if cfg.Alpha <= 0 || cfg.Alpha > 1 {
		cfg.Alpha = DefaultConfig().Alpha
	}
	if cfg.SwitchDelay < 0 {
		cfg.SwitchDelay = 0
	}
	return &Smoother{config: cfg}
}

// Config returns the smoother configuration.
func (s *Smoother) Config() Config {
	return s.config
}

// Softmax normalizes raw scores into a distribution.
// The maximum is subtracted first so large inputs cannot overflow.
func (s *Smoother) Softmax(raw mood.Scores) mood.Scores {
	maxScore := raw.Max()

	var exps mood.Scores
	var sum float64
	for i, v := range raw {
		e := math.Exp(v - maxScore)
		exps[i] = e
		sum += e
	}

	sum = math.Max(sum, expSumFloor)
	var out mood.Scores
	for i, e := range exps {
		out[i] = e / sum
	}
	return out
}

// Smooth applies softmax to raw and blends it into the running average.
// The first call blends against a uniform prior of 1/Count per mood.
// The result is not renormalized.
func (s *Smoother) Smooth(raw mood.Scores) mood.Scores {
	normalized := s.Softmax(raw)

	prev := s.previous
	if !s.hasPrevious {
		prev = mood.Uniform(1.0 / float64(mood.Count))
	}

	alpha := s.config.Alpha
	var out mood.Scores
	for i := range out {
		out[i] = alpha*normalized[i] + (1-alpha)*prev[i]
	}

	s.previous = out
	s.hasPrevious = true
	return out
}

// Previous returns the last smoothed vector, if any.
func (s *Smoother) Previous() (mood.Scores, bool) {
	return s.previous, s.hasPrevious
}

// ShouldSwitch reports whether the displayed mood may move from current to
// candidate at now. An accepted switch records now; a rejected one leaves the
// recorded time untouched.
func (s *Smoother) ShouldSwitch(candidate, current mood.Mood, now time.Time) bool {
	if candidate == current {
		return false
	}
	if s.hasLastSwitch && now.Sub(s.lastSwitch) < s.config.SwitchDelay {
		return false
	}
	s.lastSwitch = now
	s.hasLastSwitch = true
	return true
}

// LastSwitch returns the time of the last accepted switch, if any.
func (s *Smoother) LastSwitch() (time.Time, bool) {
	return s.lastSwitch, s.hasLastSwitch
}

// Reset forgets the running average and the recorded switch time.
func (s *Smoother) Reset() {
	s.previous = mood.Scores{}
	s.hasPrevious = false
	s.lastSwitch = time.Time{}
	s.hasLastSwitch = false
}
