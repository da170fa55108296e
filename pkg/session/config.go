package session

import (
	"math/rand/v2"

	"github.com/Hean-Yi/Aura/pkg/affect"
	"github.com/Hean-Yi/Aura/pkg/breathing"
	"github.com/Hean-Yi/Aura/pkg/particles"
	"github.com/Hean-Yi/Aura/pkg/smoothing"
	"github.com/Hean-Yi/Aura/pkg/stroke"
)

// Config bundles the configuration of every pipeline stage.
type Config struct {
	Stroke    stroke.Config
	Smoothing smoothing.Config
	Affect    affect.Config
	Particles particles.Config
	Breathing breathing.Config

	// SpawnPerPoint is the number of particles emitted per input sample.
	SpawnPerPoint int

	// RadiusFraction sizes the anchor layout relative to the canvas min side.
	RadiusFraction float64
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Stroke:         stroke.DefaultConfig(),
		Smoothing:      smoothing.DefaultConfig(),
		Affect:         affect.DefaultConfig(),
		Particles:      particles.DefaultConfig(),
		Breathing:      breathing.DefaultConfig(),
		SpawnPerPoint:  3,
		RadiusFraction: 0.35,
	}
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for particle spawning.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}
