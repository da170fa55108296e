package particles

// Config holds the particle simulation parameters.
type Config struct {
	// MaxParticles caps the population; the oldest particles are evicted first.
	MaxParticles int

	// Spring tracking.
	Damping   float64
	Stiffness float64

	// MicroMotion is the amplitude of the per-particle sinusoidal drift and
	// MicroMotionGain the share of it added to velocity each tick.
	MicroMotion     float64
	MicroMotionGain float64

	// LifeDecay is subtracted from life on every update.
	LifeDecay float64

	// Spawn ranges.
	SpawnJitter float64
	OpacityMin  float64
	OpacityMax  float64
	SizeMin     float64
	SizeMax     float64

	// Life and opacity floors applied by transitions.
	TransitionOpacity float64
	TransitionLife    float64
	ReassignLife      float64
	CalmLife          float64
	CalmOpacityMax    float64

	// BoostDuration is the simulation time, in seconds, over which a
	// transition boost fades back to the base opacity.
	BoostDuration float64

	// DecayingBelow is the life below which a particle reports Decaying.
	DecayingBelow float64
}

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		MaxParticles:      1200,
		Damping:           0.92,
		Stiffness:         0.03,
		MicroMotion:       1.5,
		MicroMotionGain:   0.05,
		LifeDecay:         0.0008,
		SpawnJitter:       8,
		OpacityMin:        0.15,
		OpacityMax:        0.4,
		SizeMin:           2,
		SizeMax:           6,
		TransitionOpacity: 0.5,
		TransitionLife:    0.7,
		ReassignLife:      0.8,
		CalmLife:          0.5,
		CalmOpacityMax:    0.35,
		BoostDuration:     1.5,
		DecayingBelow:     0.3,
	}
}

// DenseConfig raises the population cap for large canvases.
func DenseConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxParticles = 2400
	return cfg
}

// SparseConfig keeps a small, long-lived population for constrained renderers.
func SparseConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxParticles = 400
	cfg.LifeDecay = 0.0004
	return cfg
}
