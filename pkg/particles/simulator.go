// Package particles runs the spring-damped particle population that renders
// the current mood. The simulator is a pure state machine driven by explicit
// simulation time; it starts no goroutines and schedules no callbacks.
package particles

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/mood"
)

// Simulator owns a particle population. It is not safe for concurrent use.
type Simulator struct {
	config    Config
	rng       *rand.Rand
	particles []Particle
	now       float64
}

// NewSimulator creates a simulator. A nil rng is replaced by a randomly
// seeded generator; pass a seeded one for reproducible runs.
func NewSimulator(cfg Config, rng *rand.Rand) *Simulator {
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = DefaultConfig().MaxParticles
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{
		config:    cfg,
		rng:       rng,
		particles: make([]Particle, 0, cfg.MaxParticles),
	}
}

// Config returns the simulator configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// Spawn adds count particles around at, each targeting the anchor nearest to
// at and colored from m's palette. The population cap is enforced afterwards
// by evicting the oldest particles.
func (s *Simulator) Spawn(at geom.Point, count int, m mood.Mood, anchors []geom.Point) {
	if count <= 0 {
		return
	}
	target := geom.Nearest(at, anchors)
	jitter := s.config.SpawnJitter

	for range count {
		opacity := s.uniform(s.config.OpacityMin, s.config.OpacityMax)
		s.particles = append(s.particles, Particle{
			ID: uuid.New(),
			Position: geom.Point{
				X: at.X + s.uniform(-jitter, jitter),
				Y: at.Y + s.uniform(-jitter, jitter),
			},
			Target:      target,
			Color:       s.pick(m),
			Opacity:     opacity,
			BaseOpacity: opacity,
			Size:        s.uniform(s.config.SizeMin, s.config.SizeMax),
			Life:        1.0,
			Phase:       s.rng.Float64() * 2 * math.Pi,
			Born:        s.now,
			calmed:      m == mood.Calm,
		})
	}
	s.enforceLimit()
}

// Update advances every particle one tick to simulation time t (seconds) and
// purges particles whose life reached zero. The mood is accepted for parity
// with the spawn and transition calls; motion does not depend on it.
func (s *Simulator) Update(t float64, _ mood.Mood) {
	s.now = t
	cfg := s.config
	gain := cfg.MicroMotion * cfg.MicroMotionGain

	for i := range s.particles {
		p := &s.particles[i]

		spring := p.Target.Sub(p.Position).Scale(cfg.Stiffness)
		p.Velocity = p.Velocity.Add(spring).Scale(cfg.Damping)
		p.Velocity = p.Velocity.Add(geom.Vector{
			DX: math.Sin(t*1.5+p.Phase) * gain,
			DY: math.Cos(t*1.2+p.Phase*0.7) * gain,
		})
		p.Position = p.Position.Add(p.Velocity)

		if p.boosting {
			s.fadeBoost(p)
		}

		p.Life -= cfg.LifeDecay
		p.updates++
	}

	alive := s.particles[:0]
	for _, p := range s.particles {
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	clear(s.particles[len(alive):])
	s.particles = alive
}

func (s *Simulator) fadeBoost(p *Particle) {
	elapsed := s.now - p.boostStart
	if s.config.BoostDuration <= 0 || elapsed >= s.config.BoostDuration {
		p.Opacity = p.BaseOpacity
		p.boosting = false
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}
	f := elapsed / s.config.BoostDuration
	p.Opacity = p.boostFrom + (p.BaseOpacity-p.boostFrom)*f
}

// TransitionTo retargets every particle to its nearest new anchor, recolors it
// from m's palette and starts an opacity boost that fades over BoostDuration.
// With no anchors the existing targets are kept.
func (s *Simulator) TransitionTo(anchors []geom.Point, m mood.Mood) {
	for i := range s.particles {
		p := &s.particles[i]
		if len(anchors) > 0 {
			p.Target = geom.Nearest(p.Position, anchors)
		}
		p.Color = s.pick(m)
		p.Opacity = s.config.TransitionOpacity
		p.BaseOpacity = s.uniform(s.config.OpacityMin, s.config.OpacityMax)
		p.Life = math.Max(p.Life, s.config.TransitionLife)
		p.boosting = true
		p.boostStart = s.now
		p.boostFrom = s.config.TransitionOpacity
		p.calmed = m == mood.Calm
	}
}

// ReassignTargets retargets without recoloring. It is a no-op without anchors.
func (s *Simulator) ReassignTargets(anchors []geom.Point) {
	if len(anchors) == 0 {
		return
	}
	for i := range s.particles {
		p := &s.particles[i]
		p.Target = geom.Nearest(p.Position, anchors)
		p.Life = math.Max(p.Life, s.config.ReassignLife)
	}
}

// RecolorToCalm recolors every particle from the calm palette in place.
func (s *Simulator) RecolorToCalm() {
	for i := range s.particles {
		s.calm(&s.particles[i])
	}
}

// GradualCalmTransition converts the share progress (0..1) of the population
// to calm, ordered by each particle's phase so the set converted at a given
// progress is stable. Converted particles are retargeted to anchors.
func (s *Simulator) GradualCalmTransition(progress float64, anchors []geom.Point) {
	progress = geom.Clamp(progress, 0, 1)
	if progress == 0 {
		return
	}
	for i := range s.particles {
		p := &s.particles[i]
		if p.calmed || p.Phase/(2*math.Pi) >= progress {
			continue
		}
		s.calm(p)
		if len(anchors) > 0 {
			p.Target = geom.Nearest(p.Position, anchors)
		}
	}
}

func (s *Simulator) calm(p *Particle) {
	p.Color = s.pick(mood.Calm)
	p.Life = math.Max(p.Life, s.config.CalmLife)
	p.Opacity = s.uniform(s.config.OpacityMin, s.config.CalmOpacityMax)
	p.BaseOpacity = p.Opacity
	p.boosting = false
	p.calmed = true
}

// Clear empties the population.
func (s *Simulator) Clear() {
	clear(s.particles)
	s.particles = s.particles[:0]
}

// Particles returns a copy of the live population, oldest first.
func (s *Simulator) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Len returns the population size.
func (s *Simulator) Len() int {
	return len(s.particles)
}

// Now returns the simulation time of the last update.
func (s *Simulator) Now() float64 {
	return s.now
}

// State classifies p within its lifecycle.
func (s *Simulator) State(p Particle) State {
	return stateOf(p, s.config.DecayingBelow)
}

func (s *Simulator) enforceLimit() {
	excess := len(s.particles) - s.config.MaxParticles
	if excess <= 0 {
		return
	}
	n := copy(s.particles, s.particles[excess:])
	clear(s.particles[n:])
	s.particles = s.particles[:n]
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

func (s *Simulator) pick(m mood.Mood) mood.Color {
	palette := m.Palette()
	if len(palette) == 0 {
		return m.Color()
	}
	return palette[s.rng.IntN(len(palette))]
}
