// Package breathing implements the guided-breathing calm mode: the user first
// follows an orbiting guide light, then the anchors pulse through a fixed
// number of inhale, hold and exhale cycles.
package breathing

import (
	"math"

	"github.com/Hean-Yi/Aura/pkg/geom"
)

// Phase is a guide stage.
type Phase int

const (
	Idle Phase = iota
	Follow
	Pulse
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Follow:
		return "follow"
	case Pulse:
		return "pulse"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Prompts shown to the user.
const (
	PromptFollow  = "Follow the light..."
	PromptInhale  = "Breathe in..."
	PromptHold    = "Hold gently..."
	PromptExhale  = "Let it go..."
	PromptClosing = "You're here. You're okay."
)

// Config holds the guide timings in seconds and its geometry as fractions of
// the canvas.
type Config struct {
	FollowDuration float64 // draw time needed to leave the follow phase
	MaxDrawDelta   float64 // cap on one draw increment

	ShrinkDuration float64 // pulse intro from full size to MinFactor
	Inhale         float64
	Hold           float64
	Exhale         float64
	Cycles         int
	Outro          float64
	MinFactor      float64

	GuideRadius float64 // guide orbit base, fraction of the canvas min side
	FollowOrbit float64 // follow orbit, fraction of GuideRadius
	OrbitPeriod float64
}

// DefaultConfig returns the standard 4-4-6 breathing session.
func DefaultConfig() Config {
	return Config{
		FollowDuration: 5,
		MaxDrawDelta:   0.1,
		ShrinkDuration: 1.5,
		Inhale:         4,
		Hold:           4,
		Exhale:         6,
		Cycles:         4,
		Outro:          2,
		MinFactor:      0.4,
		GuideRadius:    0.25,
		FollowOrbit:    0.7,
		OrbitPeriod:    4,
	}
}

// Cycle returns the length of one inhale, hold and exhale.
func (c Config) Cycle() float64 {
	return c.Inhale + c.Hold + c.Exhale
}

// PulseDuration returns the full pulse phase length including intro and outro.
func (c Config) PulseDuration() float64 {
	return c.ShrinkDuration + c.Cycle()*float64(c.Cycles) + c.Outro
}

// Guide tracks one breathing session. Times are simulation seconds.
// It is not safe for concurrent use.
type Guide struct {
	config Config

	phase    Phase
	start    float64 // phase start
	drawTime float64
	lastDraw float64
	drawing  bool
}

// NewGuide creates an idle guide. A zero Config means DefaultConfig. Otherwise
// invalid fields fall back to their defaults; a zero Hold, ShrinkDuration or
// Outro is kept.
func NewGuide(cfg Config) *Guide {
	return &Guide{config: cfg.withDefaults()}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c == (Config{}) {
		return def
	}
	positive := func(v *float64, d float64) {
		if !(*v > 0) {
			*v = d
		}
	}
	nonNegative := func(v *float64, d float64) {
		if !(*v >= 0) {
			*v = d
		}
	}

	positive(&c.FollowDuration, def.FollowDuration)
	positive(&c.MaxDrawDelta, def.MaxDrawDelta)
	positive(&c.Inhale, def.Inhale)
	positive(&c.Exhale, def.Exhale)
	positive(&c.GuideRadius, def.GuideRadius)
	positive(&c.FollowOrbit, def.FollowOrbit)
	positive(&c.OrbitPeriod, def.OrbitPeriod)
	nonNegative(&c.ShrinkDuration, def.ShrinkDuration)
	nonNegative(&c.Hold, def.Hold)
	nonNegative(&c.Outro, def.Outro)
	if !(c.MinFactor > 0 && c.MinFactor <= 1) {
		c.MinFactor = def.MinFactor
	}
	if c.Cycles <= 0 {
		c.Cycles = def.Cycles
	}
	return c
}

// Config returns the guide configuration.
func (g *Guide) Config() Config {
	return g.config
}

// Phase returns the current stage.
func (g *Guide) Phase() Phase {
	return g.phase
}

// Active reports whether a session is in progress.
func (g *Guide) Active() bool {
	return g.phase == Follow || g.phase == Pulse
}

// Start begins the follow phase at now. It returns false if a session is
// already in progress.
func (g *Guide) Start(now float64) bool {
	if g.Active() {
		return false
	}
	*g = Guide{config: g.config, phase: Follow, start: now}
	return true
}

// RecordDraw accumulates draw time during the follow phase. It returns true
// when this draw completes the follow phase and the pulse begins.
func (g *Guide) RecordDraw(now float64) bool {
	if g.phase != Follow {
		return false
	}
	if g.drawing {
		delta := math.Min(now-g.lastDraw, g.config.MaxDrawDelta)
		if delta > 0 {
			g.drawTime += delta
		}
	}
	g.lastDraw = now
	g.drawing = true

	if g.drawTime >= g.config.FollowDuration {
		g.phase = Pulse
		g.start = now
		g.drawing = false
		return true
	}
	return false
}

// EndDraw marks a lifted finger so the next draw starts a fresh increment.
func (g *Guide) EndDraw() {
	g.drawing = false
}

// DrawTime returns the accumulated follow-phase draw time.
func (g *Guide) DrawTime() float64 {
	return g.drawTime
}

// Progress returns the follow-phase completion in [0, 1].
func (g *Guide) Progress() float64 {
	switch g.phase {
	case Idle:
		return 0
	case Follow:
		if g.config.FollowDuration <= 0 {
			return 1
		}
		return math.Min(g.drawTime/g.config.FollowDuration, 1)
	default:
		return 1
	}
}

// Elapsed returns the time since the current phase began.
func (g *Guide) Elapsed(now float64) float64 {
	if !g.Active() {
		return 0
	}
	return now - g.start
}

// Factor returns the pulse scale applied to the breathing anchors at now.
// Outside the pulse phase it is 1.
func (g *Guide) Factor(now float64) float64 {
	if g.phase != Pulse {
		return 1
	}
	elapsed := now - g.start
	cfg := g.config
	if elapsed < cfg.ShrinkDuration {
		u := math.Max(elapsed, 0) / cfg.ShrinkDuration
		eased := u * u * (3 - 2*u)
		return 1 - eased*(1-cfg.MinFactor)
	}
	return cfg.MinFactor + (1-cfg.MinFactor)*BreathFactor(cfg, elapsed-cfg.ShrinkDuration)
}

// Update finishes the session once the pulse phase has run its course. It
// returns true on the call that finishes it.
func (g *Guide) Update(now float64) bool {
	if g.phase != Pulse || now-g.start < g.config.PulseDuration() {
		return false
	}
	g.phase = Done
	return true
}

// Prompt returns the text to show at now, or "" when no session is running.
func (g *Guide) Prompt(now float64) string {
	if g.phase == Follow {
		return PromptFollow
	}
	if g.phase != Pulse {
		return ""
	}

	cfg := g.config
	elapsed := now - g.start
	if elapsed < cfg.ShrinkDuration {
		return PromptInhale
	}
	cycles := elapsed - cfg.ShrinkDuration
	if cycles >= cfg.Cycle()*float64(cfg.Cycles) {
		return PromptClosing
	}
	switch phase := math.Mod(cycles, cfg.Cycle()); {
	case phase < cfg.Inhale:
		return PromptInhale
	case phase < cfg.Inhale+cfg.Hold:
		return PromptHold
	default:
		return PromptExhale
	}
}

// GuidePosition returns the guide light for canvas at now. The light is only
// shown during the follow phase.
func (g *Guide) GuidePosition(canvas geom.Size, now float64) (geom.Point, bool) {
	if g.phase != Follow {
		return geom.Point{}, false
	}
	center := canvas.Center()
	elapsed := now - g.start
	if elapsed <= 0 {
		return center, true
	}
	r := canvas.MinSide() * g.config.GuideRadius * g.config.FollowOrbit
	angle := elapsed*(2*math.Pi/g.config.OrbitPeriod) - math.Pi/2
	return geom.Point{
		X: center.X + math.Cos(angle)*r,
		Y: center.Y + math.Sin(angle)*r,
	}, true
}

// Reset returns the guide to idle.
func (g *Guide) Reset() {
	*g = Guide{config: g.config}
}

// BreathFactor maps time into the breath cycle onto [0, 1]: rising through the
// inhale, flat through the hold and falling through the exhale.
// A config without a positive cycle holds at 1.
func BreathFactor(cfg Config, elapsed float64) float64 {
	cycle := cfg.Cycle()
	if !(cycle > 0) {
		return 1
	}
	phase := math.Mod(math.Max(elapsed, 0), cycle)
	switch {
	case phase < cfg.Inhale:
		return phase / cfg.Inhale
	case phase < cfg.Inhale+cfg.Hold:
		return 1
	default:
		return 1 - (phase-cfg.Inhale-cfg.Hold)/cfg.Exhale
	}
}
