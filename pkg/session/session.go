// Package session wires the stroke, affect, smoothing, pattern and particle
// stages into the per-canvas runtime driven by input events and frame ticks.
//
// A Session is single-writer: all calls must come from one goroutine. The
// loop package provides a queue that serializes input from other goroutines.
package session

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/Hean-Yi/Aura/pkg/affect"
	"github.com/Hean-Yi/Aura/pkg/breathing"
	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/mood"
	"github.com/Hean-Yi/Aura/pkg/particles"
	"github.com/Hean-Yi/Aura/pkg/pattern"
	"github.com/Hean-Yi/Aura/pkg/smoothing"
	"github.com/Hean-Yi/Aura/pkg/stroke"
)

// Session is one drawing canvas and its derived state.
type Session struct {
	config Config
	rng    *rand.Rand

	engine    *stroke.Engine
	mapper    *affect.Mapper
	smoother  *smoothing.Smoother
	generator pattern.Generator
	cache     pattern.RefreshCache
	sim       *particles.Simulator
	guide     *breathing.Guide

	canvas geom.Size
	mood   mood.Mood

	id       uuid.UUID
	epoch    time.Time
	hasEpoch bool
	now      float64
	started  time.Time
	hasDrawn bool
}

// New creates a session in the calm mood.
func New(cfg Config, opts ...Option) *Session {
	if cfg.SpawnPerPoint < 0 {
		cfg.SpawnPerPoint = 0
	}
	if cfg.RadiusFraction <= 0 {
		cfg.RadiusFraction = DefaultConfig().RadiusFraction
	}

	s := &Session{config: cfg}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = stroke.NewEngine(cfg.Stroke, nil)
	s.mapper = affect.NewMapper(cfg.Affect)
	s.smoother = smoothing.New(cfg.Smoothing)
	s.sim = particles.NewSimulator(cfg.Particles, s.rng)
	s.guide = breathing.NewGuide(cfg.Breathing)
	s.canvas = s.engine.CanvasSize()
	s.mood = mood.Calm
	s.id = uuid.New()
	return s
}

// seconds converts an event time to animation seconds since the first event.
func (s *Session) seconds(at time.Time) float64 {
	if !s.hasEpoch {
		s.epoch = at
		s.hasEpoch = true
	}
	t := at.Sub(s.epoch).Seconds()
	if t > s.now {
		s.now = t
	}
	return t
}

func (s *Session) layout() (geom.Point, float64) {
	return s.canvas.Center(), s.canvas.MinSide() * s.config.RadiusFraction
}

// AddPoint feeds one pointer sample. Outside guided breathing it updates the
// stroke window, spawns particles and runs one inference cycle. During
// breathing it advances the guide and spawns calm particles instead.
func (s *Session) AddPoint(loc geom.Point, at time.Time, pressure float64) {
	if !loc.IsFinite() || math.IsNaN(pressure) {
		return
	}
	t := s.seconds(at)
	if !s.hasDrawn {
		s.hasDrawn = true
		s.started = at
	}

	if s.guide.Active() {
		if s.guide.RecordDraw(t) {
			s.enterPulse(t)
		}
		s.spawnCalm(loc, t)
		return
	}

	s.engine.AddPoint(loc, at, pressure)
	s.spawn(loc, t)
	s.infer(at, t)
}

func (s *Session) spawn(loc geom.Point, t float64) {
	if len(s.cache.Anchors()) == 0 {
		center, radius := s.layout()
		anchors := s.generator.Anchors(s.mood, center, radius, t)
		s.cache.Store(anchors, pattern.Mode{Kind: pattern.Normal, Mood: s.mood}, center, radius, t)
	}
	s.sim.Spawn(loc, s.config.SpawnPerPoint, s.mood, s.cache.Anchors())
}

func (s *Session) spawnCalm(loc geom.Point, t float64) {
	anchors := s.cache.Anchors()
	if len(anchors) == 0 {
		center, radius := s.layout()
		anchors = s.generator.Anchors(mood.Calm, center, radius, t)
	}
	s.sim.Spawn(loc, s.config.SpawnPerPoint, mood.Calm, anchors)
}

func (s *Session) infer(at time.Time, t float64) {
	raw, _ := s.estimate()
	smoothed := s.smoother.Smooth(raw)
	candidate := smoothed.Dominant()
	if !s.smoother.ShouldSwitch(candidate, s.mood, at) {
		return
	}

	center, radius := s.layout()
	anchors := s.generator.Anchors(candidate, center, radius, t)
	s.sim.TransitionTo(anchors, candidate)
	s.cache.Store(anchors, pattern.Mode{Kind: pattern.Normal, Mood: candidate}, center, radius, t)
	s.mood = candidate
}

// estimate scores the window and feeds the baselines. Only the inference
// cycle calls it.
func (s *Session) estimate() (mood.Scores, affect.ValenceArousal) {
	return s.mapper.Scores(s.engine.ComputeMetrics(), s.engine.Normalizer())
}

// peek scores the window without touching the baselines.
func (s *Session) peek() (mood.Scores, affect.ValenceArousal) {
	return s.mapper.Scores(s.engine.Snapshot(), s.engine.Normalizer())
}

// EndStroke closes the current stroke.
func (s *Session) EndStroke() {
	if s.guide.Active() {
		s.guide.EndDraw()
		return
	}
	s.engine.EndStroke()
}

// SetCanvasSize updates the canvas. Non-positive sizes are ignored.
func (s *Session) SetCanvasSize(size geom.Size) {
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	s.canvas = size
	s.engine.SetCanvasSize(size)
}

// CanvasSize returns the current canvas size.
func (s *Session) CanvasSize() geom.Size {
	return s.canvas
}

// Tick advances the simulation to at: anchors are refreshed when stale for
// the current mode, then the particles are stepped. It returns the frame to
// render.
func (s *Session) Tick(at time.Time) Frame {
	t := s.seconds(at)
	center, radius := s.layout()
	display := s.mood

	switch s.guide.Phase() {
	case breathing.Pulse:
		display = mood.Calm
		mode := pattern.Mode{Kind: pattern.BreathingPulse, Mood: mood.Calm}
		if s.cache.ShouldRefresh(mode, center, radius, t) {
			anchors := s.generator.Breathing(center, radius, s.guide.Factor(t))
			s.sim.ReassignTargets(anchors)
			s.cache.Store(anchors, mode, center, radius, t)
		}
		if s.guide.Update(t) {
			s.finishBreathing()
		}

	case breathing.Follow:
		display = mood.Calm
		mode := pattern.Mode{Kind: pattern.BreathingFollow, Mood: mood.Calm}
		if s.cache.ShouldRefresh(mode, center, radius, t) {
			anchors := s.generator.Anchors(mood.Calm, center, radius, t)
			s.cache.Store(anchors, mode, center, radius, t)
		}
		s.sim.GradualCalmTransition(s.guide.Progress(), s.cache.Anchors())

	default:
		mode := pattern.Mode{Kind: pattern.Normal, Mood: s.mood}
		if s.cache.ShouldRefresh(mode, center, radius, t) {
			anchors := s.generator.Anchors(s.mood, center, radius, t)
			s.cache.Store(anchors, mode, center, radius, t)
		}
	}

	s.sim.Update(t, display)
	return s.frame(t)
}

// StartBreathing begins a guided-breathing session at at. It returns false
// when one is already running.
func (s *Session) StartBreathing(at time.Time) bool {
	t := s.seconds(at)
	if !s.guide.Start(t) {
		return false
	}
	s.mood = mood.Calm
	return true
}

// OfferBreathing reports whether guided breathing should be suggested: the
// user has drawn, the mood is intense and no session is running.
func (s *Session) OfferBreathing() bool {
	return s.hasDrawn && s.mood.IsIntense() && !s.guide.Active()
}

func (s *Session) enterPulse(t float64) {
	center, radius := s.layout()
	anchors := s.generator.Breathing(center, radius, 1.0)
	s.sim.ReassignTargets(anchors)
	s.cache.Store(anchors, pattern.Mode{Kind: pattern.BreathingPulse, Mood: mood.Calm}, center, radius, t)
}

func (s *Session) finishBreathing() {
	s.mood = mood.Calm
	s.sim.RecolorToCalm()
}

// Reset clears the canvas: particles, the stroke window, every baseline,
// the smoothing state, cached anchors and any breathing session. The mood
// returns to calm. Nothing is left pending.
func (s *Session) Reset() {
	s.sim.Clear()
	s.engine.Reset()
	s.smoother.Reset()
	s.cache.Reset()
	s.guide.Reset()
	s.mood = mood.Calm
	s.hasDrawn = false
	s.started = time.Time{}
	s.id = uuid.New()
}

// Mood returns the displayed mood.
func (s *Session) Mood() mood.Mood {
	return s.mood
}

// Scores returns the latest smoothed scores, or the raw scores of the current
// window when no inference has run yet.
func (s *Session) Scores() mood.Scores {
	if prev, ok := s.smoother.Previous(); ok {
		return prev
	}
	raw, _ := s.peek()
	return raw
}

// RawScores returns the unsmoothed scores of the current window.
func (s *Session) RawScores() mood.Scores {
	raw, _ := s.peek()
	return raw
}

// Affect returns the circumplex position of the current window.
func (s *Session) Affect() affect.ValenceArousal {
	_, va := s.peek()
	return va
}

// Metrics returns the metrics of the current window.
func (s *Session) Metrics() stroke.Metrics {
	return s.engine.Snapshot()
}

// Summary returns the archival stroke digest.
func (s *Session) Summary() stroke.Summary {
	return s.engine.Summary()
}

// Particles returns a copy of the live population.
func (s *Session) Particles() []particles.Particle {
	return s.sim.Particles()
}

// Anchors returns the current anchor set.
func (s *Session) Anchors() []geom.Point {
	return append([]geom.Point(nil), s.cache.Anchors()...)
}

// HasDrawn reports whether any sample arrived since creation or reset.
func (s *Session) HasDrawn() bool {
	return s.hasDrawn
}

// Breathing returns the guided-breathing status at the latest event time.
func (s *Session) Breathing() BreathingStatus {
	return s.breathingStatus(s.now)
}

func (s *Session) breathingStatus(t float64) BreathingStatus {
	return BreathingStatus{
		Phase:    s.guide.Phase(),
		Progress: s.guide.Progress(),
		Prompt:   s.guide.Prompt(t),
		Elapsed:  s.guide.Elapsed(t),
	}
}

// Frame returns the render snapshot at the latest event time without
// advancing the simulation.
func (s *Session) Frame() Frame {
	return s.frame(s.now)
}
