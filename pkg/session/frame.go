package session

import (
	"github.com/Hean-Yi/Aura/pkg/breathing"
	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/mood"
	"github.com/Hean-Yi/Aura/pkg/particles"
)

// BreathingStatus describes the guided-breathing session.
type BreathingStatus struct {
	Phase    breathing.Phase
	Progress float64
	Prompt   string
	Elapsed  float64
}

// Frame is what a renderer needs to draw one frame.
type Frame struct {
	Time      float64 // animation seconds
	Mood      mood.Mood
	Scores    mood.Scores
	Particles []particles.Particle
	Breathing BreathingStatus

	// Guide is the breathing guide light, nil when hidden.
	Guide *geom.Point
}

func (s *Session) frame(t float64) Frame {
	f := Frame{
		Time:      t,
		Mood:      s.mood,
		Scores:    s.Scores(),
		Particles: s.sim.Particles(),
		Breathing: s.breathingStatus(t),
	}
	if pos, ok := s.guide.GuidePosition(s.canvas, t); ok {
		f.Guide = &pos
	}
	return f
}
