package pattern

import (
	"math"

	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/mood"
)

// Refresh intervals in seconds.
const (
	NormalRefreshInterval    = 1.0 / 12.0
	BreathingRefreshInterval = 1.0 / 24.0

	// moveThreshold is how far the centre or radius may drift, in points,
	// before cached anchors are considered stale.
	moveThreshold = 1.0
)

// Kind names the layout family an anchor set was generated for.
type Kind int

const (
	Normal Kind = iota
	BreathingFollow
	BreathingPulse
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case BreathingFollow:
		return "breathing_follow"
	case BreathingPulse:
		return "breathing_pulse"
	default:
		return "unknown"
	}
}

// Mode identifies what a cached anchor set depicts.
type Mode struct {
	Kind Kind
	Mood mood.Mood
}

// Interval returns the minimum refresh interval for the mode.
func (m Mode) Interval() float64 {
	if m.Kind == Normal {
		return NormalRefreshInterval
	}
	return BreathingRefreshInterval
}

// RefreshCache throttles anchor regeneration. Anchors are reused until the
// mode changes, the centre or radius moves materially, or the mode's refresh
// interval elapses. The zero value is an empty cache.
type RefreshCache struct {
	anchors []geom.Point
	mode    Mode
	center  geom.Point
	radius  float64
	time    float64
	valid   bool
}

// ShouldRefresh reports whether anchors must be regenerated at time t.
func (c *RefreshCache) ShouldRefresh(mode Mode, center geom.Point, radius, t float64) bool {
	if !c.valid || len(c.anchors) == 0 {
		return true
	}
	if mode != c.mode {
		return true
	}
	if center.Distance(c.center) > moveThreshold {
		return true
	}
	if math.Abs(radius-c.radius) > moveThreshold {
		return true
	}
	return t-c.time >= mode.Interval()
}

// Store records a freshly generated anchor set.
func (c *RefreshCache) Store(anchors []geom.Point, mode Mode, center geom.Point, radius, t float64) {
	c.anchors = anchors
	c.mode = mode
	c.center = center
	c.radius = radius
	c.time = t
	c.valid = true
}

// Anchors returns the cached anchor set. Callers must not modify it.
func (c *RefreshCache) Anchors() []geom.Point {
	return c.anchors
}

// Mode returns the mode of the cached set and whether one is stored.
func (c *RefreshCache) Mode() (Mode, bool) {
	return c.mode, c.valid
}

// Reset empties the cache.
func (c *RefreshCache) Reset() {
	*c = RefreshCache{}
}
