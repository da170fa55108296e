// Package affect maps normalized stroke features onto the Russell circumplex
// and scores each mood by its Gaussian proximity on the valence/arousal plane.
package affect

import (
	"math"

	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/mood"
	"github.com/Hean-Yi/Aura/pkg/stats"
	"github.com/Hean-Yi/Aura/pkg/stroke"
)

// ValenceArousal is a point on the circumplex, both axes in [-1, 1].
type ValenceArousal struct {
	Valence float64 `json:"valence"` // -1 negative … +1 positive
	Arousal float64 `json:"arousal"` // -1 low … +1 high
}

// Distance returns the Euclidean distance between two circumplex points.
func (va ValenceArousal) Distance(other ValenceArousal) float64 {
	return math.Hypot(va.Valence-other.Valence, va.Arousal-other.Arousal)
}

var prototypes = [mood.Count]ValenceArousal{
	mood.Joy:     {Valence: 0.7, Arousal: 0.4},
	mood.Calm:    {Valence: 0.4, Arousal: -0.6},
	mood.Anxiety: {Valence: -0.4, Arousal: 0.6},
	mood.Sadness: {Valence: -0.5, Arousal: -0.7},
	mood.Anger:   {Valence: -0.8, Arousal: 0.9},
}

// Prototype returns the circumplex centre of m.
func Prototype(m mood.Mood) ValenceArousal {
	if !m.Valid() {
		return ValenceArousal{}
	}
	return prototypes[m]
}

// Config holds the mapper parameters.
type Config struct {
	// Sigma is the Gaussian kernel width on the circumplex plane.
	Sigma float64
}

// DefaultConfig returns a kernel width of 0.6.
func DefaultConfig() Config {
	return Config{Sigma: 0.6}
}

// Mapper converts metrics into circumplex coordinates and mood scores.
// It holds no state beyond its configuration.
type Mapper struct {
	config Config
}

// NewMapper creates a mapper. A non-positive sigma falls back to the default.
func NewMapper(cfg Config) *Mapper {
	if cfg.Sigma <= 0 {
		cfg.Sigma = DefaultConfig().Sigma
	}
	return &Mapper{config: cfg}
}

// Estimate places the metrics on the circumplex using z-scores from n.
//
// Arousal leans on speed, and on pressure only when a pressure-sensing
// device is present. Valence favours smooth curvature and penalizes sharp
// turns and frequent reversals.
func (mp *Mapper) Estimate(m stroke.Metrics, n *stats.Normalizer) ValenceArousal {
	zSpeed := n.Z(stats.Speed, m.AverageSpeed)
	zPressure := n.Z(stats.Pressure, m.Pressure)
	zSpeedVar := n.Z(stats.SpeedVariance, m.SpeedVariance)
	zJitter := n.Z(stats.Jitter, m.Jitter)
	zCurvature := n.Z(stats.Curvature, m.Curvature)
	zAngularity := n.Z(stats.Angularity, m.Angularity)
	zDirChanges := n.Z(stats.DirectionChanges, float64(m.DirectionChanges))
	zArea := n.Z(stats.TouchArea, m.TouchArea)

	var arousal float64
	if m.HasPencil {
		arousal = 0.4*zSpeed + 0.3*zPressure + 0.2*zSpeedVar + 0.1*zJitter
	} else {
		arousal = 0.55*zSpeed + 0.3*zSpeedVar + 0.15*zJitter
	}

	valence := 0.4*zCurvature - 0.3*zAngularity + 0.2*(1.0-zDirChanges) + 0.1*zArea

	return ValenceArousal{
		Valence: geom.Clamp(valence, -1, 1),
		Arousal: geom.Clamp(arousal, -1, 1),
	}
}

// Score returns each mood's Gaussian membership for va.
// Scores are independent, in (0, 1], and do not sum to 1.
func (mp *Mapper) Score(va ValenceArousal) mood.Scores {
	twoSigmaSq := 2 * mp.config.Sigma * mp.config.Sigma
	var scores mood.Scores
	for _, m := range mood.All {
		c := prototypes[m]
		dv := va.Valence - c.Valence
		da := va.Arousal - c.Arousal
		scores[m] = math.Exp(-(dv*dv + da*da) / twoSigmaSq)
	}
	return scores
}

// Scores composes Estimate and Score.
func (mp *Mapper) Scores(m stroke.Metrics, n *stats.Normalizer) (mood.Scores, ValenceArousal) {
	va := mp.Estimate(m, n)
	return mp.Score(va), va
}
