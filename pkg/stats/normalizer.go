package stats

// Feature identifies a normalized stroke feature.
type Feature int

const (
	Speed Feature = iota
	Pressure
	Curvature
	Jitter
	Angularity
	DirectionChanges
	TouchArea
	SpeedVariance

	// FeatureCount is the number of tracked features.
	FeatureCount
)

var featureNames = [FeatureCount]string{
	"speed",
	"pressure",
	"curvature",
	"jitter",
	"angularity",
	"direction_changes",
	"touch_area",
	"speed_variance",
}

// String returns the snake_case feature name.
func (f Feature) String() string {
	if f < 0 || f >= FeatureCount {
		return "unknown"
	}
	return featureNames[f]
}

// Normalizer keeps one accumulator per feature for the whole session.
// The zero value is ready to use. It is not safe for concurrent use.
type Normalizer struct {
	features [FeatureCount]RunningStatistics
}

// NewNormalizer returns an empty normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Push records a sample for f. Unknown features are ignored.
func (n *Normalizer) Push(f Feature, v float64) {
	if f < 0 || f >= FeatureCount {
		return
	}
	n.features[f].Push(v)
}

// Z returns the clamped, halved z-score of v against f's baseline, in [-1, 1].
func (n *Normalizer) Z(f Feature, v float64) float64 {
	if f < 0 || f >= FeatureCount {
		return 0
	}
	return ClampZ(n.features[f].ZScore(v))
}

// Stats returns a copy of f's accumulator.
func (n *Normalizer) Stats(f Feature) RunningStatistics {
	if f < 0 || f >= FeatureCount {
		return RunningStatistics{}
	}
	return n.features[f]
}

// Reset clears every accumulator.
func (n *Normalizer) Reset() {
	for i := range n.features {
		n.features[i].Reset()
	}
}
