package affect

import (
	"math"
	"testing"

	"github.com/Hean-Yi/Aura/pkg/mood"
	"github.com/Hean-Yi/Aura/pkg/stats"
	"github.com/Hean-Yi/Aura/pkg/stroke"
)

func TestPrototypeScoresOne(t *testing.T) {
	mp := NewMapper(DefaultConfig())
	for _, m := range mood.All {
		scores := mp.Score(Prototype(m))
		if math.Abs(scores[m]-1) > 1e-12 {
			t.Errorf("Expected %s prototype to score 1, got %f", m, scores[m])
		}
		if scores.Dominant() != m {
			t.Errorf("Expected %s to dominate at its prototype, got %s", m, scores.Dominant())
		}
	}
}

func TestScoreKernel(t *testing.T) {
	mp := NewMapper(DefaultConfig())
	va := ValenceArousal{Valence: 0, Arousal: 0}
	scores := mp.Score(va)

	for _, m := range mood.All {
		d := va.Distance(Prototype(m))
		want := math.Exp(-d * d / 0.72)
		if math.Abs(scores[m]-want) > 1e-12 {
			t.Errorf("Expected %s score %f, got %f", m, want, scores[m])
		}
		if scores[m] <= 0 || scores[m] > 1 {
			t.Errorf("Expected %s score in (0,1], got %f", m, scores[m])
		}
	}
}

func TestNeutralMetricsWithEmptyNormalizer(t *testing.T) {
	mp := NewMapper(DefaultConfig())
	n := stats.NewNormalizer()

	va := mp.Estimate(stroke.NeutralMetrics(), n)

	// Every z is 0, so only the reversal term contributes.
	if math.Abs(va.Valence-0.2) > 1e-12 {
		t.Errorf("Expected valence 0.2, got %f", va.Valence)
	}
	if va.Arousal != 0 {
		t.Errorf("Expected arousal 0, got %f", va.Arousal)
	}
}

func TestEstimateWeights(t *testing.T) {
	n := stats.NewNormalizer()
	// Two samples per feature: mean 0, sample stddev sqrt(2).
	for f := stats.Feature(0); f < stats.FeatureCount; f++ {
		n.Push(f, -1)
		n.Push(f, 1)
	}
	// z = 2/sqrt(2) = 1.414 -> clamp to [-2,2] -> halve = 0.7071
	zHigh := math.Sqrt2 / 2

	tests := []struct {
		name        string
		metrics     stroke.Metrics
		wantValence float64
		wantArousal float64
	}{
		{
			name: "finger speed only",
			metrics: stroke.Metrics{
				AverageSpeed: 2,
			},
			wantValence: 0.2,
			wantArousal: 0.55 * zHigh,
		},
		{
			name: "pencil speed and pressure",
			metrics: stroke.Metrics{
				AverageSpeed: 2,
				Pressure:     2,
				HasPencil:    true,
			},
			wantValence: 0.2,
			wantArousal: 0.4*zHigh + 0.3*zHigh,
		},
		{
			name: "finger ignores pressure",
			metrics: stroke.Metrics{
				Pressure: 2,
			},
			wantValence: 0.2,
			wantArousal: 0,
		},
		{
			name: "curvature raises valence",
			metrics: stroke.Metrics{
				Curvature: 2,
			},
			wantValence: 0.4*zHigh + 0.2,
			wantArousal: 0,
		},
		{
			name: "angularity and reversals lower valence",
			metrics: stroke.Metrics{
				Angularity:       2,
				DirectionChanges: 2,
			},
			wantValence: -0.3*zHigh + 0.2*(1-zHigh),
			wantArousal: 0,
		},
	}

	mp := NewMapper(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			va := mp.Estimate(tt.metrics, n)
			if math.Abs(va.Valence-tt.wantValence) > 1e-9 {
				t.Errorf("Expected valence %f, got %f", tt.wantValence, va.Valence)
			}
			if math.Abs(va.Arousal-tt.wantArousal) > 1e-9 {
				t.Errorf("Expected arousal %f, got %f", tt.wantArousal, va.Arousal)
			}
		})
	}
}

func TestEstimateBounded(t *testing.T) {
	n := stats.NewNormalizer()
	for f := stats.Feature(0); f < stats.FeatureCount; f++ {
		n.Push(f, 0)
		n.Push(f, 0.001)
	}
	mp := NewMapper(DefaultConfig())

	extreme := stroke.Metrics{
		AverageSpeed:  1e9,
		Pressure:      1e9,
		SpeedVariance: 1e9,
		Jitter:        1e9,
		Curvature:     1e9,
		TouchArea:     1e9,
		HasPencil:     true,
	}
	va := mp.Estimate(extreme, n)
	if va.Valence < -1 || va.Valence > 1 || va.Arousal < -1 || va.Arousal > 1 {
		t.Errorf("Expected bounded output, got %+v", va)
	}
}

func TestNewMapperSigmaFallback(t *testing.T) {
	mp := NewMapper(Config{})
	if mp.config.Sigma != 0.6 {
		t.Errorf("Expected default sigma 0.6, got %f", mp.config.Sigma)
	}
}

func TestPrototypeInvalid(t *testing.T) {
	if got := Prototype(mood.Mood(42)); got != (ValenceArousal{}) {
		t.Errorf("Expected zero prototype for invalid mood, got %+v", got)
	}
}
