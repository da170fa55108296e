// Package stroke turns raw pointer samples into windowed stroke features.
//
// The Engine keeps a trailing time window of samples, computes a Metrics
// snapshot on demand (cached until the next write), and feeds each feature
// into the session's adaptive normalizer.
package stroke

import (
	"time"

	"github.com/Hean-Yi/Aura/pkg/geom"
)

// TouchPoint is a single pointer sample.
type TouchPoint struct {
	Location  geom.Point
	Timestamp time.Time
	Pressure  float64 // 0-1, 0.5 when the device reports none
	StrokeID  int
}

// Metrics is a derived snapshot of the current window.
type Metrics struct {
	InstantSpeed     float64 // Last pair speed (points/sec)
	AverageSpeed     float64
	SpeedVariance    float64 // Population variance of pair speeds
	Pressure         float64 // Mean pressure over the window
	Curvature        float64 // Mean |sin| of turn angle over triplets
	StrokeDensity    float64 // Points per 1000 sq pt of bounding box
	DirectionChanges int     // Triplets turning more than 90°
	PauseFrequency   float64 // Pauses per second
	TouchArea        float64 // Bounding box / canvas area
	DownwardRatio    float64 // Share of pairs moving down the screen

	Jitter           float64 // Std dev of consecutive |Δspeed|
	AverageCurvature float64
	Angularity       float64 // Share of triplets turning more than 120°
	StrokeCount      int
	SpeedTrend       float64 // Mean speed of second half minus first half
	PressureVariance float64
	HasPencil        bool
}

// NeutralMetrics returns the metrics reported for windows too short to measure.
func NeutralMetrics() Metrics {
	return Metrics{
		Pressure:      0.5,
		DownwardRatio: 0.5,
	}
}

// Summary is the archival digest of a drawing session.
type Summary struct {
	TotalPoints     int     `json:"total_points"`
	AverageSpeed    float64 `json:"average_speed"`
	AveragePressure float64 `json:"average_pressure"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// Config holds the tunable parameters of the stroke window.
type Config struct {
	WindowDuration time.Duration // Trailing window kept for feature extraction
	PauseThreshold time.Duration // Pair gaps longer than this count as pauses
	PencilEpsilon  float64       // Pressure deviation from 0.5 that implies a pencil
	CanvasSize     geom.Size     // Initial canvas size
}

// DefaultConfig returns a 5 s window on a 400x800 canvas.
func DefaultConfig() Config {
	return Config{
		WindowDuration: 5 * time.Second,
		PauseThreshold: 300 * time.Millisecond,
		PencilEpsilon:  0.01,
		CanvasSize:     geom.Size{Width: 400, Height: 800},
	}
}

// neutralPressure is reported by devices without a force sensor.
const neutralPressure = 0.5
