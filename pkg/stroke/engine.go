package stroke

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/stats"
)

// Engine maintains the sample window and its derived metrics.
// It is not safe for concurrent use.
type Engine struct {
	config     Config
	canvas     geom.Size
	window     []TouchPoint
	strokeID   int
	normalizer *stats.Normalizer

	cached Metrics
	dirty  bool
}

// NewEngine creates an engine that feeds the given normalizer.
// A nil normalizer gets a fresh one.
func NewEngine(cfg Config, normalizer *stats.Normalizer) *Engine {
	if normalizer == nil {
		normalizer = stats.NewNormalizer()
	}
	if cfg.WindowDuration <= 0 {
		cfg.WindowDuration = DefaultConfig().WindowDuration
	}
	return &Engine{
		config:     cfg,
		canvas:     cfg.CanvasSize,
		normalizer: normalizer,
		dirty:      true,
	}
}

// Normalizer returns the adaptive baseline this engine feeds.
func (e *Engine) Normalizer() *stats.Normalizer {
	return e.normalizer
}

// SetCanvasSize updates the area used for coverage ratios.
func (e *Engine) SetCanvasSize(size geom.Size) {
	if size == e.canvas {
		return
	}
	e.canvas = size
	e.dirty = true
}

// CanvasSize returns the current canvas size.
func (e *Engine) CanvasSize() geom.Size {
	return e.canvas
}

// AddPoint appends a sample to the current stroke.
//
// Pressure is clamped to [0, 1]. A timestamp earlier than the previous
// sample's is raised to it, so the pair has zero duration and is skipped.
// Samples with non-finite coordinates or pressure are ignored.
func (e *Engine) AddPoint(loc geom.Point, at time.Time, pressure float64) {
	if !loc.IsFinite() || math.IsNaN(pressure) {
		return
	}
	pressure = geom.Clamp(pressure, 0, 1)

	if n := len(e.window); n > 0 {
		prev := e.window[n-1]
		if at.Before(prev.Timestamp) {
			at = prev.Timestamp
		}
		if prev.StrokeID == e.strokeID {
			if dt := at.Sub(prev.Timestamp).Seconds(); dt > 0 {
				e.normalizer.Push(stats.Speed, prev.Location.Distance(loc)/dt)
			}
		}
	}

	e.window = append(e.window, TouchPoint{
		Location:  loc,
		Timestamp: at,
		Pressure:  pressure,
		StrokeID:  e.strokeID,
	})
	e.normalizer.Push(stats.Pressure, pressure)
	e.dirty = true
}

// EndStroke closes the current stroke. The window is kept.
func (e *Engine) EndStroke() {
	e.strokeID++
	e.dirty = true
}

// StrokeID returns the identifier the next sample will carry.
func (e *Engine) StrokeID() int {
	return e.strokeID
}

// Reset clears the window, the stroke counter, the cache and every baseline.
func (e *Engine) Reset() {
	e.window = nil
	e.strokeID = 0
	e.cached = Metrics{}
	e.dirty = true
	e.normalizer.Reset()
}

// Len returns the number of samples currently in the window.
func (e *Engine) Len() int {
	return len(e.window)
}

// Window returns a copy of the samples in the window.
func (e *Engine) Window() []TouchPoint {
	out := make([]TouchPoint, len(e.window))
	copy(out, e.window)
	return out
}

// prune drops samples older than WindowDuration before the latest one.
func (e *Engine) prune() {
	n := len(e.window)
	if n == 0 {
		return
	}
	cutoff := e.window[n-1].Timestamp.Add(-e.config.WindowDuration)
	i := 0
	for i < n && e.window[i].Timestamp.Before(cutoff) {
		i++
	}
	if i > 0 {
		e.window = append(e.window[:0], e.window[i:]...)
	}
}

// ComputeMetrics returns the metrics of the current window and feeds the
// window-level baselines. It is the inference path.
//
// The result is cached until the next write, and a cached read pushes
// nothing. Windows with fewer than two samples yield NeutralMetrics and leave
// the baselines untouched.
func (e *Engine) ComputeMetrics() Metrics {
	if !e.dirty {
		return e.cached
	}
	m, ok := e.measure()
	if !ok {
		return m
	}

	e.normalizer.Push(stats.Curvature, m.Curvature)
	e.normalizer.Push(stats.Jitter, m.Jitter)
	e.normalizer.Push(stats.Angularity, m.Angularity)
	e.normalizer.Push(stats.DirectionChanges, float64(m.DirectionChanges))
	e.normalizer.Push(stats.TouchArea, m.TouchArea)
	e.normalizer.Push(stats.SpeedVariance, m.SpeedVariance)

	e.cached = m
	e.dirty = false
	return m
}

// Snapshot returns the metrics of the current window without feeding the
// baselines or the cache, for read-only callers.
func (e *Engine) Snapshot() Metrics {
	if !e.dirty {
		return e.cached
	}
	m, _ := e.measure()
	return m
}

// measure computes the window metrics. ok is false for windows with fewer
// than two samples.
func (e *Engine) measure() (m Metrics, ok bool) {
	e.prune()
	if len(e.window) < 2 {
		return NeutralMetrics(), false
	}

	w := e.window
	speeds := make([]float64, 0, len(w)-1)
	pressures := make([]float64, len(w))
	strokeIDs := make(map[int]struct{})
	pauseSeconds := e.config.PauseThreshold.Seconds()

	var downward, movements, pauses int
	var dirChanges, angular, triplets int
	var curvatureSum float64
	var hasPencil bool

	minX, maxX := w[0].Location.X, w[0].Location.X
	minY, maxY := w[0].Location.Y, w[0].Location.Y

	for i, p := range w {
		pressures[i] = p.Pressure
		strokeIDs[p.StrokeID] = struct{}{}
		if math.Abs(p.Pressure-neutralPressure) > e.config.PencilEpsilon {
			hasPencil = true
		}
	}

	// Pass 1: pair speeds, bounds, direction and pauses
	for i := 1; i < len(w); i++ {
		prev, curr := w[i-1], w[i]
		if prev.StrokeID != curr.StrokeID {
			continue
		}
		dt := curr.Timestamp.Sub(prev.Timestamp).Seconds()
		if dt <= 0 {
			continue
		}

		speeds = append(speeds, prev.Location.Distance(curr.Location)/dt)
		if curr.Location.Y > prev.Location.Y {
			downward++
		}
		movements++
		if dt > pauseSeconds {
			pauses++
		}

		minX = math.Min(minX, curr.Location.X)
		maxX = math.Max(maxX, curr.Location.X)
		minY = math.Min(minY, curr.Location.Y)
		maxY = math.Max(maxY, curr.Location.Y)
	}

	// Pass 2: turn angles over triplets
	for i := 2; i < len(w); i++ {
		p0, p1, p2 := w[i-2], w[i-1], w[i]
		if p0.StrokeID != p1.StrokeID || p1.StrokeID != p2.StrokeID {
			continue
		}
		v1 := p1.Location.Sub(p0.Location)
		v2 := p2.Location.Sub(p1.Location)
		mag1, mag2 := v1.Magnitude(), v2.Magnitude()
		if mag1 <= 0 || mag2 <= 0 {
			continue
		}

		cos := v1.Dot(v2) / (mag1 * mag2)
		if cos < 0 {
			dirChanges++
		}
		if cos < -0.5 {
			angular++
		}
		triplets++
		curvatureSum += math.Abs(v1.Cross(v2)) / (mag1 * mag2)
	}

	if len(speeds) > 0 {
		m.InstantSpeed = speeds[len(speeds)-1]
		m.AverageSpeed, m.SpeedVariance = stat.PopMeanVariance(speeds, nil)
	}
	m.Jitter = jitter(speeds)
	m.SpeedTrend = speedTrend(speeds)
	m.Pressure, m.PressureVariance = stat.PopMeanVariance(pressures, nil)

	totalTime := w[len(w)-1].Timestamp.Sub(w[0].Timestamp).Seconds()
	canvasArea := math.Max(e.canvas.Area(), 1)
	coveredArea := math.Max((maxX-minX)*(maxY-minY), 0)

	m.StrokeDensity = float64(len(w)) / math.Max(coveredArea, 1) * 1000
	m.DirectionChanges = dirChanges
	if totalTime > 0 {
		m.PauseFrequency = float64(pauses) / totalTime
	}
	m.TouchArea = coveredArea / canvasArea
	m.DownwardRatio = 0.5
	if movements > 0 {
		m.DownwardRatio = float64(downward) / float64(movements)
	}
	if triplets > 0 {
		m.Curvature = curvatureSum / float64(triplets)
		m.Angularity = float64(angular) / float64(triplets)
	}
	m.AverageCurvature = m.Curvature
	m.StrokeCount = len(strokeIDs)
	m.HasPencil = hasPencil

	return m, true
}

// Summary digests the current window for archival. It does not feed the
// baselines.
func (e *Engine) Summary() Summary {
	m := e.Snapshot()
	return Summary{
		TotalPoints:     len(e.window),
		AverageSpeed:    m.AverageSpeed,
		AveragePressure: m.Pressure,
		CoveragePercent: m.TouchArea,
	}
}

// jitter is the population std dev of consecutive absolute speed changes.
// It needs at least three speeds.
func jitter(speeds []float64) float64 {
	if len(speeds) < 3 {
		return 0
	}
	diffs := make([]float64, len(speeds)-1)
	for i := 1; i < len(speeds); i++ {
		diffs[i-1] = math.Abs(speeds[i] - speeds[i-1])
	}
	_, sd := stat.PopMeanStdDev(diffs, nil)
	return sd
}

// speedTrend compares the mean speed of the second half to the first.
// It needs at least four speeds.
func speedTrend(speeds []float64) float64 {
	if len(speeds) < 4 {
		return 0
	}
	mid := len(speeds) / 2
	first := floats.Sum(speeds[:mid]) / float64(mid)
	second := floats.Sum(speeds[mid:]) / float64(len(speeds)-mid)
	return second - first
}
