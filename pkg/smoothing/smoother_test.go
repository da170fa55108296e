package smoothing

import (
	"math"
	"testing"
	"time"

	"github.com/Hean-Yi/Aura/pkg/mood"
)

var epoch = time.Unix(1_700_000_000, 0)

func TestSoftmax(t *testing.T) {
	s := New(DefaultConfig())

	tests := []struct {
		name string
		raw  mood.Scores
	}{
		{"uniform", mood.Uniform(0.3)},
		{"peaked", mood.Scores{1, 0, 0, 0, 0}},
		{"large", mood.Scores{1000, 999, 0, 0, 0}},
		{"zeros", mood.Scores{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.Softmax(tt.raw)
			if math.Abs(out.Sum()-1) > 1e-12 {
				t.Errorf("Expected softmax sum 1, got %f", out.Sum())
			}
			for i, v := range out {
				if math.IsNaN(v) || v < 0 {
					t.Errorf("Expected finite non-negative entry %d, got %f", i, v)
				}
			}
			if out.Dominant() != tt.raw.Dominant() {
				t.Errorf("Expected softmax to keep argmax %s, got %s", tt.raw.Dominant(), out.Dominant())
			}
		})
	}
}

func TestSoftmaxLarge(t *testing.T) {
	s := New(DefaultConfig())
	out := s.Softmax(mood.Scores{1000, 999, 0, 0, 0})
	want := 1 / (1 + math.Exp(-1))
	if math.Abs(out[mood.Joy]-want) > 1e-9 {
		t.Errorf("Expected joy %f, got %f", want, out[mood.Joy])
	}
}

func TestSmoothFirstCallUsesUniformPrior(t *testing.T) {
	s := New(DefaultConfig())
	if _, ok := s.Previous(); ok {
		t.Fatal("Expected no previous vector before the first call")
	}

	raw := mood.Scores{0.9, 0.1, 0.2, 0.05, 0.3}
	normalized := s.Softmax(raw)
	out := s.Smooth(raw)

	for i := range out {
		want := 0.35*normalized[i] + 0.65*0.2
		if math.Abs(out[i]-want) > 1e-12 {
			t.Errorf("Expected entry %d = %f, got %f", i, want, out[i])
		}
	}

	prev, ok := s.Previous()
	if !ok || prev != out {
		t.Errorf("Expected previous to be stored, got %v (%v)", prev, ok)
	}
}

// Smoothed scores are a per-mood blend; the result is never rescaled, so
// callers must not treat it as a probability distribution.
func TestSmoothIsPerMoodBlendWithoutRenormalization(t *testing.T) {
	s := New(DefaultConfig())
	for range 5 {
		s.Smooth(mood.Scores{1, 0, 0, 0, 0})
	}
	prev, _ := s.Previous()

	raw := mood.Scores{0, 0, 0, 0, 1}
	normalized := s.Softmax(raw)
	out := s.Smooth(raw)

	for i := range out {
		blend := 0.35*normalized[i] + 0.65*prev[i]
		if math.Abs(out[i]-blend) > 1e-15 {
			t.Errorf("Expected entry %d to be the raw blend %v, got %v", i, blend, out[i])
		}
	}

	// Joy still leads after one frame of anger: the average lags the input.
	if out.Dominant() != mood.Joy {
		t.Errorf("Expected smoothed dominant joy, got %s", out.Dominant())
	}
	if normalized.Dominant() != mood.Anger {
		t.Errorf("Expected normalized dominant anger, got %s", normalized.Dominant())
	}
}

func TestSmoothConverges(t *testing.T) {
	s := New(DefaultConfig())
	raw := mood.Scores{0.1, 0.9, 0.1, 0.1, 0.1}
	target := s.Softmax(raw)

	var out mood.Scores
	for range 60 {
		out = s.Smooth(raw)
	}
	for i := range out {
		if math.Abs(out[i]-target[i]) > 1e-6 {
			t.Errorf("Expected entry %d to converge to %f, got %f", i, target[i], out[i])
		}
	}
}

func TestShouldSwitch(t *testing.T) {
	s := New(DefaultConfig())

	if s.ShouldSwitch(mood.Calm, mood.Calm, epoch) {
		t.Error("Expected no switch to the same mood")
	}
	if _, ok := s.LastSwitch(); ok {
		t.Error("Expected same-mood call to leave the switch time unset")
	}

	// First differing candidate is accepted unconditionally.
	if !s.ShouldSwitch(mood.Anger, mood.Calm, epoch) {
		t.Fatal("Expected first differing candidate to switch")
	}

	// Within the dwell interval every call is rejected.
	for _, d := range []time.Duration{0, 100 * time.Millisecond, 300 * time.Millisecond, 599 * time.Millisecond} {
		if s.ShouldSwitch(mood.Joy, mood.Anger, epoch.Add(d)) {
			t.Errorf("Expected rejection at +%v", d)
		}
	}

	last, _ := s.LastSwitch()
	if !last.Equal(epoch) {
		t.Errorf("Expected rejections to keep switch time %v, got %v", epoch, last)
	}

	// Exactly one call after the interval is accepted.
	after := epoch.Add(600 * time.Millisecond)
	if !s.ShouldSwitch(mood.Joy, mood.Anger, after) {
		t.Fatal("Expected switch once the dwell interval elapsed")
	}
	if s.ShouldSwitch(mood.Sadness, mood.Joy, after.Add(time.Millisecond)) {
		t.Error("Expected the accepted switch to restart the dwell interval")
	}
}

func TestShouldSwitchTable(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"immediately", 0, false},
		{"half delay", 300 * time.Millisecond, false},
		{"exact delay", 600 * time.Millisecond, true},
		{"long after", 5 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultConfig())
			s.ShouldSwitch(mood.Joy, mood.Calm, epoch)
			got := s.ShouldSwitch(mood.Anger, mood.Joy, epoch.Add(tt.elapsed))
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestReset(t *testing.T) {
	s := New(DefaultConfig())
	s.Smooth(mood.Scores{1, 0, 0, 0, 0})
	s.ShouldSwitch(mood.Joy, mood.Calm, epoch)

	s.Reset()

	if _, ok := s.Previous(); ok {
		t.Error("Expected reset to clear the running average")
	}
	if _, ok := s.LastSwitch(); ok {
		t.Error("Expected reset to clear the switch time")
	}
	// Fresh gate: the next differing candidate is accepted at once.
	if !s.ShouldSwitch(mood.Anger, mood.Joy, epoch.Add(time.Millisecond)) {
		t.Error("Expected fresh gate after reset")
	}
}

func TestNewDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want float64
	}{
		{"zero alpha", Config{}, 0.35},
		{"alpha above one", Config{Alpha: 2}, 0.35},
		{"custom alpha", Config{Alpha: 0.5}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.cfg).Config().Alpha; got != tt.want {
				t.Errorf("Expected alpha %f, got %f", tt.want, got)
			}
		})
	}
}
