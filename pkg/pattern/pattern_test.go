package pattern

import (
	"math"
	"slices"
	"testing"

	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/mood"
)

var center = geom.Point{X: 200, Y: 400}

func TestAnchorsDeterministic(t *testing.T) {
	var g Generator
	for _, m := range mood.All {
		for _, ts := range []float64{0, 0.5, 3.7, 120} {
			a := g.Anchors(m, center, 140, ts)
			b := g.Anchors(m, center, 140, ts)
			if !slices.Equal(a, b) {
				t.Errorf("Expected identical anchors for %s at t=%.1f", m, ts)
			}
		}
	}
}

func TestAnchorCounts(t *testing.T) {
	var g Generator
	tests := []struct {
		mood mood.Mood
		want int
	}{
		{mood.Joy, JoyPetals * JoyPointsPer},
		{mood.Calm, CalmRings * CalmPointsPer},
		{mood.Sadness, SadnessStreams * SadnessPointsPer},
		{mood.Anger, AngerSpikes * AngerPointsPer},
	}

	for _, tt := range tests {
		t.Run(tt.mood.String(), func(t *testing.T) {
			got := len(g.Anchors(tt.mood, center, 140, 1.0))
			if got != tt.want {
				t.Errorf("Expected %d anchors, got %d", tt.want, got)
			}
		})
	}
}

func TestAnxietyMidpoints(t *testing.T) {
	var g Generator
	radius := 140.0
	anchors := g.Anchors(mood.Anxiety, center, radius, 2.3)

	if len(anchors) < AnxietyNodes {
		t.Fatalf("Expected at least %d anchors, got %d", AnxietyNodes, len(anchors))
	}

	nodes := anchors[:AnxietyNodes]
	var want []geom.Point
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if nodes[i].Distance(nodes[j]) < radius*0.8 {
				want = append(want, nodes[i].Lerp(nodes[j], 0.5))
			}
		}
	}
	if len(want) == 0 {
		t.Fatal("Expected some close node pairs")
	}
	if !slices.Equal(anchors[AnxietyNodes:], want) {
		t.Errorf("Expected %d midpoints after the nodes, got %d", len(want), len(anchors)-AnxietyNodes)
	}
}

func TestAnxietyBucketsTime(t *testing.T) {
	var g Generator
	// 0.2 s and 1.5 s share bucket 0, so nodes differ only by the jitter.
	a := g.Anchors(mood.Anxiety, center, 140, 0.2)
	b := g.Anchors(mood.Anxiety, center, 140, 1.5)
	for i := range AnxietyNodes {
		ja := 2.0 * math.Sin(0.2*3+float64(i))
		jb := 2.0 * math.Sin(1.5*3+float64(i))
		if math.Abs((a[i].X-ja)-(b[i].X-jb)) > 1e-9 || math.Abs((a[i].Y-ja*0.7)-(b[i].Y-jb*0.7)) > 1e-9 {
			t.Errorf("Expected node %d to keep its hashed position within a bucket", i)
		}
	}

	c := g.Anchors(mood.Anxiety, center, 140, 10)
	if slices.Equal(a[:AnxietyNodes], c[:AnxietyNodes]) {
		t.Error("Expected a different layout in a later time bucket")
	}
}

func TestCalmRingRadii(t *testing.T) {
	var g Generator
	radius := 120.0
	ts := 0.0
	anchors := g.Anchors(mood.Calm, center, radius, ts)

	for ring := range CalmRings {
		want := float64(ring+1)/CalmRings*radius + 3.0*math.Sin(float64(ring)*1.2)
		for p := range CalmPointsPer {
			got := anchors[ring*CalmPointsPer+p].Distance(center)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("Expected ring %d radius %f, got %f", ring, want, got)
			}
		}
	}
}

func TestBreathing(t *testing.T) {
	var g Generator
	tests := []struct {
		name   string
		factor float64
	}{
		{"full", 1.0},
		{"contracted", 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchors := g.Breathing(center, 100, tt.factor)
			if len(anchors) != CalmRings*CalmPointsPer {
				t.Fatalf("Expected %d anchors, got %d", CalmRings*CalmPointsPer, len(anchors))
			}
			outer := anchors[len(anchors)-1].Distance(center)
			if math.Abs(outer-100*tt.factor) > 1e-9 {
				t.Errorf("Expected outer ring %f, got %f", 100*tt.factor, outer)
			}
			if !slices.Equal(anchors, g.Breathing(center, 100, tt.factor)) {
				t.Error("Expected breathing anchors to be deterministic")
			}
		})
	}
}

func TestAngerSpikeLengths(t *testing.T) {
	var g Generator
	radius := 100.0
	// sin(5t + s) = 0 for s = 0 at t = 0, so spike 0 is unpulsed.
	anchors := g.Anchors(mood.Anger, center, radius, 0)
	length := radius * (0.6 + 0.4*7.0/11.0)
	last := anchors[AngerPointsPer-1].Distance(center)
	want := length * float64(AngerPointsPer-1) / AngerPointsPer
	if math.Abs(last-want) > 1e-9 {
		t.Errorf("Expected tip distance %f, got %f", want, last)
	}
}

func TestSadnessWraps(t *testing.T) {
	var g Generator
	// The fall offset has period 1/0.3 seconds.
	a := g.Anchors(mood.Sadness, center, 100, 1.0)
	b := g.Anchors(mood.Sadness, center, 100, 1.0+10.0/3.0)
	for i := range a {
		if math.Abs(a[i].Y-b[i].Y) > 1e-6 {
			t.Fatalf("Expected wrap-around at index %d, got %f vs %f", i, a[i].Y, b[i].Y)
		}
	}
}

func TestInvalidMoodFallsBackToCalm(t *testing.T) {
	var g Generator
	got := g.Anchors(mood.Mood(99), center, 100, 0)
	want := g.Anchors(mood.Calm, center, 100, 0)
	if !slices.Equal(got, want) {
		t.Error("Expected calm layout for an invalid mood")
	}
}

func TestRefreshCache(t *testing.T) {
	normal := Mode{Kind: Normal, Mood: mood.Joy}
	anchors := []geom.Point{{X: 1, Y: 1}}

	var c RefreshCache
	if !c.ShouldRefresh(normal, center, 100, 0) {
		t.Fatal("Expected empty cache to refresh")
	}
	c.Store(anchors, normal, center, 100, 0)

	tests := []struct {
		name   string
		mode   Mode
		center geom.Point
		radius float64
		t      float64
		want   bool
	}{
		{"unchanged", normal, center, 100, 0.01, false},
		{"sub-pixel drift", normal, geom.Point{X: 200.5, Y: 400.5}, 100.5, 0.01, false},
		{"interval elapsed", normal, center, 100, NormalRefreshInterval, true},
		{"mood changed", Mode{Kind: Normal, Mood: mood.Anger}, center, 100, 0.01, true},
		{"kind changed", Mode{Kind: BreathingFollow, Mood: mood.Joy}, center, 100, 0.01, true},
		{"centre moved", normal, geom.Point{X: 202, Y: 400}, 100, 0.01, true},
		{"radius changed", normal, center, 102, 0.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ShouldRefresh(tt.mode, tt.center, tt.radius, tt.t); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	if got := c.Anchors(); !slices.Equal(got, anchors) {
		t.Errorf("Expected stored anchors, got %v", got)
	}

	c.Reset()
	if c.Anchors() != nil {
		t.Error("Expected reset to drop anchors")
	}
	if _, ok := c.Mode(); ok {
		t.Error("Expected reset to clear mode")
	}
}

func TestBreathingRefreshFaster(t *testing.T) {
	pulse := Mode{Kind: BreathingPulse, Mood: mood.Calm}
	var c RefreshCache
	c.Store([]geom.Point{{}}, pulse, center, 100, 1.0)

	if c.ShouldRefresh(pulse, center, 100, 1.0+BreathingRefreshInterval/2) {
		t.Error("Expected no refresh before the breathing interval")
	}
	if !c.ShouldRefresh(pulse, center, 100, 1.0+BreathingRefreshInterval) {
		t.Error("Expected refresh after the breathing interval")
	}
}
