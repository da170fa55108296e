// Package pattern generates the procedural anchor layouts particles are
// attracted to. Every generator is a pure function of its inputs: identical
// arguments always produce identical point lists.
package pattern

import (
	"math"

	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/mood"
)

// Motif sizes.
const (
	JoyPetals        = 10
	JoyPointsPer     = 10
	CalmRings        = 4
	CalmPointsPer    = 24
	AnxietyNodes     = 20
	SadnessStreams   = 6
	SadnessPointsPer = 15
	AngerSpikes      = 6
	AngerPointsPer   = 12
)

type motif func(center geom.Point, radius, t float64) []geom.Point

var motifs = [mood.Count]motif{
	mood.Joy:     joy,
	mood.Calm:    calm,
	mood.Anxiety: anxiety,
	mood.Sadness: sadness,
	mood.Anger:   anger,
}

// Generator produces anchor sets. The zero value is ready to use.
type Generator struct{}

// Anchors returns the motif for m around center at animation time t (seconds).
// An invalid mood falls back to the calm motif.
func (Generator) Anchors(m mood.Mood, center geom.Point, radius, t float64) []geom.Point {
	if !m.Valid() {
		m = mood.Calm
	}
	return motifs[m](center, radius, t)
}

// Breathing returns the calm ring layout scaled by breathFactor instead of
// animated by time.
func (Generator) Breathing(center geom.Point, baseRadius, breathFactor float64) []geom.Point {
	anchors := make([]geom.Point, 0, CalmRings*CalmPointsPer)
	for ring := range CalmRings {
		r := float64(ring+1) / CalmRings * baseRadius * breathFactor
		anchors = appendRing(anchors, center, r)
	}
	return anchors
}

func appendRing(anchors []geom.Point, center geom.Point, r float64) []geom.Point {
	for p := range CalmPointsPer {
		angle := float64(p) / CalmPointsPer * 2 * math.Pi
		anchors = append(anchors, polar(center, r, angle))
	}
	return anchors
}

func polar(center geom.Point, r, angle float64) geom.Point {
	return geom.Point{
		X: center.X + math.Cos(angle)*r,
		Y: center.Y + math.Sin(angle)*r,
	}
}

// joy: radiating petals, each a swept arc that slowly rotates and breathes.
func joy(center geom.Point, radius, t float64) []geom.Point {
	anchors := make([]geom.Point, 0, JoyPetals*JoyPointsPer)
	rotation := t * 0.008

	for i := range JoyPetals {
		baseAngle := float64(i)/JoyPetals*2*math.Pi + rotation
		breathe := 1.0 + 0.05*math.Sin(t*2.0+float64(i))
		for j := range JoyPointsPer {
			u := float64(j) / JoyPointsPer
			envelope := math.Sin(u * math.Pi)
			r := radius * u * (0.5 + 0.5*envelope) * breathe
			anchors = append(anchors, polar(center, r, baseAngle+envelope*0.3))
		}
	}
	return anchors
}

// calm: concentric rings with a per-ring phase-shifted ripple.
func calm(center geom.Point, radius, t float64) []geom.Point {
	anchors := make([]geom.Point, 0, CalmRings*CalmPointsPer)
	for ring := range CalmRings {
		baseR := float64(ring+1) / CalmRings * radius
		ripple := 3.0 * math.Sin(t*1.5+float64(ring)*1.2)
		anchors = appendRing(anchors, center, baseR+ripple)
	}
	return anchors
}

// anxiety: hashed node cloud keyed by a coarse time bucket, plus midpoints of
// every pair closer than 0.8 radius.
func anxiety(center geom.Point, radius, t float64) []geom.Point {
	nodes := make([]geom.Point, 0, AnxietyNodes)
	seed := int(t * 0.5)

	for i := range AnxietyNodes {
		h1 := float64((i*7+seed*13)%997) / 997.0
		h2 := float64((i*11+seed*17)%991) / 991.0
		jitter := 2.0 * math.Sin(t*3.0+float64(i))
		nodes = append(nodes, geom.Point{
			X: center.X + (h1-0.5)*radius*2 + jitter,
			Y: center.Y + (h2-0.5)*radius*2 + jitter*0.7,
		})
	}

	anchors := append([]geom.Point(nil), nodes...)
	limit := radius * 0.8
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if nodes[i].Distance(nodes[j]) < limit {
				anchors = append(anchors, nodes[i].Lerp(nodes[j], 0.5))
			}
		}
	}
	return anchors
}

// sadness: near-vertical streams that drift downward and wrap.
func sadness(center geom.Point, radius, t float64) []geom.Point {
	anchors := make([]geom.Point, 0, SadnessStreams*SadnessPointsPer)

	for s := range SadnessStreams {
		baseX := center.X + float64(s-SadnessStreams/2)*(radius*0.4)
		sway := 8.0 * math.Sin(float64(s)*0.5)
		fall := math.Mod(t*0.3+float64(s)*0.2, 1.0)

		for p := range SadnessPointsPer {
			u := float64(p) / SadnessPointsPer
			anchors = append(anchors, geom.Point{
				X: baseX + sway*u,
				Y: center.Y - radius + u*radius*2 + fall*20,
			})
		}
	}
	return anchors
}

// anger: radiating spikes of hashed length that pulse and fork at the tip.
func anger(center geom.Point, radius, t float64) []geom.Point {
	anchors := make([]geom.Point, 0, AngerSpikes*AngerPointsPer)

	for s := range AngerSpikes {
		baseAngle := float64(s) / AngerSpikes * 2 * math.Pi
		length := radius * (0.6 + 0.4*float64((s*3+7)%11)/11.0)
		pulse := 1.0 + 0.2*math.Sin(t*5.0+float64(s))

		for p := range AngerPointsPer {
			u := float64(p) / AngerPointsPer
			var fork float64
			if u > 0.8 {
				fork = (u - 0.8) * 0.4
				if p%2 != 0 {
					fork = -fork
				}
			}
			anchors = append(anchors, polar(center, length*u*pulse, baseAngle+fork))
		}
	}
	return anchors
}
