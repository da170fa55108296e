package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/Hean-Yi/Aura/pkg/geom"
)

// step is one scripted input: wait gap seconds, then either add a point or
// end the stroke.
type step struct {
	gap      float64
	end      bool
	point    geom.Point
	pressure float64
}

type scenario []step

var scenarios = map[string]func(*rand.Rand) scenario{
	"calm":     func(*rand.Rand) scenario { return calmScenario() },
	"anger":    func(*rand.Rand) scenario { return angerScenario() },
	"scribble": scribbleScenario,
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupScenario(name string, rng *rand.Rand) (scenario, error) {
	build, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (want %s)", name, strings.Join(scenarioNames(), ", "))
	}
	return build(rng), nil
}

func point(gap, x, y, pressure float64) step {
	return step{gap: gap, point: geom.Pt(x, y), pressure: pressure}
}

func endStroke() step {
	return step{end: true}
}

// circle is a slow circle of radius 100 around (200, 400), 40 samples per
// revolution at 20 Hz.
func circle(n int) scenario {
	sc := make(scenario, 0, n)
	for i := range n {
		a := float64(i) * 2 * math.Pi / 40
		sc = append(sc, point(0.05, 200+100*math.Cos(a), 400+100*math.Sin(a), 0.5))
	}
	return sc
}

// calmScenario sets a brisk baseline with horizontal sweeps, then draws a
// slow circle.
func calmScenario() scenario {
	var sc scenario
	x := 40.0
	for i := range 60 {
		speed := 1500 + 600*math.Sin(float64(i)*0.7)
		x += speed * 0.02
		if x > 360 {
			x = 40
		}
		sc = append(sc, point(0.02, x, 200, 0.5))
	}
	sc = append(sc, endStroke())
	return append(sc, circle(160)...)
}

// angerScenario draws a calm circle, pauses past the window, then scribbles
// hard back and forth with the sample interval shrinking from 60 ms to 10 ms.
func angerScenario() scenario {
	sc := circle(160)
	sc = append(sc, endStroke())

	const n = 50
	for i := range n {
		dt := 0.06 - 0.05*float64(i)/float64(n-1)
		if i == 0 {
			dt += 6
		}
		x := 150.0
		if i%2 == 1 {
			x = 250
		}
		sc = append(sc, point(dt, x, 400, 1.0))
	}
	return sc
}

// scribbleScenario is a random walk in short strokes.
func scribbleScenario(rng *rand.Rand) scenario {
	var sc scenario
	pos := geom.Pt(200, 400)
	heading := 0.0
	for k := range 8 {
		if k > 0 {
			sc = append(sc, endStroke())
		}
		for range 30 {
			heading += (rng.Float64() - 0.5) * 2.4
			dist := 5 + rng.Float64()*25
			pos = geom.Pt(
				geom.Clamp(pos.X+dist*math.Cos(heading), 20, 380),
				geom.Clamp(pos.Y+dist*math.Sin(heading), 20, 780),
			)
			sc = append(sc, point(0.015+rng.Float64()*0.04, pos.X, pos.Y, 0.3+rng.Float64()*0.6))
		}
	}
	return sc
}
