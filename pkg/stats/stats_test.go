package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestRunningStatistics_MatchesBatch(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.IntN(500)
		values := make([]float64, n)
		var rs RunningStatistics
		for i := range values {
			values[i] = rng.NormFloat64()*100 + 1e4
			rs.Push(values[i])
		}

		mean, popVar := stat.PopMeanVariance(values, nil)
		sampleVar := stat.Variance(values, nil)

		if math.Abs(rs.Mean()-mean) > 1e-9*math.Abs(mean) {
			t.Fatalf("trial %d: expected mean %v, got %v", trial, mean, rs.Mean())
		}
		if math.Abs(rs.PopVariance()-popVar) > 1e-6*popVar {
			t.Fatalf("trial %d: expected population variance %v, got %v", trial, popVar, rs.PopVariance())
		}
		if math.Abs(rs.Variance()-sampleVar) > 1e-6*sampleVar {
			t.Fatalf("trial %d: expected sample variance %v, got %v", trial, sampleVar, rs.Variance())
		}
		if rs.Count() != n {
			t.Fatalf("trial %d: expected count %d, got %d", trial, n, rs.Count())
		}
	}
}

func TestRunningStatistics_StdDevFloor(t *testing.T) {
	var rs RunningStatistics
	if rs.StdDev() != 1.0 {
		t.Errorf("Expected stddev floor 1.0 with no samples, got %v", rs.StdDev())
	}

	rs.Push(42)
	if rs.StdDev() != 1.0 {
		t.Errorf("Expected stddev floor 1.0 with one sample, got %v", rs.StdDev())
	}
	// One sample: z uses the floor
	if z := rs.ZScore(44); z != 2 {
		t.Errorf("Expected z=2 with floor stddev, got %v", z)
	}
}

func TestRunningStatistics_DegenerateSpread(t *testing.T) {
	var rs RunningStatistics
	for i := 0; i < 10; i++ {
		rs.Push(3.5)
	}
	if z := rs.ZScore(100); z != 0 {
		t.Errorf("Expected z=0 for zero spread, got %v", z)
	}
}

func TestRunningStatistics_Reset(t *testing.T) {
	var rs RunningStatistics
	rs.Push(1)
	rs.Push(2)
	rs.Reset()

	if rs.Count() != 0 || rs.Mean() != 0 || rs.Variance() != 0 {
		t.Errorf("Expected empty accumulator after reset, got %+v", rs)
	}
}

func TestClampZ_Bounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	inputs := []float64{0, 1, -1, 2, -2, 3, -3, 1e300, -1e300, math.Inf(1), math.Inf(-1), math.NaN()}
	for i := 0; i < 1000; i++ {
		inputs = append(inputs, (rng.Float64()-0.5)*1e6)
	}

	for _, z := range inputs {
		got := ClampZ(z)
		if got < -1 || got > 1 || math.IsNaN(got) {
			t.Fatalf("ClampZ(%v) = %v out of [-1, 1]", z, got)
		}
	}

	if ClampZ(1) != 0.5 {
		t.Errorf("Expected ClampZ(1)=0.5, got %v", ClampZ(1))
	}
	if ClampZ(-5) != -1 {
		t.Errorf("Expected ClampZ(-5)=-1, got %v", ClampZ(-5))
	}
}

func TestNormalizer_ZWithinRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	n := NewNormalizer()

	for i := 0; i < 200; i++ {
		for f := Feature(0); f < FeatureCount; f++ {
			n.Push(f, rng.ExpFloat64()*float64(f+1))
		}
	}

	for f := Feature(0); f < FeatureCount; f++ {
		for i := 0; i < 100; i++ {
			v := (rng.Float64() - 0.5) * 1e5
			if z := n.Z(f, v); z < -1 || z > 1 {
				t.Fatalf("%v: Z(%v) = %v out of range", f, v, z)
			}
		}
	}
}

func TestNormalizer_ResetAndUnknown(t *testing.T) {
	n := NewNormalizer()
	n.Push(Speed, 10)
	n.Push(Speed, 20)
	n.Push(Feature(99), 1)

	if n.Stats(Speed).Count() != 2 {
		t.Errorf("Expected 2 speed samples, got %d", n.Stats(Speed).Count())
	}
	if n.Z(Feature(-1), 5) != 0 {
		t.Error("Expected 0 for unknown feature")
	}

	n.Reset()
	for f := Feature(0); f < FeatureCount; f++ {
		if n.Stats(f).Count() != 0 {
			t.Errorf("%v: expected empty after reset", f)
		}
	}
}

func TestFeatureString(t *testing.T) {
	if DirectionChanges.String() != "direction_changes" {
		t.Errorf("Unexpected name %q", DirectionChanges.String())
	}
	if FeatureCount.String() != "unknown" {
		t.Errorf("Expected unknown, got %q", FeatureCount.String())
	}
}
