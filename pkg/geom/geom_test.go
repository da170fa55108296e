package geom

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	d := Pt(0, 0).Distance(Pt(3, 4))
	if math.Abs(d-5) > 1e-12 {
		t.Errorf("Expected 5, got %f", d)
	}
}

func TestVectorMath(t *testing.T) {
	v1 := Pt(1, 0).Sub(Pt(0, 0))
	v2 := Pt(1, 1).Sub(Pt(1, 0))

	if v1.Dot(v2) != 0 {
		t.Errorf("Expected orthogonal vectors, dot=%f", v1.Dot(v2))
	}
	if v1.Cross(v2) != 1 {
		t.Errorf("Expected cross=1, got %f", v1.Cross(v2))
	}

	n := Vector{DX: 3, DY: 4}.Normalized()
	if math.Abs(n.Magnitude()-1) > 1e-12 {
		t.Errorf("Expected unit vector, got magnitude %f", n.Magnitude())
	}
	if (Vector{}).Normalized() != (Vector{}) {
		t.Error("Expected zero vector to normalize to zero")
	}
}

func TestLerp(t *testing.T) {
	mid := Pt(0, 0).Lerp(Pt(10, -4), 0.5)
	if mid != Pt(5, -2) {
		t.Errorf("Expected (5,-2), got %+v", mid)
	}
}

func TestNearest(t *testing.T) {
	anchors := []Point{Pt(0, 0), Pt(10, 10), Pt(4, 5)}

	if got := Nearest(Pt(5, 5), anchors); got != Pt(4, 5) {
		t.Errorf("Expected (4,5), got %+v", got)
	}

	// Ties keep the earliest anchor
	if got := Nearest(Pt(5, 5), []Point{Pt(4, 5), Pt(6, 5)}); got != Pt(4, 5) {
		t.Errorf("Expected first of tied anchors, got %+v", got)
	}

	if got := Nearest(Pt(1, 2), nil); got != Pt(1, 2) {
		t.Errorf("Expected point itself for empty anchors, got %+v", got)
	}
}

func TestSize(t *testing.T) {
	s := Size{Width: 400, Height: 800}
	if s.Area() != 320000 {
		t.Errorf("Expected area 320000, got %f", s.Area())
	}
	if s.Center() != Pt(200, 400) {
		t.Errorf("Expected center (200,400), got %+v", s.Center())
	}
	if s.MinSide() != 400 {
		t.Errorf("Expected min side 400, got %f", s.MinSide())
	}
}

func TestIsFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("Expected finite point")
	}
	if Pt(math.NaN(), 0).IsFinite() || Pt(0, math.Inf(1)).IsFinite() {
		t.Error("Expected non-finite point to be rejected")
	}
}
