package loop

import (
	"time"

	"github.com/Hean-Yi/Aura/pkg/geom"
)

// Kind identifies an input event.
type Kind int

const (
	Point Kind = iota
	EndStroke
	Resize
	Reset
	StartBreathing
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case EndStroke:
		return "end_stroke"
	case Resize:
		return "resize"
	case Reset:
		return "reset"
	case StartBreathing:
		return "start_breathing"
	default:
		return "unknown"
	}
}

// Event is one input for the session. At is the sample time; a zero At is
// stamped with the loop clock on arrival.
type Event struct {
	Kind     Kind
	Location geom.Point
	Pressure float64
	Size     geom.Size
	At       time.Time
}

// PointEvent builds a pointer sample event.
func PointEvent(loc geom.Point, pressure float64, at time.Time) Event {
	return Event{Kind: Point, Location: loc, Pressure: pressure, At: at}
}

// ResizeEvent builds a canvas resize event.
func ResizeEvent(size geom.Size) Event {
	return Event{Kind: Resize, Size: size}
}
