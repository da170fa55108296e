package particles

import (
	"github.com/google/uuid"

	"github.com/Hean-Yi/Aura/pkg/geom"
	"github.com/Hean-Yi/Aura/pkg/mood"
)

// State is a particle lifecycle stage.
type State int

const (
	// Spawned particles have not been updated yet.
	Spawned State = iota
	// Active particles are spring-tracking their target.
	Active
	// Decaying particles are fading out.
	Decaying
	// Removed particles have no life left and are purged on the next update.
	Removed
)

func (s State) String() string {
	switch s {
	case Spawned:
		return "spawned"
	case Active:
		return "active"
	case Decaying:
		return "decaying"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Particle is one simulated point of light.
type Particle struct {
	ID       uuid.UUID   `json:"id"`
	Position geom.Point  `json:"position"`
	Velocity geom.Vector `json:"velocity"`
	Target   geom.Point  `json:"target"`
	Color    mood.Color  `json:"color"`
	Opacity  float64     `json:"opacity"`
	Size     float64     `json:"size"`
	Life     float64     `json:"life"`

	// BaseOpacity is the resting opacity a transition boost fades back to.
	BaseOpacity float64 `json:"-"`

	// Phase offsets the micro-motion, in [0, 2π).
	Phase float64 `json:"-"`

	// Born is the simulation time of the spawn.
	Born float64 `json:"-"`

	updates    int
	boosting   bool
	boostStart float64
	boostFrom  float64
	calmed     bool
}

// Boosting reports whether a transition boost is still fading.
func (p Particle) Boosting() bool {
	return p.boosting
}

func stateOf(p Particle, decayingBelow float64) State {
	switch {
	case p.Life <= 0:
		return Removed
	case p.updates == 0:
		return Spawned
	case p.Life < decayingBelow:
		return Decaying
	default:
		return Active
	}
}
