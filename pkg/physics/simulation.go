package physics

import (
	"github.com/cbodonnell/lockstep/pkg/collisions"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/input"
)

// Simulation advances a world by one frame of player input.
type Simulation struct {
	stepper *Stepper
	dt      float32
}

func NewSimulation(engine *collisions.Engine, dt float32) *Simulation {
	return &Simulation{
		stepper: NewStepper(engine),
		dt:      dt,
	}
}

// Advance runs one frame. inputs is indexed by player handle.
func (s *Simulation) Advance(w *types.World, inputs []input.Mask) {
	MovePlayers(w, inputs)
	HandleVines(w, inputs)
	ResetFallen(w)
	s.stepper.Step(w, s.dt)
	UpdateCoyoteTime(w, s.dt)
}
