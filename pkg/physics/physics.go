// Package physics advances a world by one fixed step: gravity, velocity
// integration, collision detection and push-out of solid bodies.
package physics

import (
	"github.com/cbodonnell/lockstep/pkg/collisions"
	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
)

// Stepper runs the physics phases in a fixed order.
type Stepper struct {
	engine *collisions.Engine
}

func NewStepper(engine *collisions.Engine) *Stepper {
	return &Stepper{
		engine: engine,
	}
}

// Step advances the world by dt seconds.
func (s *Stepper) Step(w *types.World, dt float32) {
	ApplyGravity(w, dt)
	IntegrateVelocity(w, dt)
	s.engine.Detect(w)
	NewSolidResolver().Resolve(w)
}

// ApplyGravity accelerates every body with gravity. A body whose override is set
// skips this tick and has the override cleared. A body with any contact on its
// bottom side has its downward speed capped instead. Contacts are the ones
// recorded by the previous tick's detection.
func ApplyGravity(w *types.World, dt float32) {
	w.Each(func(_ types.Entity, c *types.Components) {
		if c.Gravity == nil || c.Velocity == nil || c.Collider == nil {
			return
		}
		if c.Gravity.Overridden() {
			c.Gravity.ClearTempOverride()
			return
		}
		if c.Collider.CheckSide(types.SideBottom) {
			if c.Velocity.Y < constants.RestingVelocity {
				c.Velocity.Y = constants.RestingVelocity
			}
			return
		}
		c.Velocity.Vector = c.Velocity.Add(c.Gravity.VelocityDelta(dt))
	})
}

// IntegrateVelocity moves every body by velocity * dt.
func IntegrateVelocity(w *types.World, dt float32) {
	w.Each(func(_ types.Entity, c *types.Components) {
		if c.Transform == nil || c.Velocity == nil {
			return
		}
		c.Transform.Position = c.Transform.Position.Add(kinematic.Displacement(c.Velocity.Vector, dt))
	})
}
