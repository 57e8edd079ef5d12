package physics

import (
	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/input"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
)

// inputFor returns the input of a player handle, or false if the frame carries none.
func inputFor(inputs []input.Mask, handle int) (input.Mask, bool) {
	if handle < 0 || handle >= len(inputs) {
		return 0, false
	}
	return inputs[handle], true
}

// MovePlayers applies each player's input: horizontal speed follows the input
// directly, and a jump starts only while coyote time is available.
func MovePlayers(w *types.World, inputs []input.Mask) {
	w.Each(func(_ types.Entity, c *types.Components) {
		if c.Player == nil || c.Velocity == nil {
			return
		}
		in, ok := inputFor(inputs, c.Player.Handle)
		if !ok {
			return
		}
		direction := in.Direction()

		c.Velocity.X = direction.X
		if c.Facing != nil {
			if direction.X < 0 {
				c.Facing.Left = true
			} else if direction.X > 0 {
				c.Facing.Left = false
			}
		}

		if direction.Y <= 0 || c.CoyoteTime == nil {
			return
		}
		if c.CoyoteTime.Available() {
			c.Velocity.Y = direction.Y
			c.CoyoteTime.Consume()
		}
	})
}

// HandleVines lets a player touching a vine climb while interact is held and
// slide slowly otherwise. Either way gravity is suspended for the next tick.
func HandleVines(w *types.World, inputs []input.Mask) {
	var vines []types.Entity
	w.Each(func(e types.Entity, c *types.Components) {
		if c.Vine {
			vines = append(vines, e)
		}
	})
	if len(vines) == 0 {
		return
	}

	w.Each(func(_ types.Entity, c *types.Components) {
		if c.Player == nil || c.Velocity == nil || c.Collider == nil || c.Gravity == nil {
			return
		}
		in, ok := inputFor(inputs, c.Player.Handle)
		if !ok {
			return
		}
		for _, vine := range vines {
			if _, touching := c.Collider.CollidingWith(vine); !touching {
				continue
			}
			if in.Has(input.Interact) {
				c.Velocity.Y = constants.VineClimbSpeed
				c.Gravity.TempOverride()
			} else if !c.Collider.CheckSolidSide(types.SideBottom) {
				c.Velocity.Y = constants.VineSlideSpeed
				c.Gravity.TempOverride()
			}
		}
	})
}

// ResetFallen puts bodies that fell below the death threshold back at the
// respawn point with no velocity.
func ResetFallen(w *types.World) {
	w.Each(func(_ types.Entity, c *types.Components) {
		if c.Transform == nil || c.Velocity == nil {
			return
		}
		if c.Transform.Position.Y < constants.DeathThreshold {
			c.Transform.Position = kinematic.Vector{X: constants.ResetX, Y: constants.ResetY}
			c.Velocity.Vector = kinematic.Vector{}
		}
	})
}

// UpdateCoyoteTime advances every coyote timer and refills it for bodies
// standing on a platform.
func UpdateCoyoteTime(w *types.World, dt float32) {
	w.Each(func(_ types.Entity, c *types.Components) {
		if c.CoyoteTime == nil || c.Collider == nil {
			return
		}
		c.CoyoteTime.Tick(dt)
		for _, other := range c.Collider.AllCollidingSide(types.SideBottom) {
			if oc, ok := w.Get(other); ok && oc.Platform {
				c.CoyoteTime.Reset()
				return
			}
		}
	})
}
