package collisions

import (
	"github.com/cbodonnell/lockstep/pkg/game/types"
)

// Narrow tests two boxes and, when they overlap or touch, records the contact
// on both colliders. It reports whether a contact was recorded.
//
// The edge distance is |a - b| minus the mean of the two sizes per axis. The
// boxes collide iff its larger component is <= 0. The contact is on the x axis
// when the x edge distance is strictly larger, so exact ties resolve to y.
func Narrow(
	a types.Entity, ta *types.Transform, ca *types.Collider, solidA bool,
	b types.Entity, tb *types.Transform, cb *types.Collider, solidB bool,
) bool {
	diff := ta.Position.Sub(tb.Position)
	edge := diff.Abs().Sub(ca.BoundingBox.Add(cb.BoundingBox).Half())

	depth := edge.MaxElement()
	if depth > 0 {
		return false
	}

	var sideA, sideB types.Side
	if edge.X > edge.Y {
		if diff.X < 0 {
			sideA, sideB = types.SideRight, types.SideLeft
		} else {
			sideA, sideB = types.SideLeft, types.SideRight
		}
	} else {
		if diff.Y < 0 {
			sideA, sideB = types.SideTop, types.SideBottom
		} else {
			sideA, sideB = types.SideBottom, types.SideTop
		}
	}

	overlap := -depth
	if overlap == 0 {
		// normalise -0
		overlap = 0
	}
	solid := solidA && solidB
	ca.AddCollision(types.Collision{Other: b, Side: sideA, Overlap: overlap, Solid: solid})
	cb.AddCollision(types.Collision{Other: a, Side: sideB, Overlap: overlap, Solid: solid})
	return true
}
