package physics

import (
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
)

type pair struct {
	a types.Entity
	b types.Entity
}

// SolidResolver pushes overlapping solid bodies apart. Every pair is corrected
// at most once per resolver, so running Resolve again in the same tick is a
// no-op.
type SolidResolver struct {
	handled map[pair]struct{}
}

func NewSolidResolver() *SolidResolver {
	return &SolidResolver{
		handled: make(map[pair]struct{}),
	}
}

type solidBody struct {
	entity    types.Entity
	transform *types.Transform
	collider  *types.Collider
	solid     bool
}

// Resolve visits each pair of bodies carrying a Solid component in ascending
// entity order and applies the correction for the first body's contact with
// the second.
//
//	both solid, neither blocked behind   split the overlap evenly
//	only the first solid, or the second
//	blocked behind                       move only the first
//	only the second solid, or the first
//	blocked behind                       move only the second
//	anything else                        no correction
func (r *SolidResolver) Resolve(w *types.World) {
	var bodies []solidBody
	w.Each(func(e types.Entity, c *types.Components) {
		if c.Transform == nil || c.Collider == nil || c.Solid == nil {
			return
		}
		bodies = append(bodies, solidBody{entity: e, transform: c.Transform, collider: c.Collider, solid: bool(*c.Solid)})
	})

	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r.resolvePair(bodies[i], bodies[j])
		}
	}
}

func (r *SolidResolver) resolvePair(b1, b2 solidBody) {
	collision, ok := b1.collider.CollidingWith(b2.entity)
	if !ok {
		return
	}
	if _, done := r.handled[pair{b1.entity, b2.entity}]; done {
		return
	}

	movement := pushOut(collision.Side, collision.Overlap)
	blocked1 := b1.collider.CheckSide(collision.Side.Opposite())
	blocked2 := b2.collider.CheckSide(collision.Side)

	switch {
	case b1.solid && b2.solid && !blocked1 && !blocked2:
		half := movement.Half()
		b2.transform.Position = b2.transform.Position.Sub(half)
		b1.transform.Position = b1.transform.Position.Add(half)
	case b1.solid && !b2.solid, b1.solid && b2.solid && !blocked1 && blocked2:
		b1.transform.Position = b1.transform.Position.Add(movement)
	case !b1.solid && b2.solid, b1.solid && b2.solid && blocked1 && !blocked2:
		b2.transform.Position = b2.transform.Position.Sub(movement)
	}

	r.handled[pair{b1.entity, b2.entity}] = struct{}{}
	r.handled[pair{b2.entity, b1.entity}] = struct{}{}
}

// pushOut returns the translation that moves a body off a contact on side.
func pushOut(side types.Side, overlap float32) kinematic.Vector {
	switch side {
	case types.SideTop:
		return kinematic.Vector{Y: -overlap}
	case types.SideBottom:
		return kinematic.Vector{Y: overlap}
	case types.SideLeft:
		return kinematic.Vector{X: overlap}
	default:
		return kinematic.Vector{X: -overlap}
	}
}
