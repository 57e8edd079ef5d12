package types

import (
	"fmt"

	"github.com/cbodonnell/lockstep/pkg/kinematic"
)

// Side is a face of an axis-aligned box.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Opposite returns the face across the box.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// SideSet is a bit set of sides. The bit positions are fixed by an explicit
// table and never derived from the Side values.
type SideSet uint8

func sideBit(s Side) SideSet {
	switch s {
	case SideTop:
		return 1 << 0
	case SideBottom:
		return 1 << 1
	case SideLeft:
		return 1 << 2
	case SideRight:
		return 1 << 3
	default:
		return 0
	}
}

// Has reports whether side is in the set.
func (s SideSet) Has(side Side) bool {
	return s&sideBit(side) != 0
}

// With returns the set with side added.
func (s SideSet) With(side Side) SideSet {
	return s | sideBit(side)
}

// Collision is one contact recorded on a collider during detection.
type Collision struct {
	Other   Entity
	Side    Side
	Overlap float32
	Solid   bool
}

// Collider is an axis-aligned box centred on the entity's position together with
// the contacts found in the current tick.
type Collider struct {
	BoundingBox kinematic.Vector
	Collisions  []Collision
	Sides       SideSet
}

// NewCollider returns a collider with the given full extents. Negative sizes are
// folded to their magnitude.
func NewCollider(size kinematic.Vector) *Collider {
	return &Collider{
		BoundingBox: size.Abs(),
		Collisions:  []Collision{},
	}
}

// HalfExtents returns half of the bounding box.
func (c *Collider) HalfExtents() kinematic.Vector {
	return c.BoundingBox.Half()
}

// AddCollision records a contact and marks its side.
func (c *Collider) AddCollision(collision Collision) {
	c.Collisions = append(c.Collisions, collision)
	c.Sides = c.Sides.With(collision.Side)
}

// ClearCollisions forgets every contact from the previous tick.
func (c *Collider) ClearCollisions() {
	c.Collisions = c.Collisions[:0]
	c.Sides = 0
}

// CheckSide reports whether any contact touches side.
func (c *Collider) CheckSide(side Side) bool {
	return c.Sides.Has(side)
}

// CheckSolidSide reports whether a solid contact touches side.
func (c *Collider) CheckSolidSide(side Side) bool {
	for _, collision := range c.Collisions {
		if collision.Side == side && collision.Solid {
			return true
		}
	}
	return false
}

// CollidingWith returns the first contact with other.
func (c *Collider) CollidingWith(other Entity) (Collision, bool) {
	for _, collision := range c.Collisions {
		if collision.Other == other {
			return collision, true
		}
	}
	return Collision{}, false
}

// AllCollidingSide returns every entity touching side, in detection order.
func (c *Collider) AllCollidingSide(side Side) []Entity {
	var entities []Entity
	for _, collision := range c.Collisions {
		if collision.Side == side {
			entities = append(entities, collision.Other)
		}
	}
	return entities
}
