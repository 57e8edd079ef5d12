// Package input converts between held keys, the one-byte input mask that
// travels over the network, and the movement direction it produces.
package input

import (
	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
)

// Mask is the network encoding of one player's input for one frame.
// Bits 4-7 are always zero.
type Mask uint8

const (
	Left     Mask = 1 << 0
	Right    Mask = 1 << 1
	Jump     Mask = 1 << 2
	Interact Mask = 1 << 3
)

// KeyState is the set of logical keys held during a frame.
type KeyState struct {
	Left     bool
	Right    bool
	Jump     bool
	Interact bool
}

// Encode packs the held keys into a Mask.
func Encode(keys KeyState) Mask {
	var m Mask
	if keys.Left {
		m |= Left
	}
	if keys.Right {
		m |= Right
	}
	if keys.Jump {
		m |= Jump
	}
	if keys.Interact {
		m |= Interact
	}
	return m
}

// Has reports whether every bit of b is set in m.
func (m Mask) Has(b Mask) bool {
	return m&b == b
}

// Direction returns the movement vector for a mask. Left and right cancel
// when both are held.
func (m Mask) Direction() kinematic.Vector {
	var dir kinematic.Vector
	if m.Has(Left) {
		dir.X -= constants.PlayerSpeed
	}
	if m.Has(Right) {
		dir.X += constants.PlayerSpeed
	}
	if m.Has(Jump) {
		dir.Y += constants.PlayerJumpSpeed
	}
	return dir
}

// Direction returns the movement vector for the held keys.
func Direction(keys KeyState) kinematic.Vector {
	var dir kinematic.Vector
	if keys.Left {
		dir.X -= constants.PlayerSpeed
	}
	if keys.Right {
		dir.X += constants.PlayerSpeed
	}
	if keys.Jump {
		dir.Y += constants.PlayerJumpSpeed
	}
	return dir
}
