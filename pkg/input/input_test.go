package input

import (
	"fmt"
	"testing"

	"github.com/cbodonnell/lockstep/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func allKeyStates() []KeyState {
	states := make([]KeyState, 0, 16)
	for i := 0; i < 16; i++ {
		states = append(states, KeyState{
			Left:     i&1 != 0,
			Right:    i&2 != 0,
			Jump:     i&4 != 0,
			Interact: i&8 != 0,
		})
	}
	return states
}

func TestEncodeDecodeMatchesDirection(t *testing.T) {
	for _, keys := range allKeyStates() {
		t.Run(fmt.Sprintf("%+v", keys), func(t *testing.T) {
			m := Encode(keys)
			assert.Zero(t, m&0xF0, "high bits must stay clear")
			assert.Equal(t, Direction(keys), m.Direction())
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		keys KeyState
		want Mask
	}{
		{name: "nothing", keys: KeyState{}, want: 0},
		{name: "left", keys: KeyState{Left: true}, want: 1},
		{name: "right", keys: KeyState{Right: true}, want: 2},
		{name: "jump", keys: KeyState{Jump: true}, want: 4},
		{name: "interact", keys: KeyState{Interact: true}, want: 8},
		{name: "everything", keys: KeyState{Left: true, Right: true, Jump: true, Interact: true}, want: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.keys))
		})
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want kinematic.Vector
	}{
		{name: "idle", mask: 0, want: kinematic.Vector{}},
		{name: "left", mask: Left, want: kinematic.Vector{X: -7}},
		{name: "right", mask: Right, want: kinematic.Vector{X: 7}},
		{name: "left and right cancel", mask: Left | Right, want: kinematic.Vector{}},
		{name: "jump", mask: Jump, want: kinematic.Vector{Y: 20}},
		{name: "interact does not move", mask: Interact, want: kinematic.Vector{}},
		{name: "right jump", mask: Right | Jump, want: kinematic.Vector{X: 7, Y: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mask.Direction())
		})
	}
}
