package rollback

import (
	"math"
	"testing"

	"github.com/cbodonnell/lockstep/pkg/collisions"
	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/input"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
	"github.com/cbodonnell/lockstep/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advanced(frames int) *types.World {
	w := newTestWorld()
	sim := physics.NewSimulation(collisions.NewEngine(collisions.DefaultBounds), constants.DeltaTime)
	for i := 0; i < frames; i++ {
		sim.Advance(w, []input.Mask{input.Right, input.Left | input.Jump})
	}
	return w
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	w := advanced(40)
	w.Spawn(types.Components{
		Transform: &types.Transform{Position: kinematic.Vector{X: 3, Y: -1}, Z: 2, Rotation: 0.5},
		Collider:  types.NewCollider(kinematic.Vector{X: 1, Y: 4}),
		Vine:      true,
	})
	c, ok := w.Get(1)
	require.True(t, ok)
	c.Gravity.TempOverride()

	blob := Snapshot(w)
	restored := types.NewWorld()
	restored.Spawn(types.Components{Platform: true})
	require.NoError(t, Restore(restored, blob))

	assert.Equal(t, w, restored)
	assert.Equal(t, blob, Snapshot(restored))
}

func TestSnapshotPreservesNegativeZero(t *testing.T) {
	w := types.NewWorld()
	negZero := float32(math.Copysign(0, -1))
	e := w.Spawn(types.Components{
		Transform: &types.Transform{Position: kinematic.Vector{X: negZero, Y: 0}},
		Velocity:  &types.Velocity{Vector: kinematic.Vector{X: 0, Y: negZero}},
	})

	restored := types.NewWorld()
	require.NoError(t, Restore(restored, Snapshot(w)))

	c, ok := restored.Get(e)
	require.True(t, ok)
	assert.Equal(t, uint32(0x80000000), math.Float32bits(c.Transform.Position.X))
	assert.Equal(t, uint32(0), math.Float32bits(c.Transform.Position.Y))
	assert.Equal(t, uint32(0x80000000), math.Float32bits(c.Velocity.Y))
	assert.NotEqual(t, Checksum(Snapshot(w)), Checksum(Snapshot(types.NewWorld())))
}

func TestRestoreThenStepMatchesStep(t *testing.T) {
	original := advanced(25)
	copied := types.NewWorld()
	require.NoError(t, Restore(copied, Snapshot(original)))

	simA := physics.NewSimulation(collisions.NewEngine(collisions.DefaultBounds), constants.DeltaTime)
	simB := physics.NewSimulation(collisions.NewEngine(collisions.DefaultBounds), constants.DeltaTime)
	for i := 0; i < 30; i++ {
		inputs := []input.Mask{input.Mask(i % 16), input.Mask((i / 3) % 16)}
		simA.Advance(original, inputs)
		simB.Advance(copied, inputs)
	}

	assert.Equal(t, Snapshot(original), Snapshot(copied))
}

func TestChecksumDetectsOneULP(t *testing.T) {
	w := advanced(10)
	before := Checksum(Snapshot(w))

	c, ok := w.Get(3)
	require.True(t, ok)
	c.Transform.Position.X = math.Nextafter32(c.Transform.Position.X, float32(math.Inf(1)))

	assert.NotEqual(t, before, Checksum(Snapshot(w)))
}

func TestRestoreRejectsGarbage(t *testing.T) {
	w := advanced(5)
	want := Snapshot(w)

	tests := []struct {
		name string
		blob []byte
	}{
		{name: "empty", blob: nil},
		{name: "short", blob: []byte{1, 2}},
		{name: "bad root offset", blob: []byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Restore(w, tt.blob)
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
			assert.Equal(t, want, Snapshot(w))
		})
	}
}
