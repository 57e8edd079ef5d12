package collisions

import (
	"testing"

	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnBox(w *types.World, x, y, width, height float32, solid bool) types.Entity {
	s := types.Solid(solid)
	return w.Spawn(types.Components{
		Transform: &types.Transform{Position: kinematic.Vector{X: x, Y: y}},
		Collider:  types.NewCollider(kinematic.Vector{X: width, Y: height}),
		Solid:     &s,
	})
}

func collider(t *testing.T, w *types.World, e types.Entity) *types.Collider {
	c, ok := w.Get(e)
	require.True(t, ok)
	return c.Collider
}

func TestNarrow(t *testing.T) {
	tests := []struct {
		name        string
		a           kinematic.Vector
		b           kinematic.Vector
		wantCollide bool
		wantSideA   types.Side
		wantOverlap float32
	}{
		{
			name:        "apart on x",
			a:           kinematic.Vector{X: 0, Y: 0},
			b:           kinematic.Vector{X: 1.5, Y: 0},
			wantCollide: false,
		},
		{
			name:        "exactly touching on x",
			a:           kinematic.Vector{X: 0, Y: 0},
			b:           kinematic.Vector{X: 1, Y: 0},
			wantCollide: true,
			wantSideA:   types.SideRight,
			wantOverlap: 0,
		},
		{
			name:        "overlapping from the right",
			a:           kinematic.Vector{X: 0.75, Y: 0},
			b:           kinematic.Vector{X: 0, Y: 0},
			wantCollide: true,
			wantSideA:   types.SideLeft,
			wantOverlap: 0.25,
		},
		{
			name:        "resting on top",
			a:           kinematic.Vector{X: 0.25, Y: 0.5},
			b:           kinematic.Vector{X: 0, Y: 0},
			wantCollide: true,
			wantSideA:   types.SideBottom,
			wantOverlap: 0.5,
		},
		{
			name:        "below",
			a:           kinematic.Vector{X: 0, Y: -0.75},
			b:           kinematic.Vector{X: 0, Y: 0},
			wantCollide: true,
			wantSideA:   types.SideTop,
			wantOverlap: 0.25,
		},
		{
			name:        "corner tie resolves to y",
			a:           kinematic.Vector{X: 0, Y: 0},
			b:           kinematic.Vector{X: 1, Y: 1},
			wantCollide: true,
			wantSideA:   types.SideTop,
			wantOverlap: 0,
		},
		{
			name:        "apart on y only",
			a:           kinematic.Vector{X: 0, Y: 0},
			b:           kinematic.Vector{X: 0.5, Y: 1.25},
			wantCollide: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca := types.NewCollider(kinematic.Vector{X: 1, Y: 1})
			cb := types.NewCollider(kinematic.Vector{X: 1, Y: 1})
			got := Narrow(
				1, &types.Transform{Position: tt.a}, ca, true,
				2, &types.Transform{Position: tt.b}, cb, true,
			)
			assert.Equal(t, tt.wantCollide, got)
			if !tt.wantCollide {
				assert.Empty(t, ca.Collisions)
				assert.Empty(t, cb.Collisions)
				return
			}
			require.Len(t, ca.Collisions, 1)
			require.Len(t, cb.Collisions, 1)

			// both sides see the same contact from opposite faces
			assert.Equal(t, tt.wantSideA, ca.Collisions[0].Side)
			assert.Equal(t, tt.wantSideA.Opposite(), cb.Collisions[0].Side)
			assert.Equal(t, tt.wantOverlap, ca.Collisions[0].Overlap)
			assert.Equal(t, ca.Collisions[0].Overlap, cb.Collisions[0].Overlap)
			assert.Equal(t, types.Entity(2), ca.Collisions[0].Other)
			assert.Equal(t, types.Entity(1), cb.Collisions[0].Other)
		})
	}
}

func TestNarrowBoundaryIsExact(t *testing.T) {
	ca := types.NewCollider(kinematic.Vector{X: 2, Y: 2})
	cb := types.NewCollider(kinematic.Vector{X: 1, Y: 1})
	ta := &types.Transform{}

	assert.True(t, Narrow(1, ta, ca, false, 2, &types.Transform{Position: kinematic.Vector{X: 1.5}}, cb, false))
	assert.False(t, Narrow(1, ta, ca, false, 2, &types.Transform{Position: kinematic.Vector{X: 1.5001}}, cb, false))
}

func TestNarrowSolidRequiresBoth(t *testing.T) {
	ca := types.NewCollider(kinematic.Vector{X: 1, Y: 1})
	cb := types.NewCollider(kinematic.Vector{X: 1, Y: 1})
	Narrow(1, &types.Transform{}, ca, true, 2, &types.Transform{Position: kinematic.Vector{Y: 0.5}}, cb, false)
	assert.False(t, ca.Collisions[0].Solid)
	assert.False(t, cb.Collisions[0].Solid)
}

func TestEngineDetect(t *testing.T) {
	w := types.NewWorld()
	floor := spawnBox(w, 0, -2, 10, 1, false)
	player := spawnBox(w, 2, -1, 1, 1, true)
	crate := spawnBox(w, 2.5, 0, 1, 1, true)
	far := spawnBox(w, 20, 20, 1, 1, true)

	engine := NewEngine(DefaultBounds)
	engine.Detect(w)

	assert.Equal(t, []types.Collision{
		{Other: player, Side: types.SideTop, Overlap: 0, Solid: false},
	}, collider(t, w, floor).Collisions)
	assert.Equal(t, []types.Collision{
		{Other: floor, Side: types.SideBottom, Overlap: 0, Solid: false},
		{Other: crate, Side: types.SideTop, Overlap: 0, Solid: true},
	}, collider(t, w, player).Collisions)
	assert.Equal(t, []types.Collision{
		{Other: player, Side: types.SideBottom, Overlap: 0, Solid: true},
	}, collider(t, w, crate).Collisions)
	assert.Empty(t, collider(t, w, far).Collisions)

	// a second pass replaces the previous contacts
	engine.Detect(w)
	assert.Len(t, collider(t, w, player).Collisions, 2)
}

func TestEngineDetectOutsideBounds(t *testing.T) {
	w := types.NewWorld()
	inside := spawnBox(w, -63, 0, 1, 1, true)
	outside := spawnBox(w, -64, 0, 1, 1, true)
	farA := spawnBox(w, 500, 500, 2, 2, true)
	farB := spawnBox(w, 501, 500, 2, 2, true)

	NewEngine(DefaultBounds).Detect(w)

	got, ok := collider(t, w, inside).CollidingWith(outside)
	assert.True(t, ok)
	assert.Equal(t, types.SideLeft, got.Side)

	got, ok = collider(t, w, farA).CollidingWith(farB)
	assert.True(t, ok)
	assert.Equal(t, types.SideRight, got.Side)
	assert.Equal(t, float32(1), got.Overlap)
}

func TestEngineMatchesBruteForce(t *testing.T) {
	w := types.NewWorld()
	positions := []kinematic.Vector{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0.5}, {X: 0.5, Y: 1}, {X: -1, Y: -1},
		{X: 3, Y: 3}, {X: 3.5, Y: 2}, {X: 1.999, Y: 1}, {X: -2, Y: 0}, {X: 5, Y: -5},
	}
	for i, p := range positions {
		spawnBox(w, p.X, p.Y, 1, 1, i%2 == 0)
	}

	NewEngine(DefaultBounds).Detect(w)

	entities := w.Entities()
	want := make(map[types.Entity][]types.Collision)
	for i, a := range entities {
		for _, b := range entities[i+1:] {
			ca, _ := w.Get(a)
			cb, _ := w.Get(b)
			probeA := types.NewCollider(ca.Collider.BoundingBox)
			probeB := types.NewCollider(cb.Collider.BoundingBox)
			if Narrow(a, ca.Transform, probeA, bool(*ca.Solid), b, cb.Transform, probeB, bool(*cb.Solid)) {
				want[a] = append(want[a], probeA.Collisions[0])
				want[b] = append(want[b], probeB.Collisions[0])
			}
		}
	}

	for _, e := range entities {
		c, _ := w.Get(e)
		if len(want[e]) == 0 {
			assert.Empty(t, c.Collider.Collisions, "entity %d", e)
			continue
		}
		assert.ElementsMatch(t, want[e], c.Collider.Collisions, "entity %d", e)
	}
}

func TestEngineForgetsDespawnedEntities(t *testing.T) {
	w := types.NewWorld()
	a := spawnBox(w, 0, 0, 1, 1, true)
	b := spawnBox(w, 0.5, 0, 1, 1, true)

	engine := NewEngine(DefaultBounds)
	engine.Detect(w)
	assert.Len(t, collider(t, w, a).Collisions, 1)

	w.Despawn(b)
	engine.Detect(w)
	assert.Empty(t, collider(t, w, a).Collisions)
	assert.Len(t, engine.proxies, 1)
}
