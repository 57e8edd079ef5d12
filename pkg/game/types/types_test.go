package types

import (
	"testing"

	"github.com/cbodonnell/lockstep/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func TestWorldSpawnDespawn(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(Components{Platform: true})
	b := w.Spawn(Components{Vine: true})
	c := w.Spawn(Components{})

	assert.Equal(t, []Entity{a, b, c}, w.Entities())

	w.Despawn(b)
	w.Despawn(Entity(99))
	assert.Equal(t, []Entity{a, c}, w.Entities())

	d := w.Spawn(Components{})
	assert.Greater(t, d, c, "ids are never reused")

	var visited []Entity
	w.Each(func(e Entity, _ *Components) { visited = append(visited, e) })
	assert.Equal(t, []Entity{a, c, d}, visited)

	w.Clear()
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, d+1, w.NextEntity())
}

func TestGameConfigPack(t *testing.T) {
	cfg := GameConfig{Seed: 10, Difficulty: 1}
	assert.Equal(t, uint64(0x000000010000000A), cfg.Pack())
	assert.Equal(t, cfg, UnpackGameConfig(cfg.Pack()))
}

func TestSideOpposite(t *testing.T) {
	tests := []struct {
		side Side
		want Side
	}{
		{side: SideTop, want: SideBottom},
		{side: SideBottom, want: SideTop},
		{side: SideLeft, want: SideRight},
		{side: SideRight, want: SideLeft},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.side.Opposite())
			assert.Equal(t, tt.side, tt.side.Opposite().Opposite())
		})
	}
}

func TestColliderSides(t *testing.T) {
	c := NewCollider(kinematic.Vector{X: -2, Y: 1})
	assert.Equal(t, kinematic.Vector{X: 2, Y: 1}, c.BoundingBox)

	c.AddCollision(Collision{Other: 3, Side: SideBottom, Overlap: 0.5, Solid: false})
	c.AddCollision(Collision{Other: 4, Side: SideLeft, Overlap: 0.1, Solid: true})
	c.AddCollision(Collision{Other: 5, Side: SideBottom, Overlap: 0.2, Solid: true})

	assert.True(t, c.CheckSide(SideBottom))
	assert.True(t, c.CheckSide(SideLeft))
	assert.False(t, c.CheckSide(SideTop))
	assert.True(t, c.CheckSolidSide(SideBottom))
	assert.False(t, c.CheckSolidSide(SideRight))
	assert.Equal(t, []Entity{3, 5}, c.AllCollidingSide(SideBottom))

	got, ok := c.CollidingWith(4)
	assert.True(t, ok)
	assert.Equal(t, SideLeft, got.Side)

	c.ClearCollisions()
	assert.Empty(t, c.Collisions)
	assert.False(t, c.CheckSide(SideBottom))
}

func TestCoyoteTime(t *testing.T) {
	ct := NewCoyoteTime()
	assert.False(t, ct.Available(), "spawned in the air")

	ct.Reset()
	assert.True(t, ct.Available())

	ct.Tick(ct.Duration / 2)
	assert.True(t, ct.Available())

	ct.Consume()
	assert.False(t, ct.Available())
	ct.Tick(1)
	assert.Equal(t, 2*ct.Duration, ct.Elapsed)
}

func TestGravityOverride(t *testing.T) {
	g := NewGravity(kinematic.Gravity)
	assert.False(t, g.Overridden())
	g.TempOverride()
	assert.True(t, g.Overridden())
	g.ClearTempOverride()
	assert.False(t, g.Overridden())
	assert.Equal(t, kinematic.Vector{Y: -49}, g.VelocityDelta(0.5))
}
