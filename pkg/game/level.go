package game

import (
	"math/rand/v2"

	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
	"github.com/cbodonnell/lockstep/pkg/levels"
)

// MaxExtras caps the number of extra bodies a difficulty can add.
const MaxExtras = 64

// BuildWorld spawns the level's entities in definition order followed by one
// extra per point of difficulty. Both peers build the same world from the
// same level and config.
func BuildWorld(level *levels.Level, config types.GameConfig) *types.World {
	w := types.NewWorld()
	for _, spec := range level.Entities {
		w.Spawn(components(spec, spec.Transform.X, spec.Transform.Y))
	}

	extras := int(config.Difficulty)
	if extras > MaxExtras {
		extras = MaxExtras
	}
	rng := rand.New(rand.NewPCG(uint64(config.Seed), uint64(config.Difficulty)))
	span := level.Extras.MaxX - level.Extras.MinX
	for i := 0; i < extras; i++ {
		x := level.Extras.MinX + float32(rng.Float32()*span)
		y := level.Extras.Template.Transform.Y + float32(float32(i)*level.Extras.Spacing)
		w.Spawn(components(level.Extras.Template, x, y))
	}
	return w
}

func components(spec levels.EntitySpec, x, y float32) types.Components {
	c := types.Components{
		Transform: &types.Transform{Position: kinematic.Vector{X: x, Y: y}, Z: spec.Transform.Z},
		Collider:  types.NewCollider(kinematic.Vector{X: spec.Collider.Width, Y: spec.Collider.Height}),
		Platform:  spec.Platform,
		Vine:      spec.Vine,
	}
	if spec.Solid != nil {
		solid := types.Solid(*spec.Solid)
		c.Solid = &solid
	}
	if spec.Dynamic {
		c.Velocity = &types.Velocity{}
		c.Gravity = types.NewGravity(kinematic.Gravity)
	}
	if spec.Player != nil {
		c.Player = &types.Player{Handle: spec.Player.Handle}
		c.Facing = &types.Facing{}
		c.CoyoteTime = types.NewCoyoteTime()
		if c.Velocity == nil {
			c.Velocity = &types.Velocity{}
		}
	}
	return c
}
