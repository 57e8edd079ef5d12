package types

import (
	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
)

// Transform is an entity's placement in the world. Only Position takes part in
// the simulation; Z orders drawing and Rotation is carried for completeness.
type Transform struct {
	Position kinematic.Vector
	Z        float32
	Rotation float32
}

// Velocity is a linear velocity in units per second.
type Velocity struct {
	kinematic.Vector
}

// Gravity is a constant vertical acceleration with a one-tick override.
type Gravity struct {
	Acceleration float32
	override     bool
}

func NewGravity(acceleration float32) *Gravity {
	return &Gravity{Acceleration: acceleration}
}

// TempOverride suppresses gravity for the next physics tick only.
func (g *Gravity) TempOverride() {
	g.override = true
}

// ClearTempOverride removes a pending override.
func (g *Gravity) ClearTempOverride() {
	g.override = false
}

// Overridden reports whether gravity is suppressed for the next tick.
func (g *Gravity) Overridden() bool {
	return g.override
}

// VelocityDelta returns the change in velocity gravity causes over dt seconds.
func (g *Gravity) VelocityDelta(dt float32) kinematic.Vector {
	return kinematic.FinalVelocity(kinematic.Vector{}, dt, kinematic.Vector{Y: g.Acceleration})
}

// Solid marks whether an entity takes part in push-out resolution.
type Solid bool

// Player binds an entity to the input stream of one session player.
type Player struct {
	Handle int
}

// Facing is the horizontal direction a player last moved in.
type Facing struct {
	Left bool
}

// CoyoteTime lets a player jump for a short while after leaving a platform.
type CoyoteTime struct {
	Duration float32
	Elapsed  float32
}

// NewCoyoteTime returns a timer that starts exhausted so a player spawned in
// the air cannot jump until it lands.
func NewCoyoteTime() *CoyoteTime {
	return &CoyoteTime{
		Duration: constants.CoyoteDuration,
		Elapsed:  2 * constants.CoyoteDuration,
	}
}

// Available reports whether a jump is currently allowed.
func (c *CoyoteTime) Available() bool {
	return c.Elapsed < c.Duration
}

// Consume spends the jump. It stays unavailable until the next Reset.
func (c *CoyoteTime) Consume() {
	c.Elapsed = 2 * c.Duration
}

// Reset makes the full duration available again.
func (c *CoyoteTime) Reset() {
	c.Elapsed = 0
}

// Tick advances the timer by dt seconds, saturating at twice the duration.
func (c *CoyoteTime) Tick(dt float32) {
	if c.Elapsed >= 2*c.Duration {
		return
	}
	c.Elapsed += dt
	if c.Elapsed > 2*c.Duration {
		c.Elapsed = 2 * c.Duration
	}
}
