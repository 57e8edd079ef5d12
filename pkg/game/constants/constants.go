package constants

import "time"

const (
	// TickRate is the number of simulation frames per second
	TickRate = 60
	// FrameDuration is the wall-clock length of one frame
	FrameDuration = time.Second / TickRate
	// DeltaTime is the fixed simulation step in seconds
	DeltaTime float32 = 1.0 / TickRate

	// NumPlayers is the number of players in a session
	NumPlayers = 2
	// InputDelay is the number of frames local input is delayed by
	InputDelay = 2
	// HandshakeTimeout bounds the metadata exchange once it has begun
	HandshakeTimeout = 10 * time.Second

	// PlayerSpeed is the horizontal speed of a player holding left or right
	PlayerSpeed float32 = 7
	// PlayerJumpSpeed is the vertical speed a jump starts with
	PlayerJumpSpeed float32 = 20
	// PlayerWidth
	PlayerWidth float32 = 1
	// PlayerHeight
	PlayerHeight float32 = 1

	// RestingVelocity caps downward speed for bodies resting on something
	RestingVelocity float32 = -0.01
	// CoyoteDuration is how long after leaving a platform a jump is still allowed
	CoyoteDuration float32 = 0.1 // seconds

	// VineClimbSpeed is the vertical speed of a player climbing a vine
	VineClimbSpeed float32 = 1.5
	// VineSlideSpeed is the vertical speed of a player sliding down a vine
	VineSlideSpeed float32 = -0.75

	// DeathThreshold is the height below which a body is reset
	DeathThreshold float32 = -5
	// ResetX
	ResetX float32 = 0
	// ResetY
	ResetY float32 = 3
)
