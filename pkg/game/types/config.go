package types

import "fmt"

// GameConfig is the match configuration chosen by the config bearer and
// shared with the other peer during the handshake.
type GameConfig struct {
	Seed       uint32
	Difficulty uint32
}

// Pack encodes the config as a single integer: seed in the low 32 bits and
// difficulty in the high 32 bits.
func (c GameConfig) Pack() uint64 {
	return uint64(c.Seed) | uint64(c.Difficulty)<<32
}

// UnpackGameConfig is the inverse of Pack.
func UnpackGameConfig(packed uint64) GameConfig {
	return GameConfig{
		Seed:       uint32(packed),
		Difficulty: uint32(packed >> 32),
	}
}

func (c GameConfig) String() string {
	return fmt.Sprintf("seed=%d difficulty=%d", c.Seed, c.Difficulty)
}
