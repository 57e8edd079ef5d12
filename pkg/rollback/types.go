// Package rollback runs a peer-to-peer rollback session: it delays and predicts
// player inputs, tells the caller when to save, load and advance the game state,
// and compares state checksums with the remote peer.
package rollback

import (
	"errors"
	"time"

	"github.com/cbodonnell/lockstep/pkg/messages"
)

// Frame is a simulation frame number.
type Frame int32

// NullFrame marks the absence of a frame.
const NullFrame Frame = -1

const (
	DefaultInputDelay        = 2
	DefaultMaxPrediction     = 8
	DefaultDisconnectTimeout = 2 * time.Second
	DefaultChecksumInterval  = 30
)

var (
	// ErrPredictionThreshold is returned by AdvanceFrame when the local peer is
	// too far ahead of the remote inputs. The caller should skip this frame.
	ErrPredictionThreshold = errors.New("prediction threshold reached")
	// ErrNotSynchronized is returned by AdvanceFrame until every remote peer has been heard from.
	ErrNotSynchronized = errors.New("session not synchronized")
	// ErrInvalidPlayerHandle is returned for handles that are out of range or of the wrong kind.
	ErrInvalidPlayerHandle = errors.New("invalid player handle")
	// ErrMissingInput is returned by AdvanceFrame when no local input was added for the frame.
	ErrMissingInput = errors.New("missing local input")
	// ErrMissingState is returned when a rollback needs a state that was never saved.
	ErrMissingState = errors.New("missing saved state")
)

// Channel is the unreliable, non-blocking transport between peers.
type Channel interface {
	SendTo(addr string, data []byte) error
	Receive() []messages.Packet
}

// PlayerType says where a player's inputs come from.
type PlayerType struct {
	// Addr is the peer id of a remote player; empty for the local player
	Addr string
}

// Local returns the type of the player controlled on this peer.
func Local() PlayerType {
	return PlayerType{}
}

// Remote returns the type of a player controlled by the peer at addr.
func Remote(addr string) PlayerType {
	return PlayerType{Addr: addr}
}

func (p PlayerType) IsLocal() bool {
	return p.Addr == ""
}

// InputStatus describes where a player input in an AdvanceFrame request came from.
type InputStatus uint8

const (
	InputConfirmed InputStatus = iota
	InputPredicted
	InputDisconnected
)

// PlayerInput is one player's input for one frame.
type PlayerInput struct {
	Input  byte
	Status InputStatus
}

// GameStateCell holds one saved game state.
type GameStateCell struct {
	frame    Frame
	data     []byte
	checksum uint32
}

// Save stores the state of frame.
func (c *GameStateCell) Save(frame Frame, data []byte, checksum uint32) {
	c.frame = frame
	c.data = data
	c.checksum = checksum
}

// Load returns the stored state.
func (c *GameStateCell) Load() []byte {
	return c.data
}

// Frame returns the frame of the stored state, or NullFrame.
func (c *GameStateCell) Frame() Frame {
	return c.frame
}

// Checksum returns the checksum of the stored state.
func (c *GameStateCell) Checksum() uint32 {
	return c.checksum
}

// Request is an instruction to the caller. Requests must be handled in order.
type Request interface {
	isRequest()
}

// SaveGameState asks the caller to save the current state into Cell.
type SaveGameState struct {
	Frame Frame
	Cell  *GameStateCell
}

// LoadGameState asks the caller to replace the current state with Cell's.
type LoadGameState struct {
	Frame Frame
	Cell  *GameStateCell
}

// AdvanceFrame asks the caller to simulate one frame. Inputs is indexed by player handle.
type AdvanceFrame struct {
	Frame  Frame
	Inputs []PlayerInput
}

func (SaveGameState) isRequest() {}
func (LoadGameState) isRequest() {}
func (AdvanceFrame) isRequest()  {}

// Event is a notification about the session.
type Event interface {
	isEvent()
}

// Synchronized is emitted when the first packet of a remote peer arrives.
type Synchronized struct {
	Addr string
}

// Disconnected is emitted once when a remote peer stops responding or is disconnected.
type Disconnected struct {
	Addr string
}

// DesyncDetected is emitted when the checksums of a confirmed frame differ.
type DesyncDetected struct {
	Frame          Frame
	LocalChecksum  uint32
	RemoteChecksum uint32
	Addr           string
}

func (Synchronized) isEvent()   {}
func (Disconnected) isEvent()   {}
func (DesyncDetected) isEvent() {}
