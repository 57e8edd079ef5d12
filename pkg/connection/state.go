package connection

import (
	"fmt"

	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/rollback"
)

// State is a state of the handshake. The states that own a socket carry it,
// and a transition hands it to the next state or closes it.
type State interface {
	isState()
	String() string
}

// MetaSubstate is the step reached in the metadata exchange.
type MetaSubstate int

const (
	MetaStart MetaSubstate = iota
	WaitingOnRole
	WaitingOnOK
	WaitingOnConfig
)

func (s MetaSubstate) String() string {
	switch s {
	case MetaStart:
		return "start"
	case WaitingOnRole:
		return "waiting on role"
	case WaitingOnOK:
		return "waiting on ok"
	case WaitingOnConfig:
		return "waiting on config"
	default:
		return "unknown"
	}
}

// PreConnect is the state before Start.
type PreConnect struct{}

// WaitingOnMetaConnection waits in the lobby for the other peer to join the meta channel.
type WaitingOnMetaConnection struct {
	socket Socket
}

// WaitingOnMetadata exchanges roles and the game config with Peer.
type WaitingOnMetadata struct {
	socket   Socket
	Substate MetaSubstate
	Peer     string
	// Config is set once the bearer has sent it
	Config types.GameConfig
}

// WaitingOnRollbackConnection waits for both peers to join the game channel.
type WaitingOnRollbackConnection struct {
	socket Socket
	Config types.GameConfig
}

// Ready holds the started session until it is taken.
type Ready struct {
	Config  types.GameConfig
	Session *rollback.P2PSession
	socket  Socket
}

// TimedOut means the handshake did not finish in time.
type TimedOut struct{}

// InvalidConnection means the other peer broke the protocol or the transport failed.
type InvalidConnection struct {
	Reason string
}

// Aborted means the handshake was cancelled locally.
type Aborted struct{}

func (PreConnect) isState()                  {}
func (WaitingOnMetaConnection) isState()     {}
func (WaitingOnMetadata) isState()           {}
func (WaitingOnRollbackConnection) isState() {}
func (Ready) isState()                       {}
func (TimedOut) isState()                    {}
func (InvalidConnection) isState()           {}
func (Aborted) isState()                     {}

func (PreConnect) String() string              { return "pre connect" }
func (WaitingOnMetaConnection) String() string { return "waiting on meta connection" }
func (s WaitingOnMetadata) String() string {
	return fmt.Sprintf("waiting on metadata (%s)", s.Substate)
}
func (WaitingOnRollbackConnection) String() string { return "waiting on rollback connection" }
func (s Ready) String() string                     { return fmt.Sprintf("ready (%s)", s.Config) }
func (TimedOut) String() string                    { return "timed out" }
func (s InvalidConnection) String() string {
	return fmt.Sprintf("invalid connection: %s", s.Reason)
}
func (Aborted) String() string { return "aborted" }

// Terminal reports whether no further transition can happen from s.
func Terminal(s State) bool {
	switch s.(type) {
	case Ready, TimedOut, InvalidConnection, Aborted:
		return true
	default:
		return false
	}
}

// socketOf returns the socket owned by s, if any.
func socketOf(s State) Socket {
	switch s := s.(type) {
	case WaitingOnMetaConnection:
		return s.socket
	case WaitingOnMetadata:
		return s.socket
	case WaitingOnRollbackConnection:
		return s.socket
	case Ready:
		return s.socket
	default:
		return nil
	}
}
