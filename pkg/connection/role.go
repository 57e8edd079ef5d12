package connection

import (
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/messages"
)

// Role is the part a peer plays in the handshake: exactly one peer brings
// the game config.
type Role interface {
	roleByte() byte
	peerRoleByte() byte
	String() string
}

// ConfigBearer chooses the game config and sends it to the other peer.
type ConfigBearer struct {
	Config types.GameConfig
}

func (ConfigBearer) roleByte() byte     { return messages.RoleConfigBearer }
func (ConfigBearer) peerRoleByte() byte { return messages.RoleConfigReceiver }
func (ConfigBearer) String() string     { return "config bearer" }

// ConfigReceiver accepts the game config of the other peer.
type ConfigReceiver struct{}

func (ConfigReceiver) roleByte() byte     { return messages.RoleConfigReceiver }
func (ConfigReceiver) peerRoleByte() byte { return messages.RoleConfigBearer }
func (ConfigReceiver) String() string     { return "config receiver" }
