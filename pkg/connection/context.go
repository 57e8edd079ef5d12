package connection

import (
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/rollback"
)

// SessionContext owns everything a running session needs from the
// handshake. Close releases it.
type SessionContext struct {
	Role    Role
	Config  types.GameConfig
	Session *rollback.P2PSession
	Socket  Socket
}

// LocalHandle returns the player handle controlled on this peer.
func (c *SessionContext) LocalHandle() int {
	if c.Session == nil {
		return -1
	}
	handles := c.Session.LocalPlayerHandles()
	if len(handles) == 0 {
		return -1
	}
	return handles[0]
}

// Close disconnects the remote players, closes the socket and clears the
// role, config and session. It is safe to call more than once.
func (c *SessionContext) Close() error {
	if c.Session != nil {
		for _, handle := range c.Session.RemotePlayerHandles() {
			if err := c.Session.DisconnectPlayer(handle); err != nil {
				log.Debug("Failed to disconnect player %d: %v", handle, err)
			}
		}
	}
	var err error
	if c.Socket != nil {
		err = c.Socket.Close()
	}
	c.Role = nil
	c.Config = types.GameConfig{}
	c.Session = nil
	c.Socket = nil
	return err
}
