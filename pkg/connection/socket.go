package connection

import (
	"github.com/cbodonnell/lockstep/pkg/messages"
	"github.com/cbodonnell/lockstep/pkg/rollback"
	"github.com/cbodonnell/lockstep/pkg/signaling"
)

// Socket is the handshake's view of a signaling socket. None of its methods block.
type Socket interface {
	// UpdatePeers applies peer discovery messages received since the last call
	UpdatePeers()
	// ID is this peer's id, or "" until the server assigned one
	ID() string
	ConnectedPeers() []string
	Send(peer string, data []byte) error
	Receive() []messages.Packet
	// TakeChannel hands the socket's data channel to a rollback session, once
	TakeChannel() (rollback.Channel, error)
	// Err reports a broken transport
	Err() error
	Close() error
}

// DialFunc opens a socket to a channel of the room being joined.
type DialFunc func(kind signaling.ChannelKind) Socket

// SignalingDialer adapts a signaling dialer to a DialFunc.
func SignalingDialer(d signaling.Dialer) DialFunc {
	return func(kind signaling.ChannelKind) Socket {
		return d.Dial(kind)
	}
}
