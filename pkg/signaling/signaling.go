// Package signaling implements the rendezvous transport: a relay server that
// groups websocket peers into rooms and a client socket that discovers peers
// and exchanges small messages with them through the relay.
package signaling

import (
	"errors"
	"fmt"
)

// ChannelKind selects one of the independent channels of a room.
type ChannelKind string

const (
	// ChannelMeta carries the pre-session handshake
	ChannelMeta ChannelKind = "meta"
	// ChannelGame carries rollback session traffic
	ChannelGame ChannelKind = "game"
)

func (k ChannelKind) Valid() bool {
	return k == ChannelMeta || k == ChannelGame
}

var (
	// ErrChannelTaken is returned when the data channel of a socket was already handed out.
	ErrChannelTaken = errors.New("channel already taken")
	// ErrSocketClosed is returned when sending on a closed socket.
	ErrSocketClosed = errors.New("socket closed")
	// ErrOutboxFull is returned when the socket cannot accept more outgoing messages.
	ErrOutboxFull = errors.New("outbox full")
)

// Dialer opens sockets to one room of a signaling server.
type Dialer struct {
	// Host is the server address as host:port
	Host string
	Room int
}

// URL returns the websocket URL of the given channel of the room.
func (d Dialer) URL(kind ChannelKind) string {
	return fmt.Sprintf("ws://%s/%d/%s", d.Host, d.Room, kind)
}

// Dial starts connecting a socket to the given channel. It does not block:
// connection failures are reported by the socket's Err method. Meta sockets
// hand out one relayed message per Receive, so a peer's consecutive
// handshake messages are read on consecutive polls.
func (d Dialer) Dial(kind ChannelKind) *Client {
	if kind == ChannelMeta {
		return dial(d.URL(kind), 1)
	}
	return Dial(d.URL(kind))
}
