package messages

import (
	"encoding/binary"
	"fmt"
)

// Packet is a datagram received from a peer over a signaling channel.
type Packet struct {
	From string
	Data []byte
}

// MetaTag identifies a message on the meta channel. It is the first byte of
// every meta message.
type MetaTag byte

const (
	MetaTagRole   MetaTag = 0
	MetaTagConfig MetaTag = 1
	MetaTagOK     MetaTag = 2
)

func (t MetaTag) String() string {
	switch t {
	case MetaTagRole:
		return "role"
	case MetaTagConfig:
		return "config"
	case MetaTagOK:
		return "ok"
	default:
		return fmt.Sprintf("tag(%d)", byte(t))
	}
}

// Role bytes carried by a role message.
const (
	RoleConfigBearer   byte = 0
	RoleConfigReceiver byte = 1
)

const (
	roleMessageLength   = 2
	configMessageLength = 9
	okMessageLength     = 1
)

// EncodeRole returns the message announcing the sender's role.
func EncodeRole(role byte) []byte {
	return []byte{byte(MetaTagRole), role}
}

// EncodeConfig returns the message carrying a packed game config, big-endian.
func EncodeConfig(packed uint64) []byte {
	b := make([]byte, configMessageLength)
	b[0] = byte(MetaTagConfig)
	binary.BigEndian.PutUint64(b[1:], packed)
	return b
}

// EncodeOK returns the acknowledgement of a config message.
func EncodeOK() []byte {
	return []byte{byte(MetaTagOK)}
}

// DecodeRole parses a role message. Any other tag or length is an error.
func DecodeRole(b []byte) (byte, error) {
	if err := expect(b, MetaTagRole, roleMessageLength); err != nil {
		return 0, err
	}
	return b[1], nil
}

// DecodeConfig parses a config message and returns the packed config.
func DecodeConfig(b []byte) (uint64, error) {
	if err := expect(b, MetaTagConfig, configMessageLength); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[1:]), nil
}

// DecodeOK validates an acknowledgement message.
func DecodeOK(b []byte) error {
	return expect(b, MetaTagOK, okMessageLength)
}

func expect(b []byte, tag MetaTag, length int) error {
	if len(b) == 0 {
		return fmt.Errorf("empty %s message", tag)
	}
	if MetaTag(b[0]) != tag {
		return fmt.Errorf("expected %s message, got %s", tag, MetaTag(b[0]))
	}
	if len(b) != length {
		return fmt.Errorf("%s message has %d bytes, expected %d", tag, len(b), length)
	}
	return nil
}
