package messages

import "encoding/json"

// SignalType is the kind of a signaling envelope.
type SignalType string

const (
	// SignalIDAssigned tells a new socket its own peer id
	SignalIDAssigned SignalType = "id_assigned"
	// SignalPeerJoined announces a peer in the same room channel
	SignalPeerJoined SignalType = "peer_joined"
	// SignalPeerLeft announces that a peer disconnected
	SignalPeerLeft SignalType = "peer_left"
	// SignalRelay carries an opaque payload to or from a peer
	SignalRelay SignalType = "relay"
)

// Signal is the JSON envelope exchanged with the signaling server. For relays
// sent by a client Peer is the destination; the server rewrites it to the sender.
type Signal struct {
	Type    SignalType `json:"type"`
	Peer    string     `json:"peer,omitempty"`
	Payload []byte     `json:"payload,omitempty"`
}

func (s *Signal) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func UnmarshalSignal(b []byte) (*Signal, error) {
	s := &Signal{}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, err
	}
	return s, nil
}
