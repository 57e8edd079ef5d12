package rollback

import (
	"errors"
	"fmt"

	messagefb "github.com/cbodonnell/lockstep/flatbuffers/message"
	flatbuffers "github.com/google/flatbuffers/go"
)

type packetKind byte

const (
	packetInput    packetKind = 0
	packetChecksum packetKind = 1
)

// maxInputsPerPacket bounds the unacknowledged inputs resent in one packet.
const maxInputsPerPacket = 64

var errInvalidPacket = errors.New("invalid session packet")

// packet is the decoded form of a SessionPacket.
type packet struct {
	kind          packetKind
	startFrame    Frame
	ackFrame      Frame
	inputs        []byte
	checksumFrame Frame
	checksum      uint32
}

func encodePacket(p *packet) []byte {
	builder := flatbuffers.NewBuilder(64)

	var inputs flatbuffers.UOffsetT
	if p.kind == packetInput {
		inputs = builder.CreateByteVector(p.inputs)
	}

	messagefb.SessionPacketStart(builder)
	messagefb.SessionPacketAddKind(builder, byte(p.kind))
	switch p.kind {
	case packetInput:
		messagefb.SessionPacketAddStartFrame(builder, int32(p.startFrame))
		messagefb.SessionPacketAddAckFrame(builder, int32(p.ackFrame))
		messagefb.SessionPacketAddInputs(builder, inputs)
	case packetChecksum:
		messagefb.SessionPacketAddChecksumFrame(builder, int32(p.checksumFrame))
		messagefb.SessionPacketAddChecksum(builder, p.checksum)
	}
	builder.Finish(messagefb.SessionPacketEnd(builder))
	return builder.FinishedBytes()
}

func decodePacket(b []byte) (p *packet, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("%w: %d bytes", errInvalidPacket, len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: %v", errInvalidPacket, r)
		}
	}()

	fb := messagefb.GetRootAsSessionPacket(b, 0)
	p = &packet{kind: packetKind(fb.Kind())}
	switch p.kind {
	case packetInput:
		p.startFrame = Frame(fb.StartFrame())
		p.ackFrame = Frame(fb.AckFrame())
		p.inputs = append([]byte(nil), fb.InputsBytes()...)
	case packetChecksum:
		p.checksumFrame = Frame(fb.ChecksumFrame())
		p.checksum = fb.Checksum()
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", errInvalidPacket, p.kind)
	}
	return p, nil
}
