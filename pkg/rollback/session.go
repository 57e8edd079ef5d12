package rollback

import (
	"fmt"
	"time"

	"github.com/cbodonnell/lockstep/pkg/log"
)

type remotePeer struct {
	addr         string
	handle       int
	lastRecv     time.Time
	synchronized bool
	disconnected bool
	// ackedFrame is the last local input frame the peer confirmed receiving
	ackedFrame Frame
}

// P2PSession is a rollback session between one local player and remote peers.
// It is not safe for concurrent use.
type P2PSession struct {
	numPlayers        int
	inputDelay        int
	maxPrediction     int
	checksumInterval  int
	disconnectTimeout time.Duration
	clock             func() time.Time
	channel           Channel

	players     []PlayerType
	localHandle int
	remotes     []*remotePeer
	byAddr      map[string]*remotePeer
	queues      []*inputQueue

	staged      bool
	stagedInput byte

	currentFrame   Frame
	firstIncorrect Frame
	cells          []GameStateCell

	nextChecksumFrame Frame
	localChecksums    map[Frame]uint32
	remoteChecksums   map[Frame]remoteChecksum

	events []Event
}

type remoteChecksum struct {
	addr     string
	checksum uint32
}

func newP2PSession(b *SessionBuilder, channel Channel, local int) *P2PSession {
	s := &P2PSession{
		numPlayers:        b.numPlayers,
		inputDelay:        b.inputDelay,
		maxPrediction:     b.maxPrediction,
		checksumInterval:  b.checksumInterval,
		disconnectTimeout: b.disconnectTimeout,
		clock:             b.clock,
		channel:           channel,
		players:           make([]PlayerType, b.numPlayers),
		localHandle:       local,
		byAddr:            make(map[string]*remotePeer),
		queues:            make([]*inputQueue, b.numPlayers),
		firstIncorrect:    NullFrame,
		cells:             make([]GameStateCell, b.maxPrediction+2),
		localChecksums:    make(map[Frame]uint32),
		remoteChecksums:   make(map[Frame]remoteChecksum),
	}
	for i := range s.cells {
		s.cells[i].frame = NullFrame
	}

	now := s.clock()
	for handle := 0; handle < b.numPlayers; handle++ {
		player := b.players[handle]
		s.players[handle] = player
		s.queues[handle] = newInputQueue()
		if player.IsLocal() {
			continue
		}
		peer := &remotePeer{
			addr:       player.Addr,
			handle:     handle,
			lastRecv:   now,
			ackedFrame: NullFrame,
		}
		s.remotes = append(s.remotes, peer)
		s.byAddr[peer.addr] = peer
	}

	// the first frames run before any delayed local input exists
	for f := 0; f < s.inputDelay; f++ {
		s.queues[local].confirm(Frame(f), 0)
	}
	return s
}

// NumPlayers returns the number of players in the session.
func (s *P2PSession) NumPlayers() int {
	return s.numPlayers
}

// InputDelay returns the local input delay in frames.
func (s *P2PSession) InputDelay() int {
	return s.inputDelay
}

// CurrentFrame returns the frame the next AdvanceFrame request will simulate.
func (s *P2PSession) CurrentFrame() Frame {
	return s.currentFrame
}

// LocalPlayerHandles returns the handles of the players controlled on this peer.
func (s *P2PSession) LocalPlayerHandles() []int {
	return []int{s.localHandle}
}

// RemotePlayerHandles returns the handles of the players controlled by other peers.
func (s *P2PSession) RemotePlayerHandles() []int {
	handles := make([]int, 0, len(s.remotes))
	for _, r := range s.remotes {
		handles = append(handles, r.handle)
	}
	return handles
}

// Running reports whether every remote peer has been heard from.
func (s *P2PSession) Running() bool {
	for _, r := range s.remotes {
		if !r.synchronized && !r.disconnected {
			return false
		}
	}
	return true
}

// Events returns and clears the pending events.
func (s *P2PSession) Events() []Event {
	events := s.events
	s.events = nil
	return events
}

// AddLocalInput stages the local input for the next AdvanceFrame call.
func (s *P2PSession) AddLocalInput(handle int, input byte) error {
	if handle != s.localHandle {
		return fmt.Errorf("%w: %d is not a local player", ErrInvalidPlayerHandle, handle)
	}
	s.stagedInput = input
	s.staged = true
	return nil
}

// DisconnectPlayer stops waiting for the inputs of a remote player. Its last
// confirmed input is repeated from then on.
func (s *P2PSession) DisconnectPlayer(handle int) error {
	if handle < 0 || handle >= s.numPlayers || handle == s.localHandle {
		return fmt.Errorf("%w: %d cannot be disconnected", ErrInvalidPlayerHandle, handle)
	}
	for _, r := range s.remotes {
		if r.handle == handle {
			s.disconnect(r)
		}
	}
	return nil
}

func (s *P2PSession) disconnect(r *remotePeer) {
	if r.disconnected {
		return
	}
	r.disconnected = true
	s.events = append(s.events, Disconnected{Addr: r.addr})
}

// PollRemoteClients receives pending packets, checks for timed out peers,
// exchanges checksums and resends unacknowledged inputs. AdvanceFrame does the
// same; call this to keep the session alive while not advancing.
func (s *P2PSession) PollRemoteClients() {
	s.poll()
	s.sendInputs()
}

func (s *P2PSession) poll() {
	now := s.clock()
	for _, pkt := range s.channel.Receive() {
		r, ok := s.byAddr[pkt.From]
		if !ok || r.disconnected {
			log.Trace("Ignoring session packet from %s", pkt.From)
			continue
		}
		p, err := decodePacket(pkt.Data)
		if err != nil {
			log.Warn("Failed to decode session packet from %s: %v", pkt.From, err)
			continue
		}
		r.lastRecv = now
		if !r.synchronized {
			r.synchronized = true
			s.events = append(s.events, Synchronized{Addr: r.addr})
		}
		switch p.kind {
		case packetInput:
			s.handleInputs(r, p)
		case packetChecksum:
			s.remoteChecksums[p.checksumFrame] = remoteChecksum{addr: r.addr, checksum: p.checksum}
			s.compareChecksum(p.checksumFrame)
		}
	}

	for _, r := range s.remotes {
		if !r.disconnected && now.Sub(r.lastRecv) > s.disconnectTimeout {
			log.Info("Peer %s timed out after %s", r.addr, s.disconnectTimeout)
			s.disconnect(r)
		}
	}

	s.sendChecksums()
}

func (s *P2PSession) handleInputs(r *remotePeer, p *packet) {
	if p.ackFrame > r.ackedFrame {
		r.ackedFrame = p.ackFrame
	}
	q := s.queues[r.handle]
	for i, in := range p.inputs {
		frame := p.startFrame + Frame(i)
		accepted, mispredicted := q.confirm(frame, in)
		if !accepted {
			continue
		}
		if mispredicted && frame < s.currentFrame && (s.firstIncorrect == NullFrame || frame < s.firstIncorrect) {
			s.firstIncorrect = frame
		}
	}
}

// AdvanceFrame commits the staged local input and returns the requests the
// caller must handle, in order, to simulate the current frame. A pending
// rollback is resolved first.
func (s *P2PSession) AdvanceFrame() ([]Request, error) {
	s.poll()

	if !s.Running() {
		s.staged = false
		s.sendInputs()
		return nil, ErrNotSynchronized
	}
	if !s.staged {
		s.sendInputs()
		return nil, ErrMissingInput
	}
	s.staged = false

	if s.currentFrame-s.minRemoteConfirmed() > Frame(s.maxPrediction) {
		s.sendInputs()
		return nil, ErrPredictionThreshold
	}

	s.queues[s.localHandle].confirm(s.currentFrame+Frame(s.inputDelay), s.stagedInput)
	s.sendInputs()

	var requests []Request
	if s.firstIncorrect != NullFrame {
		rollback, err := s.rollbackRequests()
		if err != nil {
			return nil, err
		}
		requests = append(requests, rollback...)
	}

	frame := s.currentFrame
	requests = append(requests,
		SaveGameState{Frame: frame, Cell: s.cell(frame)},
		AdvanceFrame{Frame: frame, Inputs: s.inputs(frame)},
	)
	s.currentFrame++
	s.discardOldInputs()
	return requests, nil
}

// rollbackRequests loads the first mispredicted frame and resimulates up to the
// current frame with the corrected inputs.
func (s *P2PSession) rollbackRequests() ([]Request, error) {
	target := s.firstIncorrect
	s.firstIncorrect = NullFrame

	cell := s.cell(target)
	if cell.Frame() != target {
		return nil, fmt.Errorf("%w: frame %d", ErrMissingState, target)
	}
	log.Debug("Rolling back from frame %d to frame %d", s.currentFrame, target)

	requests := []Request{LoadGameState{Frame: target, Cell: cell}}
	for f := target; f < s.currentFrame; f++ {
		if f > target {
			requests = append(requests, SaveGameState{Frame: f, Cell: s.cell(f)})
		}
		requests = append(requests, AdvanceFrame{Frame: f, Inputs: s.inputs(f)})
	}
	return requests, nil
}

func (s *P2PSession) inputs(frame Frame) []PlayerInput {
	inputs := make([]PlayerInput, s.numPlayers)
	for handle, q := range s.queues {
		if r := s.remoteFor(handle); r != nil && r.disconnected {
			in, ok := q.get(frame)
			if !ok {
				in = q.lastInput()
			}
			inputs[handle] = PlayerInput{Input: in, Status: InputDisconnected}
			continue
		}
		in, status := q.input(frame)
		inputs[handle] = PlayerInput{Input: in, Status: status}
	}
	return inputs
}

func (s *P2PSession) remoteFor(handle int) *remotePeer {
	for _, r := range s.remotes {
		if r.handle == handle {
			return r
		}
	}
	return nil
}

func (s *P2PSession) cell(frame Frame) *GameStateCell {
	return &s.cells[int(frame)%len(s.cells)]
}

// minRemoteConfirmed returns the lowest confirmed frame of the connected remote players.
func (s *P2PSession) minRemoteConfirmed() Frame {
	lowest := s.currentFrame
	for _, r := range s.remotes {
		if r.disconnected {
			continue
		}
		if c := s.queues[r.handle].lastConfirmed; c < lowest {
			lowest = c
		}
	}
	return lowest
}

// confirmedFrame returns the last frame whose starting state depends only on
// confirmed inputs, or NullFrame.
func (s *P2PSession) confirmedFrame() Frame {
	lowest := s.currentFrame - 1
	for handle, q := range s.queues {
		if r := s.remoteFor(handle); r != nil && r.disconnected {
			continue
		}
		if c := q.lastConfirmed + 1; c < lowest {
			lowest = c
		}
	}
	return lowest
}

func (s *P2PSession) sendInputs() {
	local := s.queues[s.localHandle]
	for _, r := range s.remotes {
		if r.disconnected {
			continue
		}
		start := r.ackedFrame + 1
		end := local.lastConfirmed
		if end-start+1 > maxInputsPerPacket {
			end = start + maxInputsPerPacket - 1
		}
		var inputs []byte
		for f := start; f <= end; f++ {
			in, ok := local.get(f)
			if !ok {
				break
			}
			inputs = append(inputs, in)
		}
		p := &packet{
			kind:       packetInput,
			startFrame: start,
			ackFrame:   s.queues[r.handle].lastConfirmed,
			inputs:     inputs,
		}
		if err := s.channel.SendTo(r.addr, encodePacket(p)); err != nil {
			log.Warn("Failed to send inputs to %s: %v", r.addr, err)
		}
	}
}

func (s *P2PSession) sendChecksums() {
	if s.firstIncorrect != NullFrame {
		return
	}
	confirmed := s.confirmedFrame()
	for s.nextChecksumFrame <= confirmed {
		frame := s.nextChecksumFrame
		s.nextChecksumFrame += Frame(s.checksumInterval)

		cell := s.cell(frame)
		if cell.Frame() != frame {
			continue
		}
		s.localChecksums[frame] = cell.Checksum()
		for _, r := range s.remotes {
			if r.disconnected {
				continue
			}
			p := &packet{kind: packetChecksum, checksumFrame: frame, checksum: cell.Checksum()}
			if err := s.channel.SendTo(r.addr, encodePacket(p)); err != nil {
				log.Warn("Failed to send checksum to %s: %v", r.addr, err)
			}
		}
		s.compareChecksum(frame)
	}

	// forget checksums the other side will never match
	horizon := s.nextChecksumFrame - Frame(16*s.checksumInterval)
	for f := range s.remoteChecksums {
		if f < horizon {
			delete(s.remoteChecksums, f)
		}
	}
}

func (s *P2PSession) compareChecksum(frame Frame) {
	local, ok := s.localChecksums[frame]
	if !ok {
		return
	}
	remote, ok := s.remoteChecksums[frame]
	if !ok {
		return
	}
	delete(s.localChecksums, frame)
	delete(s.remoteChecksums, frame)
	if local != remote.checksum {
		s.events = append(s.events, DesyncDetected{
			Frame:          frame,
			LocalChecksum:  local,
			RemoteChecksum: remote.checksum,
			Addr:           remote.addr,
		})
	}
}

func (s *P2PSession) discardOldInputs() {
	keep := s.currentFrame - Frame(s.maxPrediction) - 2
	for handle, q := range s.queues {
		limit := keep
		if handle == s.localHandle {
			// unacknowledged local inputs are still resent
			for _, r := range s.remotes {
				if !r.disconnected && r.ackedFrame+1 < limit {
					limit = r.ackedFrame + 1
				}
			}
		}
		if limit > 0 {
			q.discardBefore(limit)
		}
	}
}
