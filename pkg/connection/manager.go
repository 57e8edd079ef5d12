// Package connection runs the handshake that turns two peers in a signaling
// room into a running rollback session: both peers declare their roles, the
// config bearer sends the game config, and the receiver acknowledges it.
package connection

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/messages"
	"github.com/cbodonnell/lockstep/pkg/rollback"
	"github.com/cbodonnell/lockstep/pkg/signaling"
)

var (
	// ErrNotReady is returned by Take before the session is ready or after it was taken.
	ErrNotReady = errors.New("session not ready")
	// ErrAlreadyStarted is returned by Start when the handshake already began.
	ErrAlreadyStarted = errors.New("handshake already started")
)

// Manager drives the handshake one step per tick.
type Manager struct {
	role       Role
	dial       DialFunc
	timeout    time.Duration
	numPlayers int
	inputDelay int
	clock      func() time.Time

	state   State
	started time.Time
	taken   bool
	logger  *log.Logger
}

type NewManagerOptions struct {
	Role Role
	Dial DialFunc
	// Timeout bounds the handshake from the moment the other peer joins
	Timeout    time.Duration
	NumPlayers int
	InputDelay int
	// SessionClock is the clock of the rollback session; time.Now if nil
	SessionClock func() time.Time
}

// NewManager creates a manager in the PreConnect state.
func NewManager(opts NewManagerOptions) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = constants.HandshakeTimeout
	}
	if opts.NumPlayers <= 0 {
		opts.NumPlayers = constants.NumPlayers
	}
	if opts.InputDelay <= 0 {
		opts.InputDelay = constants.InputDelay
	}
	if opts.SessionClock == nil {
		opts.SessionClock = time.Now
	}
	return &Manager{
		role:       opts.Role,
		dial:       opts.Dial,
		timeout:    opts.Timeout,
		numPlayers: opts.NumPlayers,
		inputDelay: opts.InputDelay,
		clock:      opts.SessionClock,
		state:      PreConnect{},
		logger:     log.Default().With("connection"),
	}
}

// State returns the current state.
func (m *Manager) State() State {
	return m.state
}

// Role returns the role this peer plays.
func (m *Manager) Role() Role {
	return m.role
}

// Start opens the meta channel socket.
func (m *Manager) Start() error {
	if _, ok := m.state.(PreConnect); !ok {
		return ErrAlreadyStarted
	}
	m.logger.Info("Starting handshake as %s", m.role)
	m.transition(WaitingOnMetaConnection{socket: m.dial(signaling.ChannelMeta)})
	return nil
}

// Abort cancels the handshake and releases its socket. It has no effect once
// the handshake failed or its session was taken.
func (m *Manager) Abort() {
	switch m.state.(type) {
	case TimedOut, InvalidConnection, Aborted:
		return
	case Ready:
		if m.taken {
			return
		}
	}
	m.closeSocket()
	m.transition(Aborted{})
}

// Tick advances the handshake by at most one step.
func (m *Manager) Tick(now time.Time) {
	socket := socketOf(m.state)
	if socket == nil || Terminal(m.state) {
		return
	}

	if err := socket.Err(); err != nil {
		m.fail(fmt.Sprintf("transport failed: %v", err))
		return
	}

	if !m.started.IsZero() && now.Sub(m.started) > m.timeout {
		m.logger.Warn("Handshake timed out in state %s", m.state)
		m.closeSocket()
		m.transition(TimedOut{})
		return
	}

	switch s := m.state.(type) {
	case WaitingOnMetaConnection:
		m.tickMetaConnection(s, now)
	case WaitingOnMetadata:
		m.tickMetadata(s)
	case WaitingOnRollbackConnection:
		m.tickRollbackConnection(s)
	}
}

func (m *Manager) tickMetaConnection(s WaitingOnMetaConnection, now time.Time) {
	s.socket.UpdatePeers()
	peers := s.socket.ConnectedPeers()
	if len(peers)+1 != m.numPlayers {
		return
	}
	m.started = now
	m.transition(WaitingOnMetadata{socket: s.socket, Substate: MetaStart, Peer: peers[0]})
}

func (m *Manager) tickMetadata(s WaitingOnMetadata) {
	switch s.Substate {
	case MetaStart:
		if err := s.socket.Send(s.Peer, messages.EncodeRole(m.role.roleByte())); err != nil {
			m.fail(fmt.Sprintf("failed to send role: %v", err))
			return
		}
		s.Substate = WaitingOnRole
		m.transition(s)

	case WaitingOnRole:
		data, ok := m.receiveOne(s)
		if !ok {
			return
		}
		role, err := messages.DecodeRole(data)
		if err != nil {
			m.fail(err.Error())
			return
		}
		if role != m.role.peerRoleByte() {
			m.fail(fmt.Sprintf("peer declared role %d, expected %d", role, m.role.peerRoleByte()))
			return
		}
		switch r := m.role.(type) {
		case ConfigBearer:
			if err := s.socket.Send(s.Peer, messages.EncodeConfig(r.Config.Pack())); err != nil {
				m.fail(fmt.Sprintf("failed to send config: %v", err))
				return
			}
			s.Config = r.Config
			s.Substate = WaitingOnOK
		default:
			s.Substate = WaitingOnConfig
		}
		m.transition(s)

	case WaitingOnOK:
		data, ok := m.receiveOne(s)
		if !ok {
			return
		}
		if err := messages.DecodeOK(data); err != nil {
			m.fail(err.Error())
			return
		}
		m.openRollbackConnection(s.socket, s.Config)

	case WaitingOnConfig:
		data, ok := m.receiveOne(s)
		if !ok {
			return
		}
		packed, err := messages.DecodeConfig(data)
		if err != nil {
			m.fail(err.Error())
			return
		}
		if err := s.socket.Send(s.Peer, messages.EncodeOK()); err != nil {
			m.fail(fmt.Sprintf("failed to send ok: %v", err))
			return
		}
		m.openRollbackConnection(s.socket, types.UnpackGameConfig(packed))
	}
}

// receiveOne polls the meta channel. ok is false when nothing arrived or the
// peer broke the protocol or left, in which case the manager already failed.
func (m *Manager) receiveOne(s WaitingOnMetadata) ([]byte, bool) {
	packets := s.socket.Receive()
	switch {
	case len(packets) == 0:
		// everything the peer sent before leaving has been read by now
		if !containsPeer(s.socket.ConnectedPeers(), s.Peer) {
			m.fail(fmt.Sprintf("peer %s left", s.Peer))
		}
		return nil, false
	case len(packets) > 1:
		m.fail(fmt.Sprintf("received %d messages in one poll", len(packets)))
		return nil, false
	case packets[0].From != s.Peer:
		m.fail(fmt.Sprintf("received message from unexpected peer %s", packets[0].From))
		return nil, false
	}
	return packets[0].Data, true
}

func containsPeer(peers []string, peer string) bool {
	for _, p := range peers {
		if p == peer {
			return true
		}
	}
	return false
}

func (m *Manager) openRollbackConnection(meta Socket, config types.GameConfig) {
	if err := meta.Close(); err != nil {
		m.logger.Warn("Failed to close meta socket: %v", err)
	}
	m.logger.Info("Agreed on config %s", config)
	m.transition(WaitingOnRollbackConnection{socket: m.dial(signaling.ChannelGame), Config: config})
}

func (m *Manager) tickRollbackConnection(s WaitingOnRollbackConnection) {
	s.socket.UpdatePeers()
	peers := s.socket.ConnectedPeers()
	if len(peers)+1 != m.numPlayers {
		return
	}
	id := s.socket.ID()
	if id == "" {
		return
	}

	ids := append([]string{id}, peers...)
	sort.Strings(ids)

	builder := rollback.NewSessionBuilder().
		WithNumPlayers(m.numPlayers).
		WithInputDelay(m.inputDelay).
		WithClock(m.clock)
	for handle, peer := range ids {
		if peer == id {
			builder.AddPlayer(rollback.Local(), handle)
		} else {
			builder.AddPlayer(rollback.Remote(peer), handle)
		}
	}

	channel, err := s.socket.TakeChannel()
	if err != nil {
		m.fail(fmt.Sprintf("failed to take channel: %v", err))
		return
	}
	session, err := builder.StartP2PSession(channel)
	if err != nil {
		m.fail(fmt.Sprintf("failed to start session: %v", err))
		return
	}

	m.logger.Info("Session ready with %d players, local handles %v", session.NumPlayers(), session.LocalPlayerHandles())
	m.transition(Ready{Config: s.Config, Session: session, socket: s.socket})
}

// Take hands the ready session to the caller, once.
func (m *Manager) Take() (*SessionContext, error) {
	ready, ok := m.state.(Ready)
	if !ok || m.taken {
		return nil, ErrNotReady
	}
	m.taken = true
	return &SessionContext{
		Role:    m.role,
		Config:  ready.Config,
		Session: ready.Session,
		Socket:  ready.socket,
	}, nil
}

func (m *Manager) fail(reason string) {
	m.logger.Warn("Invalid connection in state %s: %s", m.state, reason)
	m.closeSocket()
	m.transition(InvalidConnection{Reason: reason})
}

func (m *Manager) closeSocket() {
	if socket := socketOf(m.state); socket != nil {
		if err := socket.Close(); err != nil {
			m.logger.Warn("Failed to close socket: %v", err)
		}
	}
}

func (m *Manager) transition(next State) {
	m.logger.Debug("Handshake state %s -> %s", m.state, next)
	m.state = next
}
