package rollback

import (
	"fmt"
	"time"
)

// SessionBuilder configures a P2PSession.
type SessionBuilder struct {
	numPlayers        int
	inputDelay        int
	maxPrediction     int
	checksumInterval  int
	disconnectTimeout time.Duration
	clock             func() time.Time
	players           map[int]PlayerType
	err               error
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		numPlayers:        2,
		inputDelay:        DefaultInputDelay,
		maxPrediction:     DefaultMaxPrediction,
		checksumInterval:  DefaultChecksumInterval,
		disconnectTimeout: DefaultDisconnectTimeout,
		clock:             time.Now,
		players:           make(map[int]PlayerType),
	}
}

func (b *SessionBuilder) WithNumPlayers(n int) *SessionBuilder {
	b.numPlayers = n
	return b
}

func (b *SessionBuilder) WithInputDelay(frames int) *SessionBuilder {
	b.inputDelay = frames
	return b
}

func (b *SessionBuilder) WithMaxPrediction(frames int) *SessionBuilder {
	b.maxPrediction = frames
	return b
}

func (b *SessionBuilder) WithChecksumInterval(frames int) *SessionBuilder {
	b.checksumInterval = frames
	return b
}

func (b *SessionBuilder) WithDisconnectTimeout(timeout time.Duration) *SessionBuilder {
	b.disconnectTimeout = timeout
	return b
}

// WithClock replaces time.Now, which is used for disconnect timeouts.
func (b *SessionBuilder) WithClock(clock func() time.Time) *SessionBuilder {
	b.clock = clock
	return b
}

// AddPlayer registers a player under handle. The first error sticks and is
// returned by StartP2PSession.
func (b *SessionBuilder) AddPlayer(player PlayerType, handle int) *SessionBuilder {
	if b.err != nil {
		return b
	}
	if handle < 0 || handle >= b.numPlayers {
		b.err = fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidPlayerHandle, handle, b.numPlayers)
		return b
	}
	if _, ok := b.players[handle]; ok {
		b.err = fmt.Errorf("%w: %d added twice", ErrInvalidPlayerHandle, handle)
		return b
	}
	b.players[handle] = player
	return b
}

// StartP2PSession validates the configuration and starts a session over channel.
func (b *SessionBuilder) StartP2PSession(channel Channel) (*P2PSession, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.inputDelay < 0 {
		return nil, fmt.Errorf("input delay must not be negative: %d", b.inputDelay)
	}
	if b.maxPrediction < 1 {
		return nil, fmt.Errorf("max prediction must be positive: %d", b.maxPrediction)
	}
	if b.checksumInterval < 1 {
		return nil, fmt.Errorf("checksum interval must be positive: %d", b.checksumInterval)
	}
	if len(b.players) != b.numPlayers {
		return nil, fmt.Errorf("expected %d players, got %d", b.numPlayers, len(b.players))
	}

	local := -1
	addrs := make(map[string]int)
	for handle := 0; handle < b.numPlayers; handle++ {
		player := b.players[handle]
		if player.IsLocal() {
			if local != -1 {
				return nil, fmt.Errorf("%w: only one local player is supported", ErrInvalidPlayerHandle)
			}
			local = handle
			continue
		}
		if _, dup := addrs[player.Addr]; dup {
			return nil, fmt.Errorf("%w: peer %s added twice", ErrInvalidPlayerHandle, player.Addr)
		}
		addrs[player.Addr] = handle
	}
	if local == -1 {
		return nil, fmt.Errorf("%w: no local player", ErrInvalidPlayerHandle)
	}

	return newP2PSession(b, channel, local), nil
}
