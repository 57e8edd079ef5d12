package game

import (
	"sync"
	"testing"
	"time"

	mocks "github.com/cbodonnell/lockstep/mocks/github.com/cbodonnell/lockstep/pkg/connection"
	"github.com/cbodonnell/lockstep/pkg/connection"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/input"
	"github.com/cbodonnell/lockstep/pkg/messages"
	"github.com/cbodonnell/lockstep/pkg/rollback"
	"github.com/cbodonnell/lockstep/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// link delivers packets between in-process peers immediately.
type link struct {
	lock  sync.Mutex
	boxes map[string][]messages.Packet
}

type linkChannel struct {
	link *link
	addr string
}

func (c *linkChannel) SendTo(addr string, data []byte) error {
	c.link.lock.Lock()
	defer c.link.lock.Unlock()
	c.link.boxes[addr] = append(c.link.boxes[addr], messages.Packet{From: c.addr, Data: append([]byte(nil), data...)})
	return nil
}

func (c *linkChannel) Receive() []messages.Packet {
	c.link.lock.Lock()
	defer c.link.lock.Unlock()
	packets := c.link.boxes[c.addr]
	delete(c.link.boxes, c.addr)
	return packets
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

type pair struct {
	a, b         *GameManager
	socketA      *mocks.Socket
	socketB      *mocks.Socket
	clock        *testClock
	historyChanA chan workers.SaveMatchRequest
}

func newPair(t *testing.T) *pair {
	l := &link{boxes: make(map[string][]messages.Packet)}
	clock := &testClock{now: time.Unix(1700000000, 0)}
	config := types.GameConfig{Seed: 10, Difficulty: 1}

	start := func(local int, remote string, addr string) *rollback.P2PSession {
		session, err := rollback.NewSessionBuilder().
			WithClock(clock.Now).
			AddPlayer(rollback.Local(), local).
			AddPlayer(rollback.Remote(remote), 1-local).
			StartP2PSession(&linkChannel{link: l, addr: addr})
		require.NoError(t, err)
		return session
	}

	p := &pair{
		socketA:      mocks.NewSocket(t),
		socketB:      mocks.NewSocket(t),
		clock:        clock,
		historyChanA: make(chan workers.SaveMatchRequest, 1),
	}
	var err error
	p.a, err = NewGameManager(NewGameManagerOptions{
		Session: &connection.SessionContext{
			Role:    connection.ConfigBearer{Config: config},
			Config:  config,
			Session: start(0, "b", "a"),
			Socket:  p.socketA,
		},
		Level:       loadLobby(t),
		Room:        20,
		HistoryChan: p.historyChanA,
		Clock:       clock.Now,
	})
	require.NoError(t, err)
	p.b, err = NewGameManager(NewGameManagerOptions{
		Session: &connection.SessionContext{
			Role:    connection.ConfigReceiver{},
			Config:  config,
			Session: start(1, "a", "b"),
			Socket:  p.socketB,
		},
		Level: loadLobby(t),
		Room:  20,
		Clock: clock.Now,
	})
	require.NoError(t, err)
	return p
}

func keysA(tick int) input.KeyState {
	return input.KeyState{Right: tick%90 < 40, Jump: tick%45 == 0}
}

func keysB(tick int) input.KeyState {
	return input.KeyState{Left: tick%70 < 30, Jump: tick%60 == 10, Interact: tick%20 < 5}
}

func TestGameManagersStayInSync(t *testing.T) {
	p := newPair(t)

	const ticks = 300
	for i := 0; i < ticks; i++ {
		p.clock.now = p.clock.now.Add(16 * time.Millisecond)
		require.NoError(t, p.a.Tick(keysA(i)))
		require.NoError(t, p.b.Tick(keysB(i)))
	}
	for i := 0; i < 10 && p.a.Frame() < p.b.Frame(); i++ {
		require.NoError(t, p.a.Tick(keysA(ticks)))
	}
	for i := 0; i < 10 && p.b.Frame() < p.a.Frame(); i++ {
		require.NoError(t, p.b.Tick(keysB(ticks)))
	}

	require.Equal(t, p.a.Frame(), p.b.Frame())
	assert.Greater(t, int(p.a.Frame()), ticks-10)
	assert.Equal(t, 0, p.a.Desyncs())
	assert.Equal(t, 0, p.b.Desyncs())
	assert.Equal(t, rollback.Snapshot(p.a.World()), rollback.Snapshot(p.b.World()))

	player, ok := p.a.World().Get(1)
	require.True(t, ok)
	assert.NotEqual(t, float32(-2), player.Transform.Position.X, "the scripted input moved player 0")
}

func TestGameManagerTeardownOnDisconnect(t *testing.T) {
	p := newPair(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, p.a.Tick(input.KeyState{}))
		require.NoError(t, p.b.Tick(input.KeyState{}))
	}
	// take in what b sent last before b goes silent
	require.NoError(t, p.a.Tick(input.KeyState{}))
	frames := p.a.Frame()
	require.Greater(t, int(frames), 0)

	p.clock.now = p.clock.now.Add(3 * time.Second)
	p.socketA.EXPECT().Close().Return(nil).Once()
	err := p.a.Tick(input.KeyState{})
	assert.ErrorIs(t, err, ErrDisconnected)
	assert.True(t, p.a.Ended())
	assert.Equal(t, 0, p.a.World().Len())

	select {
	case req := <-p.historyChanA:
		assert.Equal(t, 20, req.Match.Room)
		assert.Equal(t, "config bearer", req.Match.Role)
		assert.Equal(t, uint32(10), req.Match.Seed)
		assert.Equal(t, uint32(1), req.Match.Difficulty)
		assert.Equal(t, ErrDisconnected.Error(), req.Match.EndReason)
		assert.GreaterOrEqual(t, req.Match.Frames, int32(frames))
		assert.NotEmpty(t, req.Snapshot)
	default:
		t.Fatal("no match history request")
	}

	assert.ErrorIs(t, p.a.Tick(input.KeyState{}), ErrSessionEnded)
	p.a.Teardown("again")
	assert.Empty(t, p.historyChanA)
}

func TestGameManagerTeardownDoesNotBlock(t *testing.T) {
	p := newPair(t)
	p.historyChanA <- workers.SaveMatchRequest{}

	p.socketA.EXPECT().Close().Return(nil).Once()
	done := make(chan struct{})
	go func() {
		p.a.Teardown("quit")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("teardown blocked on a full history queue")
	}
	assert.Len(t, p.historyChanA, 1)
}

func TestNewGameManagerValidation(t *testing.T) {
	session, err := rollback.NewSessionBuilder().
		WithNumPlayers(3).
		AddPlayer(rollback.Local(), 0).
		AddPlayer(rollback.Remote("b"), 1).
		AddPlayer(rollback.Remote("c"), 2).
		StartP2PSession(&linkChannel{link: &link{boxes: map[string][]messages.Packet{}}, addr: "a"})
	require.NoError(t, err)

	tests := []struct {
		name string
		opts NewGameManagerOptions
	}{
		{name: "no session", opts: NewGameManagerOptions{Level: loadLobby(t)}},
		{name: "no level", opts: NewGameManagerOptions{Session: &connection.SessionContext{Session: session}}},
		{name: "player count mismatch", opts: NewGameManagerOptions{Session: &connection.SessionContext{Session: session}, Level: loadLobby(t)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGameManager(tt.opts)
			assert.Error(t, err)
		})
	}
}
