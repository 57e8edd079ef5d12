package signaling

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/lockstep/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

func newTestServer(t *testing.T) (*Server, Dialer) {
	t.Helper()
	srv := NewServer(NewServerOptions{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, Dialer{Host: strings.TrimPrefix(ts.URL, "http://"), Room: 7}
}

func dialPair(t *testing.T, d Dialer, kind ChannelKind) (*Client, *Client) {
	t.Helper()
	a := d.Dial(kind)
	t.Cleanup(func() { a.Close() })
	require.Eventually(t, func() bool {
		a.UpdatePeers()
		return a.ID() != ""
	}, waitFor, tick)

	b := d.Dial(kind)
	t.Cleanup(func() { b.Close() })
	require.Eventually(t, func() bool {
		a.UpdatePeers()
		b.UpdatePeers()
		return len(a.ConnectedPeers()) == 1 && len(b.ConnectedPeers()) == 1
	}, waitFor, tick)
	return a, b
}

func TestDialerURL(t *testing.T) {
	d := Dialer{Host: "localhost:3536", Room: 20}
	assert.Equal(t, "ws://localhost:3536/20/meta", d.URL(ChannelMeta))
	assert.Equal(t, "ws://localhost:3536/20/game", d.URL(ChannelGame))
	assert.True(t, ChannelGame.Valid())
	assert.False(t, ChannelKind("lobby").Valid())
}

func TestPeerDiscoveryAndRelay(t *testing.T) {
	_, d := newTestServer(t)
	a, b := dialPair(t, d, ChannelMeta)

	assert.Equal(t, []string{b.ID()}, a.ConnectedPeers())
	assert.Equal(t, []string{a.ID()}, b.ConnectedPeers())
	assert.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.Send(b.ID(), []byte{1, 0}))
	require.NoError(t, a.Send(b.ID(), []byte{2}))

	var got []messages.Packet
	require.Eventually(t, func() bool {
		got = append(got, b.Receive()...)
		return len(got) == 2
	}, waitFor, tick)
	assert.Equal(t, []messages.Packet{
		{From: a.ID(), Data: []byte{1, 0}},
		{From: a.ID(), Data: []byte{2}},
	}, got)
	assert.Empty(t, a.Receive())
}

func TestReceivePerPoll(t *testing.T) {
	tests := []struct {
		kind      ChannelKind
		firstPoll int
	}{
		{kind: ChannelMeta, firstPoll: 1},
		{kind: ChannelGame, firstPoll: 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			_, d := newTestServer(t)
			a, b := dialPair(t, d, tt.kind)

			for i := byte(0); i < 3; i++ {
				require.NoError(t, a.Send(b.ID(), []byte{i}))
			}
			require.Eventually(t, func() bool {
				b.UpdatePeers()
				b.lock.Lock()
				defer b.lock.Unlock()
				return len(b.pending) == 3
			}, waitFor, tick)

			got := b.Receive()
			assert.Len(t, got, tt.firstPoll)
			for len(got) < 3 {
				next := b.Receive()
				require.Len(t, next, 1)
				got = append(got, next...)
			}
			for i, p := range got {
				assert.Equal(t, []byte{byte(i)}, p.Data)
			}
			assert.Empty(t, b.Receive())
		})
	}
}

func TestPeerLeft(t *testing.T) {
	_, d := newTestServer(t)
	a, b := dialPair(t, d, ChannelMeta)

	require.NoError(t, b.Close())
	require.Eventually(t, func() bool {
		a.UpdatePeers()
		return len(a.ConnectedPeers()) == 0
	}, waitFor, tick)
	assert.NoError(t, a.Err())
}

func TestCloseFlushesQueuedMessages(t *testing.T) {
	_, d := newTestServer(t)
	a, b := dialPair(t, d, ChannelMeta)

	require.NoError(t, a.Send(b.ID(), []byte{2}))
	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.Send(b.ID(), []byte{2}), ErrSocketClosed)

	var got []messages.Packet
	require.Eventually(t, func() bool {
		got = append(got, b.Receive()...)
		return len(got) == 1
	}, waitFor, tick)
	assert.Equal(t, []byte{2}, got[0].Data)

	select {
	case <-a.Done():
	case <-time.After(waitFor):
		t.Fatal("socket did not shut down")
	}
	assert.NoError(t, a.Err())
}

func TestChannelsAreIndependent(t *testing.T) {
	srv, d := newTestServer(t)
	a, _ := dialPair(t, d, ChannelMeta)

	game := d.Dial(ChannelGame)
	defer game.Close()
	require.Eventually(t, func() bool {
		game.UpdatePeers()
		return game.ID() != ""
	}, waitFor, tick)
	assert.Empty(t, game.ConnectedPeers())

	a.UpdatePeers()
	assert.Len(t, a.ConnectedPeers(), 1)

	assert.Equal(t, []RoomInfo{
		{Room: 7, Channel: ChannelGame, Peers: 1},
		{Room: 7, Channel: ChannelMeta, Peers: 2},
	}, srv.Rooms())
}

func TestRoomFull(t *testing.T) {
	_, d := newTestServer(t)
	dialPair(t, d, ChannelMeta)

	c := d.Dial(ChannelMeta)
	defer c.Close()
	require.Eventually(t, func() bool {
		return c.Err() != nil
	}, waitFor, tick)
	assert.ErrorIs(t, c.Send("anyone", nil), c.Err())
}

func TestDialFailure(t *testing.T) {
	c := Dialer{Host: "127.0.0.1:1", Room: 1}.Dial(ChannelMeta)
	defer c.Close()
	require.Eventually(t, func() bool {
		return c.Err() != nil
	}, waitFor, tick)
	assert.Contains(t, c.Err().Error(), "failed to connect")
}

func TestTakeChannel(t *testing.T) {
	_, d := newTestServer(t)
	a, b := dialPair(t, d, ChannelGame)

	chA, err := a.TakeChannel()
	require.NoError(t, err)
	_, err = a.TakeChannel()
	assert.ErrorIs(t, err, ErrChannelTaken)

	chB, err := b.TakeChannel()
	require.NoError(t, err)

	require.NoError(t, chA.SendTo(b.ID(), []byte("hello")))
	var got []messages.Packet
	require.Eventually(t, func() bool {
		got = append(got, chB.Receive()...)
		return len(got) == 1
	}, waitFor, tick)
	assert.Equal(t, messages.Packet{From: a.ID(), Data: []byte("hello")}, got[0])
}

func TestHTTPRoutes(t *testing.T) {
	srv := NewServer(NewServerOptions{RoomSize: 3})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "healthz", path: "/healthz", want: http.StatusOK},
		{name: "rooms", path: "/rooms", want: http.StatusOK},
		{name: "unknown channel", path: "/7/lobby", want: http.StatusNotFound},
		{name: "non numeric room", path: "/abc/meta", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp, err := http.Get(ts.URL + "/rooms")
	require.NoError(t, err)
	defer resp.Body.Close()
	var rooms []RoomInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rooms))
	assert.Empty(t, rooms)
}
