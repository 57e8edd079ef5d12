package rollback

import (
	"errors"
	"testing"

	"github.com/cbodonnell/lockstep/pkg/collisions"
	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/input"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
	"github.com/cbodonnell/lockstep/pkg/messages"
	"github.com/cbodonnell/lockstep/pkg/physics"
	"github.com/stretchr/testify/require"
)

// memNetwork delivers packets between in-process sessions after a fixed
// number of ticks.
type memNetwork struct {
	tick    int
	latency int
	held    map[[2]string]bool
	queue   []memPacket
}

type memPacket struct {
	from      string
	to        string
	data      []byte
	deliverAt int
}

func newMemNetwork(latency int) *memNetwork {
	return &memNetwork{latency: latency, held: make(map[[2]string]bool)}
}

func (n *memNetwork) channel(addr string) *memChannel {
	return &memChannel{net: n, addr: addr}
}

func (n *memNetwork) hold(from, to string, held bool) {
	n.held[[2]string{from, to}] = held
}

type memChannel struct {
	net  *memNetwork
	addr string
}

func (c *memChannel) SendTo(addr string, data []byte) error {
	c.net.queue = append(c.net.queue, memPacket{
		from:      c.addr,
		to:        addr,
		data:      append([]byte(nil), data...),
		deliverAt: c.net.tick + c.net.latency,
	})
	return nil
}

func (c *memChannel) Receive() []messages.Packet {
	var out []messages.Packet
	remaining := c.net.queue[:0]
	for _, p := range c.net.queue {
		if p.to == c.addr && p.deliverAt <= c.net.tick && !c.net.held[[2]string{p.from, p.to}] {
			out = append(out, messages.Packet{From: p.from, Data: p.data})
			continue
		}
		remaining = append(remaining, p)
	}
	c.net.queue = remaining
	return out
}

func solid(v bool) *types.Solid {
	s := types.Solid(v)
	return &s
}

// newTestWorld spawns a floor, two players and a crate.
func newTestWorld() *types.World {
	w := types.NewWorld()
	w.Spawn(types.Components{
		Transform: &types.Transform{Position: kinematic.Vector{X: 0, Y: -2}},
		Velocity:  &types.Velocity{},
		Collider:  types.NewCollider(kinematic.Vector{X: 10, Y: 1}),
		Solid:     solid(false),
		Platform:  true,
	})
	for handle, x := range []float32{-2, 2} {
		w.Spawn(types.Components{
			Transform:  &types.Transform{Position: kinematic.Vector{X: x, Y: 2}},
			Velocity:   &types.Velocity{},
			Gravity:    types.NewGravity(kinematic.Gravity),
			Collider:   types.NewCollider(kinematic.Vector{X: 1, Y: 1}),
			Solid:      solid(true),
			Player:     &types.Player{Handle: handle},
			Facing:     &types.Facing{},
			CoyoteTime: types.NewCoyoteTime(),
		})
	}
	w.Spawn(types.Components{
		Transform: &types.Transform{Position: kinematic.Vector{X: 0, Y: 15}},
		Velocity:  &types.Velocity{},
		Gravity:   types.NewGravity(kinematic.Gravity),
		Collider:  types.NewCollider(kinematic.Vector{X: 1, Y: 1}),
		Solid:     solid(true),
	})
	return w
}

// testPeer plays the game side of a session: it handles requests against a
// world and records what it did.
type testPeer struct {
	t         *testing.T
	handle    int
	session   *P2PSession
	world     *types.World
	sim       *physics.Simulation
	saved     map[Frame]uint32
	committed map[Frame]input.Mask
	loads     int
	events    []Event
}

func newTestPeer(t *testing.T, session *P2PSession, dt float32) *testPeer {
	return &testPeer{
		t:         t,
		handle:    session.LocalPlayerHandles()[0],
		session:   session,
		world:     newTestWorld(),
		sim:       physics.NewSimulation(collisions.NewEngine(collisions.DefaultBounds), dt),
		saved:     make(map[Frame]uint32),
		committed: make(map[Frame]input.Mask),
	}
}

// step adds a local input and advances one frame. It reports whether the
// frame was advanced.
func (p *testPeer) step(in input.Mask) bool {
	frame := p.session.CurrentFrame()
	require.NoError(p.t, p.session.AddLocalInput(p.handle, byte(in)))
	requests, err := p.session.AdvanceFrame()
	p.events = append(p.events, p.session.Events()...)
	if errors.Is(err, ErrPredictionThreshold) || errors.Is(err, ErrNotSynchronized) {
		return false
	}
	require.NoError(p.t, err)
	p.committed[frame+Frame(p.session.InputDelay())] = in
	p.handleRequests(requests)
	return true
}

func (p *testPeer) handleRequests(requests []Request) {
	for _, request := range requests {
		switch r := request.(type) {
		case SaveGameState:
			blob := Snapshot(p.world)
			checksum := Checksum(blob)
			r.Cell.Save(r.Frame, blob, checksum)
			p.saved[r.Frame] = checksum
		case LoadGameState:
			require.NoError(p.t, Restore(p.world, r.Cell.Load()))
			p.loads++
		case AdvanceFrame:
			inputs := make([]input.Mask, len(r.Inputs))
			for i, in := range r.Inputs {
				inputs[i] = input.Mask(in.Input)
			}
			p.sim.Advance(p.world, inputs)
		}
	}
}

// referenceChecksum simulates frames [0, frame) with the given per-handle
// inputs in a single world and returns the checksum of the resulting state.
func referenceChecksum(frame Frame, inputs ...map[Frame]input.Mask) uint32 {
	w := newTestWorld()
	sim := physics.NewSimulation(collisions.NewEngine(collisions.DefaultBounds), constants.DeltaTime)
	for f := Frame(0); f < frame; f++ {
		masks := make([]input.Mask, len(inputs))
		for handle, byFrame := range inputs {
			masks[handle] = byFrame[f]
		}
		sim.Advance(w, masks)
	}
	return Checksum(Snapshot(w))
}
