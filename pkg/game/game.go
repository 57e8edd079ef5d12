// Package game runs a session: every tick it feeds the local input to the
// rollback session and applies the saves, loads and frame advances it asks for.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/lockstep/pkg/collisions"
	"github.com/cbodonnell/lockstep/pkg/connection"
	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/input"
	"github.com/cbodonnell/lockstep/pkg/levels"
	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/physics"
	"github.com/cbodonnell/lockstep/pkg/repositories/models"
	"github.com/cbodonnell/lockstep/pkg/rollback"
	"github.com/cbodonnell/lockstep/pkg/workers"
	"github.com/google/uuid"
)

var (
	// ErrDisconnected is returned by Tick once a remote peer dropped. The
	// session has been torn down.
	ErrDisconnected = errors.New("peer disconnected")
	// ErrSessionEnded is returned by Tick after Teardown.
	ErrSessionEnded = errors.New("session ended")
)

type GameManager struct {
	session     *connection.SessionContext
	role        string
	config      types.GameConfig
	localHandle int
	world       *types.World
	simulation  *physics.Simulation
	room        int
	historyChan chan<- workers.SaveMatchRequest
	clock       func() time.Time

	matchID   string
	startedAt time.Time
	frame     rollback.Frame
	desyncs   int
	ended     bool
	logger    *log.Logger
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Session *connection.SessionContext
	Level   *levels.Level
	Room    int
	// HistoryChan receives the match record on teardown; nil disables history
	HistoryChan chan<- workers.SaveMatchRequest
	// DeltaTime defaults to constants.DeltaTime
	DeltaTime float32
	Clock     func() time.Time
}

func NewGameManager(opts NewGameManagerOptions) (*GameManager, error) {
	if opts.Session == nil || opts.Session.Session == nil {
		return nil, fmt.Errorf("a started session is required")
	}
	if opts.Level == nil {
		return nil, fmt.Errorf("a level is required")
	}
	if players := opts.Level.Players(); players != opts.Session.Session.NumPlayers() {
		return nil, fmt.Errorf("level %s has %d players, session has %d", opts.Level.Name, players, opts.Session.Session.NumPlayers())
	}
	if opts.DeltaTime <= 0 {
		opts.DeltaTime = constants.DeltaTime
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	role := ""
	if opts.Session.Role != nil {
		role = opts.Session.Role.String()
	}
	gm := &GameManager{
		session:     opts.Session,
		role:        role,
		config:      opts.Session.Config,
		localHandle: opts.Session.LocalHandle(),
		world:       BuildWorld(opts.Level, opts.Session.Config),
		simulation:  physics.NewSimulation(collisions.NewEngine(collisions.DefaultBounds), opts.DeltaTime),
		room:        opts.Room,
		historyChan: opts.HistoryChan,
		clock:       opts.Clock,
		matchID:     uuid.NewString(),
		startedAt:   opts.Clock(),
		logger:      log.Default().With("game"),
	}
	gm.logger.Info("Session %s started as %s with %s, local player %d", gm.matchID, gm.role, gm.config, gm.localHandle)
	return gm, nil
}

// World returns the simulated world. It must not be modified outside Tick.
func (gm *GameManager) World() *types.World {
	return gm.world
}

// LocalHandle returns the handle of the player controlled on this peer.
func (gm *GameManager) LocalHandle() int {
	return gm.localHandle
}

// Frame returns the number of frames simulated so far.
func (gm *GameManager) Frame() rollback.Frame {
	return gm.frame
}

// Desyncs returns the number of desyncs detected.
func (gm *GameManager) Desyncs() int {
	return gm.desyncs
}

// Ended reports whether the session was torn down.
func (gm *GameManager) Ended() bool {
	return gm.ended
}

// Tick submits the local input and advances the session by one frame. A frame
// the session cannot advance yet is skipped without error.
func (gm *GameManager) Tick(keys input.KeyState) error {
	if gm.ended {
		return ErrSessionEnded
	}
	session := gm.session.Session

	if err := session.AddLocalInput(gm.localHandle, byte(input.Encode(keys))); err != nil {
		return fmt.Errorf("failed to add local input: %w", err)
	}

	requests, err := session.AdvanceFrame()
	switch {
	case errors.Is(err, rollback.ErrPredictionThreshold):
		gm.logger.Debug("Skipping frame %d: prediction threshold reached", session.CurrentFrame())
	case errors.Is(err, rollback.ErrNotSynchronized):
		gm.logger.Trace("Waiting for peers to synchronize")
	case err != nil:
		return fmt.Errorf("failed to advance frame: %w", err)
	default:
		if err := gm.handleRequests(requests); err != nil {
			gm.Teardown(err.Error())
			return err
		}
	}

	return gm.handleEvents(session.Events())
}

func (gm *GameManager) handleRequests(requests []rollback.Request) error {
	for _, request := range requests {
		switch r := request.(type) {
		case rollback.SaveGameState:
			blob := rollback.Snapshot(gm.world)
			r.Cell.Save(r.Frame, blob, rollback.Checksum(blob))
		case rollback.LoadGameState:
			if err := rollback.Restore(gm.world, r.Cell.Load()); err != nil {
				return fmt.Errorf("failed to load frame %d: %w", r.Frame, err)
			}
			gm.logger.Trace("Rolled back to frame %d", r.Frame)
		case rollback.AdvanceFrame:
			inputs := make([]input.Mask, len(r.Inputs))
			for handle, in := range r.Inputs {
				inputs[handle] = input.Mask(in.Input)
			}
			gm.simulation.Advance(gm.world, inputs)
			gm.frame = r.Frame + 1
		}
	}
	return nil
}

func (gm *GameManager) handleEvents(events []rollback.Event) error {
	for _, event := range events {
		switch e := event.(type) {
		case rollback.Synchronized:
			gm.logger.Info("Synchronized with peer %s", e.Addr)
		case rollback.DesyncDetected:
			gm.desyncs++
			gm.logger.Warn("Desync detected at frame %d with peer %s: local checksum %08x, remote checksum %08x",
				e.Frame, e.Addr, e.LocalChecksum, e.RemoteChecksum)
		case rollback.Disconnected:
			gm.logger.Info("Peer %s disconnected", e.Addr)
			gm.Teardown(ErrDisconnected.Error())
			return ErrDisconnected
		}
	}
	return nil
}

// Teardown ends the session: it disconnects the remote players, closes the
// socket, hands the match record to the history worker and despawns every
// entity. Calling it again has no effect.
func (gm *GameManager) Teardown(reason string) {
	if gm.ended {
		return
	}
	gm.ended = true

	snapshot := rollback.Snapshot(gm.world)
	if err := gm.session.Close(); err != nil {
		gm.logger.Warn("Failed to close session: %v", err)
	}

	if gm.historyChan != nil {
		req := workers.SaveMatchRequest{
			Match: &models.Match{
				ID:         gm.matchID,
				Room:       gm.room,
				Role:       gm.role,
				Seed:       gm.config.Seed,
				Difficulty: gm.config.Difficulty,
				Frames:     int32(gm.frame),
				Desyncs:    gm.desyncs,
				EndReason:  reason,
				StartedAt:  gm.startedAt,
				EndedAt:    gm.clock(),
			},
			Snapshot: snapshot,
		}
		select {
		case gm.historyChan <- req:
		default:
			gm.logger.Warn("Match history queue is full, dropping match %s", gm.matchID)
		}
	}

	gm.world.Clear()
	gm.logger.Info("Session %s ended after %d frames: %s", gm.matchID, gm.frame, reason)
}
