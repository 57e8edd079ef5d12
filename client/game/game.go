package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/lockstep/client/input"
	"github.com/cbodonnell/lockstep/pkg/connection"
	"github.com/cbodonnell/lockstep/pkg/game"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/levels"
	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/repositories"
	"github.com/cbodonnell/lockstep/pkg/repositories/models"
	"github.com/cbodonnell/lockstep/pkg/workers"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	DefaultScreenWidth  = 640
	DefaultScreenHeight = 480

	historyLimit   = 10
	historyTimeout = 2 * time.Second
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// dial opens the signaling sockets of the configured room.
	dial connection.DialFunc
	room int
	// config is offered to the other peer when this peer creates the game.
	config types.GameConfig
	level  *levels.Level
	// repository is nil when match history is disabled.
	repository  repositories.Repository
	historyChan chan<- workers.SaveMatchRequest

	mode        GameMode
	manager     *connection.Manager
	gameManager *game.GameManager
	history     []*models.Match
	message     string
}

type GameMode int

const (
	GameModeMenu GameMode = iota
	GameModeConnecting
	GameModePlay
	GameModeHistory
	GameModeError
)

func (m GameMode) String() string {
	switch m {
	case GameModeMenu:
		return "Menu"
	case GameModeConnecting:
		return "Connecting"
	case GameModePlay:
		return "Play"
	case GameModeHistory:
		return "History"
	case GameModeError:
		return "Error"
	}
	return "Unknown"
}

type NewGameOptions struct {
	Debug       bool
	Dial        connection.DialFunc
	Room        int
	Config      types.GameConfig
	Level       *levels.Level
	Repository  repositories.Repository
	HistoryChan chan<- workers.SaveMatchRequest
}

func NewGame(opts NewGameOptions) (ebiten.Game, error) {
	if opts.Dial == nil {
		return nil, fmt.Errorf("a dial function is required")
	}
	if opts.Level == nil {
		return nil, fmt.Errorf("a level is required")
	}
	return &Game{
		debug:       opts.Debug,
		dial:        opts.Dial,
		room:        opts.Room,
		config:      opts.Config,
		level:       opts.Level,
		repository:  opts.Repository,
		historyChan: opts.HistoryChan,
		mode:        GameModeMenu,
	}, nil
}

func (g *Game) Update() error {
	if input.IsDebugJustPressed() {
		g.debug = !g.debug
	}

	switch g.mode {
	case GameModeMenu:
		switch {
		case input.IsCreateJustPressed():
			g.connect(connection.ConfigBearer{Config: g.config})
		case input.IsJoinJustPressed():
			g.connect(connection.ConfigReceiver{})
		case input.IsHistoryJustPressed():
			g.loadHistory()
		}
	case GameModeConnecting:
		g.updateConnecting()
	case GameModePlay:
		g.updatePlay()
	case GameModeHistory, GameModeError:
		if input.IsPositiveJustPressed() || input.IsNegativeJustPressed() {
			g.loadMenu()
		}
	}

	return nil
}

func (g *Game) loadMenu() {
	g.manager = nil
	g.gameManager = nil
	g.history = nil
	g.message = ""
	g.mode = GameModeMenu
}

func (g *Game) loadError(format string, args ...interface{}) {
	g.manager = nil
	g.gameManager = nil
	g.message = fmt.Sprintf(format, args...)
	g.mode = GameModeError
}

func (g *Game) connect(role connection.Role) {
	g.manager = connection.NewManager(connection.NewManagerOptions{
		Role: role,
		Dial: g.dial,
	})
	if err := g.manager.Start(); err != nil {
		log.Error("Failed to start handshake: %v", err)
		g.loadError("Could not connect")
		return
	}
	g.mode = GameModeConnecting
}

func (g *Game) updateConnecting() {
	if input.IsNegativeJustPressed() {
		g.manager.Abort()
	}

	g.manager.Tick(time.Now())

	switch s := g.manager.State().(type) {
	case connection.Ready:
		if err := g.loadGame(); err != nil {
			log.Error("Failed to start game: %v", err)
			g.loadError("Could not start the game")
		}
	case connection.TimedOut:
		g.loadError("Timed out waiting for the other player")
	case connection.InvalidConnection:
		log.Warn("Handshake failed: %s", s.Reason)
		g.loadError("Connection failed")
	case connection.Aborted:
		g.loadMenu()
	}
}

func (g *Game) loadGame() error {
	session, err := g.manager.Take()
	if err != nil {
		return fmt.Errorf("failed to take session: %v", err)
	}

	gameManager, err := game.NewGameManager(game.NewGameManagerOptions{
		Session:     session,
		Level:       g.level,
		Room:        g.room,
		HistoryChan: g.historyChan,
	})
	if err != nil {
		session.Close()
		return fmt.Errorf("failed to create game manager: %v", err)
	}

	g.manager = nil
	g.gameManager = gameManager
	g.mode = GameModePlay
	return nil
}

func (g *Game) updatePlay() {
	if input.IsNegativeJustPressed() {
		g.gameManager.Teardown("left")
		g.loadMenu()
		return
	}

	err := g.gameManager.Tick(input.ReadKeyState())
	switch {
	case err == nil:
	case errors.Is(err, game.ErrDisconnected):
		g.loadError("The other player disconnected")
	default:
		log.Error("Session failed: %v", err)
		g.gameManager.Teardown("error")
		g.loadError("The session failed")
	}
}

func (g *Game) loadHistory() {
	if g.repository == nil {
		g.loadError("Match history is disabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	matches, err := g.repository.ListMatches(ctx, historyLimit)
	if err != nil {
		log.Error("Failed to list matches: %v", err)
		g.loadError("Could not load match history")
		return
	}

	g.history = matches
	g.mode = GameModeHistory
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return DefaultScreenWidth, DefaultScreenHeight
}
