package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/cbodonnell/lockstep/client/game"
	"github.com/cbodonnell/lockstep/pkg/connection"
	"github.com/cbodonnell/lockstep/pkg/game/constants"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/levels"
	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/repositories"
	"github.com/cbodonnell/lockstep/pkg/signaling"
	"github.com/cbodonnell/lockstep/pkg/version"
	"github.com/cbodonnell/lockstep/pkg/workers"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	serverAddr := flag.String("server", "localhost:3536", "Signaling server host:port")
	room := flag.Int("room", 20, "Signaling room")
	seed := flag.Uint("seed", 10, "Game seed offered when creating a game")
	difficulty := flag.Uint("difficulty", 0, "Game difficulty offered when creating a game")
	levelName := flag.String("level", levels.DefaultLevel, "Level to play")
	history := flag.String("history", "", "Match history database (sqlite path or postgres:// URL); empty disables history")
	logLevel := flag.String("log-level", "info", "Log level")
	logFile := flag.String("log-file", "", "Also write logs to this rotating file")
	debug := flag.Bool("debug", false, "Show the debug overlay")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(log.Output(*logFile), "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())

	level, err := levels.Load(*levelName)
	if err != nil {
		panic(fmt.Sprintf("Failed to load level: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var repository repositories.Repository
	var historyChan chan workers.SaveMatchRequest
	done := make(chan struct{})
	if *history != "" {
		repository, err = repositories.NewRepository(ctx, *history)
		if err != nil {
			panic(fmt.Sprintf("Failed to open match history: %v", err))
		}
		historyChan = make(chan workers.SaveMatchRequest, workers.DefaultSaveMatchQueueSize)
		saveMatchWorker := workers.NewSaveMatchWorker(workers.NewSaveMatchWorkerOptions{
			Repository:    repository,
			SaveMatchChan: historyChan,
		})
		go func() {
			defer close(done)
			saveMatchWorker.Start(ctx)
		}()
	} else {
		close(done)
	}

	g, err := game.NewGame(game.NewGameOptions{
		Debug: *debug,
		Dial: connection.SignalingDialer(signaling.Dialer{
			Host: *serverAddr,
			Room: *room,
		}),
		Room: *room,
		Config: types.GameConfig{
			Seed:       uint32(*seed),
			Difficulty: uint32(*difficulty),
		},
		Level:       level,
		Repository:  repository,
		HistoryChan: historyChan,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetTPS(constants.TickRate)
	ebiten.SetWindowSize(game.DefaultScreenWidth, game.DefaultScreenHeight)
	ebiten.SetWindowTitle("Lockstep")
	runErr := ebiten.RunGame(g)

	cancel()
	<-done
	if repository != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := repository.Close(closeCtx); err != nil {
			log.Error("Failed to close match history: %v", err)
		}
	}
	if runErr != nil {
		panic(fmt.Sprintf("Failed to run game: %v", runErr))
	}
}
