package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/signaling"
	"github.com/cbodonnell/lockstep/pkg/version"
)

func main() {
	port := flag.Int("port", 3536, "Port to listen on")
	roomSize := flag.Int("room-size", 2, "Peers allowed in each room channel")
	logLevel := flag.String("log-level", "info", "Log level")
	logFile := flag.String("log-file", "", "Also write logs to this rotating file")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(log.Output(*logFile), "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting signaling server version %s", version.Get())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := signaling.NewServer(signaling.NewServerOptions{
		Port:     *port,
		RoomSize: *roomSize,
	})
	if err := server.Start(ctx); err != nil {
		log.Error("Signaling server stopped: %v", err)
		os.Exit(1)
	}
	log.Info("Signaling server stopped")
}
