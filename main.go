package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nuts-foundation/cds-hooks-ice/cmd"
	"github.com/rs/zerolog/log"
)

func main() {
	// Listen for interrupt signals (CTRL/CMD+C, OS instructing the process to stop) to cancel context.
	ctx, cancelFunc := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelFunc()
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cmd.Start(ctx, config); err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}
}
