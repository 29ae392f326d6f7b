package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/elsbrock/dltime/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error("main").Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}
