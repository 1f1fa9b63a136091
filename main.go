package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ai_text_improver/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.NewConsole(os.Stderr).Error(err.Error())
		stop()
		os.Exit(1)
	}
}
