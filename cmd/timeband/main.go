package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"tableflip.dev/timeband/pkg/commands"
	"tableflip.dev/timeband/pkg/runner/pick"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.New().ExecuteContext(ctx); err != nil {
		if errors.Is(err, pick.ErrCancelled) {
			stop()
			os.Exit(130)
		}
		log.Fatalf("error during command execution: %v", err)
	}
}
