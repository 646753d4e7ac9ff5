package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tansive/mcpconf/internal/cli"
)

func main() {
	// Interrupts cancel the context so a pending prompt returns and nothing is written.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	cancel()
	os.Exit(code)
}
