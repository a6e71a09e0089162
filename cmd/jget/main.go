package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/jsmn/internal/cmd/root"
	"github.com/jacoelho/jsmn/internal/exit"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.NewCmdRoot().ExecuteContext(ctx); err != nil {
		result := exit.FromError(err, os.Stderr)
		result.Print()
		return result.ExitCode
	}
	return exit.CodeOK
}
