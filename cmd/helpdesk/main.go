package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/root"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.NewCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, app.Alert(err))
		stop()
		os.Exit(app.ExitCode(err))
	}
}
