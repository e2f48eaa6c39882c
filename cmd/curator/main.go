// Command curator runs the content curation worker. Each pass it sweeps
// stale work leases, plans the highest-priority coverage gap, generates a
// draft for it, and advances pending content through the review pipeline.
//
// Requires DATABASE_DSN; see internal/config for all settings.
// Exits on SIGINT/SIGTERM after finishing the current pass.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("curator exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
