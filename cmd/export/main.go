package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/hoopboard/internal/exporter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := exporter.NewApp().RunContext(ctx, os.Args); err != nil {
		os.Stderr.WriteString(exporter.AppName + ": " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
