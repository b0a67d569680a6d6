// Package main implements the entry point for the tutor API server, which
// builds course plan specs and answers lesson questions through Gemini.
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
)

// main is the entry point for the tutor-api server.
// It loads configuration, sets up logging, wires the pipelines and serves
// HTTP until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l := setupAppLogger(cfg)

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
