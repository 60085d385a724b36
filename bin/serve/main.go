package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"movie-discovery/cmd"
	"movie-discovery/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	telemetry.SetupLogging(cfg.LogLevel)

	// Start server
	if err := cmd.Serve(context.Background(), cfg); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
