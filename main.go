package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"keypaste/config"
	"keypaste/logging"
	"keypaste/systray"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Format, cfg.Log.Level)

	configPath, _ := config.Path()
	slog.Info("Configuration loaded", "path", configPath)

	// Create tray and agent
	tray := systray.New(nil, cfg.Typing.Speed, cfg.Monitor.Enabled)

	agent, err := NewAgent(cfg, tray)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The tray library needs the main goroutine, so the agent loop runs
	// beside it and shuts the tray down when it exits.
	go func() {
		if err := agent.Run(ctx); err != nil {
			slog.Error("Agent error", "error", err)
		}
		tray.Stop()
	}()

	tray.Run()

	cancel()
	slog.Info("keypaste stopped")
}
