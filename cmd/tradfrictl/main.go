package main

import (
	"log/slog"
	"os"

	"github.com/tradfri-tools/tradfrid/cmd/tradfrictl/commands"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// CLI output goes to stdout; logs stay on stderr and only warnings and
	// worse are shown unless raised via flags inside the commands.
	level := slog.LevelWarn
	if lvl := os.Getenv("TRADFRI_LOG_LEVEL"); lvl != "" {
		level = getLogLevel(lvl)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	rootCmd := commands.NewRootCommand(logger, version, commit, buildDate)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
