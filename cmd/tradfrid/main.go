package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tradfri-tools/tradfrid/internal/config"
	"github.com/tradfri-tools/tradfrid/internal/server"
	"github.com/tradfri-tools/tradfrid/pkg/tradfri"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set up Viper for configuration
	v := viper.New()
	v.SetEnvPrefix("TRADFRI")
	v.AutomaticEnv()

	// Set up command line flags
	pflag.String("log-level", "info", "Log level (debug, info, warn, error)")
	pflag.String("log-format", "text", "Log format (text, json)")
	pflag.String("config", "", "Path to config file")
	pflag.String("gateway", "", "Gateway address (host:port); discovered via mDNS when empty")
	pflag.String("security-code", "", "Gateway security code, used once to provision a PSK")
	pflag.Parse()

	// Bind flags to Viper - this ensures flags take precedence
	v.BindPFlag("logging.level", pflag.Lookup("log-level"))
	v.BindPFlag("logging.format", pflag.Lookup("log-format"))
	v.BindPFlag("gateway.address", pflag.Lookup("gateway"))
	v.BindPFlag("gateway.security_code", pflag.Lookup("security-code"))

	// Load configuration
	cfg, err := config.Load("tradfrid.yaml", v.GetString("config"))
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override file values
	if addr := v.GetString("gateway.address"); addr != "" {
		cfg.Gateway.Address = addr
	}
	if code := v.GetString("gateway.security_code"); code != "" {
		cfg.Gateway.SecurityCode = code
	}
	if lvl := v.GetString("logging.level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if format := v.GetString("logging.format"); format != "" {
		cfg.Logging.Format = format
	}

	// Set up logging with configured level
	level := getLogLevel(cfg.Logging.Level)
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	logger.Info("Starting tradfrid",
		"version", version,
		"commit", commit,
		"buildDate", buildDate,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ensureGateway(ctx, cfg, logger); err != nil {
		logger.Error("Gateway setup failed", "error", err)
		os.Exit(1)
	}

	client := tradfri.NewGatewayClient(
		cfg.Gateway.Address,
		cfg.Gateway.Identity,
		cfg.Gateway.PSK,
		cfg.Gateway.Timeout,
		logger,
	)
	defer client.Close()

	cfg.Watch(logger)

	srv := server.New(logger, cfg, client, server.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
	})
	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server", "error", err)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")
	cancel()

	srv.Stop()
}

// ensureGateway fills in the gateway address and credentials: the address via
// mDNS discovery when unset, and the identity/PSK via a one-time provisioning
// exchange with the security code. Provisioned credentials are written back to
// the config file so the security code is only needed once.
func ensureGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Gateway.Address == "" {
		logger.Info("No gateway address configured, discovering via mDNS")
		discoverCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		addr, err := tradfri.DiscoverGateway(discoverCtx, 10*time.Second, logger)
		if err != nil {
			return err
		}
		cfg.Gateway.Address = addr
		logger.Info("Discovered gateway", "address", addr)
	}

	if cfg.Gateway.Identity != "" && cfg.Gateway.PSK != "" {
		return nil
	}

	logger.Info("No gateway credentials configured, provisioning PSK")
	provisionCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	identity, psk, err := tradfri.ProvisionPSK(provisionCtx, cfg.Gateway.Address, cfg.Gateway.SecurityCode, logger)
	if err != nil {
		return err
	}
	cfg.Gateway.Identity = identity
	cfg.Gateway.PSK = psk

	if err := cfg.Save(); err != nil {
		// Credentials still work for this run; they just won't survive a restart.
		logger.Warn("Failed to persist provisioned credentials", "error", err)
	} else {
		logger.Info("Provisioned credentials saved")
	}
	return nil
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
