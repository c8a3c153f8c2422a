package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tradfri-tools/tradfrid/pkg/client"
)

// loggerContextKey is a custom type for context keys to avoid collisions.
type loggerContextKey struct{}

// NewRootCommand creates the root command
func NewRootCommand(logger *slog.Logger, version, commit, buildDate string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tradfrictl",
		Short: "Control Tradfri lights through a tradfrid daemon",
	}

	// Add global flags
	cmd.PersistentFlags().String("server", "http://127.0.0.1:8080", "Base URL of the tradfrid daemon")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	// The client depends on the --server flag, so it is built after flag
	// parsing and handed to subcommands through the context.
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		server, err := c.Flags().GetString("server")
		if err != nil {
			return fmt.Errorf("failed to read server flag: %w", err)
		}
		ctx := c.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if ctx.Value(ClientContextKey) == nil {
			ctx = context.WithValue(ctx, ClientContextKey, client.New(logger, server))
		}
		c.SetContext(ctx)
		return nil
	}

	// Add commands
	cmd.AddCommand(newVersionCommand(version, commit, buildDate))
	cmd.AddCommand(NewDescribeCommand())
	cmd.AddCommand(NewBulbCommand())
	cmd.AddCommand(NewRoomCommand())

	if logger != nil {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		cmd.SetContext(context.WithValue(parent, loggerContextKey{}, logger))
	}

	return cmd
}

// newVersionCommand creates the version command
func newVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Client:\n")
			fmt.Printf("  Version:    %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}

// clientFromContext retrieves the daemon client stored by the root command.
func clientFromContext(cmd *cobra.Command) (client.Interface, error) {
	c, ok := cmd.Context().Value(ClientContextKey).(client.Interface)
	if !ok {
		return nil, fmt.Errorf("no daemon client in context")
	}
	return c, nil
}
