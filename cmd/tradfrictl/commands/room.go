package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tradfri-tools/tradfrid/pkg/client"
)

// NewRoomCommand creates the room command
func NewRoomCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Control whole rooms",
	}

	cmd.AddCommand(
		newRoomPowerCommand("on", true),
		newRoomPowerCommand("off", false),
		newRoomDimmerCommand(),
		newRoomAmbianceCommand(),
	)

	return cmd
}

// reportRoomResult prints the outcome of a room command. A partial failure is
// reported bulb by bulb but still exits non-zero.
func reportRoomResult(err error, success string) error {
	if err == nil {
		pterm.Success.Println(success)
		return nil
	}
	var partial *client.PartialCommandError
	if errors.As(err, &partial) {
		pterm.Warning.Println("Some bulbs did not respond:")
		for _, msg := range partial.Errors {
			pterm.Warning.Printf("  %s\n", msg)
		}
	}
	return err
}

func newRoomPowerCommand(use string, on bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <room-id>",
		Short: "Switch every bulb in a room " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromContext(cmd)
			if err != nil {
				return err
			}
			err = c.SetRoomPower(cmd.Context(), args[0], on)
			return reportRoomResult(err, fmt.Sprintf("Room %s switched %s", args[0], use))
		},
	}
}

func newRoomDimmerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dimmer <room-id> <value>",
		Short: "Set the dimmer level (0-255) on every bulb in a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromContext(cmd)
			if err != nil {
				return err
			}
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid dimmer value: %w", err)
			}
			err = c.SetRoomDimmer(cmd.Context(), args[0], value)
			return reportRoomResult(err, fmt.Sprintf("Room %s dimmer set to %d", args[0], value))
		},
	}
}

func newRoomAmbianceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ambiance <room-id> <ambiance-id>",
		Short: "Activate an ambiance on a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromContext(cmd)
			if err != nil {
				return err
			}
			if err := c.SetRoomAmbiance(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to activate ambiance: %w", err)
			}
			pterm.Success.Printf("Ambiance %s activated on room %s\n", args[1], args[0])
			return nil
		},
	}
}
