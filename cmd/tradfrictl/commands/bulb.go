package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewBulbCommand creates the bulb command
func NewBulbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulb",
		Short: "Control individual bulbs",
	}

	cmd.AddCommand(
		newBulbPowerCommand("on", true),
		newBulbPowerCommand("off", false),
		newBulbDimmerCommand(),
	)

	return cmd
}

func newBulbPowerCommand(use string, on bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <bulb-id>",
		Short: "Switch a bulb " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromContext(cmd)
			if err != nil {
				return err
			}
			if err := c.SetBulbPower(cmd.Context(), args[0], on); err != nil {
				return fmt.Errorf("failed to switch bulb %s: %w", use, err)
			}
			pterm.Success.Printf("Bulb %s switched %s\n", args[0], use)
			return nil
		},
	}
}

func newBulbDimmerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dimmer <bulb-id> <value>",
		Short: "Set a bulb's dimmer level (0-255)",
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
			if err := c.SetBulbDimmer(cmd.Context(), args[0], value); err != nil {
				return fmt.Errorf("failed to set bulb dimmer: %w", err)
			}
			pterm.Success.Printf("Bulb %s dimmer set to %d\n", args[0], value)
			return nil
		},
	}
}
