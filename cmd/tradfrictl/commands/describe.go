package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewDescribeCommand creates the describe command
func NewDescribeCommand() *cobra.Command {
	var output string
	var parseable bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show all rooms, bulbs and ambiances",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromContext(cmd)
			if err != nil {
				return err
			}
			desc, err := c.Description(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get description: %w", err)
			}

			if parseable {
				for _, room := range desc {
					for _, bulb := range room.Bulbs {
						fmt.Println(BulbParseable(room.ID, bulb))
					}
				}
				return nil
			}

			switch output {
			case "json":
				return RenderJSON(desc)
			case "yaml":
				return RenderYAML(desc)
			case "table":
				if len(desc) == 0 {
					pterm.Info.Println("No rooms found")
					return nil
				}
				for _, room := range desc {
					pterm.DefaultTable.WithData(RoomTableData(room)).Render()
					if len(room.Bulbs) > 0 {
						pterm.DefaultTable.WithHasHeader().WithData(BulbTableData(room.Bulbs)).Render()
					}
					pterm.Println() // Add a blank line between rooms
				}
				return nil
			default:
				return fmt.Errorf("invalid output format: %s. Must be one of: table, json, yaml", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&parseable, "parseable", "p", false, "Output bulbs in parseable format (key=value)")
	return cmd
}
