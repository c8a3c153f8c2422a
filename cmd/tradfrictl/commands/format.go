package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/tradfri-tools/tradfrid/internal/description"
)

// RoomTableData returns the table data for a room, with bold name and id.
func RoomTableData(room description.Room) pterm.TableData {
	ambiances := make([]string, len(room.Ambiances))
	for i, a := range room.Ambiances {
		name := a.Name
		if a.ID == room.AmbianceActive {
			name = pterm.Bold.Sprint(name + " (active)")
		}
		ambiances[i] = fmt.Sprintf("%s [%s]", name, a.ID)
	}

	return pterm.TableData{
		[]string{pterm.Bold.Sprint("Room"), pterm.Bold.Sprint(room.Name)},
		[]string{"ID", room.ID},
		[]string{"Bulbs", strconv.Itoa(len(room.Bulbs))},
		[]string{"Ambiances", strings.Join(ambiances, ", ")},
	}
}

// BulbTableData returns the table rows for the bulbs of a room.
func BulbTableData(bulbs []description.Bulb) pterm.TableData {
	table := pterm.TableData{
		[]string{"ID", "Name", "On", "Dimmer"},
	}
	for _, b := range bulbs {
		table = append(table, []string{b.ID, b.Name, fmt.Sprintf("%v", b.State), strconv.Itoa(b.Dimmer)})
	}
	return table
}

// BulbParseable returns the parseable key=value string for a bulb.
func BulbParseable(roomID string, bulb description.Bulb) string {
	return fmt.Sprintf("room=%q id=%q name=%q state=%v dimmer=%d",
		roomID, bulb.ID, bulb.Name, bulb.State, bulb.Dimmer)
}

// RenderJSON writes the description as indented JSON.
func RenderJSON(desc description.Description) error {
	out, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode description as JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// RenderYAML writes the description as YAML. It goes through the JSON
// representation so the field names match the wire contract.
func RenderYAML(desc description.Description) error {
	raw, err := json.Marshal(desc)
	if err != nil {
		return fmt.Errorf("failed to encode description: %w", err)
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("failed to decode description: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to encode description as YAML: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
