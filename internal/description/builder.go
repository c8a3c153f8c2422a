package description

import (
	"context"
	"log/slog"

	"github.com/tradfri-tools/tradfrid/pkg/tradfri"
)

// Builder assembles a Description from independent gateway queries. It holds
// no state of its own; every Build produces a fresh tree.
type Builder struct {
	client tradfri.Client
	logger *slog.Logger
}

// NewBuilder creates a builder over the given gateway client.
func NewBuilder(client tradfri.Client, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{client: client, logger: logger}
}

// Build fetches devices, groups and per-group moods and assembles the view.
// Any failed sub-fetch aborts the whole build; a partial Description is never
// returned.
func (b *Builder) Build(ctx context.Context) (Description, error) {
	devices, err := b.client.GetDevices(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]tradfri.Device, len(devices))
	for _, dev := range devices {
		index[dev.ID] = dev
	}

	groups, err := b.client.GetGroups(ctx)
	if err != nil {
		return nil, err
	}

	result := make(Description, 0, len(groups))
	for _, group := range groups {
		active, err := b.client.GetActiveMood(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		moods, err := b.client.GetMoods(ctx, group.ID)
		if err != nil {
			return nil, err
		}

		room := Room{
			Name:           group.Name,
			Bulbs:          []Bulb{},
			Ambiances:      make([]Ambiance, 0, len(moods)),
			ID:             group.ID,
			AmbianceActive: active.ID,
		}
		for _, mood := range moods {
			room.Ambiances = append(room.Ambiances, Ambiance{Name: mood.Name, ID: mood.ID})
		}

		for _, memberID := range group.Members {
			dev, ok := index[memberID]
			if !ok {
				// The gateway keeps dangling member ids around after a device
				// is removed; they are not an error.
				b.logger.Debug("group member missing from device index", "group", group.ID, "member", memberID)
				continue
			}
			if !dev.HasLightControl {
				continue
			}
			room.Bulbs = append(room.Bulbs, Bulb{
				Name:   dev.Name,
				Dimmer: dev.Dimmer,
				State:  dev.On,
				ID:     dev.ID,
			})
		}

		result = append(result, room)
	}

	b.logger.Debug("built description", "rooms", len(result), "devices", len(devices))
	return result, nil
}
