package routes

import (
	"context"

	"github.com/tradfri-tools/tradfrid/internal/http/handlers"
)

// Handlers aggregates all handler interfaces for route registration.
type Handlers struct {
	HealthCheck  func(ctx context.Context, input *handlers.HealthInput) (*handlers.HealthOutput, error)
	VersionCheck func(ctx context.Context, input *handlers.VersionInput) (*handlers.VersionOutput, error)
	Description  handlers.DescriptionHandlers
	Bulb         handlers.BulbHandlers
	Room         handlers.RoomHandlers
}
