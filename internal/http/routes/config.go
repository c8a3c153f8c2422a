// Package routes provides shared route registration for the tradfrid HTTP
// API, so the server and the OpenAPI output always agree.
package routes

import (
	"github.com/danielgtaylor/huma/v2"
)

// NewHumaConfig creates the shared Huma configuration for the API.
func NewHumaConfig(version string) huma.Config {
	cfg := huma.DefaultConfig("tradfrid API", version)
	cfg.Info.Description = "REST API for controlling IKEA Tradfri lights and rooms through a gateway."

	// Disable $schema field in responses
	cfg.CreateHooks = nil

	cfg.Tags = []*huma.Tag{
		{Name: "Description", Description: "Cached room/bulb/ambiance view"},
		{Name: "Bulbs", Description: "Single bulb control"},
		{Name: "Rooms", Description: "Room-wide control and ambiance selection"},
		{Name: "Health", Description: "Service health"},
	}

	return cfg
}
