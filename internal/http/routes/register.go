package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/tradfri-tools/tradfrid/internal/http/mw"
)

// Register registers all API routes with the given Huma API instance.
func Register(api huma.API, h *Handlers) {
	// --- Health ---
	mw.Get(api, "/api/v1/health", h.HealthCheck,
		mw.WithTags("Health"),
		mw.WithSummary("Health check"),
		mw.WithDescription("Returns service health status."),
		mw.WithOperationID("healthCheck"))

	mw.HiddenGet(api, "/healthz", h.HealthCheck)

	// --- Version ---
	mw.Get(api, "/api/v1/version", h.VersionCheck,
		mw.WithTags("Health"),
		mw.WithSummary("Daemon version"),
		mw.WithDescription("Returns the running daemon's version, commit, and build date."),
		mw.WithOperationID("getVersion"))

	// --- Description ---
	mw.Get(api, "/api/v1/description", h.Description.GetDescription,
		mw.WithTags("Description"),
		mw.WithSummary("Get the room/bulb view"),
		mw.WithDescription("Returns the cached description of all rooms, their bulbs and ambiances. Rebuilt from the gateway when older than the cache TTL."),
		mw.WithOperationID("getDescription"))

	// --- Bulbs ---
	mw.Post(api, "/api/v1/bulbs/{id}/state", h.Bulb.SetBulbState,
		mw.WithTags("Bulbs"),
		mw.WithSummary("Set bulb state"),
		mw.WithDescription("Set power and/or dimmer level on a single bulb."),
		mw.WithOperationID("setBulbState"))

	// --- Rooms ---
	mw.Post(api, "/api/v1/rooms/{id}/state", h.Room.SetRoomState,
		mw.WithTags("Rooms"),
		mw.WithSummary("Set room state"),
		mw.WithDescription("Set power/dimmer on every bulb in a room and/or activate an ambiance. Member commands are best-effort; partial failures are reported, not swallowed."),
		mw.WithOperationID("setRoomState"))
}
