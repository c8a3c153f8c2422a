// Package handlers provides typed Huma request/response structs and handler
// implementations for the tradfrid HTTP API.
package handlers

import (
	"context"
)

// CommandDispatcher is the mutation capability the handlers depend on.
type CommandDispatcher interface {
	SetBulbPower(ctx context.Context, deviceID string, on bool) error
	SetBulbDimmer(ctx context.Context, deviceID string, value int) error
	SetRoomPower(ctx context.Context, roomID string, on bool) error
	SetRoomDimmer(ctx context.Context, roomID string, value int) error
	SetRoomAmbiance(ctx context.Context, roomID, ambianceID string) error
}

// StatusResponse is a simple status response.
type StatusResponse struct {
	Status string `json:"status" doc:"Operation status"`
}

// PartialStatusResponse is returned when some member commands in a room
// fan-out succeed and others fail.
type PartialStatusResponse struct {
	Status string   `json:"status" doc:"Operation status (partial)"`
	Errors []string `json:"errors" doc:"List of errors for failed member commands"`
}
