package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tradfri-tools/tradfrid/internal/command"
)

// --- Set Room State ---

// SetRoomStateInput is the input for setting state on a whole room.
type SetRoomStateInput struct {
	ID   string `path:"id" doc:"Room identifier"`
	Body struct {
		On       *bool   `json:"on,omitempty" doc:"Power state for all bulbs in the room"`
		Dimmer   *int    `json:"dimmer,omitempty" doc:"Dimmer level (0-255) for all bulbs in the room"`
		Ambiance *string `json:"ambiance,omitempty" doc:"Ambiance (mood) id to activate on the room"`
	}
}

// SetRoomStateOutput is the output for setting room state.
type SetRoomStateOutput struct {
	Body StatusResponse
}

// RoomHandler implements room-related HTTP handlers.
type RoomHandler struct {
	Dispatcher CommandDispatcher
}

// SetRoomState applies power/dimmer to every bulb in the room and/or
// activates an ambiance. Partial fan-out failures surface as a 502 with the
// per-device errors listed; the legacy routes answer 207 for the same case.
func (h *RoomHandler) SetRoomState(ctx context.Context, input *SetRoomStateInput) (*SetRoomStateOutput, error) {
	if input.Body.On == nil && input.Body.Dimmer == nil && input.Body.Ambiance == nil {
		return nil, huma.Error400BadRequest("At least one of 'on', 'dimmer' or 'ambiance' must be set")
	}

	if input.Body.On != nil {
		if err := h.Dispatcher.SetRoomPower(ctx, input.ID, *input.Body.On); err != nil {
			return nil, mapRoomError(err)
		}
	}
	if input.Body.Dimmer != nil {
		if err := h.Dispatcher.SetRoomDimmer(ctx, input.ID, *input.Body.Dimmer); err != nil {
			return nil, mapRoomError(err)
		}
	}
	if input.Body.Ambiance != nil {
		if err := h.Dispatcher.SetRoomAmbiance(ctx, input.ID, *input.Body.Ambiance); err != nil {
			return nil, mapRoomError(err)
		}
	}

	return &SetRoomStateOutput{
		Body: StatusResponse{Status: "ok"},
	}, nil
}

func mapRoomError(err error) error {
	var partial *command.PartialError
	if errors.As(err, &partial) {
		msgs := make([]string, len(partial.Failures))
		for i, f := range partial.Failures {
			msgs[i] = "device " + f.DeviceID + ": " + f.Message
		}
		return huma.Error502BadGateway("Some member commands failed", errorsToDetails(msgs)...)
	}
	return mapCommandError(err)
}

func errorsToDetails(msgs []string) []error {
	details := make([]error, len(msgs))
	for i, msg := range msgs {
		details[i] = errors.New(msg)
	}
	return details
}

// Ensure RoomHandler implements the interface at compile time.
var _ RoomHandlers = (*RoomHandler)(nil)

// RoomHandlers defines the interface for room operations.
type RoomHandlers interface {
	SetRoomState(ctx context.Context, input *SetRoomStateInput) (*SetRoomStateOutput, error)
}
