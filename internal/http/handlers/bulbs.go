package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
)

// --- Set Bulb State ---

// SetBulbStateInput is the input for setting a bulb's state.
type SetBulbStateInput struct {
	ID   string `path:"id" doc:"Bulb identifier"`
	Body struct {
		On     *bool `json:"on,omitempty" doc:"Power state"`
		Dimmer *int  `json:"dimmer,omitempty" doc:"Dimmer level (0-255)"`
	}
}

// SetBulbStateOutput is the output for setting a bulb's state.
type SetBulbStateOutput struct {
	Body StatusResponse
}

// BulbHandler implements bulb-related HTTP handlers.
type BulbHandler struct {
	Dispatcher CommandDispatcher
}

// SetBulbState sets one or more properties on a bulb.
func (h *BulbHandler) SetBulbState(ctx context.Context, input *SetBulbStateInput) (*SetBulbStateOutput, error) {
	if input.Body.On == nil && input.Body.Dimmer == nil {
		return nil, huma.Error400BadRequest("At least one of 'on' or 'dimmer' must be set")
	}

	if input.Body.On != nil {
		if err := h.Dispatcher.SetBulbPower(ctx, input.ID, *input.Body.On); err != nil {
			return nil, mapCommandError(err)
		}
	}
	if input.Body.Dimmer != nil {
		if err := h.Dispatcher.SetBulbDimmer(ctx, input.ID, *input.Body.Dimmer); err != nil {
			return nil, mapCommandError(err)
		}
	}

	return &SetBulbStateOutput{
		Body: StatusResponse{Status: "ok"},
	}, nil
}

// mapCommandError converts dispatcher errors to Huma status errors.
func mapCommandError(err error) error {
	switch {
	case kerrors.IsDeviceNotFound(err) || kerrors.IsGroupNotFound(err):
		return huma.Error404NotFound(fmt.Sprintf("Not found: %s", err))
	case kerrors.IsInvalidInput(err):
		return huma.Error400BadRequest(fmt.Sprintf("Invalid input: %s", err))
	default:
		return huma.Error502BadGateway(fmt.Sprintf("Gateway command failed: %s", err))
	}
}

// Ensure BulbHandler implements the interface at compile time.
var _ BulbHandlers = (*BulbHandler)(nil)

// BulbHandlers defines the interface for bulb operations.
type BulbHandlers interface {
	SetBulbState(ctx context.Context, input *SetBulbStateInput) (*SetBulbStateOutput, error)
}
