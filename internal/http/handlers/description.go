package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tradfri-tools/tradfrid/internal/description"
)

// DescriptionSource is the read-model capability the handlers depend on.
type DescriptionSource interface {
	Get(ctx context.Context) (description.Description, error)
}

// --- Get Description ---

// GetDescriptionInput is the input for fetching the room/bulb view.
type GetDescriptionInput struct{}

// GetDescriptionOutput is the output for fetching the room/bulb view.
type GetDescriptionOutput struct {
	Body description.Description
}

// DescriptionHandler implements the read-model HTTP handlers.
type DescriptionHandler struct {
	Cache DescriptionSource
}

// GetDescription returns the cached room/bulb/ambiance view, rebuilding it
// from the gateway when stale.
func (h *DescriptionHandler) GetDescription(ctx context.Context, _ *GetDescriptionInput) (*GetDescriptionOutput, error) {
	desc, err := h.Cache.Get(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway(fmt.Sprintf("Failed to fetch description from gateway: %s", err))
	}
	return &GetDescriptionOutput{Body: desc}, nil
}

// Ensure DescriptionHandler implements the interface at compile time.
var _ DescriptionHandlers = (*DescriptionHandler)(nil)

// DescriptionHandlers defines the interface for read-model operations.
type DescriptionHandlers interface {
	GetDescription(ctx context.Context, input *GetDescriptionInput) (*GetDescriptionOutput, error)
}
