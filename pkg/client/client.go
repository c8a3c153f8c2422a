// Package client provides a small HTTP client for the tradfrid daemon,
// used by the tradfrictl CLI and embeddable by other Go programs.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tradfri-tools/tradfrid/internal/description"
)

// Interface defines the methods for interacting with tradfrid.
// Used for testability and mocking in the CLI.
type Interface interface {
	Description(ctx context.Context) (description.Description, error)
	SetBulbPower(ctx context.Context, bulbID string, on bool) error
	SetBulbDimmer(ctx context.Context, bulbID string, value int) error
	SetRoomPower(ctx context.Context, roomID string, on bool) error
	SetRoomDimmer(ctx context.Context, roomID string, value int) error
	SetRoomAmbiance(ctx context.Context, roomID, ambianceID string) error
}

// PartialCommandError is returned when the daemon answers 207 Multi-Status:
// the room command reached some bulbs but not all of them.
type PartialCommandError struct {
	Errors []string
}

func (e *PartialCommandError) Error() string {
	return fmt.Sprintf("partial success: %s", strings.Join(e.Errors, "; "))
}

// Client talks to a tradfrid daemon over HTTP.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
}

// New creates a new client for the daemon at baseURL.
func New(logger *slog.Logger, baseURL string) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Interface = (*Client)(nil)

// get performs a GET against the daemon and decodes an error payload on
// non-2xx responses. Result decoding, if any, is left to the caller.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u := c.baseURL + path
	c.logger.Debug("Sending request", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach daemon: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusMultiStatus:
		var partial struct {
			Errors []string `json:"errors"`
		}
		if err := json.Unmarshal(body, &partial); err != nil {
			return nil, fmt.Errorf("daemon returned 207 with unreadable body: %w", err)
		}
		return nil, &PartialCommandError{Errors: partial.Errors}
	case resp.StatusCode >= 400:
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error != "" {
			return nil, fmt.Errorf("daemon error (%d): %s", resp.StatusCode, errBody.Error)
		}
		return nil, fmt.Errorf("daemon error: %s", resp.Status)
	}

	return body, nil
}

// Description fetches the cached room/bulb/ambiance view.
func (c *Client) Description(ctx context.Context) (description.Description, error) {
	body, err := c.get(ctx, "/description.json")
	if err != nil {
		return nil, err
	}
	var desc description.Description
	if err := json.Unmarshal(body, &desc); err != nil {
		return nil, fmt.Errorf("failed to decode description: %w", err)
	}
	return desc, nil
}

// SetBulbPower switches a single bulb on or off.
func (c *Client) SetBulbPower(ctx context.Context, bulbID string, on bool) error {
	_, err := c.get(ctx, "/bulb/"+onOff(on)+"/-/"+url.PathEscape(bulbID))
	return err
}

// SetBulbDimmer sets a single bulb's dimmer level.
func (c *Client) SetBulbDimmer(ctx context.Context, bulbID string, value int) error {
	_, err := c.get(ctx, "/bulb/dimmer/-/"+url.PathEscape(bulbID)+"/"+strconv.Itoa(value))
	return err
}

// SetRoomPower switches every bulb in a room on or off.
func (c *Client) SetRoomPower(ctx context.Context, roomID string, on bool) error {
	_, err := c.get(ctx, "/room/"+onOff(on)+"/"+url.PathEscape(roomID))
	return err
}

// SetRoomDimmer sets the dimmer level on every bulb in a room.
func (c *Client) SetRoomDimmer(ctx context.Context, roomID string, value int) error {
	_, err := c.get(ctx, "/room/dimmer/"+url.PathEscape(roomID)+"/"+strconv.Itoa(value))
	return err
}

// SetRoomAmbiance activates an ambiance on a room.
func (c *Client) SetRoomAmbiance(ctx context.Context, roomID, ambianceID string) error {
	_, err := c.get(ctx, "/room/ambiance/"+url.PathEscape(roomID)+"/"+url.PathEscape(ambianceID))
	return err
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
