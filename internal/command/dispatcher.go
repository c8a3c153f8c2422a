// Package command turns bulb- and room-level intents into gateway commands
// and keeps the description cache honest about them.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
	"github.com/tradfri-tools/tradfrid/pkg/tradfri"
)

// Invalidator is the cache dependency of the dispatcher.
type Invalidator interface {
	Invalidate()
}

// DeviceError records one failed member command during a room fan-out.
type DeviceError struct {
	DeviceID string `json:"device_id"`
	Message  string `json:"error"`

	err error
}

// PartialError reports a best-effort fan-out where some members failed.
// Remaining members were still attempted and the cache was invalidated.
type PartialError struct {
	RoomID   string
	Failures []DeviceError
}

func (e *PartialError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = fmt.Sprintf("device %s: %s", f.DeviceID, f.Message)
	}
	return fmt.Sprintf("room %s: %d member command(s) failed: %s", e.RoomID, len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap exposes the member errors for errors.Is checks.
func (e *PartialError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.err
	}
	return errs
}

// Dispatcher executes mutations against the gateway. It holds no lock of its
// own; concurrent mutations race at the gateway (last write wins) and the
// cache invalidation afterwards keeps readers consistent.
type Dispatcher struct {
	client tradfri.Client
	cache  Invalidator
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over the given gateway client and cache.
func NewDispatcher(client tradfri.Client, cache Invalidator, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{client: client, cache: cache, logger: logger}
}

// SetBulbPower switches a single bulb on or off and invalidates the cache.
func (d *Dispatcher) SetBulbPower(ctx context.Context, deviceID string, on bool) error {
	if err := d.setBulbPower(ctx, deviceID, on); err != nil {
		return err
	}
	d.cache.Invalidate()
	return nil
}

// SetBulbDimmer sets a single bulb's dimmer level and invalidates the cache.
func (d *Dispatcher) SetBulbDimmer(ctx context.Context, deviceID string, value int) error {
	if err := d.setBulbDimmer(ctx, deviceID, value); err != nil {
		return err
	}
	d.cache.Invalidate()
	return nil
}

func (d *Dispatcher) setBulbPower(ctx context.Context, deviceID string, on bool) error {
	dev, err := d.client.GetDevice(ctx, deviceID)
	if err != nil {
		return err
	}
	if !dev.HasLightControl {
		return kerrors.InvalidInputf("device %s has no light control", deviceID)
	}
	return d.client.SetDevicePower(ctx, dev.ID, on)
}

func (d *Dispatcher) setBulbDimmer(ctx context.Context, deviceID string, value int) error {
	if value < 0 || value > 255 {
		return kerrors.InvalidInputf("dimmer value %d out of range 0-255", value)
	}
	dev, err := d.client.GetDevice(ctx, deviceID)
	if err != nil {
		return err
	}
	if !dev.HasLightControl {
		return kerrors.InvalidInputf("device %s has no light control", deviceID)
	}
	return d.client.SetDeviceDimmer(ctx, dev.ID, value)
}

// SetRoomPower switches every light-capable member of a room on or off.
// Execution is best-effort: one member's failure does not stop the rest, and
// collected failures come back as a *PartialError. The cache is invalidated
// exactly once, after all members were attempted.
func (d *Dispatcher) SetRoomPower(ctx context.Context, roomID string, on bool) error {
	group, err := d.client.GetGroup(ctx, roomID)
	if err != nil {
		return err
	}
	failures := d.fanOut(ctx, group, func(ctx context.Context, id string) error {
		return d.client.SetDevicePower(ctx, id, on)
	})
	d.cache.Invalidate()
	if len(failures) > 0 {
		return &PartialError{RoomID: roomID, Failures: failures}
	}
	return nil
}

// SetRoomDimmer sets the dimmer level on every light-capable member of a
// room, with the same best-effort semantics as SetRoomPower.
func (d *Dispatcher) SetRoomDimmer(ctx context.Context, roomID string, value int) error {
	if value < 0 || value > 255 {
		return kerrors.InvalidInputf("dimmer value %d out of range 0-255", value)
	}
	group, err := d.client.GetGroup(ctx, roomID)
	if err != nil {
		return err
	}
	failures := d.fanOut(ctx, group, func(ctx context.Context, id string) error {
		return d.client.SetDeviceDimmer(ctx, id, value)
	})
	d.cache.Invalidate()
	if len(failures) > 0 {
		return &PartialError{RoomID: roomID, Failures: failures}
	}
	return nil
}

// SetRoomAmbiance activates a mood on a room. This is a single group-level
// gateway command, no fan-out.
func (d *Dispatcher) SetRoomAmbiance(ctx context.Context, roomID, ambianceID string) error {
	if _, err := d.client.GetGroup(ctx, roomID); err != nil {
		return err
	}
	if err := d.client.ActivateMood(ctx, roomID, ambianceID); err != nil {
		return err
	}
	d.cache.Invalidate()
	return nil
}

// fanOut applies op to every member of the group that has light control.
// Members the gateway no longer resolves are skipped, matching the builder's
// tolerance for dangling member ids; every other failure is collected.
func (d *Dispatcher) fanOut(ctx context.Context, group *tradfri.Group, op func(context.Context, string) error) []DeviceError {
	var failures []DeviceError
	for _, memberID := range group.Members {
		dev, err := d.client.GetDevice(ctx, memberID)
		if err != nil {
			if kerrors.IsDeviceNotFound(err) {
				d.logger.Debug("skipping unresolvable group member", "group", group.ID, "member", memberID)
				continue
			}
			failures = append(failures, DeviceError{DeviceID: memberID, Message: err.Error(), err: err})
			continue
		}
		if !dev.HasLightControl {
			continue
		}
		if err := op(ctx, dev.ID); err != nil {
			d.logger.Warn("member command failed", "group", group.ID, "device", dev.ID, "error", err)
			failures = append(failures, DeviceError{DeviceID: dev.ID, Message: err.Error(), err: err})
		}
	}
	return failures
}
