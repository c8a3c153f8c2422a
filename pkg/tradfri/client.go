package tradfri

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
)

// Client is the gateway capability the rest of the daemon depends on.
// GatewayClient implements it against a real gateway; tests substitute mocks.
type Client interface {
	GetDevices(ctx context.Context) ([]Device, error)
	GetDevice(ctx context.Context, id string) (*Device, error)
	GetGroups(ctx context.Context) ([]Group, error)
	GetGroup(ctx context.Context, id string) (*Group, error)
	GetMoods(ctx context.Context, groupID string) ([]Mood, error)
	GetActiveMood(ctx context.Context, groupID string) (*Mood, error)
	SetDevicePower(ctx context.Context, id string, on bool) error
	SetDeviceDimmer(ctx context.Context, id string, value int) error
	ActivateMood(ctx context.Context, groupID, moodID string) error
}

// GetDevices lists every device registered on the gateway. The gateway only
// hands out ids on the collection endpoint, so each device is fetched
// individually afterwards.
func (c *GatewayClient) GetDevices(ctx context.Context) ([]Device, error) {
	body, err := c.get(ctx, epDevices)
	if err != nil {
		return nil, kerrors.WrapErrorf(err, "listing devices")
	}
	ids, err := decodeIDList(body)
	if err != nil {
		return nil, err
	}
	devices := make([]Device, 0, len(ids))
	for _, id := range ids {
		dev, err := c.GetDevice(ctx, id)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *dev)
	}
	return devices, nil
}

// GetDevice fetches a single device by id.
func (c *GatewayClient) GetDevice(ctx context.Context, id string) (*Device, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, fmt.Sprintf("%s/%d", epDevices, n))
	if err != nil {
		if isCoapNotFound(err) {
			return nil, kerrors.DeviceNotFoundf("device %s", id)
		}
		return nil, kerrors.WrapErrorf(err, "fetching device %s", id)
	}
	return decodeDevice(body)
}

// GetGroups lists every group on the gateway, in the gateway's own order.
func (c *GatewayClient) GetGroups(ctx context.Context) ([]Group, error) {
	body, err := c.get(ctx, epGroups)
	if err != nil {
		return nil, kerrors.WrapErrorf(err, "listing groups")
	}
	ids, err := decodeIDList(body)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, 0, len(ids))
	for _, id := range ids {
		group, err := c.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

// GetGroup fetches a single group by id.
func (c *GatewayClient) GetGroup(ctx context.Context, id string) (*Group, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, fmt.Sprintf("%s/%d", epGroups, n))
	if err != nil {
		if isCoapNotFound(err) {
			return nil, kerrors.GroupNotFoundf("group %s", id)
		}
		return nil, kerrors.WrapErrorf(err, "fetching group %s", id)
	}
	return decodeGroup(body)
}

// GetMoods lists the mood catalog of a group.
func (c *GatewayClient) GetMoods(ctx context.Context, groupID string) ([]Mood, error) {
	n, err := parseID(groupID)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, fmt.Sprintf("%s/%d", epMoods, n))
	if err != nil {
		if isCoapNotFound(err) {
			return nil, kerrors.GroupNotFoundf("moods for group %s", groupID)
		}
		return nil, kerrors.WrapErrorf(err, "listing moods for group %s", groupID)
	}
	ids, err := decodeIDList(body)
	if err != nil {
		return nil, err
	}
	moods := make([]Mood, 0, len(ids))
	for _, id := range ids {
		moodID, err := parseID(id)
		if err != nil {
			return nil, err
		}
		moodBody, err := c.get(ctx, fmt.Sprintf("%s/%d/%d", epMoods, n, moodID))
		if err != nil {
			return nil, kerrors.WrapErrorf(err, "fetching mood %s of group %s", id, groupID)
		}
		mood, err := decodeMood(moodBody)
		if err != nil {
			return nil, err
		}
		moods = append(moods, *mood)
	}
	return moods, nil
}

// GetActiveMood fetches the mood currently active on a group.
func (c *GatewayClient) GetActiveMood(ctx context.Context, groupID string) (*Mood, error) {
	group, err := c.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.ActiveMoodID == "" {
		return nil, kerrors.Gatewayf("group %s reports no active mood", groupID)
	}
	gid, _ := parseID(groupID)
	mid, err := parseID(group.ActiveMoodID)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, fmt.Sprintf("%s/%d/%d", epMoods, gid, mid))
	if err != nil {
		return nil, kerrors.WrapErrorf(err, "fetching active mood of group %s", groupID)
	}
	return decodeMood(body)
}

// SetDevicePower switches a light on or off.
func (c *GatewayClient) SetDevicePower(ctx context.Context, id string, on bool) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	c.logger.Debug("setting device power", "device", id, "on", on)
	if err := c.put(ctx, fmt.Sprintf("%s/%d", epDevices, n), powerPayload(on)); err != nil {
		if isCoapNotFound(err) {
			return kerrors.DeviceNotFoundf("device %s", id)
		}
		return kerrors.WrapErrorf(err, "setting power on device %s", id)
	}
	return nil
}

// SetDeviceDimmer sets a light's dimmer level (0-255).
func (c *GatewayClient) SetDeviceDimmer(ctx context.Context, id string, value int) error {
	if value < 0 || value > 255 {
		return kerrors.InvalidInputf("dimmer value %d out of range 0-255", value)
	}
	n, err := parseID(id)
	if err != nil {
		return err
	}
	c.logger.Debug("setting device dimmer", "device", id, "dimmer", value)
	if err := c.put(ctx, fmt.Sprintf("%s/%d", epDevices, n), dimmerPayload(value)); err != nil {
		if isCoapNotFound(err) {
			return kerrors.DeviceNotFoundf("device %s", id)
		}
		return kerrors.WrapErrorf(err, "setting dimmer on device %s", id)
	}
	return nil
}

// ActivateMood activates a mood on a group. This is a single group-level
// command; the gateway fans it out to members itself.
func (c *GatewayClient) ActivateMood(ctx context.Context, groupID, moodID string) error {
	gid, err := parseID(groupID)
	if err != nil {
		return err
	}
	mid, err := parseID(moodID)
	if err != nil {
		return err
	}
	c.logger.Debug("activating mood", "group", groupID, "mood", moodID)
	if err := c.put(ctx, fmt.Sprintf("%s/%d", epGroups, gid), moodPayload(mid)); err != nil {
		if isCoapNotFound(err) {
			return kerrors.GroupNotFoundf("group %s", groupID)
		}
		return kerrors.WrapErrorf(err, "activating mood %s on group %s", moodID, groupID)
	}
	return nil
}

var _ Client = (*GatewayClient)(nil)

// NewGatewayClient creates a client for a provisioned gateway. The connection
// is dialled lazily on first use and redialled after transport errors.
func NewGatewayClient(addr, identity, psk string, timeout time.Duration, logger *slog.Logger) *GatewayClient {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GatewayClient{
		addr:     addr,
		identity: identity,
		psk:      psk,
		timeout:  timeout,
		logger:   logger,
	}
}
