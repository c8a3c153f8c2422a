package tradfri

import (
	"encoding/json"
	"strconv"

	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
)

// The gateway speaks a LWM2M-style dialect where every attribute is a numeric
// key. The raw records stay private to this package; callers only ever see
// the typed entities below with string ids.
const (
	epDevices     = "/15001"
	epGroups      = "/15004"
	epMoods       = "/15005"
	epGatewayAuth = "/15011/9063"
)

// Device is a device registered on the gateway. Dimmer and On are only
// meaningful when HasLightControl is true.
type Device struct {
	ID              string
	Name            string
	HasLightControl bool
	On              bool
	Dimmer          int
}

// Group is a named collection of devices sharing mood presets.
type Group struct {
	ID           string
	Name         string
	Members      []string
	ActiveMoodID string
}

// Mood is a lighting preset selectable per group.
type Mood struct {
	ID   string
	Name string
}

type lightRecord struct {
	On     *int `json:"5850,omitempty"`
	Dimmer *int `json:"5851,omitempty"`
}

type deviceRecord struct {
	Name   string        `json:"9001"`
	ID     int           `json:"9003"`
	Lights []lightRecord `json:"3311"`
}

type groupRecord struct {
	Name    string `json:"9001"`
	ID      int    `json:"9003"`
	MoodID  int    `json:"9039"`
	Content struct {
		Link struct {
			IDs []int `json:"9003"`
		} `json:"15002"`
	} `json:"9018"`
}

type moodRecord struct {
	Name string `json:"9001"`
	ID   int    `json:"9003"`
}

func decodeIDList(data []byte) ([]string, error) {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, kerrors.Gatewayf("decoding id list")
	}
	ids := make([]string, len(raw))
	for i, id := range raw {
		ids[i] = strconv.Itoa(id)
	}
	return ids, nil
}

func decodeDevice(data []byte) (*Device, error) {
	var rec deviceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, kerrors.Gatewayf("decoding device record")
	}
	dev := &Device{
		ID:   strconv.Itoa(rec.ID),
		Name: rec.Name,
	}
	if len(rec.Lights) > 0 {
		dev.HasLightControl = true
		light := rec.Lights[0]
		if light.On != nil {
			dev.On = *light.On != 0
		}
		if light.Dimmer != nil {
			dev.Dimmer = *light.Dimmer
		}
	}
	return dev, nil
}

func decodeGroup(data []byte) (*Group, error) {
	var rec groupRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, kerrors.Gatewayf("decoding group record")
	}
	group := &Group{
		ID:      strconv.Itoa(rec.ID),
		Name:    rec.Name,
		Members: make([]string, len(rec.Content.Link.IDs)),
	}
	for i, id := range rec.Content.Link.IDs {
		group.Members[i] = strconv.Itoa(id)
	}
	if rec.MoodID != 0 {
		group.ActiveMoodID = strconv.Itoa(rec.MoodID)
	}
	return group, nil
}

func decodeMood(data []byte) (*Mood, error) {
	var rec moodRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, kerrors.Gatewayf("decoding mood record")
	}
	return &Mood{ID: strconv.Itoa(rec.ID), Name: rec.Name}, nil
}

func powerPayload(on bool) []byte {
	state := 0
	if on {
		state = 1
	}
	data, _ := json.Marshal(map[string][]lightRecord{
		"3311": {{On: &state}},
	})
	return data
}

func dimmerPayload(value int) []byte {
	data, _ := json.Marshal(map[string][]lightRecord{
		"3311": {{Dimmer: &value}},
	})
	return data
}

// moodPayload activates a mood on a group. The gateway wants the power flag
// alongside the mood id, otherwise lights stay off after a scene change.
func moodPayload(moodID int) []byte {
	data, _ := json.Marshal(map[string]int{
		"9039": moodID,
		"5850": 1,
	})
	return data
}

// parseID validates a caller-supplied id and converts it to the numeric form
// the gateway expects.
func parseID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, kerrors.InvalidInputf("id %q is not a gateway id", id)
	}
	return n, nil
}
