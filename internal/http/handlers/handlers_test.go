package handlers

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradfri-tools/tradfrid/internal/command"
	"github.com/tradfri-tools/tradfrid/internal/description"
	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
)

// --- Mock dispatcher ---

type call struct {
	op     string
	id     string
	on     bool
	dimmer int
	mood   string
}

type mockDispatcher struct {
	calls []call
	err   error
}

func (m *mockDispatcher) SetBulbPower(_ context.Context, deviceID string, on bool) error {
	m.calls = append(m.calls, call{op: "bulb_power", id: deviceID, on: on})
	return m.err
}

func (m *mockDispatcher) SetBulbDimmer(_ context.Context, deviceID string, value int) error {
	m.calls = append(m.calls, call{op: "bulb_dimmer", id: deviceID, dimmer: value})
	return m.err
}

func (m *mockDispatcher) SetRoomPower(_ context.Context, roomID string, on bool) error {
	m.calls = append(m.calls, call{op: "room_power", id: roomID, on: on})
	return m.err
}

func (m *mockDispatcher) SetRoomDimmer(_ context.Context, roomID string, value int) error {
	m.calls = append(m.calls, call{op: "room_dimmer", id: roomID, dimmer: value})
	return m.err
}

func (m *mockDispatcher) SetRoomAmbiance(_ context.Context, roomID, ambianceID string) error {
	m.calls = append(m.calls, call{op: "room_ambiance", id: roomID, mood: ambianceID})
	return m.err
}

var _ CommandDispatcher = (*mockDispatcher)(nil)

// --- Mock description source ---

type mockSource struct {
	desc description.Description
	err  error
}

func (m *mockSource) Get(_ context.Context) (description.Description, error) {
	return m.desc, m.err
}

var _ DescriptionSource = (*mockSource)(nil)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

// === Health Handler Tests ===

func TestHealthCheck(t *testing.T) {
	out, err := HealthCheck(context.Background(), &HealthInput{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Body.Status)
}

func TestVersionCheck(t *testing.T) {
	handler := NewVersionCheck("1.2.3", "abc123", "2026-01-01")
	out, err := handler(context.Background(), &VersionInput{})
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", out.Body.Version)
	assert.Equal(t, "abc123", out.Body.Commit)
	assert.Equal(t, "2026-01-01", out.Body.BuildDate)
}

// === Description Handler Tests ===

func TestDescriptionHandler_GetDescription(t *testing.T) {
	desc := description.Description{
		{Name: "Living room", ID: "131073", Bulbs: []description.Bulb{}, Ambiances: []description.Ambiance{}},
	}
	handler := &DescriptionHandler{Cache: &mockSource{desc: desc}}

	out, err := handler.GetDescription(context.Background(), &GetDescriptionInput{})
	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.Equal(t, "Living room", out.Body[0].Name)
}

func TestDescriptionHandler_GetDescription_GatewayError(t *testing.T) {
	handler := &DescriptionHandler{Cache: &mockSource{err: kerrors.Gatewayf("gateway down")}}

	_, err := handler.GetDescription(context.Background(), &GetDescriptionInput{})
	assert.Equal(t, 502, statusOf(t, err))
}

// === Bulb Handler Tests ===

func bulbBody(on *bool, dimmer *int) SetBulbStateInput {
	in := SetBulbStateInput{ID: "65537"}
	in.Body.On = on
	in.Body.Dimmer = dimmer
	return in
}

func TestBulbHandler_SetBulbState(t *testing.T) {
	dispatcher := &mockDispatcher{}
	handler := &BulbHandler{Dispatcher: dispatcher}

	on := true
	dimmer := 128
	in := bulbBody(&on, &dimmer)
	out, err := handler.SetBulbState(context.Background(), &in)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Body.Status)
	require.Len(t, dispatcher.calls, 2)
	assert.Equal(t, call{op: "bulb_power", id: "65537", on: true}, dispatcher.calls[0])
	assert.Equal(t, call{op: "bulb_dimmer", id: "65537", dimmer: 128}, dispatcher.calls[1])
}

func TestBulbHandler_SetBulbState_EmptyBody(t *testing.T) {
	handler := &BulbHandler{Dispatcher: &mockDispatcher{}}

	in := bulbBody(nil, nil)
	_, err := handler.SetBulbState(context.Background(), &in)
	assert.Equal(t, 400, statusOf(t, err))
}

func TestBulbHandler_SetBulbState_ErrorMapping(t *testing.T) {
	on := true
	cases := map[string]struct {
		err  error
		want int
	}{
		"not found":     {kerrors.DeviceNotFoundf("device 65537"), 404},
		"invalid input": {kerrors.InvalidInputf("no light control"), 400},
		"gateway":       {kerrors.Gatewayf("unreachable"), 502},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			handler := &BulbHandler{Dispatcher: &mockDispatcher{err: tc.err}}
			in := bulbBody(&on, nil)
			_, err := handler.SetBulbState(context.Background(), &in)
			assert.Equal(t, tc.want, statusOf(t, err))
		})
	}
}

// === Room Handler Tests ===

func TestRoomHandler_SetRoomState(t *testing.T) {
	dispatcher := &mockDispatcher{}
	handler := &RoomHandler{Dispatcher: dispatcher}

	on := false
	mood := "196609"
	in := SetRoomStateInput{ID: "131073"}
	in.Body.On = &on
	in.Body.Ambiance = &mood
	out, err := handler.SetRoomState(context.Background(), &in)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Body.Status)
	require.Len(t, dispatcher.calls, 2)
	assert.Equal(t, call{op: "room_power", id: "131073", on: false}, dispatcher.calls[0])
	assert.Equal(t, call{op: "room_ambiance", id: "131073", mood: "196609"}, dispatcher.calls[1])
}

func TestRoomHandler_SetRoomState_EmptyBody(t *testing.T) {
	handler := &RoomHandler{Dispatcher: &mockDispatcher{}}

	in := SetRoomStateInput{ID: "131073"}
	_, err := handler.SetRoomState(context.Background(), &in)
	assert.Equal(t, 400, statusOf(t, err))
}

func TestRoomHandler_SetRoomState_PartialFailure(t *testing.T) {
	partial := &command.PartialError{
		RoomID: "131073",
		Failures: []command.DeviceError{
			{DeviceID: "65539", Message: "device 65539 unreachable"},
		},
	}
	handler := &RoomHandler{Dispatcher: &mockDispatcher{err: partial}}

	on := true
	in := SetRoomStateInput{ID: "131073"}
	in.Body.On = &on
	_, err := handler.SetRoomState(context.Background(), &in)
	assert.Equal(t, 502, statusOf(t, err))
	assert.Contains(t, err.Error(), "Some member commands failed")
}
