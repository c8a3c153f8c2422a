package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradfri-tools/tradfrid/internal/description"
	"github.com/tradfri-tools/tradfrid/pkg/client"
)

// captureStdout captures stdout during the execution of f, disables pterm
// color, and strips ANSI codes from the output.
func captureStdout(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	oldPrintColor := pterm.PrintColor
	oldOutput := pterm.Output
	oldDefaultTableWriter := pterm.DefaultTable.Writer
	oldSuccessWriter := pterm.Success.Writer
	oldWarningWriter := pterm.Warning.Writer
	oldErrorWriter := pterm.Error.Writer
	oldInfoWriter := pterm.Info.Writer

	pterm.PrintColor = false
	pterm.Output = true
	pterm.DefaultTable.Writer = w
	pterm.Success.Writer = w
	pterm.Warning.Writer = w
	pterm.Error.Writer = w
	pterm.Info.Writer = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = oldStdout

	pterm.PrintColor = oldPrintColor
	pterm.Output = oldOutput
	pterm.DefaultTable.Writer = oldDefaultTableWriter
	pterm.Success.Writer = oldSuccessWriter
	pterm.Warning.Writer = oldWarningWriter
	pterm.Error.Writer = oldErrorWriter
	pterm.Info.Writer = oldInfoWriter

	out := <-outC

	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(out, "")
}

// --- Mock daemon client ---

type mockCall struct {
	op     string
	id     string
	on     bool
	dimmer int
	mood   string
}

type mockClient struct {
	desc  description.Description
	calls []mockCall
	err   error
}

func (m *mockClient) Description(_ context.Context) (description.Description, error) {
	return m.desc, m.err
}

func (m *mockClient) SetBulbPower(_ context.Context, bulbID string, on bool) error {
	m.calls = append(m.calls, mockCall{op: "bulb_power", id: bulbID, on: on})
	return m.err
}

func (m *mockClient) SetBulbDimmer(_ context.Context, bulbID string, value int) error {
	m.calls = append(m.calls, mockCall{op: "bulb_dimmer", id: bulbID, dimmer: value})
	return m.err
}

func (m *mockClient) SetRoomPower(_ context.Context, roomID string, on bool) error {
	m.calls = append(m.calls, mockCall{op: "room_power", id: roomID, on: on})
	return m.err
}

func (m *mockClient) SetRoomDimmer(_ context.Context, roomID string, value int) error {
	m.calls = append(m.calls, mockCall{op: "room_dimmer", id: roomID, dimmer: value})
	return m.err
}

func (m *mockClient) SetRoomAmbiance(_ context.Context, roomID, ambianceID string) error {
	m.calls = append(m.calls, mockCall{op: "room_ambiance", id: roomID, mood: ambianceID})
	return m.err
}

var _ client.Interface = (*mockClient)(nil)

func runCommand(t *testing.T, mock *mockClient, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(slog.New(slog.DiscardHandler), "test", "none", "today")
	root.SetArgs(args)
	ctx := context.WithValue(context.Background(), ClientContextKey, mock)

	var err error
	out := captureStdout(func() {
		err = root.ExecuteContext(ctx)
	})
	return out, err
}

func testDescription() description.Description {
	return description.Description{
		{
			Name:           "Living room",
			ID:             "131073",
			AmbianceActive: "196608",
			Bulbs: []description.Bulb{
				{Name: "Desk lamp", Dimmer: 10, State: true, ID: "65537"},
			},
			Ambiances: []description.Ambiance{
				{Name: "Relax", ID: "196608"},
				{Name: "Focus", ID: "196609"},
			},
		},
	}
}

func TestDescribeTable(t *testing.T) {
	out, err := runCommand(t, &mockClient{desc: testDescription()}, "describe")
	require.NoError(t, err)
	assert.Contains(t, out, "Living room")
	assert.Contains(t, out, "Desk lamp")
	assert.Contains(t, out, "Relax (active)")
}

func TestDescribeParseable(t *testing.T) {
	out, err := runCommand(t, &mockClient{desc: testDescription()}, "describe", "-p")
	require.NoError(t, err)
	assert.Contains(t, out, `room="131073" id="65537" name="Desk lamp" state=true dimmer=10`)
}

func TestDescribeJSON(t *testing.T) {
	out, err := runCommand(t, &mockClient{desc: testDescription()}, "describe", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"ambiance_active": "196608"`)
}

func TestDescribeInvalidOutput(t *testing.T) {
	_, err := runCommand(t, &mockClient{desc: testDescription()}, "describe", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestBulbCommands(t *testing.T) {
	mock := &mockClient{}
	_, err := runCommand(t, mock, "bulb", "on", "65537")
	require.NoError(t, err)

	_, err = runCommand(t, mock, "bulb", "dimmer", "65537", "128")
	require.NoError(t, err)

	require.Len(t, mock.calls, 2)
	assert.Equal(t, mockCall{op: "bulb_power", id: "65537", on: true}, mock.calls[0])
	assert.Equal(t, mockCall{op: "bulb_dimmer", id: "65537", dimmer: 128}, mock.calls[1])
}

func TestBulbDimmerRejectsNonNumeric(t *testing.T) {
	mock := &mockClient{}
	_, err := runCommand(t, mock, "bulb", "dimmer", "65537", "bright")
	require.Error(t, err)
	assert.Empty(t, mock.calls)
}

func TestRoomCommands(t *testing.T) {
	mock := &mockClient{}
	_, err := runCommand(t, mock, "room", "off", "131073")
	require.NoError(t, err)

	_, err = runCommand(t, mock, "room", "ambiance", "131073", "196609")
	require.NoError(t, err)

	require.Len(t, mock.calls, 2)
	assert.Equal(t, mockCall{op: "room_power", id: "131073", on: false}, mock.calls[0])
	assert.Equal(t, mockCall{op: "room_ambiance", id: "131073", mood: "196609"}, mock.calls[1])
}

func TestRoomPartialFailureReported(t *testing.T) {
	mock := &mockClient{err: &client.PartialCommandError{Errors: []string{"device 65539: unreachable"}}}
	out, err := runCommand(t, mock, "room", "dimmer", "131073", "50")
	require.Error(t, err)
	assert.Contains(t, out, "65539")
}
