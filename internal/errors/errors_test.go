package errors

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors exist and have expected messages
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrGateway", ErrGateway, "gateway request failed"},
		{"ErrDeviceNotFound", ErrDeviceNotFound, "device not found"},
		{"ErrGroupNotFound", ErrGroupNotFound, "group not found"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.expected)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"gateway", Gatewayf("observe failed for %s", "65537"), IsGateway},
		{"device not found", DeviceNotFoundf("device %s", "65537"), IsDeviceNotFound},
		{"group not found", GroupNotFoundf("group %s", "131073"), IsGroupNotFound},
		{"invalid input", InvalidInputf("dimmer %d out of range", 300), IsInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("predicate did not match %v", tt.err)
			}
			if tt.pred(errors.New("unrelated")) {
				t.Errorf("predicate matched unrelated error")
			}
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	t.Run("returns nil for nil error", func(t *testing.T) {
		if result := WrapErrorf(nil, "context %s", "value"); result != nil {
			t.Errorf("WrapErrorf(nil) = %v, want nil", result)
		}
	})

	t.Run("wraps error with context", func(t *testing.T) {
		wrapped := WrapErrorf(ErrGateway, "fetching devices from %s", "192.168.1.129")
		if !IsGateway(wrapped) {
			t.Errorf("wrapped error lost its sentinel")
		}
		if !strings.Contains(wrapped.Error(), "192.168.1.129") {
			t.Errorf("wrapped error missing context: %v", wrapped)
		}
	})
}

func TestLogErrorAndReturn(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	t.Run("returns nil for nil error", func(t *testing.T) {
		if result := LogErrorAndReturn(logger, nil, "test message"); result != nil {
			t.Errorf("LogErrorAndReturn(nil) = %v, want nil", result)
		}
	})

	t.Run("returns the same error", func(t *testing.T) {
		err := errors.New("test error")
		if result := LogErrorAndReturn(logger, err, "test message", "key", "value"); result != err {
			t.Errorf("LogErrorAndReturn returned different error")
		}
	})
}
