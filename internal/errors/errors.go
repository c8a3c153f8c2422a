package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrGateway is returned when a request to the Tradfri gateway fails at the
// transport or protocol level. Treated as transient and never retried here.
var ErrGateway = errors.New("gateway request failed")

// ErrDeviceNotFound is returned when a device id cannot be resolved on the gateway
var ErrDeviceNotFound = errors.New("device not found")

// ErrGroupNotFound is returned when a group id cannot be resolved on the gateway
var ErrGroupNotFound = errors.New("group not found")

// ErrInvalidInput is returned when the provided input is invalid
var ErrInvalidInput = errors.New("invalid input")

// LogErrorAndReturn logs an error with structured context and returns it
func LogErrorAndReturn(logger *slog.Logger, err error, message string, args ...any) error {
	// Don't modify nil errors
	if err == nil {
		return nil
	}

	logger.Error(message, append([]any{"error", err}, args...)...)
	return err
}

// WrapErrorf wraps an error with additional context using fmt.Errorf
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// IsGateway returns true if the error is or wraps ErrGateway
func IsGateway(err error) bool {
	return errors.Is(err, ErrGateway)
}

// IsDeviceNotFound returns true if the error is or wraps ErrDeviceNotFound
func IsDeviceNotFound(err error) bool {
	return errors.Is(err, ErrDeviceNotFound)
}

// IsGroupNotFound returns true if the error is or wraps ErrGroupNotFound
func IsGroupNotFound(err error) bool {
	return errors.Is(err, ErrGroupNotFound)
}

// IsInvalidInput returns true if the error is or wraps ErrInvalidInput
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Gatewayf returns a formatted ErrGateway error
func Gatewayf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrGateway)...)
}

// DeviceNotFoundf returns a formatted ErrDeviceNotFound error
func DeviceNotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrDeviceNotFound)...)
}

// GroupNotFoundf returns a formatted ErrGroupNotFound error
func GroupNotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrGroupNotFound)...)
}

// InvalidInputf returns a formatted ErrInvalidInput error
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}
