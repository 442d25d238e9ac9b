package display

import (
	"errors"
	"fmt"
)

// ErrNoMonitorsFound is returned when a scan completes without a single
// attached device with a readable current mode.
var ErrNoMonitorsFound = errors.New("no monitors found")

type DeviceQueryFailedError struct {
	DeviceName string
	Err        error
}

func (e *DeviceQueryFailedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to get current settings for %s", e.DeviceName)
	}
	return fmt.Sprintf("failed to get current settings for %s: %v", e.DeviceName, e.Err)
}

func (e *DeviceQueryFailedError) Unwrap() error {
	return e.Err
}

// UnsupportedModeError means the test phase rejected the mode, nothing was
// committed.
type UnsupportedModeError struct {
	Width      int
	Height     int
	Frequency  int
	DeviceName string
	RawCode    DispChange
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("resolution %dx%d@%dHz is not supported by %s, error code: %d",
		e.Width, e.Height, e.Frequency, e.DeviceName, e.RawCode)
}

// RejectedAtCommitError means the test phase accepted the mode but the commit
// phase reported a bad mode.
type RejectedAtCommitError struct {
	DeviceName string
}

func (e *RejectedAtCommitError) Error() string {
	return fmt.Sprintf("the requested mode passed validation but was rejected at commit by %s", e.DeviceName)
}

type UnknownFailureError struct {
	DeviceName string
	RawCode    DispChange
}

func (e *UnknownFailureError) Error() string {
	return fmt.Sprintf("failed to change resolution for %s, error code: %d (%s)",
		e.DeviceName, e.RawCode, e.RawCode.Value())
}
