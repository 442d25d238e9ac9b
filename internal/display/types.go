// Package display enumerates display devices and changes their video mode
// through a test-then-commit protocol.
package display

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

type Mode struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	Frequency int `json:"frequency"`
}

func (m Mode) String() string {
	return fmt.Sprintf("%dx%d@%dHz", m.Width, m.Height, m.Frequency)
}

func (m Mode) Validate() error {
	for _, field := range []struct {
		name  string
		value int
	}{
		{"width", m.Width},
		{"height", m.Height},
		{"frequency", m.Frequency},
	} {
		if field.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", field.name, field.value)
		}
		if int64(field.value) > math.MaxUint32 {
			return fmt.Errorf("%s must be at most %d, got %d", field.name, uint64(math.MaxUint32), field.value)
		}
	}
	return nil
}

var modeRegex = regexp.MustCompile(`^(\d+)x(\d+)@(\d+)(?:Hz)?$`)

// ParseMode parses modes written as 1920x1080@60 or 1920x1080@60Hz.
func ParseMode(s string) (Mode, error) {
	matches := modeRegex.FindStringSubmatch(s)
	if matches == nil {
		return Mode{}, fmt.Errorf("cant parse mode %q, expected WIDTHxHEIGHT@FREQUENCY", s)
	}

	values := make([]int, 0, 3)
	for _, match := range matches[1:] {
		v, err := strconv.Atoi(match)
		if err != nil {
			return Mode{}, fmt.Errorf("cant parse %s as int: %w", match, err)
		}
		values = append(values, v)
	}

	mode := Mode{Width: values[0], Height: values[1], Frequency: values[2]}
	if err := mode.Validate(); err != nil {
		return Mode{}, fmt.Errorf("invalid mode %q: %w", s, err)
	}
	return mode, nil
}

// Monitor describes one display device attached to the desktop as seen by
// the most recent enumeration.
type Monitor struct {
	DeviceName        string `json:"deviceName"`
	DeviceDescription string `json:"deviceDescription"`
	CurrentWidth      int    `json:"currentWidth"`
	CurrentHeight     int    `json:"currentHeight"`
	CurrentFrequency  int    `json:"currentFrequency"`
	IsPrimary         bool   `json:"isPrimary"`
}

func (m *Monitor) CurrentMode() Mode {
	return Mode{Width: m.CurrentWidth, Height: m.CurrentHeight, Frequency: m.CurrentFrequency}
}

func (m *Monitor) HasResolution(width, height int) bool {
	return m.CurrentWidth == width && m.CurrentHeight == height
}

type Monitors []*Monitor

func (m Monitors) Primary() *Monitor {
	for _, monitor := range m {
		if monitor.IsPrimary {
			return monitor
		}
	}
	return nil
}

// ModeRequest targets exactly one device. DeviceName must come from the most
// recent enumeration.
type ModeRequest struct {
	DeviceName string
	Width      int
	Height     int
	Frequency  int
}

func NewModeRequest(deviceName string, mode Mode) ModeRequest {
	return ModeRequest{
		DeviceName: deviceName,
		Width:      mode.Width,
		Height:     mode.Height,
		Frequency:  mode.Frequency,
	}
}

func (r ModeRequest) Mode() Mode {
	return Mode{Width: r.Width, Height: r.Height, Frequency: r.Frequency}
}

func (r ModeRequest) Validate() error {
	if r.DeviceName == "" {
		return errors.New("device name cant be empty")
	}
	if err := r.Mode().Validate(); err != nil {
		return fmt.Errorf("invalid mode for %s: %w", r.DeviceName, err)
	}
	return nil
}
