package display

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/fiffeek/displayflip/internal/utils"
	"github.com/sirupsen/logrus"
)

// StaticDevice describes one fake display device for StaticBackend.
type StaticDevice struct {
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	AttachedToDesktop bool        `json:"attachedToDesktop"`
	Primary           bool        `json:"primary"`
	ExtraStateFlags   StateFlags  `json:"extraStateFlags"`
	Width             int         `json:"width"`
	Height            int         `json:"height"`
	Frequency         int         `json:"frequency"`
	BitsPerPixel      int         `json:"bitsPerPixel"`
	PositionX         int         `json:"x"`
	PositionY         int         `json:"y"`
	// SupportedModes lists accepted modes as WIDTHxHEIGHT@FREQUENCY, empty
	// accepts everything.
	SupportedModes []string `json:"supportedModes"`
	// CommitResult forces the commit phase result code.
	CommitResult *DispChange `json:"commitResult"`
	// QueryFails makes CurrentMode fail for the device.
	QueryFails bool `json:"queryFails"`

	supported map[Mode]struct{}
}

func (d *StaticDevice) Validate() error {
	if d.Name == "" {
		return errors.New("name cant be empty")
	}
	d.supported = map[Mode]struct{}{}
	for _, raw := range d.SupportedModes {
		mode, err := ParseMode(raw)
		if err != nil {
			return fmt.Errorf("invalid supported mode for %s: %w", d.Name, err)
		}
		d.supported[mode] = struct{}{}
	}
	if d.CommitResult != nil && !slices.Contains(DispChanges, *d.CommitResult) {
		return fmt.Errorf("commitResult for %s must be one of %s, got %d",
			d.Name, utils.FormatEnumTypes(DispChanges), *d.CommitResult)
	}
	if d.BitsPerPixel == 0 {
		d.BitsPerPixel = 32
	}
	return nil
}

func (d *StaticDevice) stateFlags() StateFlags {
	flags := d.ExtraStateFlags
	if d.AttachedToDesktop {
		flags |= StateAttachedToDesktop
	}
	if d.Primary {
		flags |= StatePrimaryDevice
	}
	return flags
}

func (d *StaticDevice) supports(mode Mode) bool {
	if len(d.supported) == 0 {
		return true
	}
	_, ok := d.supported[mode]
	return ok
}

type StaticDevices []*StaticDevice

func (s StaticDevices) Validate() error {
	seen := map[string]struct{}{}
	for _, device := range s {
		if err := device.Validate(); err != nil {
			return fmt.Errorf("invalid device: %w", err)
		}
		if _, ok := seen[device.Name]; ok {
			return fmt.Errorf("duplicated device name %s", device.Name)
		}
		seen[device.Name] = struct{}{}
	}
	return nil
}

// StaticBackend serves a fixed device list, committed modes are kept in
// memory only.
type StaticBackend struct {
	devices StaticDevices
}

func NewStaticBackend(devices StaticDevices) (*StaticBackend, error) {
	if err := devices.Validate(); err != nil {
		return nil, fmt.Errorf("invalid static devices: %w", err)
	}
	return &StaticBackend{devices: devices}, nil
}

// LoadStaticBackend reads a JSON array of StaticDevice.
func LoadStaticBackend(path string) (*StaticBackend, error) {
	//nolint:gosec
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cant read display devices file: %w", err)
	}

	var devices StaticDevices
	if err := utils.UnmarshalResponse(contents, &devices); err != nil {
		return nil, fmt.Errorf("failed to parse display devices: %w", err)
	}

	logrus.WithFields(logrus.Fields{"path": path, "devices": len(devices)}).Debug("Loaded static display devices")
	return NewStaticBackend(devices)
}

func (b *StaticBackend) EnumDevice(index int) (*DisplayDevice, error) {
	if index < 0 || index >= len(b.devices) {
		return nil, ErrNoMoreDevices
	}
	device := b.devices[index]
	return DecodeDevice(device.Name, device.Description, device.stateFlags()), nil
}

func (b *StaticBackend) CurrentMode(deviceName string) (*DevMode, error) {
	device := b.find(deviceName)
	if device == nil {
		return nil, fmt.Errorf("device %s not found", deviceName)
	}
	if device.QueryFails {
		return nil, fmt.Errorf("device %s does not report its settings", deviceName)
	}
	return &DevMode{
		Width:        device.Width,
		Height:       device.Height,
		Frequency:    device.Frequency,
		BitsPerPixel: device.BitsPerPixel,
		PositionX:    device.PositionX,
		PositionY:    device.PositionY,
		Fields: FieldPelsWidth | FieldPelsHeight | FieldDisplayFrequency |
			FieldBitsPerPel | FieldPosition | FieldDisplayOrientation,
	}, nil
}

func (b *StaticBackend) ApplyMode(deviceName string, mode *DevMode, flags ChangeFlags) (DispChange, error) {
	device := b.find(deviceName)
	if device == nil {
		return DispChangeBadParam, nil
	}
	if !device.supports(mode.Mode()) {
		return DispChangeBadMode, nil
	}
	if flags&ChangeTest != 0 {
		return DispChangeSuccessful, nil
	}

	code := DispChangeSuccessful
	if device.CommitResult != nil {
		code = *device.CommitResult
	}
	if code == DispChangeSuccessful || code == DispChangeRestart {
		if mode.Fields.Has(FieldPelsWidth) {
			device.Width = mode.Width
		}
		if mode.Fields.Has(FieldPelsHeight) {
			device.Height = mode.Height
		}
		if mode.Fields.Has(FieldDisplayFrequency) {
			device.Frequency = mode.Frequency
		}
	}
	return code, nil
}

func (b *StaticBackend) find(deviceName string) *StaticDevice {
	for _, device := range b.devices {
		if device.Name == deviceName {
			return device
		}
	}
	return nil
}
