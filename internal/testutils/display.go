package testutils

import (
	"errors"
	"fmt"

	"github.com/fiffeek/displayflip/internal/display"
)

type BackendCallType int

const (
	EnumDeviceCall BackendCallType = iota
	CurrentModeCall
	TestCall
	CommitCall
)

type BackendCall struct {
	Type       BackendCallType
	DeviceName string
	Index      int
	Mode       *display.DevMode
}

type FakeDevice struct {
	Name        string
	Description string
	Flags       display.StateFlags
	// EnumErr is returned instead of the device record.
	EnumErr error
	// Mode is nil when CurrentMode should fail.
	Mode *display.DevMode
}

// FakeBackend records every call and answers from programmed results.
type FakeBackend struct {
	Devices      []*FakeDevice
	TestResults  map[display.Mode]display.DispChange
	CommitResult display.DispChange
	ApplyErr     error
	Calls        []BackendCall
}

func NewFakeBackend(devices ...*FakeDevice) *FakeBackend {
	return &FakeBackend{
		Devices:      devices,
		TestResults:  map[display.Mode]display.DispChange{},
		CommitResult: display.DispChangeSuccessful,
	}
}

func AttachedDevice(name string, width, height, frequency int, primary bool) *FakeDevice {
	flags := display.StateAttachedToDesktop
	if primary {
		flags |= display.StatePrimaryDevice
	}
	return &FakeDevice{
		Name:        name,
		Description: "Generic PnP Monitor",
		Flags:       flags,
		Mode:        FakeDevMode(width, height, frequency),
	}
}

func FakeDevMode(width, height, frequency int) *display.DevMode {
	return &display.DevMode{
		Width:        width,
		Height:       height,
		Frequency:    frequency,
		BitsPerPixel: 32,
		PositionX:    0,
		PositionY:    0,
		Orientation:  0,
		Fields: display.FieldPelsWidth | display.FieldPelsHeight | display.FieldDisplayFrequency |
			display.FieldBitsPerPel | display.FieldPosition,
	}
}

func (f *FakeBackend) EnumDevice(index int) (*display.DisplayDevice, error) {
	f.Calls = append(f.Calls, BackendCall{Type: EnumDeviceCall, Index: index})
	if index >= len(f.Devices) {
		return nil, display.ErrNoMoreDevices
	}
	device := f.Devices[index]
	if device.EnumErr != nil {
		return nil, device.EnumErr
	}
	return display.DecodeDevice(device.Name, device.Description, device.Flags), nil
}

func (f *FakeBackend) CurrentMode(deviceName string) (*display.DevMode, error) {
	f.Calls = append(f.Calls, BackendCall{Type: CurrentModeCall, DeviceName: deviceName})
	device := f.find(deviceName)
	if device == nil {
		return nil, fmt.Errorf("device %s not found", deviceName)
	}
	if device.Mode == nil {
		return nil, errors.New("settings unavailable")
	}
	mode := *device.Mode
	return &mode, nil
}

func (f *FakeBackend) ApplyMode(deviceName string, mode *display.DevMode, flags display.ChangeFlags) (display.DispChange, error) {
	recorded := *mode
	callType := CommitCall
	if flags == display.ChangeTest {
		callType = TestCall
	}
	f.Calls = append(f.Calls, BackendCall{Type: callType, DeviceName: deviceName, Mode: &recorded})

	if f.ApplyErr != nil {
		return display.DispChangeFailed, f.ApplyErr
	}

	if callType == TestCall {
		if code, ok := f.TestResults[mode.Mode()]; ok {
			return code, nil
		}
		return display.DispChangeSuccessful, nil
	}

	if f.CommitResult == display.DispChangeSuccessful || f.CommitResult == display.DispChangeRestart {
		if device := f.find(deviceName); device != nil && device.Mode != nil {
			device.Mode.Width = mode.Width
			device.Mode.Height = mode.Height
			device.Mode.Frequency = mode.Frequency
		}
	}
	return f.CommitResult, nil
}

func (f *FakeBackend) CallTypes() []BackendCallType {
	types := make([]BackendCallType, 0, len(f.Calls))
	for _, call := range f.Calls {
		types = append(types, call.Type)
	}
	return types
}

func (f *FakeBackend) CallsOf(callType BackendCallType) []BackendCall {
	var calls []BackendCall
	for _, call := range f.Calls {
		if call.Type == callType {
			calls = append(calls, call)
		}
	}
	return calls
}

func (f *FakeBackend) ResetCalls() {
	f.Calls = nil
}

func (f *FakeBackend) find(deviceName string) *FakeDevice {
	for _, device := range f.Devices {
		if device.Name == deviceName && device.EnumErr == nil {
			return device
		}
	}
	return nil
}
