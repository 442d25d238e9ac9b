//go:build windows

package display

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const enumCurrentSettings = 0xFFFFFFFF

var (
	modUser32                    = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayDevicesW      = modUser32.NewProc("EnumDisplayDevicesW")
	procEnumDisplaySettingsW     = modUser32.NewProc("EnumDisplaySettingsW")
	procChangeDisplaySettingsExW = modUser32.NewProc("ChangeDisplaySettingsExW")
)

// displayDeviceW is DISPLAY_DEVICEW.
type displayDeviceW struct {
	cb           uint32
	deviceName   [32]uint16
	deviceString [128]uint16
	stateFlags   uint32
	deviceID     [128]uint16
	deviceKey    [128]uint16
}

// devModeW is the display variant of DEVMODEW.
type devModeW struct {
	deviceName         [32]uint16
	specVersion        uint16
	driverVersion      uint16
	size               uint16
	driverExtra        uint16
	fields             uint32
	positionX          int32
	positionY          int32
	displayOrientation uint32
	displayFixedOutput uint32
	color              int16
	duplex             int16
	yResolution        int16
	ttOption           int16
	collate            int16
	formName           [32]uint16
	logPixels          uint16
	bitsPerPel         uint32
	pelsWidth          uint32
	pelsHeight         uint32
	displayFlags       uint32
	displayFrequency   uint32
	icmMethod          uint32
	icmIntent          uint32
	mediaType          uint32
	ditherType         uint32
	reserved1          uint32
	reserved2          uint32
	panningWidth       uint32
	panningHeight      uint32
}

type win32Backend struct{}

func NewSystemBackend() (Backend, error) {
	for _, proc := range []*windows.LazyProc{
		procEnumDisplayDevicesW, procEnumDisplaySettingsW, procChangeDisplaySettingsExW,
	} {
		if err := proc.Find(); err != nil {
			return nil, fmt.Errorf("cant load %s: %w", proc.Name, err)
		}
	}
	return &win32Backend{}, nil
}

// EnumDevice cant tell a missing index from a failed query, both end the
// enumeration the same way the OS list does.
func (b *win32Backend) EnumDevice(index int) (*DisplayDevice, error) {
	var device displayDeviceW
	device.cb = uint32(unsafe.Sizeof(device))

	ret, _, _ := procEnumDisplayDevicesW.Call(
		0,
		uintptr(index),
		uintptr(unsafe.Pointer(&device)),
		0,
	)
	if ret == 0 {
		return nil, ErrNoMoreDevices
	}

	return DecodeDevice(
		windows.UTF16ToString(device.deviceName[:]),
		windows.UTF16ToString(device.deviceString[:]),
		StateFlags(device.stateFlags),
	), nil
}

func (b *win32Backend) CurrentMode(deviceName string) (*DevMode, error) {
	name, err := windows.UTF16PtrFromString(deviceName)
	if err != nil {
		return nil, fmt.Errorf("invalid device name %q: %w", deviceName, err)
	}

	var raw devModeW
	raw.size = uint16(unsafe.Sizeof(raw))

	ret, _, callErr := procEnumDisplaySettingsW.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(enumCurrentSettings),
		uintptr(unsafe.Pointer(&raw)),
	)
	if ret == 0 {
		if callErr == nil || errors.Is(callErr, windows.ERROR_SUCCESS) {
			return nil, fmt.Errorf("EnumDisplaySettingsW failed for %s", deviceName)
		}
		return nil, fmt.Errorf("EnumDisplaySettingsW failed for %s: %w", deviceName, callErr)
	}

	return decodeDevMode(&raw), nil
}

func (b *win32Backend) ApplyMode(deviceName string, mode *DevMode, flags ChangeFlags) (DispChange, error) {
	name, err := windows.UTF16PtrFromString(deviceName)
	if err != nil {
		return DispChangeBadParam, fmt.Errorf("invalid device name %q: %w", deviceName, err)
	}

	if err := mode.CheckNativeRange(); err != nil {
		return DispChangeBadParam, fmt.Errorf("cant encode mode for %s: %w", deviceName, err)
	}

	raw := encodeDevMode(mode)
	ret, _, _ := procChangeDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(raw)),
		0,
		uintptr(flags),
		0,
	)

	return DispChange(int32(ret)), nil
}

func decodeDevMode(raw *devModeW) *DevMode {
	native := *raw
	mode := &DevMode{
		Width:        int(raw.pelsWidth),
		Height:       int(raw.pelsHeight),
		Frequency:    int(raw.displayFrequency),
		BitsPerPixel: int(raw.bitsPerPel),
		PositionX:    int(raw.positionX),
		PositionY:    int(raw.positionY),
		Orientation:  int(raw.displayOrientation),
		DisplayFlags: raw.displayFlags,
		Fields:       FieldMask(raw.fields),
	}
	return mode.WithNative(native)
}

// encodeDevMode starts from the record the OS returned, if any, so fields
// not modelled by DevMode keep their current values.
func encodeDevMode(mode *DevMode) *devModeW {
	var raw devModeW
	if native, ok := mode.Native().(devModeW); ok {
		raw = native
	}
	raw.size = uint16(unsafe.Sizeof(raw))
	raw.pelsWidth = uint32(mode.Width)
	raw.pelsHeight = uint32(mode.Height)
	raw.displayFrequency = uint32(mode.Frequency)
	raw.bitsPerPel = uint32(mode.BitsPerPixel)
	raw.positionX = int32(mode.PositionX)
	raw.positionY = int32(mode.PositionY)
	raw.displayOrientation = uint32(mode.Orientation)
	raw.displayFlags = mode.DisplayFlags
	raw.fields = uint32(mode.Fields)
	return &raw
}
