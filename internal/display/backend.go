package display

import (
	"errors"
	"strconv"
)

// ErrNoMoreDevices is how a Backend signals the end of device enumeration.
var ErrNoMoreDevices = errors.New("no more display devices")

// ChangeFlags mirrors the CDS_* flags of ChangeDisplaySettingsEx.
type ChangeFlags uint32

const (
	ChangeUpdateRegistry ChangeFlags = 0x00000001
	ChangeTest           ChangeFlags = 0x00000002
)

func (c ChangeFlags) Value() string {
	switch c {
	case ChangeUpdateRegistry:
		return "update_registry"
	case ChangeTest:
		return "test"
	}
	return "flags_" + strconv.FormatUint(uint64(c), 16)
}

// DispChange is the raw result code of a mode submission (DISP_CHANGE_*).
type DispChange int32

const (
	DispChangeSuccessful  DispChange = 0
	DispChangeRestart     DispChange = 1
	DispChangeFailed      DispChange = -1
	DispChangeBadMode     DispChange = -2
	DispChangeNotUpdated  DispChange = -3
	DispChangeBadFlags    DispChange = -4
	DispChangeBadParam    DispChange = -5
	DispChangeBadDualView DispChange = -6
)

var DispChanges = []DispChange{
	DispChangeSuccessful, DispChangeRestart, DispChangeFailed, DispChangeBadMode,
	DispChangeNotUpdated, DispChangeBadFlags, DispChangeBadParam, DispChangeBadDualView,
}

func (d DispChange) Value() string {
	switch d {
	case DispChangeSuccessful:
		return "successful"
	case DispChangeRestart:
		return "restart"
	case DispChangeFailed:
		return "failed"
	case DispChangeBadMode:
		return "badmode"
	case DispChangeNotUpdated:
		return "notupdated"
	case DispChangeBadFlags:
		return "badflags"
	case DispChangeBadParam:
		return "badparam"
	case DispChangeBadDualView:
		return "baddualview"
	}
	return "unknown"
}

func (d DispChange) String() string {
	return d.Value() + "(" + strconv.Itoa(int(d)) + ")"
}

// Backend is the narrow OS boundary. Implementations own all native memory
// handling; the enumerator and changer only see decoded records.
//
// ApplyMode with ChangeTest must never alter the active display state. A
// returned error means the call itself could not be made, result codes are
// reported through DispChange.
type Backend interface {
	EnumDevice(index int) (*DisplayDevice, error)
	CurrentMode(deviceName string) (*DevMode, error)
	ApplyMode(deviceName string, mode *DevMode, flags ChangeFlags) (DispChange, error)
}
