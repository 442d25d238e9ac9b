package display

// StateFlags mirrors the DISPLAY_DEVICE state bitmask.
type StateFlags uint32

const (
	StateAttachedToDesktop StateFlags = 0x00000001
	StateMultiDriver       StateFlags = 0x00000002
	StatePrimaryDevice     StateFlags = 0x00000004
	StateMirroringDriver   StateFlags = 0x00000008
	StateVGACompatible     StateFlags = 0x00000010
	StateRemovable         StateFlags = 0x00000020
	StateDisconnect        StateFlags = 0x02000000
	StateRemote            StateFlags = 0x04000000
	StateModesPruned       StateFlags = 0x08000000
)

// DisplayDevice is a decoded device record. The flag predicates are derived
// once in DecodeDevice, callers should not inspect StateFlags bits directly.
type DisplayDevice struct {
	Name        string
	Description string
	StateFlags  StateFlags

	attachedToDesktop bool
	primary           bool
}

func DecodeDevice(name, description string, flags StateFlags) *DisplayDevice {
	return &DisplayDevice{
		Name:              name,
		Description:       description,
		StateFlags:        flags,
		attachedToDesktop: flags&StateAttachedToDesktop != 0,
		primary:           flags&StatePrimaryDevice != 0,
	}
}

func (d *DisplayDevice) AttachedToDesktop() bool {
	return d.attachedToDesktop
}

func (d *DisplayDevice) Primary() bool {
	return d.primary
}
