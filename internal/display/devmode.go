package display

import (
	"fmt"
	"math"
)

// FieldMask selects which DevMode fields the OS applies. Values match the
// DM_* bits of DEVMODE.dmFields.
type FieldMask uint32

const (
	FieldPosition           FieldMask = 0x00000020
	FieldDisplayOrientation FieldMask = 0x00000080
	FieldBitsPerPel         FieldMask = 0x00040000
	FieldPelsWidth          FieldMask = 0x00080000
	FieldPelsHeight         FieldMask = 0x00100000
	FieldDisplayFlags       FieldMask = 0x00200000
	FieldDisplayFrequency   FieldMask = 0x00400000
)

// ModeFields is the exact mask submitted for a resolution change.
const ModeFields = FieldPelsWidth | FieldPelsHeight | FieldDisplayFrequency

func (f FieldMask) Has(other FieldMask) bool {
	return f&other == other
}

// DevMode is the portable view of a device's mode record.
type DevMode struct {
	Width        int
	Height       int
	Frequency    int
	BitsPerPixel int
	PositionX    int
	PositionY    int
	Orientation  int
	DisplayFlags uint32
	Fields       FieldMask

	// native keeps the backend's raw record so fields this type does not
	// model survive a round trip through ApplyMode.
	native any
}

func (d *DevMode) Mode() Mode {
	return Mode{Width: d.Width, Height: d.Height, Frequency: d.Frequency}
}

// Overlay returns a copy of d with the resolution and refresh rate replaced
// and only those three fields marked for change.
func (d *DevMode) Overlay(mode Mode) *DevMode {
	overlaid := *d
	overlaid.Width = mode.Width
	overlaid.Height = mode.Height
	overlaid.Frequency = mode.Frequency
	overlaid.Fields = ModeFields
	return &overlaid
}

func (d *DevMode) Native() any {
	return d.native
}

func (d *DevMode) WithNative(native any) *DevMode {
	d.native = native
	return d
}

// CheckNativeRange reports the first field that does not fit the fixed-width
// DEVMODE record.
func (d *DevMode) CheckNativeRange() error {
	for _, field := range []struct {
		name  string
		value int
	}{
		{"width", d.Width},
		{"height", d.Height},
		{"frequency", d.Frequency},
		{"bits per pixel", d.BitsPerPixel},
		{"orientation", d.Orientation},
	} {
		if field.value < 0 || int64(field.value) > math.MaxUint32 {
			return fmt.Errorf("%s %d out of range 0-%d", field.name, field.value, uint64(math.MaxUint32))
		}
	}
	for _, field := range []struct {
		name  string
		value int
	}{
		{"position x", d.PositionX},
		{"position y", d.PositionY},
	} {
		if int64(field.value) < math.MinInt32 || int64(field.value) > math.MaxInt32 {
			return fmt.Errorf("%s %d out of range %d-%d", field.name, field.value, math.MinInt32, math.MaxInt32)
		}
	}
	return nil
}
