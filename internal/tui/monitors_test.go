package tui_test

import (
	"testing"

	"github.com/fiffeek/displayflip/internal/display"
	"github.com/fiffeek/displayflip/internal/tui"
	"github.com/stretchr/testify/assert"
)

func TestRenderMonitors(t *testing.T) {
	monitors := display.Monitors{
		{
			DeviceName:        `\\.\DISPLAY1`,
			DeviceDescription: "Generic PnP Monitor",
			CurrentWidth:      1920,
			CurrentHeight:     1080,
			CurrentFrequency:  60,
			IsPrimary:         true,
		},
		{
			DeviceName:        `\\.\DISPLAY2`,
			DeviceDescription: "DELL U2720Q",
			CurrentWidth:      3840,
			CurrentHeight:     2160,
			CurrentFrequency:  30,
		},
	}

	expected := "Found 2 monitor(s):\n\n" +
		"Monitor 1:\n" +
		"  Device: \\\\.\\DISPLAY1\n" +
		"  Description: Generic PnP Monitor\n" +
		"  Current Resolution: 1920x1080@60Hz\n" +
		"  Primary: Yes\n\n" +
		"Monitor 2:\n" +
		"  Device: \\\\.\\DISPLAY2\n" +
		"  Description: DELL U2720Q\n" +
		"  Current Resolution: 3840x2160@30Hz\n" +
		"  Primary: No\n\n"

	assert.Equal(t, expected, tui.RenderMonitors(monitors))
}

func TestRenderMonitors_Empty(t *testing.T) {
	assert.Equal(t, "Found 0 monitor(s):\n\n", tui.RenderMonitors(display.Monitors{}))
}
