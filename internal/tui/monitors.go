package tui

import (
	"fmt"
	"strings"

	"github.com/fiffeek/displayflip/internal/display"
)

// RenderMonitors formats an enumeration result for the terminal.
func RenderMonitors(monitors display.Monitors) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d monitor(s):\n\n", len(monitors))

	for i, monitor := range monitors {
		primary := MutedStyle.Render("No")
		if monitor.IsPrimary {
			primary = PrimaryStyle.Render("Yes")
		}

		b.WriteString(GetMonitorColorStyle(i).Render(fmt.Sprintf("Monitor %d:", i+1)))
		b.WriteString("\n")
		writeField(&b, "Device", monitor.DeviceName)
		writeField(&b, "Description", monitor.DeviceDescription)
		writeField(&b, "Current Resolution", monitor.CurrentMode().String())
		writeField(&b, "Primary", primary)
		b.WriteString("\n")
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", LabelStyle.Render(label+":"), value)
}
