package tui

import "github.com/charmbracelet/lipgloss"

var (
	HelpStyle  = lipgloss.NewStyle().Padding(0, 0, 0, 2)
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("105"))
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180")).
			Italic(true)
	PrimaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)
)

var MonitorColors = []string{"105", "208", "39", "226", "196", "99"}

func GetMonitorColorStyle(index int) lipgloss.Style {
	color := MonitorColors[index%len(MonitorColors)]
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}
