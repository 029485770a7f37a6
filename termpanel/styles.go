package termpanel

import "github.com/charmbracelet/lipgloss"

var (
	colorGranted = lipgloss.Color("46")  // green
	colorMissing = lipgloss.Color("196") // red
	colorMuted   = lipgloss.Color("240") // gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			PaddingLeft(1).
			PaddingRight(1)

	frontHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("33"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(1).
			MarginBottom(1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Background(lipgloss.Color("237"))

	descriptionStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

func statusIcon(granted bool) string {
	if granted {
		return lipgloss.NewStyle().Foreground(colorGranted).Render("✔")
	}
	return lipgloss.NewStyle().Foreground(colorMissing).Render("✘")
}
