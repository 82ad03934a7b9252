package carousel

import "github.com/charmbracelet/lipgloss"

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Foreground(colorText)
	activeCardStyle = cardStyle.BorderForeground(colorMauve)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	imageStyle      = lipgloss.NewStyle().Foreground(colorSubtext0)
	linkStyle       = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	dotStyle        = lipgloss.NewStyle().Foreground(colorOverlay0)
	activeDotStyle  = lipgloss.NewStyle().Foreground(colorMauve)
	buttonStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext0)
)
