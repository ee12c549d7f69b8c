package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Pink     = lipgloss.Color("#f5c2e7")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Bad   = lipgloss.NewStyle().Foreground(Red)
	XP    = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	Coins = lipgloss.NewStyle().Foreground(Yellow).Bold(true)

	// Clock is the big countdown on the timer tab.
	Clock = lipgloss.NewStyle().Foreground(Pink).Bold(true).Padding(1, 4)

	Toast = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Peach).
		Foreground(Text).
		Padding(0, 1)
)

// ModeColor picks the accent for a timer mode.
func ModeColor(mode string) lipgloss.Color {
	switch mode {
	case "focus":
		return Peach
	case "break":
		return Green
	default:
		return Subtext0
	}
}
