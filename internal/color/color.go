package color

import "github.com/charmbracelet/lipgloss"

var (
	Blue   = lipgloss.Color("12") // Bright blue
	Cyan   = lipgloss.Color("14") // Bright cyan
	Yellow = lipgloss.Color("11") // Bright yellow
	Green  = lipgloss.Color("10") // Bright green
	Red    = lipgloss.Color("9")  // Bright red
	White  = lipgloss.Color("15") // Bright white
	Gray   = lipgloss.Color("8")  // Gray

	// Muted shades used by the result display
	LightGray = lipgloss.Color("252") // Light gray
	DarkGray  = lipgloss.Color("240") // Dark gray
)
