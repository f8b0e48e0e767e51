package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorBg     = lipgloss.Color("#3c3836")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	// Timeline cells. Root bars are blue, child bars green; the bar being
	// dragged is drawn in yellow.
	StyleRootBar   = lipgloss.NewStyle().Background(ColorBlue).Foreground(ColorBg)
	StyleChildBar  = lipgloss.NewStyle().Background(ColorGreen).Foreground(ColorBg)
	StyleActiveBar = lipgloss.NewStyle().Background(ColorYellow).Foreground(ColorBg)
	StyleWeekend   = lipgloss.NewStyle().Background(ColorBg)
	StyleHoliday   = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleToday     = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
)

// StatusStyle returns the style of a project status.
func StatusStyle(status domain.ProjectStatus) lipgloss.Style {
	switch status {
	case domain.ProjectInProgress:
		return StyleGreen
	case domain.ProjectPlanning:
		return StyleBlue
	case domain.ProjectCompleted:
		return StyleDim
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
