package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - amber terminal theme for the directory widget.
const (
	ColorAmber    = "214" // Primary accent - headers, matches
	ColorAmberDim = "137" // Dimmed amber for borders
	ColorWhite    = "255" // Names, important text
	ColorGray     = "245" // Secondary text, labels
	ColorDarkGray = "238" // Card borders, separators
	ColorRed      = "203" // Status/error text
	ColorCyan     = "80"  // AI annotations
)

// Styles holds all UI styles for widget rendering.
type Styles struct {
	Header     lipgloss.Style
	Name       lipgloss.Style
	Title      lipgloss.Style
	Body       lipgloss.Style
	Label      lipgloss.Style
	Annotation lipgloss.Style
	Status     lipgloss.Style
	Dim        lipgloss.Style
	Card       lipgloss.Style
	Input      lipgloss.Style
}

// DefaultStyles returns styled components for TUI mode.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAmber)),
		Name:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAmberDim)).Underline(true),
		Body:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Annotation: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorCyan)),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
		Input: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAmber)),
	}
}

// NoColorStyles returns unstyled components for plain terminals.
func NoColorStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:     plain,
		Name:       plain,
		Title:      plain,
		Body:       plain,
		Label:      plain,
		Annotation: plain,
		Status:     plain,
		Dim:        plain,
		Card:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Input:      plain,
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
