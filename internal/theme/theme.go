package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// CardStyle frames one goal on the dashboard.
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle renders inline errors next to the failing form or card.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// CelebrateStyle renders the post-check-in celebration banner.
var CelebrateStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGreen)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SeverityStyle returns a color-coded style for a drift severity band.
func SeverityStyle(s model.DriftSeverity) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch s {
	case model.DriftHigh:
		return base.Foreground(ColorRed)
	case model.DriftModerate:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorGreen)
	}
}

// ScoreStyle returns the severity style for a raw drift score.
func ScoreStyle(score float64) lipgloss.Style {
	return SeverityStyle(model.SeverityFor(score))
}

// StreakStyle colors a minimum-action streak count.
func StreakStyle(streak int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case streak >= 7:
		return base.Foreground(ColorGreen)
	case streak >= 3:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}

// MoodStyle colors a 1-5 diary mood.
func MoodStyle(mood int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case mood >= 4:
		return base.Foreground(ColorGreen)
	case mood == 3:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorOrange)
	}
}
