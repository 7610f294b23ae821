package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
)

// cardHeight is the number of lines one goal card occupies in the list.
const cardHeight = 4

// GoalCard wraps a model.DashboardEntry so it can be used in a bubbles/list.
type GoalCard struct {
	Entry model.DashboardEntry
}

// FilterValue returns the string used for fuzzy filtering.
func (c GoalCard) FilterValue() string {
	return c.Entry.Resolution.Title
}

// cardDelegate implements list.ItemDelegate for rendering goal cards.
type cardDelegate struct{}

// Height returns the number of lines each card takes.
func (d cardDelegate) Height() int { return cardHeight }

// Spacing returns the number of blank lines between cards.
func (d cardDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single goal card. Cards are a fixed four lines so the list
// can scroll them uniformly: title, minimum action, metrics, and a signal
// line that carries the drift alert or momentum suggestion when one exists.
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	card, ok := item.(GoalCard)
	if !ok {
		return
	}

	entry := card.Entry
	isSelected := index == m.Index()

	lines := []string{
		renderTitleLine(entry),
		renderActionLine(entry),
		renderMetricsLine(entry.Metrics),
		renderSignalLine(entry),
	}

	style := theme.ListItemStyle
	if isSelected {
		style = theme.SelectedItemStyle
	}

	for i, line := range lines {
		lines[i] = style.Render(line)
	}

	fmt.Fprint(w, strings.Join(lines, "\n"))
}

// renderTitleLine draws the severity dot, title, and schedule summary.
func renderTitleLine(entry model.DashboardEntry) string {
	severity := entry.Metrics.Severity()
	dot := theme.SeverityStyle(severity).Padding(0).Render("●")

	title := lipgloss.NewStyle().Bold(true).Render(entry.Resolution.Title)

	schedule := fmt.Sprintf("%d×/week", entry.Resolution.FrequencyPerWeek)
	if plan := entry.Plan; plan != nil {
		schedule = fmt.Sprintf("%d×/week", plan.FrequencyPerWeek)
		if plan.TimeWindow != "" {
			schedule += " · " + plan.TimeWindow
		}
		if plan.IsRevised() {
			schedule += lipgloss.NewStyle().
				Foreground(theme.ColorYellow).
				Render(fmt.Sprintf("  plan v%d", plan.Version))
		}
	}

	return fmt.Sprintf("%s %s  %s", dot, title,
		lipgloss.NewStyle().Foreground(theme.ColorGray).Render(schedule))
}

// renderActionLine draws the current minimum action.
func renderActionLine(entry model.DashboardEntry) string {
	text := entry.Resolution.MinimumActionText
	minutes := entry.Resolution.MinMinutes
	if plan := entry.Plan; plan != nil && plan.MinMinutes > 0 {
		minutes = plan.MinMinutes
	}

	if text == "" {
		text = "(no minimum action set)"
	}

	line := fmt.Sprintf("min: %s (%d min)", text, minutes)
	if entry.Metrics.MomentumActive() {
		line += lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render("  momentum minimum active")
	}

	return lipgloss.NewStyle().Foreground(theme.ColorGray).Render(line)
}

// renderMetricsLine draws streak, week progress, and all-time rate.
func renderMetricsLine(m model.Metrics) string {
	streak := theme.StreakStyle(m.MinimumActionStreak).
		Render(fmt.Sprintf("streak %d", m.MinimumActionStreak))

	week := fmt.Sprintf("%s %d/%d this week",
		weekBar(m.ThisWeekCount, m.TargetFrequency),
		m.ThisWeekCount, m.TargetFrequency)

	rate := fmt.Sprintf("%.0f%% all-time", m.MinimumActionRate*100)

	return fmt.Sprintf("%s  %s  %s", streak, week,
		lipgloss.NewStyle().Foreground(theme.ColorGray).Render(rate))
}

// renderSignalLine draws the most urgent signal for the goal: a drift alert
// outranks a momentum suggestion, which outranks silence.
func renderSignalLine(entry model.DashboardEntry) string {
	m := entry.Metrics
	severity := m.Severity()

	if severity != model.DriftLow {
		label := severity.Label()
		if severity == model.DriftHigh {
			label += ", press m for the mirror"
		}
		return theme.SeverityStyle(severity).Padding(0).Render("▲ " + label)
	}

	if m.SuggestMomentumMinimum && m.MomentumSuggestionText != "" {
		return lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render("◆ " + m.MomentumSuggestionText)
	}

	return theme.SeverityStyle(model.DriftLow).Padding(0).Render("✓ " + severity.Label())
}

// weekBar renders done-of-target progress as a compact block bar.
func weekBar(done, target int) string {
	if target <= 0 {
		return ""
	}
	if done > target {
		done = target
	}

	filled := lipgloss.NewStyle().Foreground(theme.ColorGreen).
		Render(strings.Repeat("▰", done))
	rest := lipgloss.NewStyle().Foreground(theme.ColorSubtle).
		Render(strings.Repeat("▱", target-done))

	return filled + rest
}
