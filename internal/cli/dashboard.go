package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
)

// DashboardCmd prints the drift dashboard once and exits.
type DashboardCmd struct {
	Goal int `help:"Show a single goal instead of all of them."`
}

func (c *DashboardCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	all, syncedAt, err := fetchOverview(ctx, cliCtx)
	if err != nil {
		return err
	}

	entries := all
	if c.Goal > 0 {
		entries = nil
		for _, e := range all {
			if e.Resolution.ID == c.Goal {
				entries = append(entries, e)
			}
		}
		if len(entries) == 0 {
			return fmt.Errorf("no goal with ID %d", c.Goal)
		}
	}

	if !syncedAt.IsZero() {
		fmt.Println(syncNotice(syncedAt))
	}

	if len(entries) == 0 {
		fmt.Println("No goals yet. Run 'driftmirror onboard' to set one up.")
		return nil
	}

	for i, entry := range entries {
		if i > 0 {
			fmt.Println()
		}
		printEntry(entry)
	}
	return nil
}

// printEntry renders one goal the way a dashboard card does: title and
// schedule, minimum action, metrics, and the most urgent signal.
func printEntry(e model.DashboardEntry) {
	m := e.Metrics
	sev := m.Severity()
	dot := theme.SeverityStyle(sev).Padding(0).Render("●")

	schedule := fmt.Sprintf("%d×/week", e.Resolution.FrequencyPerWeek)
	if p := e.Plan; p != nil {
		schedule = fmt.Sprintf("%d×/week", p.FrequencyPerWeek)
		if p.TimeWindow != "" {
			schedule += " · " + p.TimeWindow
		}
		if p.IsRevised() {
			schedule += fmt.Sprintf(" · plan v%d", p.Version)
		}
	}
	fmt.Printf("%s %s  %s\n", dot,
		headingStyle.Render(fmt.Sprintf("[%d] %s", e.Resolution.ID, e.Resolution.Title)),
		metaStyle.Render(schedule))

	action := e.Resolution.MinimumActionText
	if action == "" {
		action = "(no minimum action set)"
	}
	minutes := e.Resolution.MinMinutes
	if p := e.Plan; p != nil && p.MinMinutes > 0 {
		minutes = p.MinMinutes
	}
	actionLine := fmt.Sprintf("min: %s (%d min)", action, minutes)
	if m.MomentumActive() {
		actionLine += " · momentum minimum active"
	}
	fmt.Println(metaStyle.Render("  " + actionLine))

	fmt.Printf("  %s  %s %d/%d this week  %s\n",
		theme.StreakStyle(m.MinimumActionStreak).Render(
			fmt.Sprintf("streak %d", m.MinimumActionStreak)),
		weekBar(m.ThisWeekCount, m.TargetFrequency),
		m.ThisWeekCount, m.TargetFrequency,
		metaStyle.Render(fmt.Sprintf("%.0f%% all-time", m.MinimumActionRate*100)))

	switch {
	case sev != model.DriftLow:
		fmt.Println("  " + theme.SeverityStyle(sev).Padding(0).Render("▲ "+sev.Label()))
	case m.SuggestMomentumMinimum && m.MomentumSuggestionText != "":
		fmt.Println("  ◆ " + m.MomentumSuggestionText)
	default:
		fmt.Println("  " + goodStyle.Render("✓ "+sev.Label()))
	}
}

// weekBar renders done-of-target as the block bar the TUI cards use.
func weekBar(done, target int) string {
	if target <= 0 {
		return ""
	}
	if done > target {
		done = target
	}
	return goodStyle.Render(strings.Repeat("▰", done)) +
		metaStyle.Render(strings.Repeat("▱", target-done))
}
