package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
)

// SummaryCmd prints the generated progress recap for a goal.
type SummaryCmd struct {
	Goal int `help:"Goal ID. Optional when only one goal is tracked."`
}

func (c *SummaryCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	entry, err := resolveEntry(ctx, cliCtx, c.Goal)
	if err != nil {
		return err
	}

	s, err := cliCtx.Client.GetProgressSummary(ctx, entry.Resolution.ID)
	if err != nil {
		return err
	}

	printSummary(entry.Resolution.Title, s)
	return nil
}

func printSummary(title string, s *model.ProgressSummary) {
	fmt.Println(headingStyle.Render("Progress summary: " + title))

	if s.OverallProgress != "" {
		fmt.Println()
		fmt.Println(s.OverallProgress)
	}

	if len(s.KeyWins) > 0 {
		fmt.Println()
		fmt.Println(headingStyle.Render("Wins"))
		for _, w := range s.KeyWins {
			fmt.Println(goodStyle.Render("✓ ") + w)
		}
	}

	if s.GrowthObserved != "" {
		fmt.Println()
		fmt.Println(headingStyle.Render("Growth"))
		fmt.Println(s.GrowthObserved)
	}

	if s.DaysToHabit > 0 {
		fmt.Println()
		fmt.Printf("At this pace the habit locks in after about %d more days.\n", s.DaysToHabit)
	}

	if s.Encouragement != "" {
		fmt.Println()
		fmt.Println(lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.ColorBlue).
			Render(s.Encouragement))
	}
}
