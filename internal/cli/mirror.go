package cli

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// MirrorCmd prints the latest mirror report for a goal.
type MirrorCmd struct {
	Goal int `help:"Goal ID. Optional when only one goal is tracked."`
}

func (c *MirrorCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	entry, err := resolveEntry(ctx, cliCtx, c.Goal)
	if err != nil {
		return err
	}

	reports, err := cliCtx.Client.ListMirrorReports(ctx, entry.Resolution.ID)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Printf("No mirror report yet for %q.\n", entry.Resolution.Title)
		fmt.Println("Reports appear once drift detection has enough check-ins.")
		return nil
	}

	printMirrorReport(entry.Resolution.Title, &reports[0])
	return nil
}

func printMirrorReport(title string, r *model.MirrorReport) {
	fmt.Println(headingStyle.Render("Mirror report: " + title))
	fmt.Println(metaStyle.Render(r.CreatedAt.Format("Mon, Jan 02 15:04")))
	fmt.Println()
	fmt.Println(driftLine(r.DriftScore))

	if len(r.Findings) > 0 {
		fmt.Println()
		fmt.Println(headingStyle.Render("Findings"))
		for i, f := range r.Findings {
			fmt.Printf("%d. %s\n", i+1, f.Finding)
			for _, ev := range f.Evidence {
				fmt.Println(metaStyle.Render("   · " + ev))
			}
			if f.RootCauseHypothesis != "" {
				fmt.Println(metaStyle.Render("   likely cause: " + f.RootCauseHypothesis))
			}
		}
	}

	if r.Counterfactual != "" {
		fmt.Println()
		fmt.Println(headingStyle.Render("If nothing changes"))
		fmt.Println(r.Counterfactual)
	}

	if len(r.RecurringBlockers) > 0 {
		fmt.Println()
		fmt.Println(headingStyle.Render("Keeps getting in the way"))
		for _, b := range r.RecurringBlockers {
			fmt.Println("· " + b)
		}
	}

	if r.StrengthPattern != "" {
		fmt.Println()
		fmt.Println(headingStyle.Render("Working for you"))
		fmt.Println(goodStyle.Render(r.StrengthPattern))
	}

	if len(r.ActionableSuggestions) > 0 {
		fmt.Println()
		fmt.Println(headingStyle.Render(fmt.Sprintf(
			"Suggestions (%d)", len(r.ActionableSuggestions),
		)))
		for _, s := range r.ActionableSuggestions {
			fmt.Println("· " + s.Suggestion)
			if s.Reason != "" {
				fmt.Println(metaStyle.Render("  " + s.Reason))
			}
		}
		fmt.Println(metaStyle.Render("act on these from the goal view in the TUI"))
	}
}
