package cli

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// CheckinCmd records a check-in without opening the TUI. Input passes
// through the same sanitization and clamping as the interactive form.
type CheckinCmd struct {
	Goal     int    `help:"Goal ID. Optional when only one goal is tracked."`
	Done     bool   `help:"The minimum action happened."`
	Missed   bool   `help:"The minimum action did not happen."`
	Note     string `short:"n" help:"Anything done beyond the minimum."`
	Blocker  string `short:"b" help:"What got in the way."`
	Friction int    `short:"f" help:"How hard it felt, 1 (easy) to 3 (hard)." default:"2"`
}

func (c *CheckinCmd) Validate() error {
	if c.Done == c.Missed {
		return fmt.Errorf("pass exactly one of --done or --missed")
	}
	if res := validation.CheckinNotes(c.Note, c.Blocker); !res.OK() {
		return fmt.Errorf("%s", res.Error())
	}
	return nil
}

func (c *CheckinCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	entry, err := resolveEntry(ctx, cliCtx, c.Goal)
	if err != nil {
		return err
	}

	result, err := cliCtx.Client.CreateCheckin(ctx, model.CheckinCreate{
		ResolutionID:     entry.Resolution.ID,
		DidMinimumAction: c.Done,
		ExtraDone:        validation.Sanitize(c.Note),
		Blocker:          validation.Sanitize(c.Blocker),
		Friction:         model.ClampFriction(c.Friction),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Check-in recorded for %q.\n", entry.Resolution.Title)
	if result.Checkin.DidMinimumAction {
		fmt.Println(theme.CelebrateStyle.Render("✔ Minimum done. The streak holds."))
	} else {
		fmt.Println("Showing up at all still counts.")
	}
	fmt.Println(driftLine(result.DriftScore))

	if result.PlanUpdated {
		fmt.Println("The plan picked up an adjustment; 'driftmirror goal show' has the details.")
	}

	if result.DriftTriggered && result.MirrorReport != nil {
		fmt.Println()
		printMirrorBrief(result.MirrorReport)
		fmt.Println(metaStyle.Render(fmt.Sprintf(
			"full report: driftmirror mirror --goal %d", entry.Resolution.ID,
		)))
	}

	if cliCtx.Debug && result.Debug != nil {
		printCheckinDebug(result.Debug)
	}

	return nil
}

// printMirrorBrief shows the top of a fresh report inline after a
// drift-triggering check-in.
func printMirrorBrief(r *model.MirrorReport) {
	sev := r.Severity()
	fmt.Println(theme.SeverityStyle(sev).Padding(0).Render("▲ " + sev.Label()))
	if len(r.Findings) > 0 {
		fmt.Println("  " + r.Findings[0].Finding)
	}
	if n := len(r.ActionableSuggestions); n > 0 {
		fmt.Printf("  %d suggestion(s) waiting.\n", n)
	}
}

func printCheckinDebug(d *model.CheckinDebug) {
	fmt.Println()
	fmt.Println(metaStyle.Render("debug:"))
	for _, s := range d.Signals {
		fmt.Println(metaStyle.Render(fmt.Sprintf(
			"  signal %s (%.2f): %s", s.SignalType, s.Severity, s.Content,
		)))
	}
	for _, rule := range d.RulesApplied {
		fmt.Println(metaStyle.Render("  rule " + rule))
	}
}
