package cli

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/logger"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// GoalListCmd lists every tracked goal.
type GoalListCmd struct{}

func (c *GoalListCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	list, syncedAt, err := listResolutions(ctx, cliCtx)
	if err != nil {
		return err
	}

	if !syncedAt.IsZero() {
		fmt.Println(syncNotice(syncedAt))
	}
	if len(list) == 0 {
		fmt.Println("No goals yet. Run 'driftmirror onboard' to set one up.")
		return nil
	}

	fmt.Println(headingStyle.Render("Goals"))
	for _, r := range list {
		meta := fmt.Sprintf("%d×/week · %d min", r.FrequencyPerWeek, r.MinMinutes)
		if r.TimeWindow != "" {
			meta += " · " + r.TimeWindow
		}
		fmt.Printf("  [%d] %s  %s\n", r.ID, r.Title, metaStyle.Render(meta))
	}
	return nil
}

// GoalShowCmd prints one goal in full: resolution, current plan, metrics.
type GoalShowCmd struct {
	ID int `arg:"" optional:"" help:"Goal ID. Optional when only one goal is tracked."`
}

func (c *GoalShowCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	entry, err := resolveEntry(ctx, cliCtx, c.ID)
	if err != nil {
		return err
	}

	res := entry.Resolution
	m := entry.Metrics

	fmt.Println(headingStyle.Render(fmt.Sprintf("[%d] %s", res.ID, res.Title)))
	if res.Why != "" {
		fmt.Println(metaStyle.Render("why: " + res.Why))
	}
	fmt.Println(metaStyle.Render(fmt.Sprintf(
		"since %s · mode %s", res.CreatedAt.Format("Jan 02, 2006"), res.Mode,
	)))

	action := res.MinimumActionText
	if action == "" {
		action = "(no minimum action set)"
	}
	fmt.Println()
	fmt.Printf("minimum action: %s (%d min)\n", action, res.MinMinutes)
	if m.MomentumActive() {
		fmt.Println(metaStyle.Render("momentum minimum active until the streak recovers"))
	}

	if p := entry.Plan; p != nil {
		fmt.Println()
		fmt.Println(headingStyle.Render(fmt.Sprintf("Plan v%d", p.Version)))
		line := fmt.Sprintf("%d×/week · %d min", p.FrequencyPerWeek, p.MinMinutes)
		if p.TimeWindow != "" {
			line += " · " + p.TimeWindow
		}
		fmt.Println(line)
		if p.RecoveryStep != "" {
			fmt.Println("after a miss: " + p.RecoveryStep)
		}
		if p.IsRevised() {
			fmt.Println(metaStyle.Render(
				"adjusted from the original; 'driftmirror goal revert-plan' restores it",
			))
		}
	}

	fmt.Println()
	fmt.Println(headingStyle.Render("Numbers"))
	fmt.Printf("%s · %d/%d this week · %.0f%% all-time · %d check-ins\n",
		theme.StreakStyle(m.MinimumActionStreak).Render(
			fmt.Sprintf("streak %d", m.MinimumActionStreak)),
		m.ThisWeekCount, m.TargetFrequency,
		m.MinimumActionRate*100, m.TotalCheckins)
	fmt.Println(driftLine(m.DriftScore) + metaStyle.Render(fmt.Sprintf(
		" · %.0f%% completed · avg friction %.1f", m.CompletionRate*100, m.AvgFriction,
	)))
	return nil
}

// GoalDeleteCmd removes a goal and everything recorded against it.
type GoalDeleteCmd struct {
	ID  int  `arg:"" optional:"" help:"Goal ID. Optional when only one goal is tracked."`
	Yes bool `help:"Skip the confirmation."`
}

func (c *GoalDeleteCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	res, err := resolveResolution(ctx, cliCtx, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("This removes %q with its plans, check-ins, and mirror reports. There is no undo.\n", res.Title)
		fmt.Println("Re-run with --yes to confirm.")
		return nil
	}

	if err := cliCtx.Client.DeleteResolution(ctx, res.ID); err != nil {
		return err
	}
	if cliCtx.Cache != nil {
		if err := cliCtx.Cache.PurgeResolution(ctx, res.ID); err != nil {
			logger.Warn("purging snapshots after delete", "resolution", res.ID, "err", err)
		}
	}

	fmt.Printf("Deleted %q.\n", res.Title)
	return nil
}

// GoalSetMinimumActionCmd rewrites the minimum-action text of a goal.
type GoalSetMinimumActionCmd struct {
	Text string `arg:"" help:"New minimum action text."`
	Goal int    `help:"Goal ID. Optional when only one goal is tracked."`
}

func (c *GoalSetMinimumActionCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	res, err := resolveResolution(ctx, cliCtx, c.Goal)
	if err != nil {
		return err
	}

	text := validation.Sanitize(c.Text)
	if v := validation.MinimumAction(text, res.MinMinutes); !v.OK() {
		return fmt.Errorf("%s", v.Error())
	}

	updated, err := cliCtx.Client.UpdateMinimumAction(ctx, res.ID, model.MinimumActionUpdate{
		MinimumActionText: text,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Minimum action for %q is now: %s\n", updated.Title, updated.MinimumActionText)
	return nil
}

// GoalRevertPlanCmd restores the original plan values for a goal. The
// backend appends a fresh version carrying them; history stays intact.
type GoalRevertPlanCmd struct {
	ID  int  `arg:"" optional:"" help:"Goal ID. Optional when only one goal is tracked."`
	Yes bool `help:"Skip the confirmation."`
}

func (c *GoalRevertPlanCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	res, err := resolveResolution(ctx, cliCtx, c.ID)
	if err != nil {
		return err
	}

	plans, err := cliCtx.Client.ListPlans(ctx, res.ID)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		return fmt.Errorf("no plan recorded for %q", res.Title)
	}

	// Oldest first, so the current plan is the last element.
	current := plans[len(plans)-1]
	if !current.IsRevised() {
		fmt.Printf("The plan for %q is still at its original values.\n", res.Title)
		return nil
	}

	if !c.Yes {
		original := plans[0]
		fmt.Printf("Restoring the original plan for %q would change:\n", res.Title)
		changes := original.DiffAgainst(current)
		if len(changes) == 0 {
			fmt.Println(metaStyle.Render("  (only the recovery step differs)"))
		}
		for _, ch := range changes {
			fmt.Printf("  %s: %s → %s\n", ch.Field, ch.From, ch.To)
		}
		fmt.Println("Re-run with --yes to confirm.")
		return nil
	}

	plan, err := cliCtx.Client.RevertPlan(ctx, res.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Restored the original plan for %q. Now at version %d with the original values.\n",
		res.Title, plan.Version)
	return nil
}
