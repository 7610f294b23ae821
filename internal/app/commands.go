package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/driftmirror/driftmirror-cli/internal/logger"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/ui/detail"
)

// goalDetailLoadedMsg carries the aggregate the detail view renders. err is
// non-nil when the plan history could not be fetched; the rollup still shows.
type goalDetailLoadedMsg struct {
	detail *detail.GoalDetail
	err    error
}

// checkinResultMsg carries the backend's check-in envelope.
type checkinResultMsg struct {
	result *model.CheckinResult
	err    error
}

// insightResultMsg reports an insight action POST.
type insightResultMsg struct {
	action string
	err    error
}

// goalDeletedMsg reports a goal deletion.
type goalDeletedMsg struct {
	title string
	err   error
}

// minimumUpdatedMsg reports the minimum-action PATCH.
type minimumUpdatedMsg struct {
	res *model.Resolution
	err error
}

// planRevertedMsg reports the plan revert POST.
type planRevertedMsg struct {
	plan *model.Plan
	err  error
}

// demoSeededMsg reports the demo seed POST.
type demoSeededMsg struct{ err error }

// celebrationTickMsg drives re-renders while the celebration banner shows.
type celebrationTickMsg struct{}

// loadGoalDetail aggregates everything the detail view needs. Each fetch is
// best-effort: a goal opened while the backend is unreachable still shows
// the rollup it was opened with, or the last cached one.
func (m *Model) loadGoalDetail(entry model.DashboardEntry) tea.Cmd {
	client := m.client
	cache := m.cache
	return func() tea.Msg {
		ctx := context.Background()
		id := entry.Resolution.ID
		d := &detail.GoalDetail{Entry: entry}

		dash, err := client.GetDashboardFor(ctx, id)
		if err == nil && dash.Resolution != nil {
			d.Entry = dash.Entry()
			d.Mirror = dash.LatestMirror
			if cache != nil {
				_ = cache.SaveSnapshot(ctx, store.KindDashboard, id, dash)
			}
		} else if err != nil {
			logger.Debug("detail rollup refresh failed", "resolution", id, "error", err)
			if cache != nil {
				var cached model.Dashboard
				_, cacheErr := cache.LoadSnapshot(ctx, store.KindDashboard, id, &cached)
				if cacheErr == nil && cached.Resolution != nil {
					d.Entry = cached.Entry()
					d.Mirror = cached.LatestMirror
					d.Checkins = cached.RecentCheckins
				}
			}
		}

		plans, plansErr := client.ListPlans(ctx, id)
		if plansErr != nil {
			logger.Debug("plan history fetch failed", "resolution", id, "error", plansErr)
		}
		d.Plans = plans

		if checkins, err := client.ListCheckins(ctx, id); err == nil {
			d.Checkins = checkins
		} else {
			logger.Debug("check-in history fetch failed", "resolution", id, "error", err)
		}

		return goalDetailLoadedMsg{detail: d, err: plansErr}
	}
}

// submitCheckin posts the check-in and returns the full result envelope.
func (m *Model) submitCheckin(create model.CheckinCreate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.CreateCheckin(context.Background(), create)
		return checkinResultMsg{result: result, err: err}
	}
}

// submitInsight records an accept/constrain/ignore decision.
func (m *Model) submitInsight(create model.InsightActionCreate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.SubmitInsightAction(context.Background(), create)
		return insightResultMsg{action: create.ActionTaken, err: err}
	}
}

// deleteGoal removes the goal and drops its cached snapshots. The purge is
// best-effort; a stale snapshot for a gone goal is unreachable anyway.
func (m *Model) deleteGoal(res model.Resolution) tea.Cmd {
	client := m.client
	cache := m.cache
	return func() tea.Msg {
		ctx := context.Background()
		if err := client.DeleteResolution(ctx, res.ID); err != nil {
			return goalDeletedMsg{title: res.Title, err: err}
		}
		if cache != nil {
			if err := cache.PurgeResolution(ctx, res.ID); err != nil {
				logger.Warn("purging cached snapshots failed",
					"resolution", res.ID, "error", err)
			}
		}
		return goalDeletedMsg{title: res.Title}
	}
}

// updateMinimum patches the minimum-action text of a goal.
func (m *Model) updateMinimum(id int, text string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		res, err := client.UpdateMinimumAction(
			context.Background(), id,
			model.MinimumActionUpdate{MinimumActionText: text},
		)
		return minimumUpdatedMsg{res: res, err: err}
	}
}

// revertPlan asks the backend to restore the original plan values.
func (m *Model) revertPlan(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		plan, err := client.RevertPlan(context.Background(), id)
		return planRevertedMsg{plan: plan, err: err}
	}
}

// seedDemo asks the backend to populate demo data.
func (m *Model) seedDemo() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return demoSeededMsg{err: client.SeedDemo(context.Background())}
	}
}

// celebrationTick schedules the next celebration frame.
func (m Model) celebrationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return celebrationTickMsg{}
	})
}
