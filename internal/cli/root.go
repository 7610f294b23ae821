package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/config"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
)

// Context carries the shared dependencies into every command's Run.
// Cache is nil when snapshots are disabled or the database failed to
// open; ConfigErr and CacheErr hold the startup problems doctor reports.
type Context struct {
	Config     *config.Config
	ConfigPath string
	Client     *api.Client
	Cache      store.Store
	Debug      bool

	ConfigErr error
	CacheErr  error
}

// Styles for the one-shot commands. The interactive views go through
// internal/theme directly; this is just the handful plain stdout needs.
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	metaStyle    = lipgloss.NewStyle().Foreground(theme.ColorGray)
	goodStyle    = lipgloss.NewStyle().Foreground(theme.ColorGreen)
)

// fetchOverview loads the per-goal rollups, falling back to the snapshot
// cache the same way the TUI does. A non-zero time means the data is a
// cached copy.
func fetchOverview(ctx context.Context, c *Context) ([]model.DashboardEntry, time.Time, error) {
	entries, err := c.Client.Overview(ctx)
	if err == nil {
		if c.Cache != nil {
			_ = c.Cache.SaveSnapshot(ctx, store.KindOverview, store.GlobalID, entries)
		}
		return entries, time.Time{}, nil
	}

	if c.Cache != nil {
		var cached []model.DashboardEntry
		syncedAt, cacheErr := c.Cache.LoadSnapshot(
			ctx, store.KindOverview, store.GlobalID, &cached,
		)
		if cacheErr == nil {
			return cached, syncedAt, nil
		}
	}

	return nil, time.Time{}, err
}

// resolveEntry picks the dashboard entry a goal-scoped command acts on.
// goalID 0 means "the only goal": unambiguous when exactly one resolution
// is tracked, an error telling the user to pass --goal otherwise.
func resolveEntry(ctx context.Context, c *Context, goalID int) (*model.DashboardEntry, error) {
	entries, _, err := fetchOverview(ctx, c)
	if err != nil {
		return nil, err
	}

	if goalID > 0 {
		for i := range entries {
			if entries[i].Resolution.ID == goalID {
				return &entries[i], nil
			}
		}
		return nil, fmt.Errorf("no goal with ID %d", goalID)
	}

	switch len(entries) {
	case 0:
		return nil, fmt.Errorf("no goals yet; run 'driftmirror onboard' to set one up")
	case 1:
		return &entries[0], nil
	default:
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, fmt.Sprintf("  --goal %d  %s", e.Resolution.ID, e.Resolution.Title))
		}
		return nil, fmt.Errorf("several goals are tracked; pick one:\n%s", strings.Join(lines, "\n"))
	}
}

// listResolutions fetches the goal list, keeping the snapshot cache warm
// and falling back to it when the backend is down.
func listResolutions(ctx context.Context, c *Context) ([]model.Resolution, time.Time, error) {
	list, err := c.Client.ListResolutions(ctx)
	if err == nil {
		if c.Cache != nil {
			_ = c.Cache.SaveSnapshot(ctx, store.KindResolutions, store.GlobalID, list)
		}
		return list, time.Time{}, nil
	}

	if c.Cache != nil {
		var cached []model.Resolution
		syncedAt, cacheErr := c.Cache.LoadSnapshot(
			ctx, store.KindResolutions, store.GlobalID, &cached,
		)
		if cacheErr == nil {
			return cached, syncedAt, nil
		}
	}

	return nil, time.Time{}, err
}

// resolveResolution is resolveEntry for commands that only need the goal
// itself, not its metrics.
func resolveResolution(ctx context.Context, c *Context, goalID int) (*model.Resolution, error) {
	if goalID > 0 {
		return c.Client.GetResolution(ctx, goalID)
	}

	list, _, err := listResolutions(ctx, c)
	if err != nil {
		return nil, err
	}

	switch len(list) {
	case 0:
		return nil, fmt.Errorf("no goals yet; run 'driftmirror onboard' to set one up")
	case 1:
		return &list[0], nil
	default:
		lines := make([]string, 0, len(list))
		for _, r := range list {
			lines = append(lines, fmt.Sprintf("  %d  %s", r.ID, r.Title))
		}
		return nil, fmt.Errorf("several goals are tracked; pass the ID of one:\n%s", strings.Join(lines, "\n"))
	}
}

// syncNotice is the banner printed above data served from the cache.
func syncNotice(syncedAt time.Time) string {
	return theme.HelpStyle.Render("offline copy, last synced " + syncedAt.Format("Jan 02 15:04"))
}

// driftLine renders a drift score with its severity band.
func driftLine(score float64) string {
	sev := model.SeverityFor(score)
	return fmt.Sprintf("drift %.2f %s", score, theme.SeverityStyle(sev).Render(sev.String()))
}
