package api

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// GetDashboard returns the rollup for the most recently created goal.
// Resolution is nil in the response when nothing is tracked yet.
func (c *Client) GetDashboard(ctx context.Context) (*model.Dashboard, error) {
	var res model.Dashboard
	if err := c.get(ctx, "/api/dashboard/", &res); err != nil {
		return nil, fmt.Errorf("fetching dashboard: %w", err)
	}
	return &res, nil
}

// GetDashboardFor returns the rollup for one goal.
func (c *Client) GetDashboardFor(
	ctx context.Context,
	resolutionID int,
) (*model.Dashboard, error) {
	var res model.Dashboard
	path := fmt.Sprintf("/api/dashboard/%d/", resolutionID)
	if err := c.get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("fetching dashboard for resolution %d: %w", resolutionID, err)
	}
	return &res, nil
}

// Overview assembles the card list for every tracked goal. The backend
// serves one goal's rollup per request, so this lists the resolutions
// and fetches each rollup in turn.
func (c *Client) Overview(ctx context.Context) ([]model.DashboardEntry, error) {
	resolutions, err := c.ListResolutions(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.DashboardEntry, 0, len(resolutions))
	for _, res := range resolutions {
		dash, err := c.GetDashboardFor(ctx, res.ID)
		if err != nil {
			return nil, err
		}
		if dash.Resolution == nil {
			continue
		}
		entries = append(entries, dash.Entry())
	}
	return entries, nil
}

// GetProgressSummary returns the generated progress recap for a goal.
func (c *Client) GetProgressSummary(
	ctx context.Context,
	resolutionID int,
) (*model.ProgressSummary, error) {
	var res model.ProgressSummary
	path := fmt.Sprintf("/api/dashboard/%d/summary/", resolutionID)
	if err := c.get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("fetching progress summary for resolution %d: %w", resolutionID, err)
	}
	return &res, nil
}
