package api

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// CreateResolution stores a new goal. This is the only write that ends
// the onboarding wizard; nothing earlier in the flow persists anything.
func (c *Client) CreateResolution(
	ctx context.Context,
	req model.ResolutionCreate,
) (*model.Resolution, error) {
	var res model.Resolution
	if err := c.post(ctx, "/api/resolutions/", req, &res); err != nil {
		return nil, fmt.Errorf("creating resolution: %w", err)
	}
	return &res, nil
}

// ListResolutions returns all goals, newest first.
func (c *Client) ListResolutions(ctx context.Context) ([]model.Resolution, error) {
	var res []model.Resolution
	if err := c.get(ctx, "/api/resolutions/", &res); err != nil {
		return nil, fmt.Errorf("listing resolutions: %w", err)
	}
	return res, nil
}

// GetResolution fetches a single goal by id.
func (c *Client) GetResolution(ctx context.Context, id int) (*model.Resolution, error) {
	var res model.Resolution
	path := fmt.Sprintf("/api/resolutions/%d", id)
	if err := c.get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("fetching resolution %d: %w", id, err)
	}
	return &res, nil
}

// DeleteResolution removes a goal and everything hanging off it.
func (c *Client) DeleteResolution(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/resolutions/%d", id)
	if err := c.delete(ctx, path); err != nil {
		return fmt.Errorf("deleting resolution %d: %w", id, err)
	}
	return nil
}

// UpdateMinimumAction patches only the minimum-action text of a goal.
func (c *Client) UpdateMinimumAction(
	ctx context.Context,
	id int,
	req model.MinimumActionUpdate,
) (*model.Resolution, error) {
	var res model.Resolution
	path := fmt.Sprintf("/api/resolutions/%d/minimum-action", id)
	if err := c.patch(ctx, path, req, &res); err != nil {
		return nil, fmt.Errorf("updating minimum action for resolution %d: %w", id, err)
	}
	return &res, nil
}

// RevertPlan asks the backend to restore the original plan values. The
// backend appends a fresh plan version carrying them; it never rewinds
// the version counter.
func (c *Client) RevertPlan(ctx context.Context, id int) (*model.Plan, error) {
	var plan model.Plan
	path := fmt.Sprintf("/api/resolutions/%d/revert-plan", id)
	if err := c.post(ctx, path, nil, &plan); err != nil {
		return nil, fmt.Errorf("reverting plan for resolution %d: %w", id, err)
	}
	return &plan, nil
}

// SubmitInsightAction records an accept/constrain/ignore decision on an
// insight the backend surfaced.
func (c *Client) SubmitInsightAction(
	ctx context.Context,
	req model.InsightActionCreate,
) (*model.InsightAction, error) {
	var res model.InsightAction
	path := fmt.Sprintf("/api/resolutions/%d/insights/actions", req.ResolutionID)
	if err := c.post(ctx, path, req, &res); err != nil {
		return nil, fmt.Errorf("recording insight action: %w", err)
	}
	return &res, nil
}

// ListPlans returns every plan version for a goal, oldest first.
func (c *Client) ListPlans(ctx context.Context, resolutionID int) ([]model.Plan, error) {
	var plans []model.Plan
	path := fmt.Sprintf("/api/resolutions/%d/plans", resolutionID)
	if err := c.get(ctx, path, &plans); err != nil {
		return nil, fmt.Errorf("listing plans for resolution %d: %w", resolutionID, err)
	}
	return plans, nil
}

// CurrentPlan returns the latest plan version for a goal.
func (c *Client) CurrentPlan(ctx context.Context, resolutionID int) (*model.Plan, error) {
	var plan model.Plan
	path := fmt.Sprintf("/api/resolutions/%d/current-plan", resolutionID)
	if err := c.get(ctx, path, &plan); err != nil {
		return nil, fmt.Errorf("fetching current plan for resolution %d: %w", resolutionID, err)
	}
	return &plan, nil
}
