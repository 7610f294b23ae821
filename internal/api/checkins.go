package api

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// CreateCheckin records a check-in and returns the full result envelope:
// the stored record, the fresh drift score, and a mirror report when the
// backend decided this check-in warranted one.
func (c *Client) CreateCheckin(
	ctx context.Context,
	req model.CheckinCreate,
) (*model.CheckinResult, error) {
	req.Friction = model.ClampFriction(req.Friction)

	var res model.CheckinResult
	if err := c.post(ctx, "/api/checkins/", req, &res); err != nil {
		return nil, fmt.Errorf("creating check-in: %w", err)
	}
	return &res, nil
}

// ListCheckins returns the check-in history for a goal, newest first.
func (c *Client) ListCheckins(
	ctx context.Context,
	resolutionID int,
) ([]model.Checkin, error) {
	var res []model.Checkin
	path := fmt.Sprintf("/api/checkins/%d/", resolutionID)
	if err := c.get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("listing check-ins for resolution %d: %w", resolutionID, err)
	}
	return res, nil
}
