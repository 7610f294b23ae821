package api

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// ListMirrorReports returns the drift analyses for a goal, newest first.
func (c *Client) ListMirrorReports(
	ctx context.Context,
	resolutionID int,
) ([]model.MirrorReport, error) {
	var res []model.MirrorReport
	path := fmt.Sprintf("/api/mirror/%d/", resolutionID)
	if err := c.get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("listing mirror reports for resolution %d: %w", resolutionID, err)
	}
	return res, nil
}

// SubmitMirrorFeedback records whether a report was helpful. Callers
// treat a failure here as soft; feedback is never worth blocking on.
func (c *Client) SubmitMirrorFeedback(
	ctx context.Context,
	fb model.MirrorFeedback,
) error {
	if err := c.post(ctx, "/api/mirror/feedback/", fb, nil); err != nil {
		return fmt.Errorf("submitting mirror feedback: %w", err)
	}
	return nil
}
