package api

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// AssessStep reality-checks one wizard step against the contract built
// so far. The backend always answers; a degraded backend answers with a
// permissive stub, so the wizard never hard-blocks on this call.
func (c *Client) AssessStep(
	ctx context.Context,
	req model.AssessRequest,
) (*model.Assessment, error) {
	var res model.Assessment
	if err := c.post(ctx, "/api/onboarding/assess", req, &res); err != nil {
		return nil, fmt.Errorf("assessing %s step: %w", req.Step, err)
	}
	return &res, nil
}

// GenerateOptions produces minimum-action candidates and accountability
// suggestions for a finished goal contract.
func (c *Client) GenerateOptions(
	ctx context.Context,
	req model.OptionsRequest,
) (*model.OnboardingOptions, error) {
	var res model.OnboardingOptions
	if err := c.post(ctx, "/api/onboarding/generate", req, &res); err != nil {
		return nil, fmt.Errorf("generating onboarding options: %w", err)
	}
	return &res, nil
}
