package api

import (
	"context"
	"fmt"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// CreateDiaryEntry stores a new journal entry.
func (c *Client) CreateDiaryEntry(
	ctx context.Context,
	req model.DiaryEntryCreate,
) (*model.DiaryEntry, error) {
	var res model.DiaryEntry
	if err := c.post(ctx, "/api/diary/", req, &res); err != nil {
		return nil, fmt.Errorf("creating diary entry: %w", err)
	}
	return &res, nil
}

// ListDiaryEntries returns journal entries, newest first.
func (c *Client) ListDiaryEntries(ctx context.Context) ([]model.DiaryEntry, error) {
	var res []model.DiaryEntry
	if err := c.get(ctx, "/api/diary/", &res); err != nil {
		return nil, fmt.Errorf("listing diary entries: %w", err)
	}
	return res, nil
}

// UpdateDiaryEntry edits an existing journal entry.
func (c *Client) UpdateDiaryEntry(
	ctx context.Context,
	id int,
	req model.DiaryEntryUpdate,
) (*model.DiaryEntry, error) {
	var res model.DiaryEntry
	path := fmt.Sprintf("/api/diary/%d", id)
	if err := c.patch(ctx, path, req, &res); err != nil {
		return nil, fmt.Errorf("updating diary entry %d: %w", id, err)
	}
	return &res, nil
}

// CreateQuarterlyReview stores a new quarterly review. The backend
// computes the quarter's stats and returns them on the stored record.
func (c *Client) CreateQuarterlyReview(
	ctx context.Context,
	req model.QuarterlyReviewCreate,
) (*model.QuarterlyReview, error) {
	var res model.QuarterlyReview
	if err := c.post(ctx, "/api/reviews/", req, &res); err != nil {
		return nil, fmt.Errorf("creating quarterly review: %w", err)
	}
	return &res, nil
}

// ListQuarterlyReviews returns all quarterly reviews, newest first.
func (c *Client) ListQuarterlyReviews(ctx context.Context) ([]model.QuarterlyReview, error) {
	var res []model.QuarterlyReview
	if err := c.get(ctx, "/api/reviews/", &res); err != nil {
		return nil, fmt.Errorf("listing quarterly reviews: %w", err)
	}
	return res, nil
}

// UpdateQuarterlyReview edits the wins/challenges on an existing review.
func (c *Client) UpdateQuarterlyReview(
	ctx context.Context,
	id int,
	req model.QuarterlyReviewUpdate,
) (*model.QuarterlyReview, error) {
	var res model.QuarterlyReview
	path := fmt.Sprintf("/api/reviews/%d", id)
	if err := c.patch(ctx, path, req, &res); err != nil {
		return nil, fmt.Errorf("updating quarterly review %d: %w", id, err)
	}
	return &res, nil
}
