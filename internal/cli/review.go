package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// ReviewAddCmd records a quarterly review. The backend computes the
// quarter's stats and returns them on the stored record.
type ReviewAddCmd struct {
	Wins       string `help:"What went well this quarter."`
	Challenges string `help:"What was hard."`
	Year       int    `help:"Defaults to the current year."`
	Quarter    int    `help:"1-4. Defaults to the current quarter."`
}

func (c *ReviewAddCmd) Validate() error {
	if c.Wins == "" && c.Challenges == "" {
		return fmt.Errorf("pass --wins, --challenges, or both")
	}
	return nil
}

func (c *ReviewAddCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	now := time.Now()
	year, quarter := c.Year, c.Quarter
	if year == 0 {
		year = now.Year()
	}
	if quarter == 0 {
		quarter = (int(now.Month())-1)/3 + 1
	}
	if v := validation.QuarterlyReview(year, quarter); !v.OK() {
		return fmt.Errorf("%s", v.Error())
	}

	review, err := cliCtx.Client.CreateQuarterlyReview(ctx, model.QuarterlyReviewCreate{
		Year:       year,
		Quarter:    quarter,
		Wins:       validation.Sanitize(c.Wins),
		Challenges: validation.Sanitize(c.Challenges),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s.\n", review.Label())
	printQuarterStats(review.Stats)
	return nil
}

// ReviewListCmd prints every quarterly review, newest first.
type ReviewListCmd struct{}

func (c *ReviewListCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	reviews, err := cliCtx.Client.ListQuarterlyReviews(ctx)
	var syncedAt time.Time
	if err != nil {
		if cliCtx.Cache == nil {
			return err
		}
		var cached []model.QuarterlyReview
		at, cacheErr := cliCtx.Cache.LoadSnapshot(
			ctx, store.KindReviews, store.GlobalID, &cached,
		)
		if cacheErr != nil {
			return err
		}
		reviews, syncedAt = cached, at
	} else if cliCtx.Cache != nil {
		_ = cliCtx.Cache.SaveSnapshot(ctx, store.KindReviews, store.GlobalID, reviews)
	}

	if !syncedAt.IsZero() {
		fmt.Println(syncNotice(syncedAt))
	}
	if len(reviews) == 0 {
		fmt.Println("No quarterly reviews yet. 'driftmirror review add' writes the first one.")
		return nil
	}

	for i, r := range reviews {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(headingStyle.Render(r.Label()))
		printQuarterStats(r.Stats)
		if r.Wins != "" {
			fmt.Println(goodStyle.Render("wins: ") + r.Wins)
		}
		if r.Challenges != "" {
			fmt.Println("challenges: " + r.Challenges)
		}
	}
	return nil
}

// ReviewEditCmd rewrites the wins/challenges text on a stored review.
type ReviewEditCmd struct {
	ID         int    `arg:"" help:"Review ID from 'driftmirror review list'."`
	Wins       string `help:"Replacement wins text."`
	Challenges string `help:"Replacement challenges text."`
}

func (c *ReviewEditCmd) Validate() error {
	if c.Wins == "" && c.Challenges == "" {
		return fmt.Errorf("pass --wins, --challenges, or both")
	}
	return nil
}

func (c *ReviewEditCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	var req model.QuarterlyReviewUpdate
	if c.Wins != "" {
		wins := validation.Sanitize(c.Wins)
		req.Wins = &wins
	}
	if c.Challenges != "" {
		challenges := validation.Sanitize(c.Challenges)
		req.Challenges = &challenges
	}

	review, err := cliCtx.Client.UpdateQuarterlyReview(ctx, c.ID, req)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s.\n", review.Label())
	return nil
}

func printQuarterStats(s model.QuarterStats) {
	fmt.Println(metaStyle.Render(fmt.Sprintf(
		"%d check-ins · %.0f%% completion · best streak %d · avg friction %.1f",
		s.TotalCheckins, s.CompletionRate*100, s.BestStreak, s.AvgFriction,
	)))
}
