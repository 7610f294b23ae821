package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// DiaryAddCmd writes a journal entry from the command line.
type DiaryAddCmd struct {
	Content string `arg:"" help:"Entry text."`
	Mood    int    `short:"m" help:"Mood 1 (rough) to 5 (great)." default:"3"`
}

func (c *DiaryAddCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	content := validation.Sanitize(c.Content)
	mood := model.ClampMood(c.Mood)
	if v := validation.DiaryEntry(content, mood); !v.OK() {
		return fmt.Errorf("%s", v.Error())
	}

	entry, err := cliCtx.Client.CreateDiaryEntry(ctx, model.DiaryEntryCreate{
		Content: content,
		Mood:    mood,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Entry saved (mood %d/5).\n", entry.Mood)
	return nil
}

// DiaryListCmd prints the journal, newest first.
type DiaryListCmd struct{}

func (c *DiaryListCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	entries, err := cliCtx.Client.ListDiaryEntries(ctx)
	var syncedAt time.Time
	if err != nil {
		if cliCtx.Cache == nil {
			return err
		}
		var cached []model.DiaryEntry
		at, cacheErr := cliCtx.Cache.LoadSnapshot(
			ctx, store.KindDiary, store.GlobalID, &cached,
		)
		if cacheErr != nil {
			return err
		}
		entries, syncedAt = cached, at
	} else if cliCtx.Cache != nil {
		_ = cliCtx.Cache.SaveSnapshot(ctx, store.KindDiary, store.GlobalID, entries)
	}

	if !syncedAt.IsZero() {
		fmt.Println(syncNotice(syncedAt))
	}
	if len(entries) == 0 {
		fmt.Println("No diary entries yet. 'driftmirror diary add' writes the first one.")
		return nil
	}

	for i, e := range entries {
		if i > 0 {
			fmt.Println()
		}
		mood := model.ClampMood(e.Mood)
		fmt.Printf("[%d] %s  %s\n", e.ID,
			metaStyle.Render(e.CreatedAt.Format("Jan 02 15:04")),
			theme.MoodStyle(mood).Render(strings.Repeat("●", mood)))
		fmt.Println("    " + e.Content)
	}
	return nil
}

// DiaryEditCmd edits an existing entry in place.
type DiaryEditCmd struct {
	ID      int    `arg:"" help:"Entry ID from 'driftmirror diary list'."`
	Content string `help:"Replacement text."`
	Mood    int    `help:"New mood, 1-5."`
}

func (c *DiaryEditCmd) Validate() error {
	if c.Content == "" && c.Mood == 0 {
		return fmt.Errorf("pass --content, --mood, or both")
	}
	if c.Mood != 0 && (c.Mood < model.MoodMin || c.Mood > model.MoodMax) {
		return fmt.Errorf("mood must be between %d and %d", model.MoodMin, model.MoodMax)
	}
	return nil
}

func (c *DiaryEditCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	var req model.DiaryEntryUpdate
	if c.Content != "" {
		content := validation.Sanitize(c.Content)
		// Mood is already range-checked in Validate; MoodMin just
		// satisfies the combined validator.
		if v := validation.DiaryEntry(content, model.MoodMin); !v.OK() {
			return fmt.Errorf("%s", v.Error())
		}
		req.Content = &content
	}
	if c.Mood != 0 {
		mood := c.Mood
		req.Mood = &mood
	}

	entry, err := cliCtx.Client.UpdateDiaryEntry(ctx, c.ID, req)
	if err != nil {
		return err
	}

	fmt.Printf("Entry %d updated (mood %d/5).\n", entry.ID, entry.Mood)
	return nil
}
