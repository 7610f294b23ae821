package model

import (
	"fmt"
	"time"
)

// Mood bounds for diary entries.
const (
	MoodMin = 1
	MoodMax = 5
)

// MaxDiaryContentLen bounds diary entry text.
const MaxDiaryContentLen = 2000

// ClampMood forces v into the valid 1..5 range.
func ClampMood(v int) int {
	if v < MoodMin {
		return MoodMin
	}
	if v > MoodMax {
		return MoodMax
	}
	return v
}

// DiaryEntry is one free-form journal entry.
type DiaryEntry struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Mood      int       `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiaryEntryCreate is the request body for a new diary entry.
type DiaryEntryCreate struct {
	Content string `json:"content"`
	Mood    int    `json:"mood"`
}

// DiaryEntryUpdate is the request body for editing an existing entry.
// Pointer fields leave the stored value untouched when nil.
type DiaryEntryUpdate struct {
	Content *string `json:"content,omitempty"`
	Mood    *int    `json:"mood,omitempty"`
}

// QuarterStats is the backend-computed rollup shown on a quarterly
// review. Display-only; the client never writes these.
type QuarterStats struct {
	TotalCheckins  int     `json:"total_checkins"`
	CompletionRate float64 `json:"completion_rate"`
	BestStreak     int     `json:"best_streak"`
	AvgFriction    float64 `json:"avg_friction"`
}

// QuarterlyReview is one quarter's retrospective.
type QuarterlyReview struct {
	ID         int          `json:"id"`
	Year       int          `json:"year"`
	Quarter    int          `json:"quarter"`
	Wins       string       `json:"wins"`
	Challenges string       `json:"challenges"`
	Stats      QuarterStats `json:"stats"`
	CreatedAt  time.Time    `json:"created_at"`
}

// QuarterlyReviewCreate is the request body for a new quarterly review.
type QuarterlyReviewCreate struct {
	Year       int    `json:"year"`
	Quarter    int    `json:"quarter"`
	Wins       string `json:"wins"`
	Challenges string `json:"challenges"`
}

// QuarterlyReviewUpdate edits wins/challenges on an existing review.
type QuarterlyReviewUpdate struct {
	Wins       *string `json:"wins,omitempty"`
	Challenges *string `json:"challenges,omitempty"`
}

// Label renders "Q3 2026" style identifiers for list rows.
func (r QuarterlyReview) Label() string {
	return fmt.Sprintf("Q%d %d", r.Quarter, r.Year)
}
