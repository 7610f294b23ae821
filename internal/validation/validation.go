package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

// Issue is one field-level validation failure.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Result collects the issues found while validating a submission.
type Result struct {
	Issues []Issue
}

// OK reports whether validation passed.
func (r *Result) OK() bool {
	return len(r.Issues) == 0
}

// Error renders the issues as a single message for forms and CLI output.
func (r *Result) Error() string {
	if r.OK() {
		return ""
	}
	parts := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

func (r *Result) add(field, message string) {
	r.Issues = append(r.Issues, Issue{Field: field, Message: message})
}

// Sanitize trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces. All free-text input passes through here
// before validation and submission.
func Sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Goal validates the title of a new resolution.
func Goal(title string) *Result {
	r := &Result{}
	title = Sanitize(title)
	if title == "" {
		r.add("goal", "cannot be empty")
	}
	if utf8.RuneCountInString(title) > model.MaxTitleLen {
		r.add("goal", fmt.Sprintf("must be at most %d characters", model.MaxTitleLen))
	}
	return r
}

// Why validates the motivation text. Empty is allowed.
func Why(why string) *Result {
	r := &Result{}
	if utf8.RuneCountInString(Sanitize(why)) > model.MaxWhyLen {
		r.add("why", fmt.Sprintf("must be at most %d characters", model.MaxWhyLen))
	}
	return r
}

// MinimumAction validates the minimum-action text and duration.
func MinimumAction(text string, minutes int) *Result {
	r := &Result{}
	text = Sanitize(text)
	if text == "" {
		r.add("minimum action", "cannot be empty")
	}
	if utf8.RuneCountInString(text) > model.MaxMinimumActionLen {
		r.add("minimum action", fmt.Sprintf("must be at most %d characters", model.MaxMinimumActionLen))
	}
	if minutes < model.MinMinutesFloor || minutes > model.MinMinutesCeil {
		r.add("minutes", fmt.Sprintf("must be between %d and %d", model.MinMinutesFloor, model.MinMinutesCeil))
	}
	return r
}

// Frequency validates the weekly target.
func Frequency(perWeek int) *Result {
	r := &Result{}
	if perWeek < model.MinFrequency || perWeek > model.MaxFrequency {
		r.add("frequency", fmt.Sprintf("must be between %d and %d per week", model.MinFrequency, model.MaxFrequency))
	}
	return r
}

// CheckinNotes validates the optional free-text fields on a check-in.
func CheckinNotes(extraDone, blocker string) *Result {
	r := &Result{}
	if utf8.RuneCountInString(Sanitize(extraDone)) > model.MaxWhyLen {
		r.add("extra done", fmt.Sprintf("must be at most %d characters", model.MaxWhyLen))
	}
	if utf8.RuneCountInString(Sanitize(blocker)) > model.MaxWhyLen {
		r.add("blocker", fmt.Sprintf("must be at most %d characters", model.MaxWhyLen))
	}
	return r
}

// DiaryEntry validates a diary submission.
func DiaryEntry(content string, mood int) *Result {
	r := &Result{}
	content = Sanitize(content)
	if content == "" {
		r.add("content", "cannot be empty")
	}
	if utf8.RuneCountInString(content) > model.MaxDiaryContentLen {
		r.add("content", fmt.Sprintf("must be at most %d characters", model.MaxDiaryContentLen))
	}
	if mood < model.MoodMin || mood > model.MoodMax {
		r.add("mood", fmt.Sprintf("must be between %d and %d", model.MoodMin, model.MoodMax))
	}
	return r
}

// QuarterlyReview validates a review submission.
func QuarterlyReview(year, quarter int) *Result {
	r := &Result{}
	if year < 2000 || year > 2100 {
		r.add("year", "must be a four-digit year")
	}
	if quarter < 1 || quarter > 4 {
		r.add("quarter", "must be between 1 and 4")
	}
	return r
}
