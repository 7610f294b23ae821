package model

import "time"

// Goal modes understood by the backend.
const (
	ModePersonalGrowth = "personal_growth"
	ModeProductivity   = "productivity"
)

// Time windows a plan can target.
const (
	WindowMorning   = "morning"
	WindowAfternoon = "afternoon"
	WindowEvening   = "evening"
	WindowNight     = "night"
)

// Field limits enforced by the backend; the client validates against the
// same bounds before submitting.
const (
	MaxTitleLen         = 255
	MaxWhyLen           = 500
	MaxMinimumActionLen = 300
	MinFrequency        = 1
	MaxFrequency        = 7
	MinMinutesFloor     = 1
	MinMinutesCeil      = 120
)

// Resolution is the user's committed goal: the durable output of the
// onboarding wizard. It is created once and afterwards touched only through
// narrow PATCH-style operations (minimum-action text) or deleted outright.
type Resolution struct {
	ID                int       `json:"id"`
	Title             string    `json:"title"`
	Why               string    `json:"why,omitempty"`
	Mode              string    `json:"mode"`
	FrequencyPerWeek  int       `json:"frequency_per_week"`
	MinMinutes        int       `json:"min_minutes"`
	MinimumActionText string    `json:"minimum_action_text,omitempty"`
	TimeWindow        string    `json:"time_window,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ResolutionCreate is the request body for creating a resolution at the end
// of onboarding.
type ResolutionCreate struct {
	Title             string `json:"title"`
	Why               string `json:"why,omitempty"`
	Mode              string `json:"mode,omitempty"`
	FrequencyPerWeek  int    `json:"frequency_per_week"`
	MinMinutes        int    `json:"min_minutes"`
	MinimumActionText string `json:"minimum_action_text,omitempty"`
	TimeWindow        string `json:"time_window,omitempty"`
}

// MinimumActionUpdate is the PATCH body for editing the minimum-action text
// of an existing resolution.
type MinimumActionUpdate struct {
	MinimumActionText string `json:"minimum_action_text"`
}
