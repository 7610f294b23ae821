package model

// ProgressSummary is the generated recap of everything tracked so far.
type ProgressSummary struct {
	OverallProgress string   `json:"overall_progress"`
	KeyWins         []string `json:"key_wins"`
	GrowthObserved  string   `json:"growth_observed"`
	Encouragement   string   `json:"encouragement"`
	DaysToHabit     int      `json:"days_to_habit"`
}
