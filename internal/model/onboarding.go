package model

// Wizard steps the assessment endpoint understands.
const (
	StepGoal          = "goal"
	StepWhy           = "why"
	StepBoundaries    = "boundaries"
	StepMinimumAction = "minimum_action"
)

// Assessment statuses.
const (
	AssessOK              = "ok"
	AssessNeedsRefinement = "needs_refinement"
)

// Accountability suggestion types.
const (
	AccountabilitySocial      = "social"
	AccountabilityCommunity   = "community"
	AccountabilityEnvironment = "environment"
	AccountabilityCommitment  = "commitment"
	AccountabilityTracking    = "tracking"
)

// Boundaries is the constraints step of the goal contract: preset chips
// plus an optional free-form entry.
type Boundaries struct {
	Chips  []string `json:"chips"`
	Custom string   `json:"custom,omitempty"`
}

// MinimumActionDraft is the minimum-action step of the goal contract.
type MinimumActionDraft struct {
	Text    string `json:"text,omitempty"`
	Minutes int    `json:"minutes,omitempty"`
}

// GoalContract accumulates the wizard's answers. Fields fill in step
// order; earlier steps stay populated so the assessor sees full context.
type GoalContract struct {
	Goal          string              `json:"goal,omitempty"`
	Why           string              `json:"why,omitempty"`
	Boundaries    *Boundaries         `json:"boundaries,omitempty"`
	MinimumAction *MinimumActionDraft `json:"minimum_action,omitempty"`
}

// AssessRequest asks the backend to reality-check one wizard step.
// UserInput carries the step's raw answer keyed the way the step expects
// ("goal", "why", "chips"/"custom", "text"/"minutes").
type AssessRequest struct {
	Step          string         `json:"step"`
	ContractSoFar GoalContract   `json:"goal_contract_so_far"`
	UserInput     map[string]any `json:"user_input"`
}

// Assessment is the backend's verdict on a wizard step.
type Assessment struct {
	Status              string   `json:"status"`
	Issues              []string `json:"issues"`
	RewriteOptions      []string `json:"rewrite_options"`
	ClarifyingQuestions []string `json:"clarifying_questions"`
	BestGuessRefinement string   `json:"best_guess_refinement,omitempty"`
	Confidence          float64  `json:"confidence"`
}

// NeedsRefinement reports whether the step should detour through the
// refinement screen instead of advancing.
func (a Assessment) NeedsRefinement() bool {
	return a.Status == AssessNeedsRefinement
}

// OptionsRequest asks the backend to generate minimum-action and
// accountability options for a finished goal contract.
type OptionsRequest struct {
	Goal       string   `json:"goal"`
	Why        string   `json:"why,omitempty"`
	Boundaries []string `json:"boundaries"`
	Frequency  int      `json:"frequency"`
}

// MinimumActionOption is one generated minimum-action candidate.
type MinimumActionOption struct {
	Text      string `json:"text"`
	Minutes   int    `json:"minutes"`
	Rationale string `json:"rationale"`
}

// AccountabilitySuggestion is one generated accountability tactic.
type AccountabilitySuggestion struct {
	Text      string `json:"text"`
	Type      string `json:"type"`
	Rationale string `json:"rationale"`
}

// OnboardingOptions is the combined generation payload the wizard
// presents on its selection screen.
type OnboardingOptions struct {
	MinimumActions            []MinimumActionOption      `json:"minimum_actions"`
	AccountabilitySuggestions []AccountabilitySuggestion `json:"accountability_suggestions"`
}
