// Package onboarding holds the wizard's state machine, kept free of any
// UI concern so its transitions can be tested directly. The UI layer
// wraps a Machine, renders its state, and feeds API results back in.
package onboarding

import (
	"errors"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// State of the wizard.
type State int

const (
	// StateInput collects the goal contract: goal, why, boundaries,
	// frequency.
	StateInput State = iota

	// StateAssessing waits on the reality-check call. Input events are
	// ignored here.
	StateAssessing

	// StateRefinement shows the assessment and waits for the user to
	// edit, accept the rewrite, or continue as-is.
	StateRefinement

	// StateGenerating waits on the option-generation call.
	StateGenerating

	// StateSelect waits for the user to pick one minimum action and one
	// accountability item.
	StateSelect

	// StateCreating waits on the resolution create call.
	StateCreating

	// StateDone means the resolution was created.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInput:
		return "input"
	case StateAssessing:
		return "assessing"
	case StateRefinement:
		return "refinement"
	case StateGenerating:
		return "generating"
	case StateSelect:
		return "select"
	case StateCreating:
		return "creating"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// none marks an empty selection.
const none = -1

// ErrWrongState is returned when an event does not apply to the current
// state. Callers treat it as "ignore the input", not a failure.
var ErrWrongState = errors.New("event does not apply to current state")

// Machine is the wizard. Zero side effects: transitions that need an
// API call move into a waiting state and the owner makes the call,
// reporting back via the *Succeeded/*Failed methods. Nothing persists
// until the final create succeeds.
type Machine struct {
	state State

	// Contract input.
	Goal           string
	Why            string
	Chips          []string
	CustomBoundary string
	Frequency      int

	// Assessment of the contract, present from refinement onward until
	// Edit clears it.
	Assessment *model.Assessment

	// Generated options, present from select onward.
	Options *model.OnboardingOptions

	// Selections on the select screen.
	ActionIndex          int
	AccountabilityIndex  int
	CustomAccountability string

	// Err is the inline error for the current state, cleared on every
	// successful transition.
	Err string
}

// New returns a machine at the input step.
func New() *Machine {
	return &Machine{
		state:               StateInput,
		Frequency:           3,
		ActionIndex:         none,
		AccountabilityIndex: none,
	}
}

// State reports the current wizard state.
func (m *Machine) State() State {
	return m.state
}

// Boundaries collects chips and the custom entry into one list.
func (m *Machine) Boundaries() []string {
	out := make([]string, 0, len(m.Chips)+1)
	out = append(out, m.Chips...)
	if b := validation.Sanitize(m.CustomBoundary); b != "" {
		out = append(out, b)
	}
	return out
}

// Submit validates the contract input and moves to assessing. A
// validation failure stays on input with the issues as the inline error.
func (m *Machine) Submit() error {
	if m.state != StateInput {
		return ErrWrongState
	}

	m.Goal = validation.Sanitize(m.Goal)
	m.Why = validation.Sanitize(m.Why)

	r := validation.Goal(m.Goal)
	if why := validation.Why(m.Why); !why.OK() {
		r.Issues = append(r.Issues, why.Issues...)
	}
	if freq := validation.Frequency(m.Frequency); !freq.OK() {
		r.Issues = append(r.Issues, freq.Issues...)
	}
	if !r.OK() {
		m.Err = r.Error()
		return errors.New(m.Err)
	}

	m.Err = ""
	m.state = StateAssessing
	return nil
}

// AssessRequest builds the reality-check request for the submitted
// contract. Valid while assessing.
func (m *Machine) AssessRequest() model.AssessRequest {
	contract := model.GoalContract{
		Goal: m.Goal,
		Why:  m.Why,
		Boundaries: &model.Boundaries{
			Chips:  m.Chips,
			Custom: validation.Sanitize(m.CustomBoundary),
		},
	}
	return model.AssessRequest{
		Step:          model.StepGoal,
		ContractSoFar: contract,
		UserInput:     map[string]any{"goal": m.Goal},
	}
}

// AssessSucceeded records the verdict and moves to refinement. The user
// confirms even an "ok" verdict before generation starts.
func (m *Machine) AssessSucceeded(a model.Assessment) error {
	if m.state != StateAssessing {
		return ErrWrongState
	}
	m.Assessment = &a
	m.Err = ""
	m.state = StateRefinement
	return nil
}

// AssessFailed returns to input with an inline error. Nothing from the
// failed call is kept.
func (m *Machine) AssessFailed(msg string) error {
	if m.state != StateAssessing {
		return ErrWrongState
	}
	m.Assessment = nil
	m.Err = msg
	m.state = StateInput
	return nil
}

// Edit returns to input for another pass, discarding the assessment so
// stale suggestions cannot survive re-entry.
func (m *Machine) Edit() error {
	if m.state != StateRefinement {
		return ErrWrongState
	}
	m.Assessment = nil
	m.Err = ""
	m.state = StateInput
	return nil
}

// AcceptRewrite replaces the goal with the assessment's rewrite and
// moves on to generation. Falls back to Continue semantics when the
// assessment offered no rewrite.
func (m *Machine) AcceptRewrite() error {
	if m.state != StateRefinement {
		return ErrWrongState
	}
	if m.Assessment != nil {
		if len(m.Assessment.RewriteOptions) > 0 {
			m.Goal = m.Assessment.RewriteOptions[0]
		} else if m.Assessment.BestGuessRefinement != "" {
			m.Goal = m.Assessment.BestGuessRefinement
		}
	}
	m.Err = ""
	m.state = StateGenerating
	return nil
}

// Continue keeps the contract as-is and moves on to generation.
func (m *Machine) Continue() error {
	if m.state != StateRefinement {
		return ErrWrongState
	}
	m.Err = ""
	m.state = StateGenerating
	return nil
}

// OptionsRequest builds the generation request. Valid while generating.
func (m *Machine) OptionsRequest() model.OptionsRequest {
	return model.OptionsRequest{
		Goal:       m.Goal,
		Why:        m.Why,
		Boundaries: m.Boundaries(),
		Frequency:  m.Frequency,
	}
}

// GenerateSucceeded records the options and moves to select, resetting
// any earlier selections.
func (m *Machine) GenerateSucceeded(opts model.OnboardingOptions) error {
	if m.state != StateGenerating {
		return ErrWrongState
	}
	m.Options = &opts
	m.ActionIndex = none
	m.AccountabilityIndex = none
	m.CustomAccountability = ""
	m.Err = ""
	m.state = StateSelect
	return nil
}

// GenerateFailed returns to refinement with an inline error so the user
// can retry or go back and edit.
func (m *Machine) GenerateFailed(msg string) error {
	if m.state != StateGenerating {
		return ErrWrongState
	}
	m.Err = msg
	m.state = StateRefinement
	return nil
}

// SelectAction picks a minimum-action option by index.
func (m *Machine) SelectAction(i int) error {
	if m.state != StateSelect {
		return ErrWrongState
	}
	if m.Options == nil || i < 0 || i >= len(m.Options.MinimumActions) {
		return errors.New("minimum action index out of range")
	}
	m.ActionIndex = i
	return nil
}

// SelectAccountability picks an accountability suggestion by index,
// clearing any custom text.
func (m *Machine) SelectAccountability(i int) error {
	if m.state != StateSelect {
		return ErrWrongState
	}
	if m.Options == nil || i < 0 || i >= len(m.Options.AccountabilitySuggestions) {
		return errors.New("accountability index out of range")
	}
	m.AccountabilityIndex = i
	m.CustomAccountability = ""
	return nil
}

// SetCustomAccountability replaces the picked suggestion with free text.
func (m *Machine) SetCustomAccountability(text string) error {
	if m.state != StateSelect {
		return ErrWrongState
	}
	m.CustomAccountability = validation.Sanitize(text)
	if m.CustomAccountability != "" {
		m.AccountabilityIndex = none
	}
	return nil
}

// SelectedAction returns the chosen minimum action, or nil.
func (m *Machine) SelectedAction() *model.MinimumActionOption {
	if m.Options == nil || m.ActionIndex == none {
		return nil
	}
	opt := m.Options.MinimumActions[m.ActionIndex]
	return &opt
}

// Accountability returns the chosen accountability text, custom or
// picked, or empty when neither is set.
func (m *Machine) Accountability() string {
	if m.CustomAccountability != "" {
		return m.CustomAccountability
	}
	if m.Options != nil && m.AccountabilityIndex != none {
		return m.Options.AccountabilitySuggestions[m.AccountabilityIndex].Text
	}
	return ""
}

// CanCreate reports whether both required selections are present.
func (m *Machine) CanCreate() bool {
	return m.state == StateSelect &&
		m.SelectedAction() != nil &&
		m.Accountability() != ""
}

// Create moves to creating once both selections are made.
func (m *Machine) Create() error {
	if m.state != StateSelect {
		return ErrWrongState
	}
	if !m.CanCreate() {
		m.Err = "pick a minimum action and an accountability item first"
		return errors.New(m.Err)
	}
	m.Err = ""
	m.state = StateCreating
	return nil
}

// ResolutionCreate builds the create request from the contract and the
// chosen minimum action. Valid while creating.
func (m *Machine) ResolutionCreate() model.ResolutionCreate {
	req := model.ResolutionCreate{
		Title:            m.Goal,
		Why:              m.Why,
		Mode:             model.ModePersonalGrowth,
		FrequencyPerWeek: m.Frequency,
	}
	if action := m.SelectedAction(); action != nil {
		req.MinimumActionText = action.Text
		req.MinMinutes = action.Minutes
	}
	return req
}

// CreateSucceeded finishes the wizard.
func (m *Machine) CreateSucceeded() error {
	if m.state != StateCreating {
		return ErrWrongState
	}
	m.Err = ""
	m.state = StateDone
	return nil
}

// CreateFailed returns to select with an inline error; the selections
// are kept so the user can simply retry.
func (m *Machine) CreateFailed(msg string) error {
	if m.state != StateCreating {
		return ErrWrongState
	}
	m.Err = msg
	m.state = StateSelect
	return nil
}
