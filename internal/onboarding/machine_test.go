package onboarding

import (
	"errors"
	"strings"
	"testing"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

func validInput(m *Machine) {
	m.Goal = "Read twenty pages before bed"
	m.Why = "I want my evenings back"
	m.Chips = []string{"no phone in bed"}
	m.Frequency = 5
}

func okAssessment() model.Assessment {
	return model.Assessment{Status: model.AssessOK, Confidence: 0.9}
}

func sampleOptions() model.OnboardingOptions {
	return model.OnboardingOptions{
		MinimumActions: []model.MinimumActionOption{
			{Text: "Open the book and read one page", Minutes: 2, Rationale: "tiny start"},
			{Text: "Read for ten minutes", Minutes: 10, Rationale: "steady"},
		},
		AccountabilitySuggestions: []model.AccountabilitySuggestion{
			{Text: "Tell a friend your page count weekly", Type: model.AccountabilitySocial},
		},
	}
}

// walk drives the machine to the given state through the happy path.
func walk(t *testing.T, target State) *Machine {
	t.Helper()
	m := New()
	validInput(m)

	steps := []func() error{
		m.Submit,
		func() error { return m.AssessSucceeded(okAssessment()) },
		m.Continue,
		func() error { return m.GenerateSucceeded(sampleOptions()) },
		func() error {
			if err := m.SelectAction(0); err != nil {
				return err
			}
			if err := m.SelectAccountability(0); err != nil {
				return err
			}
			return m.Create()
		},
		m.CreateSucceeded,
	}

	for _, step := range steps {
		if m.State() == target {
			return m
		}
		if err := step(); err != nil {
			t.Fatalf("walking to %v: %v (at %v)", target, err, m.State())
		}
	}
	if m.State() != target {
		t.Fatalf("walk ended at %v, want %v", m.State(), target)
	}
	return m
}

func TestMachine_HappyPath(t *testing.T) {
	m := walk(t, StateDone)

	if m.Err != "" {
		t.Errorf("unexpected inline error: %q", m.Err)
	}

	req := m.ResolutionCreate()
	if req.Title != "Read twenty pages before bed" {
		t.Errorf("title = %q", req.Title)
	}
	if req.MinimumActionText != "Open the book and read one page" || req.MinMinutes != 2 {
		t.Errorf("minimum action not taken from the chosen option: %+v", req)
	}
	if req.FrequencyPerWeek != 5 {
		t.Errorf("frequency = %d", req.FrequencyPerWeek)
	}
}

func TestMachine_SubmitValidatesLocally(t *testing.T) {
	m := New()
	m.Goal = "   "
	m.Frequency = 3

	if err := m.Submit(); err == nil {
		t.Fatal("empty goal should fail submit")
	}
	if m.State() != StateInput {
		t.Errorf("state = %v, want input", m.State())
	}
	if m.Err == "" {
		t.Error("expected an inline error")
	}
}

func TestMachine_CannotGenerateWhileAssessing(t *testing.T) {
	m := New()
	validInput(m)
	if err := m.Submit(); err != nil {
		t.Fatal(err)
	}

	// Terminal keys pressed during the spinner must not advance the
	// wizard.
	if err := m.Continue(); !errors.Is(err, ErrWrongState) {
		t.Errorf("Continue while assessing = %v, want ErrWrongState", err)
	}
	if err := m.AcceptRewrite(); !errors.Is(err, ErrWrongState) {
		t.Errorf("AcceptRewrite while assessing = %v, want ErrWrongState", err)
	}
	if m.State() != StateAssessing {
		t.Errorf("state = %v, want assessing", m.State())
	}
}

func TestMachine_AssessFailureReturnsToInput(t *testing.T) {
	m := New()
	validInput(m)
	if err := m.Submit(); err != nil {
		t.Fatal(err)
	}

	if err := m.AssessFailed("can't reach DriftMirror, try again"); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateInput {
		t.Errorf("state = %v, want input", m.State())
	}
	if m.Err == "" {
		t.Error("expected the failure to surface inline")
	}
	if m.Assessment != nil {
		t.Error("no assessment should survive a failed call")
	}
	// The typed-in contract survives the failure.
	if m.Goal == "" || len(m.Chips) != 1 {
		t.Error("input should be preserved across a failed assess")
	}
}

func TestMachine_EditClearsAssessment(t *testing.T) {
	m := New()
	validInput(m)
	if err := m.Submit(); err != nil {
		t.Fatal(err)
	}
	a := okAssessment()
	a.RewriteOptions = []string{"Read 20 pages right after dinner"}
	if err := m.AssessSucceeded(a); err != nil {
		t.Fatal(err)
	}

	if err := m.Edit(); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateInput {
		t.Errorf("state = %v, want input", m.State())
	}
	if m.Assessment != nil {
		t.Error("stale assessment must not survive re-entry to input")
	}
}

func TestMachine_AcceptRewriteReplacesGoal(t *testing.T) {
	m := New()
	validInput(m)
	if err := m.Submit(); err != nil {
		t.Fatal(err)
	}

	a := model.Assessment{
		Status:         model.AssessNeedsRefinement,
		Issues:         []string{"too vague"},
		RewriteOptions: []string{"Read 20 pages right after dinner"},
	}
	if err := m.AssessSucceeded(a); err != nil {
		t.Fatal(err)
	}
	if err := m.AcceptRewrite(); err != nil {
		t.Fatal(err)
	}

	if m.Goal != "Read 20 pages right after dinner" {
		t.Errorf("goal = %q, rewrite not applied", m.Goal)
	}
	if m.State() != StateGenerating {
		t.Errorf("state = %v, want generating", m.State())
	}
}

func TestMachine_GenerateFailureReturnsToRefinement(t *testing.T) {
	m := New()
	validInput(m)
	m.Submit()
	m.AssessSucceeded(okAssessment())
	m.Continue()

	if err := m.GenerateFailed("the server returned an error (500)"); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateRefinement {
		t.Errorf("state = %v, want refinement", m.State())
	}
	if m.Err == "" {
		t.Error("expected inline error")
	}
}

func TestMachine_CanCreateRequiresBothSelections(t *testing.T) {
	m := walk(t, StateSelect)

	if m.CanCreate() {
		t.Error("CanCreate with no selections")
	}
	if err := m.Create(); err == nil {
		t.Error("Create with no selections should fail")
	}
	if m.State() != StateSelect {
		t.Errorf("failed create moved state to %v", m.State())
	}

	if err := m.SelectAction(1); err != nil {
		t.Fatal(err)
	}
	if m.CanCreate() {
		t.Error("CanCreate with only a minimum action")
	}

	if err := m.SelectAccountability(0); err != nil {
		t.Fatal(err)
	}
	if !m.CanCreate() {
		t.Error("CanCreate should hold with both selections")
	}
}

func TestMachine_CustomAccountabilityCounts(t *testing.T) {
	m := walk(t, StateSelect)

	m.SelectAction(0)
	if err := m.SetCustomAccountability("  post progress in the family chat  "); err != nil {
		t.Fatal(err)
	}

	if !m.CanCreate() {
		t.Error("custom accountability text should satisfy the requirement")
	}
	if got := m.Accountability(); got != "post progress in the family chat" {
		t.Errorf("accountability = %q, want sanitized custom text", got)
	}
}

func TestMachine_CreateFailureKeepsSelections(t *testing.T) {
	m := walk(t, StateSelect)
	m.SelectAction(0)
	m.SelectAccountability(0)
	if err := m.Create(); err != nil {
		t.Fatal(err)
	}

	if err := m.CreateFailed("Title too long"); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateSelect {
		t.Errorf("state = %v, want select", m.State())
	}
	if m.SelectedAction() == nil || m.Accountability() == "" {
		t.Error("selections should survive a failed create for retry")
	}
	if m.Err != "Title too long" {
		t.Errorf("err = %q", m.Err)
	}
}

func TestMachine_NothingPersistsBeforeDone(t *testing.T) {
	// The machine never creates anything itself; the only external
	// write happens after Create() moves it to creating. Walking
	// backwards from any failure must leave a machine that can still
	// reach done.
	m := walk(t, StateSelect)
	m.SelectAction(0)
	m.SelectAccountability(0)
	m.Create()
	m.CreateFailed("boom")
	if err := m.Create(); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if err := m.CreateSucceeded(); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateDone {
		t.Errorf("state = %v, want done", m.State())
	}
}

func TestMachine_BoundariesMergeChipsAndCustom(t *testing.T) {
	m := New()
	m.Chips = []string{"no phone in bed", "weekdays only"}
	m.CustomBoundary = "  never after 10pm  "

	got := m.Boundaries()
	if len(got) != 3 {
		t.Fatalf("boundaries = %v", got)
	}
	if got[2] != "never after 10pm" {
		t.Errorf("custom boundary not sanitized: %q", got[2])
	}

	req := m.OptionsRequest()
	if len(req.Boundaries) != 3 {
		t.Errorf("options request boundaries = %v", req.Boundaries)
	}
}

func TestMachine_AssessRequestShape(t *testing.T) {
	m := New()
	validInput(m)
	m.Submit()

	req := m.AssessRequest()
	if req.Step != model.StepGoal {
		t.Errorf("step = %q", req.Step)
	}
	if req.ContractSoFar.Goal != m.Goal || req.ContractSoFar.Why != m.Why {
		t.Errorf("contract not carried: %+v", req.ContractSoFar)
	}
	if req.UserInput["goal"] != m.Goal {
		t.Errorf("user input = %v", req.UserInput)
	}
	if strings.TrimSpace(req.ContractSoFar.Boundaries.Chips[0]) == "" {
		t.Error("chips missing from contract")
	}
}
