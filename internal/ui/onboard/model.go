package onboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/onboarding"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
)

// DoneMsg signals the wizard finished and a resolution now exists.
type DoneMsg struct {
	Resolution model.Resolution
}

// CancelMsg signals the wizard was abandoned. Nothing was persisted.
type CancelMsg struct{}

// assessResultMsg carries the reality-check verdict.
type assessResultMsg struct {
	assessment *model.Assessment
	err        error
}

// optionsResultMsg carries generated minimum-action and accountability
// options.
type optionsResultMsg struct {
	options *model.OnboardingOptions
	err     error
}

// createResultMsg carries the final create result.
type createResultMsg struct {
	resolution *model.Resolution
	err        error
}

// boundaryChips are the preset "what I won't sacrifice" constraints
// offered on the input step. Free text covers everything else.
var boundaryChips = []string{
	"Sleep",
	"Family time",
	"Work hours",
	"Weekends",
	"Budget",
	"Existing routines",
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	goal      string
	why       string
	chips     []string
	custom    string
	frequency int

	actionIdx         int
	accountabilityIdx int
	customAcct        string
}

// Model is the onboarding wizard view. All flow decisions live in the
// onboarding.Machine; this model renders the current state, feeds user
// events in, and runs the API calls the machine is waiting on.
type Model struct {
	machine *onboarding.Machine
	client  *api.Client

	inputForm  *huh.Form
	selectForm *huh.Form
	fb         *formBindings
	spinner    spinner.Model

	width  int
	height int
}

// New creates the wizard view.
func New(client *api.Client, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:  client,
		fb:      &formBindings{},
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Start resets the wizard to a fresh input step.
func (m *Model) Start() tea.Cmd {
	m.machine = onboarding.New()
	m.fb.goal = ""
	m.fb.why = ""
	m.fb.chips = nil
	m.fb.custom = ""
	m.fb.frequency = m.machine.Frequency
	m.fb.actionIdx = 0
	m.fb.accountabilityIdx = 0
	m.fb.customAcct = ""
	m.inputForm = m.buildInputForm()
	return m.inputForm.Init()
}

// Active reports whether a wizard run is in progress.
func (m Model) Active() bool {
	return m.machine != nil && m.machine.State() != onboarding.StateDone
}

// Update handles messages for the wizard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.machine == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case assessResultMsg:
		return m.handleAssessResult(msg)
	case optionsResultMsg:
		return m.handleOptionsResult(msg)
	case createResultMsg:
		return m.handleCreateResult(msg)
	case spinner.TickMsg:
		if m.waiting() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.machine.State() {
	case onboarding.StateInput:
		return m.updateInputForm(msg)
	case onboarding.StateRefinement:
		if key, ok := msg.(tea.KeyMsg); ok {
			return m.handleRefinementKeys(key)
		}
	case onboarding.StateSelect:
		return m.updateSelectForm(msg)
	case onboarding.StateAssessing, onboarding.StateGenerating, onboarding.StateCreating:
		// Waiting on the backend; only esc is honored.
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	return m, nil
}

// waiting reports whether the machine is blocked on an API call.
func (m Model) waiting() bool {
	switch m.machine.State() {
	case onboarding.StateAssessing, onboarding.StateGenerating, onboarding.StateCreating:
		return true
	}
	return false
}

// --- Input step ---

func (m *Model) buildInputForm() *huh.Form {
	chipOpts := make([]huh.Option[string], len(boundaryChips))
	for i, c := range boundaryChips {
		chipOpts[i] = huh.NewOption(c, c)
	}

	freqOpts := make([]huh.Option[int], 0, model.MaxFrequency)
	for f := model.MinFrequency; f <= model.MaxFrequency; f++ {
		label := fmt.Sprintf("%d× per week", f)
		if f == model.MaxFrequency {
			label = "every day"
		}
		freqOpts = append(freqOpts, huh.NewOption(label, f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What do you want to stick to?").
				Placeholder("Run three times a week").
				Value(&m.fb.goal).
				Validate(validateRequired("Goal")),
			huh.NewText().
				Title("Why does it matter?").
				Placeholder("Optional, but the mirror quotes it back to you later...").
				Value(&m.fb.why),
			huh.NewMultiSelect[string]().
				Title("What won't you sacrifice for it?").
				Options(chipOpts...).
				Value(&m.fb.chips),
			huh.NewInput().
				Title("Any other boundary?").
				Placeholder("Optional free text").
				Value(&m.fb.custom),
			huh.NewSelect[int]().
				Title("How often?").
				Options(freqOpts...).
				Value(&m.fb.frequency),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateInputForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.inputForm == nil {
		return m, nil
	}

	mdl, cmd := m.inputForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.inputForm = f
	}

	if m.inputForm.State == huh.StateCompleted {
		return m.submitInput()
	}
	if m.inputForm.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

func (m Model) submitInput() (Model, tea.Cmd) {
	m.machine.Goal = m.fb.goal
	m.machine.Why = m.fb.why
	m.machine.Chips = m.fb.chips
	m.machine.CustomBoundary = m.fb.custom
	m.machine.Frequency = m.fb.frequency

	if err := m.machine.Submit(); err != nil {
		// Validation failed; reopen the form with values intact.
		m.inputForm = m.buildInputForm()
		return m, m.inputForm.Init()
	}

	return m, tea.Batch(m.spinner.Tick, m.assess())
}

// --- Refinement step ---

func (m Model) handleRefinementKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		if err := m.machine.AcceptRewrite(); err != nil {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.generate())

	case "c", "enter":
		if err := m.machine.Continue(); err != nil {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.generate())

	case "e":
		if err := m.machine.Edit(); err != nil {
			return m, nil
		}
		m.fb.goal = m.machine.Goal
		m.inputForm = m.buildInputForm()
		return m, m.inputForm.Init()

	case "esc":
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, nil
}

// --- Select step ---

func (m *Model) buildSelectForm() *huh.Form {
	opts := m.machine.Options

	actionOpts := make([]huh.Option[int], len(opts.MinimumActions))
	for i, a := range opts.MinimumActions {
		actionOpts[i] = huh.NewOption(
			fmt.Sprintf("%s (%d min)", a.Text, a.Minutes), i,
		)
	}

	acctOpts := make([]huh.Option[int], 0, len(opts.AccountabilitySuggestions)+1)
	for i, a := range opts.AccountabilitySuggestions {
		acctOpts = append(acctOpts, huh.NewOption(
			fmt.Sprintf("%s [%s]", a.Text, a.Type), i,
		))
	}
	acctOpts = append(acctOpts, huh.NewOption("Something else (type below)", -1))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Pick your minimum action").
				Description("The smallest version that still counts").
				Options(actionOpts...).
				Value(&m.fb.actionIdx),
			huh.NewSelect[int]().
				Title("Pick an accountability anchor").
				Options(acctOpts...).
				Value(&m.fb.accountabilityIdx),
			huh.NewInput().
				Title("Custom accountability").
				Placeholder("Only needed if you picked 'something else'").
				Value(&m.fb.customAcct),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateSelectForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.selectForm == nil {
		return m, nil
	}

	mdl, cmd := m.selectForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.selectForm = f
	}

	if m.selectForm.State == huh.StateCompleted {
		return m.submitSelection()
	}
	if m.selectForm.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

func (m Model) submitSelection() (Model, tea.Cmd) {
	_ = m.machine.SelectAction(m.fb.actionIdx)

	if m.fb.accountabilityIdx >= 0 {
		_ = m.machine.SelectAccountability(m.fb.accountabilityIdx)
	} else {
		_ = m.machine.SetCustomAccountability(m.fb.customAcct)
	}

	if err := m.machine.Create(); err != nil {
		// Selection incomplete; reopen with the machine's inline error.
		m.selectForm = m.buildSelectForm()
		return m, m.selectForm.Init()
	}

	return m, tea.Batch(m.spinner.Tick, m.create())
}

// --- API result handling ---

func (m Model) handleAssessResult(msg assessResultMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		_ = m.machine.AssessFailed(api.Humanize(msg.err))
		m.inputForm = m.buildInputForm()
		return m, m.inputForm.Init()
	}

	_ = m.machine.AssessSucceeded(*msg.assessment)
	return m, nil
}

func (m Model) handleOptionsResult(msg optionsResultMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		_ = m.machine.GenerateFailed(api.Humanize(msg.err))
		return m, nil
	}

	_ = m.machine.GenerateSucceeded(*msg.options)
	m.fb.actionIdx = 0
	m.fb.accountabilityIdx = 0
	m.fb.customAcct = ""
	m.selectForm = m.buildSelectForm()
	return m, m.selectForm.Init()
}

func (m Model) handleCreateResult(msg createResultMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		_ = m.machine.CreateFailed(api.Humanize(msg.err))
		m.selectForm = m.buildSelectForm()
		return m, m.selectForm.Init()
	}

	_ = m.machine.CreateSucceeded()
	res := *msg.resolution
	return m, func() tea.Msg { return DoneMsg{Resolution: res} }
}

// --- Commands ---

func (m Model) assess() tea.Cmd {
	client := m.client
	req := m.machine.AssessRequest()
	return func() tea.Msg {
		assessment, err := client.AssessStep(context.Background(), req)
		return assessResultMsg{assessment: assessment, err: err}
	}
}

func (m Model) generate() tea.Cmd {
	client := m.client
	req := m.machine.OptionsRequest()
	return func() tea.Msg {
		options, err := client.GenerateOptions(context.Background(), req)
		return optionsResultMsg{options: options, err: err}
	}
}

func (m Model) create() tea.Cmd {
	client := m.client
	req := m.machine.ResolutionCreate()
	return func() tea.Msg {
		resolution, err := client.CreateResolution(context.Background(), req)
		return createResultMsg{resolution: resolution, err: err}
	}
}

// --- View ---

// View renders the wizard state.
func (m Model) View() string {
	if m.machine == nil {
		return ""
	}

	switch m.machine.State() {
	case onboarding.StateInput:
		return m.viewForm(m.inputForm, "New goal")
	case onboarding.StateAssessing:
		return m.viewWaiting("Reality-checking your goal...")
	case onboarding.StateRefinement:
		return m.viewRefinement()
	case onboarding.StateGenerating:
		return m.viewWaiting("Generating minimum actions...")
	case onboarding.StateSelect:
		return m.viewForm(m.selectForm, "Make it stick")
	case onboarding.StateCreating:
		return m.viewWaiting("Creating your goal...")
	default:
		return ""
	}
}

func (m Model) viewForm(f *huh.Form, title string) string {
	if f == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(title)
	if m.machine.Err != "" {
		content += "\n" + theme.ErrorStyle.Render(m.machine.Err)
	}
	content += "\n" + f.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

func (m Model) viewWaiting(label string) string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	return style.Render(fmt.Sprintf(
		"%s %s\n\nPress esc to cancel.",
		m.spinner.View(), label,
	))
}

// viewRefinement shows the assessment verdict with the available moves.
func (m Model) viewRefinement() string {
	var b strings.Builder
	a := m.machine.Assessment

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	if a != nil && a.NeedsRefinement() {
		b.WriteString(titleStyle.Render("Your goal could be sharper"))
	} else {
		b.WriteString(titleStyle.Render("Goal looks workable"))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.HelpStyle.Render("goal") + "  " + m.machine.Goal + "\n")

	if a != nil {
		if len(a.Issues) > 0 {
			b.WriteString("\n")
			for _, issue := range a.Issues {
				b.WriteString(theme.ErrorStyle.Render("! ") + issue + "\n")
			}
		}

		if rewrite := m.rewriteCandidate(); rewrite != "" {
			b.WriteString("\n")
			b.WriteString(theme.HelpStyle.Render("suggested rewrite") + "\n")
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.ColorGreen).
				Render("  "+rewrite) + "\n")
		}

		if len(a.ClarifyingQuestions) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.HelpStyle.Render("worth asking yourself") + "\n")
			for _, q := range a.ClarifyingQuestions {
				b.WriteString("  · " + q + "\n")
			}
		}
	}

	if m.machine.Err != "" {
		b.WriteString("\n" + theme.ErrorStyle.Render(m.machine.Err) + "\n")
	}

	b.WriteString("\n")
	hints := "c continue as-is | e edit | esc cancel"
	if m.rewriteCandidate() != "" {
		hints = "a accept rewrite | " + hints
	}
	b.WriteString(theme.HelpStyle.Render(hints))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(b.String())
}

// rewriteCandidate mirrors the machine's AcceptRewrite preference order.
func (m Model) rewriteCandidate() string {
	a := m.machine.Assessment
	if a == nil {
		return ""
	}
	if len(a.RewriteOptions) > 0 {
		return a.RewriteOptions[0]
	}
	return a.BestGuessRefinement
}

// SetSize updates the wizard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
