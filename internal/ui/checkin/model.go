package checkin

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// SubmittedMsg is dispatched when the check-in form completes. The root
// model owns the API call; the form only assembles the payload.
type SubmittedMsg struct {
	Create model.CheckinCreate
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	didMinimum bool
	extraDone  string
	blocker    string
	friction   int
}

// Model is the Bubble Tea model for the daily check-in form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	resolution model.Resolution
	spinner    spinner.Model

	// submitting suppresses duplicate submissions between form completion
	// and the API result arriving.
	submitting bool
	errMsg     string

	width  int
	height int
}

// New creates a new check-in form model.
func New(width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		fb:      &formBindings{didMinimum: true, friction: model.FrictionDefault},
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Start initializes the form for a check-in against the given goal.
func (m *Model) Start(res model.Resolution) tea.Cmd {
	m.resolution = res
	m.submitting = false
	m.errMsg = ""
	m.fb.didMinimum = true
	m.fb.extraDone = ""
	m.fb.blocker = ""
	m.fb.friction = model.FrictionDefault
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the check-in form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.submitting {
		if tick, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(tick)
			return m, cmd
		}
		return m, nil
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// handleSubmit assembles the payload and flags the model as in flight.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	create := model.CheckinCreate{
		ResolutionID:     m.resolution.ID,
		DidMinimumAction: m.fb.didMinimum,
		ExtraDone:        validation.Sanitize(m.fb.extraDone),
		Blocker:          validation.Sanitize(m.fb.blocker),
		Friction:         model.ClampFriction(m.fb.friction),
	}

	m.submitting = true
	m.errMsg = ""

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return SubmittedMsg{Create: create} },
	)
}

// Submitting reports whether a submission is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// FailSubmit puts the form back on screen after a failed API call. Field
// values are preserved so the user can retry without retyping.
func (m *Model) FailSubmit(msg string) tea.Cmd {
	m.submitting = false
	m.errMsg = msg
	m.form = m.buildForm()
	return m.form.Init()
}

// View renders the check-in form.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Check in: " + m.resolution.Title)

	if m.submitting {
		content := title + "\n" +
			fmt.Sprintf("%s Recording check-in...", m.spinner.View())
		return lipgloss.NewStyle().Padding(1, 2).Render(content)
	}

	if m.form == nil {
		return ""
	}

	content := title
	if m.resolution.MinimumActionText != "" {
		content += "\n" + theme.HelpStyle.Render(
			fmt.Sprintf("minimum: %s (%d min)",
				m.resolution.MinimumActionText, m.resolution.MinMinutes),
		) + "\n"
	}
	if m.errMsg != "" {
		content += "\n" + theme.ErrorStyle.Render(m.errMsg) + "\n"
	}
	content += "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Did you do your minimum action?").
				Affirmative("Yes").
				Negative("Not today").
				Value(&m.fb.didMinimum),
			huh.NewText().
				Title("Anything extra?").
				Placeholder("Optional: what you did beyond the minimum...").
				Value(&m.fb.extraDone).
				Validate(validateMaxLen("Extra", model.MaxWhyLen)),
			huh.NewText().
				Title("What got in the way?").
				Placeholder("Optional: blockers, even small ones...").
				Value(&m.fb.blocker).
				Validate(validateMaxLen("Blocker", model.MaxWhyLen)),
			huh.NewSelect[int]().
				Title("How much friction did it take?").
				Options(
					huh.NewOption("1 - barely any", model.FrictionMin),
					huh.NewOption("2 - some resistance", model.FrictionDefault),
					huh.NewOption("3 - heavy drag", model.FrictionMax),
				).
				Value(&m.fb.friction),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
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

func validateMaxLen(fieldName string, max int) func(string) error {
	return func(s string) error {
		if utf8.RuneCountInString(validation.Sanitize(s)) > max {
			return fmt.Errorf("%s must be at most %d characters", fieldName, max)
		}
		return nil
	}
}
