package detail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/keys"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
	"github.com/driftmirror/driftmirror-cli/internal/validation"
)

// GoalDetail aggregates everything the detail view renders for one goal.
type GoalDetail struct {
	Entry    model.DashboardEntry
	Plans    []model.Plan
	Checkins []model.Checkin
	Mirror   *model.MirrorReport
}

// BackMsg signals the parent to navigate back to the dashboard.
type BackMsg struct{}

// LoadedMsg carries the loaded goal detail.
type LoadedMsg struct {
	Detail *GoalDetail
}

// InsightMsg asks the parent to record a decision about a suggestion.
type InsightMsg struct {
	Create model.InsightActionCreate
}

// maxRecentCheckins bounds the check-in history shown inline.
const maxRecentCheckins = 6

// constrainBindings holds the override form values on the heap so huh's
// Value() pointers survive Bubble Tea model copies.
type constrainBindings struct {
	frequency  string
	minMinutes string
	details    string
}

// Model is the goal detail view: one scrolling panel with the plan,
// recent check-ins, latest mirror summary, and actionable suggestions.
type Model struct {
	detail   *GoalDetail
	viewport viewport.Model
	keys     *keys.KeyMap

	// sugIdx is the cursor into the latest mirror's suggestions.
	sugIdx int

	// Constrain override form state.
	constrainForm *huh.Form
	cb            *constrainBindings
	constraining  bool

	width   int
	height  int
	loading bool
}

// New creates a new goal detail model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		cb:       &constrainBindings{},
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.constraining {
		return m.updateConstrainForm(msg)
	}

	switch msg := msg.(type) {
	case LoadedMsg:
		m.detail = msg.Detail
		m.loading = false
		m.sugIdx = 0
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.ToggleExpand):
			if n := len(m.suggestions()); n > 0 {
				m.sugIdx = (m.sugIdx + 1) % n
				m.viewport.SetContent(m.renderContent())
			}
			return m, nil
		}

		switch msg.String() {
		case "a":
			return m.actOnSuggestion(model.ActionAccept)
		case "i":
			return m.actOnSuggestion(model.ActionIgnore)
		case "o":
			return m.startConstrain()
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Resolution returns the goal being shown, or nil before the first load.
func (m Model) Resolution() *model.Resolution {
	if m.detail == nil {
		return nil
	}
	res := m.detail.Entry.Resolution
	return &res
}

// Constraining reports whether the override form is active, so the root
// model can stop intercepting shortcut keys.
func (m Model) Constraining() bool {
	return m.constraining
}

// suggestions returns the actionable suggestions of the latest mirror.
func (m Model) suggestions() []model.Suggestion {
	if m.detail == nil || m.detail.Mirror == nil {
		return nil
	}
	return m.detail.Mirror.ActionableSuggestions
}

// actOnSuggestion emits an insight action for the suggestion under the
// cursor. Accept forwards the suggested changes untouched.
func (m Model) actOnSuggestion(action string) (Model, tea.Cmd) {
	sugs := m.suggestions()
	if m.sugIdx >= len(sugs) {
		return m, nil
	}
	sug := sugs[m.sugIdx]

	create := m.insightFor(sug, action)
	if action == model.ActionAccept {
		create.SuggestedChanges = changesMap(sug.Changes)
	}

	return m, func() tea.Msg { return InsightMsg{Create: create} }
}

// insightFor builds the common insight payload for a suggestion.
func (m Model) insightFor(sug model.Suggestion, action string) model.InsightActionCreate {
	reportID := m.detail.Mirror.ID

	return model.InsightActionCreate{
		ResolutionID:   m.detail.Entry.Resolution.ID,
		MirrorReportID: &reportID,
		InsightType:    model.InsightMirror,
		InsightSummary: truncateRunes(sug.Suggestion, model.MaxInsightSummaryLen),
		ActionTaken:    action,
	}
}

// --- Constrain override form ---

// startConstrain opens the numeric-override form pre-filled from the
// suggestion, falling back to the current plan for untouched knobs.
func (m Model) startConstrain() (Model, tea.Cmd) {
	sugs := m.suggestions()
	if m.sugIdx >= len(sugs) {
		return m, nil
	}
	sug := sugs[m.sugIdx]
	plan := m.detail.Entry.Plan

	freq := 0
	mins := 0
	if plan != nil {
		freq = plan.FrequencyPerWeek
		mins = plan.MinMinutes
	}
	if sug.Changes.FrequencyPerWeek != nil {
		freq = *sug.Changes.FrequencyPerWeek
	}
	if sug.Changes.MinMinutes != nil {
		mins = *sug.Changes.MinMinutes
	}

	m.cb.frequency = strconv.Itoa(freq)
	m.cb.minMinutes = strconv.Itoa(mins)
	m.cb.details = ""
	m.constraining = true
	m.constrainForm = m.buildConstrainForm(sug)

	return m, m.constrainForm.Init()
}

func (m *Model) buildConstrainForm(sug model.Suggestion) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Frequency per week").
				Description(sug.Suggestion).
				Value(&m.cb.frequency).
				Validate(validateIntRange("Frequency", model.MinFrequency, model.MaxFrequency)),
			huh.NewInput().
				Title("Minimum minutes").
				Value(&m.cb.minMinutes).
				Validate(validateIntRange("Minutes", model.MinMinutesFloor, model.MinMinutesCeil)),
			huh.NewText().
				Title("Why the adjustment?").
				Placeholder("Optional note kept with the decision...").
				Value(&m.cb.details),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updateConstrainForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.constrainForm == nil {
		m.constraining = false
		return m, nil
	}

	mdl, cmd := m.constrainForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.constrainForm = f
	}

	if m.constrainForm.State == huh.StateCompleted {
		m.constraining = false
		return m.submitConstrain()
	}
	if m.constrainForm.State == huh.StateAborted {
		m.constraining = false
		return m, nil
	}

	return m, cmd
}

func (m Model) submitConstrain() (Model, tea.Cmd) {
	sugs := m.suggestions()
	if m.sugIdx >= len(sugs) {
		return m, nil
	}
	sug := sugs[m.sugIdx]

	freq, _ := strconv.Atoi(strings.TrimSpace(m.cb.frequency))
	mins, _ := strconv.Atoi(strings.TrimSpace(m.cb.minMinutes))

	create := m.insightFor(sug, model.ActionConstrain)
	create.ConstraintDetails = truncateRunes(
		validation.Sanitize(m.cb.details), model.MaxConstraintDetailsLen,
	)
	create.SuggestedChanges = map[string]any{
		"frequency_per_week": freq,
		"min_minutes":        mins,
	}

	return m, func() tea.Msg { return InsightMsg{Create: create} }
}

// --- View ---

// View renders the detail view.
func (m Model) View() string {
	if m.constraining && m.constrainForm != nil {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Render(m.constrainForm.View())
	}

	if m.loading {
		loadingStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return loadingStyle.Render("Loading goal...")
	}

	if m.detail == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No goal selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.detail == nil {
		return ""
	}

	d := m.detail
	res := d.Entry.Resolution
	metrics := d.Entry.Metrics
	var sections []string

	// Title and badges
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	severity := metrics.Severity()
	badge := theme.SeverityStyle(severity).Render(severity.Label())

	sections = append(sections, lipgloss.JoinHorizontal(
		lipgloss.Top, titleStyle.Render(res.Title), "  ", badge,
	))

	if res.Why != "" {
		sections = append(sections, theme.HelpStyle.Render("“"+res.Why+"”"))
	}
	sections = append(sections, "")

	// Metric pills
	sections = append(sections, m.renderMetrics(metrics))

	if d.Entry.DriftTriggered {
		sections = append(sections, "", theme.SeverityStyle(severity).Padding(0).
			Render("▲ Drift detected. Press m for the mirror report."))
	}

	sections = append(sections, "", m.separator(), "")

	// Plan
	sections = append(sections, m.renderPlan()...)

	sections = append(sections, "", m.separator(), "")

	// Recent check-ins
	sections = append(sections, m.renderCheckins()...)

	// Mirror summary and suggestions
	if d.Mirror != nil {
		sections = append(sections, "", m.separator(), "")
		sections = append(sections, m.renderMirrorSummary(*d.Mirror)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderMetrics(metrics model.Metrics) string {
	pills := []string{
		fmt.Sprintf("done %.0f%%", metrics.CompletionRate*100),
		theme.StreakStyle(metrics.MinimumActionStreak).
			Render(fmt.Sprintf("streak %d", metrics.MinimumActionStreak)),
		fmt.Sprintf("friction %.1f", metrics.AvgFriction),
		theme.ScoreStyle(metrics.DriftScore).
			Render(fmt.Sprintf("drift %.2f", metrics.DriftScore)),
		fmt.Sprintf("this week %d/%d", metrics.ThisWeekCount, metrics.TargetFrequency),
		fmt.Sprintf("%d check-ins", metrics.TotalCheckins),
	}
	return strings.Join(pills, "   ")
}

func (m Model) renderPlan() []string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	plan := m.detail.Entry.Plan
	if plan == nil {
		return []string{
			headerStyle.Render("Plan"),
			metaStyle.Render("No plan recorded yet."),
		}
	}

	var out []string
	header := fmt.Sprintf("Plan v%d", plan.Version)
	if plan.IsRevised() {
		header += metaStyle.Render("  (adjusted, press v to revert)")
	}
	out = append(out, headerStyle.Render(header))

	line := fmt.Sprintf("%d×/week · %d min minimum", plan.FrequencyPerWeek, plan.MinMinutes)
	if plan.TimeWindow != "" {
		line += " · " + plan.TimeWindow
	}
	out = append(out, line)

	if plan.RecoveryStep != "" {
		out = append(out, metaStyle.Render("recovery: ")+plan.RecoveryStep)
	}

	// Diff against the original plan when the backend has adjusted it.
	if original := m.originalPlan(); original != nil && plan.IsRevised() {
		changes := plan.DiffAgainst(*original)
		for _, ch := range changes {
			out = append(out, metaStyle.Render(
				fmt.Sprintf("  %s: %s → %s", ch.Field, ch.From, ch.To),
			))
		}
	}

	metrics := m.detail.Entry.Metrics
	if metrics.SuggestMomentumMinimum && metrics.MomentumSuggestionText != "" {
		out = append(out, lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render("◆ "+metrics.MomentumSuggestionText))
	}

	return out
}

// originalPlan returns version 1 when the plan history is loaded.
func (m Model) originalPlan() *model.Plan {
	for i := range m.detail.Plans {
		if m.detail.Plans[i].Version == 1 {
			return &m.detail.Plans[i]
		}
	}
	return nil
}

func (m Model) renderCheckins() []string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	out := []string{headerStyle.Render("Recent check-ins")}

	if len(m.detail.Checkins) == 0 {
		out = append(out, metaStyle.Render("None yet. Press c to record the first one."))
		return out
	}

	count := len(m.detail.Checkins)
	if count > maxRecentCheckins {
		count = maxRecentCheckins
	}

	for _, c := range m.detail.Checkins[:count] {
		mark := lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("✓")
		if !c.DidMinimumAction {
			mark = lipgloss.NewStyle().Foreground(theme.ColorRed).Render("✗")
		}

		line := fmt.Sprintf("%s %s  friction %s",
			mark,
			c.CreatedAt.Format("Jan 02"),
			strings.Repeat("•", c.Friction),
		)
		if c.Blocker != "" {
			line += metaStyle.Render("  blocked by: " + c.Blocker)
		} else if c.ExtraDone != "" {
			line += metaStyle.Render("  extra: " + c.ExtraDone)
		}
		out = append(out, line)
	}

	return out
}

func (m Model) renderMirrorSummary(report model.MirrorReport) []string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	score := theme.ScoreStyle(report.DriftScore).
		Render(fmt.Sprintf("%.2f", report.DriftScore))

	out := []string{
		headerStyle.Render("Latest mirror") + "  " + score +
			metaStyle.Render("  "+report.CreatedAt.Format("Jan 02")),
	}

	if len(report.Findings) > 0 {
		out = append(out, report.Findings[0].Finding)
	}
	out = append(out, metaStyle.Render("press m for the full report"))

	if len(report.ActionableSuggestions) > 0 {
		out = append(out, "")
		out = append(out, headerStyle.Render("Suggestions"))
		out = append(out, m.renderSuggestions(report.ActionableSuggestions)...)
		out = append(out, "")
		out = append(out, theme.HelpStyle.Render(
			"tab next suggestion | a accept | o adjust | i ignore",
		))
	}

	return out
}

func (m Model) renderSuggestions(sugs []model.Suggestion) []string {
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	var out []string

	for i, sug := range sugs {
		cursor := "  "
		style := theme.ListItemStyle
		if i == m.sugIdx {
			cursor = "▸ "
			style = theme.SelectedItemStyle
		}

		line := fmt.Sprintf("%s%s", cursor, sug.Suggestion)
		if !sug.Changes.Empty() {
			line += metaStyle.Render("  " + describeChanges(sug.Changes))
		}
		out = append(out, style.Render(line))

		if i == m.sugIdx && sug.Reason != "" {
			out = append(out, metaStyle.Render("    because: "+sug.Reason))
		}
	}

	return out
}

func (m Model) separator() string {
	w := m.width - 4
	if w > 80 {
		w = 80
	}
	if w < 1 {
		w = 1
	}
	return lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", w))
}

// SetDetail replaces the displayed goal and re-renders.
func (m *Model) SetDetail(detail *GoalDetail) {
	m.detail = detail
	m.loading = false
	m.sugIdx = 0
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.detail != nil {
		m.viewport.SetContent(m.renderContent())
	}
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

// describeChanges renders the concrete deltas of a suggestion inline.
func describeChanges(c model.SuggestedChanges) string {
	var parts []string
	if c.FrequencyPerWeek != nil {
		parts = append(parts, fmt.Sprintf("→ %d×/week", *c.FrequencyPerWeek))
	}
	if c.MinMinutes != nil {
		parts = append(parts, fmt.Sprintf("→ %d min", *c.MinMinutes))
	}
	if c.TimeWindow != nil {
		parts = append(parts, "→ "+*c.TimeWindow)
	}
	if c.RecoveryStep != nil {
		parts = append(parts, "+ recovery step")
	}
	return strings.Join(parts, ", ")
}

// changesMap converts suggested changes to the wire map the insight
// endpoint stores.
func changesMap(c model.SuggestedChanges) map[string]any {
	if c.Empty() {
		return nil
	}

	out := make(map[string]any)
	if c.FrequencyPerWeek != nil {
		out["frequency_per_week"] = *c.FrequencyPerWeek
	}
	if c.MinMinutes != nil {
		out["min_minutes"] = *c.MinMinutes
	}
	if c.TimeWindow != nil {
		out["time_window"] = *c.TimeWindow
	}
	if c.RecoveryStep != nil {
		out["recovery_step"] = *c.RecoveryStep
	}
	return out
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func validateIntRange(fieldName string, lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a number", fieldName)
		}
		if n < lo || n > hi {
			return fmt.Errorf("%s must be between %d and %d", fieldName, lo, hi)
		}
		return nil
	}
}
