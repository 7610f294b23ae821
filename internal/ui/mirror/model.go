package mirror

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/keys"
	"github.com/driftmirror/driftmirror-cli/internal/logger"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
)

// BackMsg signals the parent to navigate back.
type BackMsg struct{}

// LoadedMsg carries the latest mirror report for a goal. SyncedAt is set
// when the report came from the snapshot cache.
type LoadedMsg struct {
	Report   *model.MirrorReport
	SyncedAt time.Time
	Err      error
}

// feedbackResultMsg reports the outcome of the fire-and-forget feedback
// call.
type feedbackResultMsg struct {
	err error
}

// gaugeWidth is the number of cells in the drift gauge bar.
const gaugeWidth = 20

// Model is the mirror report view: a scrolling panel with the drift
// gauge, expandable findings, counterfactual, and feedback footer.
type Model struct {
	client *api.Client
	cache  store.Store
	keys   *keys.KeyMap

	report    *model.MirrorReport
	goalTitle string
	staleAt   time.Time
	loadErr   error

	// findIdx is the focused finding; expanded tracks which findings show
	// their evidence.
	findIdx  int
	expanded map[int]bool

	feedbackSent   bool
	feedbackNotice string

	viewport viewport.Model
	width    int
	height   int
	loading  bool
}

// New creates a mirror view. cache may be nil when snapshots are disabled.
func New(client *api.Client, cache store.Store, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		client:   client,
		cache:    cache,
		keys:     k,
		expanded: make(map[int]bool),
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the mirror view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the mirror view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.report = msg.Report
		m.staleAt = msg.SyncedAt
		m.loadErr = msg.Err
		m.resetFocus()
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case feedbackResultMsg:
		if msg.err != nil {
			logger.Warn("mirror feedback not recorded", "error", msg.err)
			m.feedbackNotice = "couldn't record feedback, the report is unaffected"
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.ToggleExpand):
			if m.report != nil && len(m.report.Findings) > 0 {
				m.findIdx = (m.findIdx + 1) % len(m.report.Findings)
				m.viewport.SetContent(m.renderContent())
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if m.report != nil && len(m.report.Findings) > 0 {
				m.expanded[m.findIdx] = !m.expanded[m.findIdx]
				m.viewport.SetContent(m.renderContent())
			}
			return m, nil

		case key.Matches(msg, m.keys.MarkHelpful):
			return m.sendFeedback(true)

		case key.Matches(msg, m.keys.MarkUnhelpful):
			return m.sendFeedback(false)
		}
	}

	// Delegate to viewport for scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) resetFocus() {
	m.findIdx = 0
	m.expanded = make(map[int]bool)
	m.feedbackSent = false
	m.feedbackNotice = ""
}

// sendFeedback submits helpful/not-helpful once per report. The call is
// fire-and-forget: the view updates immediately and a failure only adds a
// soft notice.
func (m Model) sendFeedback(helpful bool) (Model, tea.Cmd) {
	if m.report == nil || m.feedbackSent {
		return m, nil
	}

	m.feedbackSent = true
	m.feedbackNotice = ""
	m.viewport.SetContent(m.renderContent())

	client := m.client
	fb := model.MirrorFeedback{
		MirrorReportID: m.report.ID,
		Helpful:        helpful,
	}
	return m, func() tea.Msg {
		err := client.SubmitMirrorFeedback(context.Background(), fb)
		return feedbackResultMsg{err: err}
	}
}

// SetReport injects a report directly, used when a check-in response
// already carries the freshly generated mirror.
func (m *Model) SetReport(report *model.MirrorReport, goalTitle string) {
	m.report = report
	m.goalTitle = goalTitle
	m.staleAt = time.Time{}
	m.loadErr = nil
	m.loading = false
	m.resetFocus()
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetLoading flips the loading placeholder on.
func (m *Model) SetLoading(goalTitle string) {
	m.goalTitle = goalTitle
	m.loading = true
}

// LoadLatest fetches the newest report for a goal, falling back to the
// snapshot cache when the backend is unreachable.
func (m Model) LoadLatest(resolutionID int) tea.Cmd {
	client := m.client
	cache := m.cache
	return func() tea.Msg {
		ctx := context.Background()

		reports, err := client.ListMirrorReports(ctx, resolutionID)
		if err == nil {
			var latest *model.MirrorReport
			if len(reports) > 0 {
				latest = &reports[0]
				if cache != nil {
					_ = cache.SaveSnapshot(ctx, store.KindMirrorReports, resolutionID, latest)
				}
			}
			return LoadedMsg{Report: latest}
		}

		if cache != nil {
			var cached model.MirrorReport
			syncedAt, cacheErr := cache.LoadSnapshot(
				ctx, store.KindMirrorReports, resolutionID, &cached,
			)
			if cacheErr == nil {
				return LoadedMsg{Report: &cached, SyncedAt: syncedAt, Err: err}
			}
		}

		return LoadedMsg{Err: err}
	}
}

// View renders the mirror view.
func (m Model) View() string {
	if m.loading {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render("Loading mirror report...")
	}

	if m.report == nil {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)

		if m.loadErr != nil {
			return style.Render(api.Humanize(m.loadErr))
		}
		return style.Render(
			"No mirror report yet.\n\n" +
				"Reports appear once drift detection has enough check-ins.",
		)
	}

	return m.viewport.View()
}

// renderContent builds the full report content for the viewport.
func (m Model) renderContent() string {
	if m.report == nil {
		return ""
	}

	report := m.report
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	header := "Mirror report"
	if m.goalTitle != "" {
		header += ": " + m.goalTitle
	}
	sections = append(sections, titleStyle.Render(header))
	sections = append(sections, metaStyle.Render(report.CreatedAt.Format("Mon, Jan 02 15:04")))

	if !m.staleAt.IsZero() {
		sections = append(sections, theme.HelpStyle.Render(
			"offline copy, last synced "+m.staleAt.Format("Jan 02 15:04"),
		))
	}
	sections = append(sections, "")

	// Drift gauge
	sections = append(sections, m.renderGauge(report.DriftScore))
	sections = append(sections, "")

	// Findings
	if len(report.Findings) > 0 {
		sections = append(sections, titleStyle.Render("Findings"))
		sections = append(sections, m.renderFindings(report.Findings)...)
		sections = append(sections, "")
	}

	// Counterfactual
	if report.Counterfactual != "" {
		sections = append(sections, titleStyle.Render("If nothing changes"))
		sections = append(sections, report.Counterfactual)
		sections = append(sections, "")
	}

	// Recurring blockers
	if len(report.RecurringBlockers) > 0 {
		sections = append(sections, titleStyle.Render("Keeps getting in the way"))
		for _, b := range report.RecurringBlockers {
			sections = append(sections, "· "+b)
		}
		sections = append(sections, "")
	}

	// Strength pattern
	if report.StrengthPattern != "" {
		sections = append(sections, titleStyle.Render("Working for you"))
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render(report.StrengthPattern))
		sections = append(sections, "")
	}

	// Suggestions (read-only here; acted on from the goal view)
	if len(report.ActionableSuggestions) > 0 {
		sections = append(sections, titleStyle.Render(
			fmt.Sprintf("Suggestions (%d)", len(report.ActionableSuggestions)),
		))
		for _, sug := range report.ActionableSuggestions {
			sections = append(sections, "· "+sug.Suggestion)
		}
		sections = append(sections, metaStyle.Render(
			"act on these from the goal view",
		))
		sections = append(sections, "")
	}

	// Feedback footer
	sections = append(sections, m.renderFeedback())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderGauge draws the drift score as a banded bar.
func (m Model) renderGauge(score float64) string {
	clamped := score
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}

	filled := int(clamped*gaugeWidth + 0.5)
	severity := model.SeverityFor(score)
	barStyle := theme.SeverityStyle(severity).Padding(0)

	bar := barStyle.Render(strings.Repeat("▮", filled)) +
		lipgloss.NewStyle().Foreground(theme.ColorSubtle).
			Render(strings.Repeat("▯", gaugeWidth-filled))

	return fmt.Sprintf("drift %.2f %s %s",
		score, bar, theme.SeverityStyle(severity).Render(severity.String()))
}

// renderFindings draws the findings list with the focused one marked and
// expanded ones showing their evidence.
func (m Model) renderFindings(findings []model.Finding) []string {
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	var out []string

	for i, f := range findings {
		cursor := "  "
		style := theme.ListItemStyle
		if i == m.findIdx {
			cursor = "▸ "
			style = theme.SelectedItemStyle
		}

		marker := "+"
		if m.expanded[i] {
			marker = "-"
		}
		out = append(out, style.Render(fmt.Sprintf("%s[%s] %s", cursor, marker, f.Finding)))

		if m.expanded[i] {
			for _, ev := range f.Evidence {
				out = append(out, metaStyle.Render("      · "+ev))
			}
			if f.RootCauseHypothesis != "" {
				out = append(out, metaStyle.Render("      likely cause: "+f.RootCauseHypothesis))
			}
		}
	}

	out = append(out, theme.HelpStyle.Render("tab next finding | enter expand"))
	return out
}

func (m Model) renderFeedback() string {
	if m.feedbackSent {
		note := lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render("Feedback recorded, thanks.")
		if m.feedbackNotice != "" {
			note += "  " + theme.HelpStyle.Render(m.feedbackNotice)
		}
		return note
	}

	return theme.HelpStyle.Render("Was this useful?  y yes | u no")
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.report != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
