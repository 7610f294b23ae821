package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/keys"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
)

// BackMsg signals the parent to navigate back.
type BackMsg struct{}

// LoadedMsg carries the generated progress summary. SyncedAt is set when
// it came from the snapshot cache.
type LoadedMsg struct {
	Summary  *model.ProgressSummary
	SyncedAt time.Time
	Err      error
}

// Model is the progress summary view: a static recap of how the goal is
// going, generated server-side.
type Model struct {
	client *api.Client
	cache  store.Store
	keys   *keys.KeyMap

	summary   *model.ProgressSummary
	goalTitle string
	staleAt   time.Time
	loadErr   error

	viewport viewport.Model
	width    int
	height   int
	loading  bool
}

// New creates a summary view. cache may be nil when snapshots are disabled.
func New(client *api.Client, cache store.Store, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		client:   client,
		cache:    cache,
		keys:     k,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the summary view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the summary view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.summary = msg.Summary
		m.staleAt = msg.SyncedAt
		m.loadErr = msg.Err
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetLoading flips the loading placeholder on.
func (m *Model) SetLoading(goalTitle string) {
	m.goalTitle = goalTitle
	m.loading = true
}

// Load fetches the summary for a goal, falling back to the snapshot cache
// when the backend is unreachable.
func (m Model) Load(resolutionID int) tea.Cmd {
	client := m.client
	cache := m.cache
	return func() tea.Msg {
		ctx := context.Background()

		summary, err := client.GetProgressSummary(ctx, resolutionID)
		if err == nil {
			if cache != nil {
				_ = cache.SaveSnapshot(ctx, store.KindSummary, resolutionID, summary)
			}
			return LoadedMsg{Summary: summary}
		}

		if cache != nil {
			var cached model.ProgressSummary
			syncedAt, cacheErr := cache.LoadSnapshot(
				ctx, store.KindSummary, resolutionID, &cached,
			)
			if cacheErr == nil {
				return LoadedMsg{Summary: &cached, SyncedAt: syncedAt, Err: err}
			}
		}

		return LoadedMsg{Err: err}
	}
}

// View renders the summary view.
func (m Model) View() string {
	if m.loading {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render("Writing your progress summary...")
	}

	if m.summary == nil {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)

		if m.loadErr != nil {
			return style.Render(api.Humanize(m.loadErr))
		}
		return style.Render("No summary available yet.")
	}

	return m.viewport.View()
}

// renderContent builds the summary content for the viewport.
func (m Model) renderContent() string {
	if m.summary == nil {
		return ""
	}

	s := m.summary
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	var sections []string

	header := "Progress summary"
	if m.goalTitle != "" {
		header += ": " + m.goalTitle
	}
	sections = append(sections, titleStyle.Render(header))

	if !m.staleAt.IsZero() {
		sections = append(sections, theme.HelpStyle.Render(
			"offline copy, last synced "+m.staleAt.Format("Jan 02 15:04"),
		))
	}
	sections = append(sections, "")

	if s.OverallProgress != "" {
		sections = append(sections, s.OverallProgress)
		sections = append(sections, "")
	}

	if len(s.KeyWins) > 0 {
		sections = append(sections, titleStyle.Render("Wins"))
		for _, w := range s.KeyWins {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.ColorGreen).Render("✓ ")+w)
		}
		sections = append(sections, "")
	}

	if s.GrowthObserved != "" {
		sections = append(sections, titleStyle.Render("Growth"))
		sections = append(sections, s.GrowthObserved)
		sections = append(sections, "")
	}

	if s.DaysToHabit > 0 {
		sections = append(sections, fmt.Sprintf(
			"At this pace the habit locks in after about %d more days.",
			s.DaysToHabit,
		))
		sections = append(sections, "")
	}

	if s.Encouragement != "" {
		sections = append(sections, lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.ColorBlue).
			Render(s.Encouragement))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.summary != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
