package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/keys"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/theme"
)

// LoadedMsg is sent when dashboard data is ready. SyncedAt is zero for fresh
// network data; when set, Entries came from the local snapshot cache and
// Err carries the transport failure that forced the fallback.
type LoadedMsg struct {
	Entries  []model.DashboardEntry
	SyncedAt time.Time
	Err      error
}

// OpenRequestedMsg is sent when the user opens a goal's detail view.
type OpenRequestedMsg struct {
	Entry model.DashboardEntry
}

// DeleteConfirmedMsg is sent after the user confirms deleting a goal.
type DeleteConfirmedMsg struct {
	Resolution model.Resolution
}

// Model is the goal dashboard: one card per resolution.
type Model struct {
	list   list.Model
	client *api.Client
	cache  store.Store
	keys   *keys.KeyMap

	entries []model.DashboardEntry

	// Non-zero when the view is serving a cached snapshot.
	staleAt time.Time
	loadErr error

	confirm    *huh.Form
	confirmYes bool
	confirming bool

	width  int
	height int
}

// New creates a dashboard model. cache may be nil when snapshots are disabled.
func New(client *api.Client, cache store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, cardDelegate{}, width, height-2)
	l.Title = "Goals"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		client: client,
		cache:  cache,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the initial dashboard.
func (m Model) Init() tea.Cmd {
	return m.LoadDashboard()
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirming {
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case LoadedMsg:
		m.entries = msg.Entries
		m.staleAt = msg.SyncedAt
		if msg.SyncedAt.IsZero() {
			m.loadErr = msg.Err
		} else {
			m.loadErr = nil
		}

		items := make([]list.Item, len(m.entries))
		for i, entry := range m.entries {
			items[i] = GoalCard{Entry: entry}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) {
			card, ok := m.list.SelectedItem().(GoalCard)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return OpenRequestedMsg{Entry: card.Entry}
			}
		}
	}

	// Delegate to the list for navigation keys
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SelectedEntry returns the currently highlighted goal, or nil when the
// dashboard is empty.
func (m Model) SelectedEntry() *model.DashboardEntry {
	card, ok := m.list.SelectedItem().(GoalCard)
	if !ok {
		return nil
	}
	entry := card.Entry
	return &entry
}

// Confirming reports whether the delete confirmation form is active, so the
// root model can stop intercepting shortcut keys.
func (m Model) Confirming() bool {
	return m.confirming
}

// StartConfirmDelete opens the delete confirmation for the selected goal.
func (m *Model) StartConfirmDelete() tea.Cmd {
	entry := m.SelectedEntry()
	if entry == nil {
		return nil
	}

	m.confirmYes = false
	m.confirming = true
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete goal %q?", entry.Resolution.Title)).
				Description(
					"This removes the goal with its plans, check-ins, " +
						"and mirror reports. There is no undo.",
				).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.confirmYes),
		),
	).WithWidth(m.formWidth())

	return m.confirm.Init()
}

// updateConfirmDelete drives the confirmation form.
func (m Model) updateConfirmDelete(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirm == nil {
		m.confirming = false
		return m, nil
	}

	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State == huh.StateCompleted {
		m.confirming = false
		if m.confirmYes {
			entry := m.SelectedEntry()
			if entry == nil {
				return m, nil
			}
			res := entry.Resolution
			return m, func() tea.Msg {
				return DeleteConfirmedMsg{Resolution: res}
			}
		}
		return m, nil
	}
	if m.confirm.State == huh.StateAborted {
		m.confirming = false
		return m, nil
	}

	return m, cmd
}

// View renders the dashboard.
func (m Model) View() string {
	if m.confirming && m.confirm != nil {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Width(m.width).
			Height(m.height).
			Render(m.confirm.View())
	}

	if len(m.entries) == 0 {
		return m.renderEmptyState()
	}

	if !m.staleAt.IsZero() {
		notice := theme.HelpStyle.
			PaddingLeft(2).
			Render("offline copy, last synced " + relativeTime(m.staleAt))
		return lipgloss.JoinVertical(lipgloss.Left, notice, m.list.View())
	}

	return m.list.View()
}

// renderEmptyState shows guidance when there are no goals yet.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loadErr != nil {
		return style.Render(
			api.Humanize(m.loadErr) + "\n\n" +
				"Press r to retry.",
		)
	}

	return style.Render(
		"No goals yet.\n\n" +
			"Press n to set up your first one.",
	)
}

// LoadDashboard fetches the per-goal rollups, falling back to the snapshot
// cache when the backend is unreachable.
func (m Model) LoadDashboard() tea.Cmd {
	client := m.client
	cache := m.cache
	return func() tea.Msg {
		ctx := context.Background()

		entries, err := client.Overview(ctx)
		if err == nil {
			if cache != nil {
				_ = cache.SaveSnapshot(ctx, store.KindOverview, store.GlobalID, entries)
			}
			return LoadedMsg{Entries: entries}
		}

		if cache != nil {
			var cached []model.DashboardEntry
			syncedAt, cacheErr := cache.LoadSnapshot(
				ctx, store.KindOverview, store.GlobalID, &cached,
			)
			if cacheErr == nil {
				return LoadedMsg{Entries: cached, SyncedAt: syncedAt, Err: err}
			}
		}

		return LoadedMsg{Err: err}
	}
}

// Stale returns when the current data was last synced; zero means fresh.
func (m Model) Stale() time.Time {
	return m.staleAt
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
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

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	}
}
