package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/celebrate"
	"github.com/driftmirror/driftmirror-cli/internal/keys"
	"github.com/driftmirror/driftmirror-cli/internal/model"
	"github.com/driftmirror/driftmirror-cli/internal/store"
	"github.com/driftmirror/driftmirror-cli/internal/ui"
	"github.com/driftmirror/driftmirror-cli/internal/ui/checkin"
	"github.com/driftmirror/driftmirror-cli/internal/ui/command"
	"github.com/driftmirror/driftmirror-cli/internal/ui/dashboard"
	"github.com/driftmirror/driftmirror-cli/internal/ui/detail"
	"github.com/driftmirror/driftmirror-cli/internal/ui/diary"
	helpview "github.com/driftmirror/driftmirror-cli/internal/ui/help"
	"github.com/driftmirror/driftmirror-cli/internal/ui/mirror"
	"github.com/driftmirror/driftmirror-cli/internal/ui/onboard"
	"github.com/driftmirror/driftmirror-cli/internal/ui/summary"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewDetail
	ViewCheckin
	ViewOnboard
	ViewMirror
	ViewSummary
	ViewDiary
	ViewHelp
	ViewCommand
	ViewEditMinimum
	ViewRevertConfirm
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the celebration state.
type Model struct {
	currentView  ViewState
	previousView ViewState
	// returnTo is where esc lands from a goal-scoped view (check-in,
	// mirror, summary, prompts): the dashboard or the goal detail the
	// view was opened from.
	returnTo ViewState

	layout      ui.Layout
	client      *api.Client
	cache       store.Store
	keys        *keys.KeyMap
	celebration *celebrate.Store

	dashboard   dashboard.Model
	detailView  detail.Model
	checkinView checkin.Model
	onboardView onboard.Model
	mirrorView  mirror.Model
	summaryView summary.Model
	diaryView   diary.Model
	helpView    helpview.Model
	commandView command.Model

	// prompts backs the two one-field forms (edit minimum, revert plan).
	prompts    *promptBindings
	editForm   *huh.Form
	revertForm *huh.Form

	// focused is the goal the current goal-scoped view acts on.
	focused *model.DashboardEntry

	// initCmd runs alongside the dashboard load on startup. Set by
	// NewOnboarding to open the wizard immediately.
	initCmd tea.Cmd

	ready     bool
	statusMsg string
}

// New creates the root application model. cache may be nil when the
// snapshot cache is disabled.
func New(client *api.Client, cache store.Store) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewDashboard,
		returnTo:    ViewDashboard,
		client:      client,
		cache:       cache,
		keys:        k,
		celebration: celebrate.NewStore(),
		dashboard:   dashboard.New(client, cache, k, 80, 24),
		detailView:  detail.New(k, 80, 24),
		checkinView: checkin.New(80, 24),
		onboardView: onboard.New(client, 80, 24),
		mirrorView:  mirror.New(client, cache, k, 80, 24),
		summaryView: summary.New(client, cache, k, 80, 24),
		diaryView:   diary.New(client, cache, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		prompts:     &promptBindings{},
	}
}

// NewOnboarding creates a root model that opens straight into the goal
// wizard, backing `driftmirror onboard`. Finishing or canceling the wizard
// lands on the dashboard as usual.
func NewOnboarding(client *api.Client, cache store.Store) Model {
	m := New(client, cache)
	m.initCmd = m.onboardView.Start()
	m.currentView = ViewOnboard
	return m
}

// Init loads the dashboard.
func (m Model) Init() tea.Cmd {
	if m.initCmd != nil {
		return tea.Batch(m.dashboard.Init(), m.initCmd)
	}
	return m.dashboard.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.dashboard.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.checkinView.SetSize(contentWidth, contentHeight)
		m.onboardView.SetSize(contentWidth, contentHeight)
		m.mirrorView.SetSize(contentWidth, contentHeight)
		m.summaryView.SetSize(contentWidth, contentHeight)
		m.diaryView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case dashboard.LoadedMsg:
		// Routed unconditionally: the load may resolve after the user has
		// already navigated away.
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case dashboard.OpenRequestedMsg:
		entry := msg.Entry
		m.focused = &entry
		m.returnTo = ViewDashboard
		m.currentView = ViewDetail
		m.detailView.SetLoading(true)
		return m, m.loadGoalDetail(entry)

	case dashboard.DeleteConfirmedMsg:
		return m, m.deleteGoal(msg.Resolution)

	case goalDetailLoadedMsg:
		m.detailView.SetLoading(false)
		if msg.detail != nil {
			entry := msg.detail.Entry
			m.focused = &entry
			m.detailView.SetDetail(msg.detail)
		}
		if msg.err != nil {
			m.statusMsg = "couldn't load the full history: " + api.Humanize(msg.err)
		}
		return m, nil

	case goalDeletedMsg:
		if msg.err != nil {
			m.statusMsg = api.Humanize(msg.err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted %q", msg.title)
		return m, m.dashboard.LoadDashboard()

	case checkin.SubmittedMsg:
		return m, m.submitCheckin(msg.Create)

	case checkin.CancelMsg:
		m.currentView = m.returnTo
		return m, nil

	case checkinResultMsg:
		return m.handleCheckinResult(msg)

	case celebrationTickMsg:
		// Pure re-render driver; the store collapses itself once the
		// deadline passes.
		if m.celebration.State() == celebrate.Celebrating {
			return m, m.celebrationTick()
		}
		return m, nil

	case onboard.DoneMsg:
		m.currentView = ViewDashboard
		m.statusMsg = fmt.Sprintf("Goal %q is live. Press c for your first check-in.",
			msg.Resolution.Title)
		return m, m.dashboard.LoadDashboard()

	case onboard.CancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewDashboard
		return m, nil

	case detail.InsightMsg:
		return m, m.submitInsight(msg.Create)

	case insightResultMsg:
		return m.handleInsightResult(msg)

	case mirror.LoadedMsg:
		var cmd tea.Cmd
		m.mirrorView, cmd = m.mirrorView.Update(msg)
		return m, cmd

	case mirror.BackMsg:
		m.currentView = m.returnTo
		return m, nil

	case summary.LoadedMsg:
		var cmd tea.Cmd
		m.summaryView, cmd = m.summaryView.Update(msg)
		return m, cmd

	case summary.BackMsg:
		m.currentView = m.returnTo
		return m, nil

	case diary.CloseMsg:
		m.currentView = ViewDashboard
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case minimumUpdatedMsg:
		return m.handleMinimumUpdated(msg)

	case planRevertedMsg:
		return m.handlePlanReverted(msg)

	case demoSeededMsg:
		if msg.err != nil {
			m.statusMsg = api.Humanize(msg.err)
			return m, nil
		}
		m.statusMsg = "Demo data seeded"
		return m, m.dashboard.LoadDashboard()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

// handleKey applies global shortcuts, deferring to the active view whenever
// it owns raw keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any keypress dismisses a transient status notice.
	m.statusMsg = ""

	if m.inputActive() {
		if m.currentView == ViewCommand && msg.String() == "esc" {
			m.currentView = m.previousView
			return m, nil
		}
		return m.updateActiveView(msg)
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewDashboard {
			return m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return m, cmd

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}

	case "r":
		return m.refreshCurrent()

	case "n":
		if m.currentView == ViewDashboard {
			m.currentView = ViewOnboard
			cmd := m.onboardView.Start()
			return m, cmd
		}

	case "c":
		if entry := m.focusedEntry(); entry != nil {
			m.focused = entry
			m.returnTo = m.currentView
			m.currentView = ViewCheckin
			cmd := m.checkinView.Start(entry.Resolution)
			return m, cmd
		}

	case "m":
		if entry := m.focusedEntry(); entry != nil {
			m.focused = entry
			m.returnTo = m.currentView
			m.currentView = ViewMirror
			m.mirrorView.SetLoading(entry.Resolution.Title)
			return m, m.mirrorView.LoadLatest(entry.Resolution.ID)
		}

	case "s":
		if entry := m.focusedEntry(); entry != nil {
			m.focused = entry
			m.returnTo = m.currentView
			m.currentView = ViewSummary
			m.summaryView.SetLoading(entry.Resolution.Title)
			return m, m.summaryView.Load(entry.Resolution.ID)
		}

	case "d":
		if m.currentView == ViewDashboard {
			m.currentView = ViewDiary
			return m, m.diaryView.Init()
		}

	case "e":
		if entry := m.focusedEntry(); entry != nil {
			m.focused = entry
			m.returnTo = m.currentView
			return m.startEditMinimum(entry.Resolution)
		}

	case "v":
		if entry := m.focusedEntry(); entry != nil {
			if entry.Plan == nil || !entry.Plan.IsRevised() {
				m.statusMsg = "The plan is still at its original values"
				return m, nil
			}
			m.focused = entry
			m.returnTo = m.currentView
			return m.startRevertConfirm(entry.Resolution)
		}

	case "x":
		if m.currentView == ViewDashboard {
			cmd := m.dashboard.StartConfirmDelete()
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

// inputActive reports whether the active view owns raw keyboard input, in
// which case global shortcuts must not fire.
func (m Model) inputActive() bool {
	switch m.currentView {
	case ViewCommand, ViewCheckin, ViewOnboard, ViewEditMinimum, ViewRevertConfirm:
		return true
	case ViewDashboard:
		return m.dashboard.Confirming()
	case ViewDetail:
		return m.detailView.Constraining()
	case ViewDiary:
		return m.diaryView.Editing()
	}
	return false
}

// focusedEntry returns the goal the current view can act on: the open
// detail goal, or the dashboard selection.
func (m Model) focusedEntry() *model.DashboardEntry {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.SelectedEntry()
	case ViewDetail:
		return m.focused
	}
	return nil
}

// refreshCurrent reloads whatever the active view shows.
func (m Model) refreshCurrent() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewDashboard:
		return m, m.dashboard.LoadDashboard()
	case ViewDetail:
		if m.focused != nil {
			m.detailView.SetLoading(true)
			return m, m.loadGoalDetail(*m.focused)
		}
	case ViewMirror:
		if m.focused != nil {
			m.mirrorView.SetLoading(m.focused.Resolution.Title)
			return m, m.mirrorView.LoadLatest(m.focused.Resolution.ID)
		}
	case ViewSummary:
		if m.focused != nil {
			m.summaryView.SetLoading(m.focused.Resolution.Title)
			return m, m.summaryView.Load(m.focused.Resolution.ID)
		}
	}
	return m, nil
}

// handleCheckinResult routes the check-in envelope: failure re-opens the
// form, success celebrates and either returns to the launch view or jumps
// straight into a freshly triggered mirror report.
func (m Model) handleCheckinResult(msg checkinResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := m.checkinView.FailSubmit(api.Humanize(msg.err))
		return m, cmd
	}

	result := msg.result
	cmds := []tea.Cmd{m.dashboard.LoadDashboard()}

	if result.Checkin.DidMinimumAction {
		m.celebration.Trigger()
		cmds = append(cmds, m.celebrationTick())
	}

	if result.DriftTriggered && result.MirrorReport != nil {
		title := ""
		if m.focused != nil {
			title = m.focused.Resolution.Title
		}
		m.mirrorView.SetReport(result.MirrorReport, title)
		m.currentView = ViewMirror
		return m, tea.Batch(cmds...)
	}

	m.statusMsg = checkinStatus(result)
	m.currentView = m.returnTo
	if m.returnTo == ViewDetail && m.focused != nil {
		m.detailView.SetLoading(true)
		cmds = append(cmds, m.loadGoalDetail(*m.focused))
	}
	return m, tea.Batch(cmds...)
}

func checkinStatus(result *model.CheckinResult) string {
	switch {
	case result.PlanUpdated:
		return "Check-in recorded. The plan picked up an adjustment."
	case result.Checkin.DidMinimumAction:
		return "Check-in recorded."
	default:
		return "Check-in recorded. Showing up at all still counts."
	}
}

func (m Model) handleInsightResult(msg insightResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = api.Humanize(msg.err)
		return m, nil
	}

	switch msg.action {
	case model.ActionAccept:
		m.statusMsg = "Suggestion accepted. The plan will pick it up."
	case model.ActionConstrain:
		m.statusMsg = "Adjustment recorded with your limits."
	default:
		m.statusMsg = "Suggestion dismissed."
	}

	cmd := m.reloadFocused()
	return m, cmd
}

func (m Model) handleMinimumUpdated(msg minimumUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = api.Humanize(msg.err)
		return m, nil
	}
	m.statusMsg = "Minimum action updated"
	if m.focused != nil && msg.res != nil {
		m.focused.Resolution = *msg.res
	}
	cmd := m.reloadFocused()
	return m, cmd
}

func (m Model) handlePlanReverted(msg planRevertedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = api.Humanize(msg.err)
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Plan restored to its original values (now v%d)",
		msg.plan.Version)
	cmd := m.reloadFocused()
	return m, cmd
}

// reloadFocused refreshes the dashboard and, when the detail view is open,
// the detail aggregate too.
func (m *Model) reloadFocused() tea.Cmd {
	cmds := []tea.Cmd{m.dashboard.LoadDashboard()}
	if m.currentView == ViewDetail && m.focused != nil {
		m.detailView.SetLoading(true)
		cmds = append(cmds, m.loadGoalDetail(*m.focused))
	}
	return tea.Batch(cmds...)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewCheckin:
		m.checkinView, cmd = m.checkinView.Update(msg)
	case ViewOnboard:
		m.onboardView, cmd = m.onboardView.Update(msg)
	case ViewMirror:
		m.mirrorView, cmd = m.mirrorView.Update(msg)
	case ViewSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	case ViewDiary:
		m.diaryView, cmd = m.diaryView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewEditMinimum:
		return m.updateEditMinimum(msg)
	case ViewRevertConfirm:
		return m.updateRevertConfirm(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("DriftMirror", m.syncStatus())
	content := m.renderContent()
	statusBar := m.statusLine()

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewCheckin:
		return m.checkinView.View()
	case ViewOnboard:
		return m.onboardView.View()
	case ViewMirror:
		return m.mirrorView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewDiary:
		return m.diaryView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewEditMinimum:
		return m.viewPrompt(m.editForm, "Edit minimum action: "+m.prompts.target.Title)
	case ViewRevertConfirm:
		return m.viewPrompt(m.revertForm, "Revert plan")
	default:
		return ""
	}
}

// statusLine renders the bottom row: celebration banner while one is live,
// then transient notices, then the per-view key hints.
func (m Model) statusLine() string {
	if m.celebration.State() == celebrate.Celebrating {
		return m.layout.RenderBanner("✔ Minimum done. The streak holds.")
	}
	if m.statusMsg != "" {
		return m.layout.RenderStatusBar(m.statusMsg)
	}
	return m.layout.RenderStatusBar(m.keyHints())
}

// syncStatus describes backend freshness in the header.
func (m Model) syncStatus() string {
	if stale := m.dashboard.Stale(); !stale.IsZero() {
		return "offline · synced " + stale.Format("Jan 02 15:04")
	}
	return "connected"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewDetail:
		return "c check in | m mirror | s summary | e minimum | v revert | esc back"
	case ViewCheckin, ViewOnboard:
		return "enter next | esc cancel"
	case ViewMirror:
		return "tab findings | enter expand | y/u feedback | esc back"
	case ViewSummary:
		return "r refresh | esc back"
	case ViewDiary:
		return "n new | e edit | esc back"
	case ViewEditMinimum, ViewRevertConfirm:
		return "enter confirm | esc cancel"
	default:
		return "q quit | ? help | enter open | c check in | n new goal | d diary"
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "refresh", "sync":
		return m.dashboard.LoadDashboard()
	case "quit", "q":
		return tea.Quit
	case "dashboard", "home":
		m.currentView = ViewDashboard
		return nil
	case "new", "new goal", "onboard":
		m.currentView = ViewOnboard
		return m.onboardView.Start()
	case "checkin", "check in":
		if entry := m.focusedEntry(); entry != nil {
			m.focused = entry
			m.returnTo = m.currentView
			m.currentView = ViewCheckin
			return m.checkinView.Start(entry.Resolution)
		}
		m.statusMsg = "Select a goal first"
		return nil
	case "mirror":
		if entry := m.focusedEntry(); entry != nil {
			m.focused = entry
			m.returnTo = m.currentView
			m.currentView = ViewMirror
			m.mirrorView.SetLoading(entry.Resolution.Title)
			return m.mirrorView.LoadLatest(entry.Resolution.ID)
		}
		m.statusMsg = "Select a goal first"
		return nil
	case "summary", "progress":
		if entry := m.focusedEntry(); entry != nil {
			m.focused = entry
			m.returnTo = m.currentView
			m.currentView = ViewSummary
			m.summaryView.SetLoading(entry.Resolution.Title)
			return m.summaryView.Load(entry.Resolution.ID)
		}
		m.statusMsg = "Select a goal first"
		return nil
	case "diary", "journal":
		m.currentView = ViewDiary
		return m.diaryView.Init()
	case "demo", "seed", "seed demo":
		return m.seedDemo()
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	default:
		m.statusMsg = fmt.Sprintf("unknown command: %s", cmd)
		return nil
	}
}
