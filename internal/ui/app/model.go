package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ledgerdto "studypro/internal/modules/ledger/dto"
	resetinadapter "studypro/internal/modules/reset/adapter/in"
	resetdomain "studypro/internal/modules/reset/domain"
	resetdto "studypro/internal/modules/reset/dto"
	resetin "studypro/internal/modules/reset/port/in"
	statsdto "studypro/internal/modules/stats/dto"
	timerdto "studypro/internal/modules/timer/dto"
	"studypro/internal/platform/notify"
	"studypro/internal/ui/components"
	"studypro/internal/ui/theme"
	analyticsview "studypro/internal/ui/views/analytics"
	dashboardview "studypro/internal/ui/views/dashboard"
	syllabusview "studypro/internal/ui/views/syllabus"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type timerPort interface {
	Start(ctx context.Context, mode string) (timerdto.StartOutput, error)
	Stop(ctx context.Context, subject string) (timerdto.StopOutput, error)
	StopDetached(ctx context.Context, subject string) (timerdto.StopOutput, error)
	Status(ctx context.Context) (timerdto.StatusOutput, error)
}

type ledgerPort interface {
	Recent(ctx context.Context, n int) (ledgerdto.RecentOutput, error)
}

type statsPort interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
}

type resetPort interface {
	ClearWith(ctx context.Context, confirmer resetin.Confirmer) (resetdto.ClearOutput, error)
}

type busPort interface {
	Subscribe(fn func(notify.Topic)) func()
}

// Deps is everything the TUI drives.
type Deps struct {
	Timer    timerPort
	Ledger   ledgerPort
	Syllabus syllabusview.Port
	Stats    statsPort
	Reset    resetPort
	Bus      busPort
	Subjects []string
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabSyllabus
	tabAnalytics
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Syllabus", "Analytics"}

// ─── async messages ───────────────────────────────────────────────────────────

// changedMsg arrives whenever any service publishes a notification.
type changedMsg struct{ topic notify.Topic }

type timerStartedMsg struct {
	out timerdto.StartOutput
	err error
}

type timerStoppedMsg struct {
	out timerdto.StopOutput
	err error
}

type clearedMsg struct {
	out resetdto.ClearOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Self    key.Binding
	Coach   key.Binding
	Stop    key.Binding
	Subject key.Binding
	Clear   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Self:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "start self study")),
		Coach:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "start coaching")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop timer")),
		Subject: key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "subject")),
		Clear:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all data")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Self, k.Coach, k.Stop, k.Subject},
		{k.Tab, k.Clear},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the timer controls,
// the help overlay, the command palette and the clear-all dialog. Every view
// reloads from the services whenever a change notification arrives.
type Model struct {
	ctx   context.Context
	timer timerPort
	reset resetPort

	changes     chan notify.Topic
	unsubscribe func()

	dashView     dashboardview.Model
	syllabusView syllabusview.Model
	analytics    analyticsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	confirm   components.ConfirmDialog
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(ctx context.Context, deps Deps) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctx:          ctx,
		timer:        deps.Timer,
		reset:        deps.Reset,
		changes:      make(chan notify.Topic, 1),
		unsubscribe:  func() {},
		dashView:     dashboardview.New(dashboardBridge{timer: deps.Timer, ledger: deps.Ledger, stats: deps.Stats}, deps.Subjects),
		syllabusView: syllabusview.New(deps.Syllabus),
		analytics:    analyticsview.New(deps.Stats),
		activeTab:    tabDashboard,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		confirm:      components.NewConfirmDialog("Clear all data", resetdomain.ConfirmPrompt),
		status:       "ready",
	}
	if deps.Bus != nil {
		changes := m.changes
		// One pending notification is enough: every refresh recomputes everything.
		m.unsubscribe = deps.Bus.Subscribe(func(topic notify.Topic) {
			select {
			case changes <- topic:
			default:
			}
		})
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.syllabusView.Init(),
		m.analytics.Init(),
		m.waitForChange(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Modal overlays intercept all input while open.
	if m.confirm.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
	}
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case changedMsg:
		return m, tea.Batch(m.refreshAll(), m.waitForChange())

	case dashboardview.LoadedMsg:
		m.dashView, _ = m.dashView.Update(msg)
		return m, nil

	case syllabusview.LoadedMsg:
		m.syllabusView, _ = m.syllabusView.Update(msg)
		return m, nil

	case analyticsview.LoadedMsg:
		m.analytics, _ = m.analytics.Update(msg)
		return m, nil

	case syllabusview.ChangedMsg:
		if msg.Err != nil {
			m.status = "syllabus: " + msg.Err.Error()
		} else {
			m.status = msg.Status
		}
		return m, nil

	case timerStartedMsg:
		switch {
		case msg.err != nil:
			m.status = "timer start failed: " + msg.err.Error()
		case !msg.out.Started:
			m.status = "timer already running (" + msg.out.Mode + ")"
		default:
			m.status = msg.out.StatusText
		}
		return m, nil

	case timerStoppedMsg:
		m.status = describeStop(msg.out, msg.err)
		return m, nil

	case clearedMsg:
		switch {
		case msg.err != nil:
			m.status = "clear failed: " + msg.err.Error()
		case msg.out.Cleared:
			m.status = "all tracking history deleted"
		default:
			m.status = "nothing cleared"
		}
		return m, nil

	case components.ConfirmResultMsg:
		if !msg.Yes {
			m.status = "clear cancelled"
			return m, nil
		}
		return m, m.clearCmd()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the syllabus input while it has focus.
		if m.activeTab == tabSyllabus && m.syllabusView.Editing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, m.quitCmd()
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "C":
			m.confirm.Open()
			return m, nil
		case "1":
			if m.activeTab == tabDashboard {
				return m, m.startTimerCmd("self-study")
			}
		case "2":
			if m.activeTab == tabDashboard {
				return m, m.startTimerCmd("coaching")
			}
		case "x":
			if m.activeTab == tabDashboard {
				return m, m.stopTimerCmd()
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabSyllabus:
		m.syllabusView, tabCmd = m.syllabusView.Update(msg)
	case tabAnalytics:
		m.analytics, tabCmd = m.analytics.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.confirm.Visible():
		content = m.confirm.CenteredView(m.width, contentH)
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabSyllabus:
		return m.syllabusView.View()
	case tabAnalytics:
		return m.analytics.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "studypro  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Muted.Render("subject: ") + m.dashView.SelectedSubject() + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "timer:self":
		return m, m.startTimerCmd("self-study")
	case "timer:coach":
		return m, m.startTimerCmd("coaching")
	case "timer:stop":
		return m, m.stopTimerCmd()
	case "subject":
		if rest == "" {
			m.status = "usage: subject <name>"
			return m, nil
		}
		if !m.dashView.SelectSubject(rest) {
			m.status = "unknown subject: " + rest
			return m, nil
		}
		m.status = "subject: " + m.dashView.SelectedSubject()
	case "topic:add":
		if rest == "" {
			m.status = "usage: topic:add <text>"
			return m, nil
		}
		m.activeTab = tabSyllabus
		return m, m.syllabusView.AddCmd(rest)
	case "tab:dashboard":
		m.activeTab = tabDashboard
	case "tab:syllabus":
		m.activeTab = tabSyllabus
	case "tab:analytics":
		m.activeTab = tabAnalytics
	case "clear":
		m.confirm.Open()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.syllabusView, _ = m.syllabusView.Update(sz)
	m.analytics, _ = m.analytics.Update(sz)
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(m.dashView.Refresh(), m.syllabusView.Refresh(), m.analytics.Refresh())
}

func describeStop(out timerdto.StopOutput, err error) string {
	switch {
	case err != nil:
		return "timer stop failed: " + err.Error()
	case !out.WasRunning:
		return "no timer running"
	case !out.Committed:
		return fmt.Sprintf("session discarded (%ds)", out.Seconds)
	default:
		return fmt.Sprintf("logged %d mins of %s", out.Log.Minutes, out.Log.Subject)
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) waitForChange() tea.Cmd {
	changes, ctx := m.changes, m.ctx
	return func() tea.Msg {
		select {
		case topic := <-changes:
			return changedMsg{topic: topic}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) startTimerCmd(mode string) tea.Cmd {
	return func() tea.Msg {
		if m.timer == nil {
			return timerStartedMsg{err: fmt.Errorf("timer not configured")}
		}
		out, err := m.timer.Start(m.ctx, mode)
		return timerStartedMsg{out: out, err: err}
	}
}

func (m Model) stopTimerCmd() tea.Cmd {
	subject := m.dashView.SelectedSubject()
	return func() tea.Msg {
		if m.timer == nil {
			return timerStoppedMsg{err: fmt.Errorf("timer not configured")}
		}
		ctx := context.Background()
		status, err := m.timer.Status(ctx)
		if err != nil {
			return timerStoppedMsg{err: err}
		}
		stop := m.timer.Stop
		if status.Detached {
			stop = m.timer.StopDetached
		}
		out, err := stop(ctx, subject)
		return timerStoppedMsg{out: out, err: err}
	}
}

// quitCmd stops this program's own timer, logging it, before it exits. A
// detached timer keeps running.
func (m Model) quitCmd() tea.Cmd {
	subject := m.dashView.SelectedSubject()
	unsubscribe := m.unsubscribe
	return func() tea.Msg {
		unsubscribe()
		if m.timer != nil {
			_, _ = m.timer.Stop(context.Background(), subject)
		}
		return tea.Quit()
	}
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		if m.reset == nil {
			return clearedMsg{err: fmt.Errorf("reset not configured")}
		}
		// The dialog has already asked.
		out, err := m.reset.ClearWith(context.Background(), resetinadapter.Assume(true))
		return clearedMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type dashboardBridge struct {
	timer  timerPort
	ledger ledgerPort
	stats  statsPort
}

func (b dashboardBridge) Status(ctx context.Context) (timerdto.StatusOutput, error) {
	return b.timer.Status(ctx)
}

func (b dashboardBridge) Recent(ctx context.Context, n int) (ledgerdto.RecentOutput, error) {
	return b.ledger.Recent(ctx, n)
}

func (b dashboardBridge) Summary(ctx context.Context) (statsdto.SummaryOutput, error) {
	return b.stats.Summary(ctx)
}
