package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	ledgerdto "studypro/internal/modules/ledger/dto"
	statsdto "studypro/internal/modules/stats/dto"
	timerdto "studypro/internal/modules/timer/dto"
	"studypro/internal/ui/components"
	"studypro/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Status(ctx context.Context) (timerdto.StatusOutput, error)
	Recent(ctx context.Context, n int) (ledgerdto.RecentOutput, error)
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Status  timerdto.StatusOutput
	Recent  ledgerdto.RecentOutput
	Summary statsdto.SummaryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	subjects []string
	subject  int
	status   timerdto.StatusOutput
	recent   ledgerdto.RecentOutput
	summary  statsdto.SummaryOutput
	err      error
	width    int
	height   int
}

func New(port Port, subjects []string) Model {
	return Model{port: port, subjects: subjects}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads timer state, recent logs and the goal from scratch.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("dashboard port not configured")}
		}
		ctx := context.Background()
		status, err := m.port.Status(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		recent, err := m.port.Recent(ctx, 0)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		summary, err := m.port.Summary(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Status: status, Recent: recent, Summary: summary}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.status = msg.Status
			m.recent = msg.Recent
			m.summary = msg.Summary
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "]":
			m.CycleSubject(1)
		case "[":
			m.CycleSubject(-1)
		}
	}
	return m, nil
}

// CycleSubject moves the subject selector by delta, wrapping around.
func (m *Model) CycleSubject(delta int) {
	n := len(m.subjects)
	if n == 0 {
		return
	}
	m.subject = ((m.subject+delta)%n + n) % n
}

// SelectSubject picks name when it is one of the options and reports whether it was.
func (m *Model) SelectSubject(name string) bool {
	for i, s := range m.subjects {
		if strings.EqualFold(s, name) {
			m.subject = i
			return true
		}
	}
	return false
}

// SelectedSubject is what the next stop will be logged under.
func (m Model) SelectedSubject() string {
	if len(m.subjects) == 0 {
		return ""
	}
	return m.subjects[m.subject]
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Alert.Render("dashboard: " + m.err.Error())
	}
	half := max(m.width/2-2, 20)
	left := theme.Pane.Width(half).Render(m.renderTimer())
	right := theme.Pane.Width(half).Render(m.renderRecent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderTimer() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Session Timer") + "\n\n")
	clock := theme.Clock
	if m.status.Running {
		clock = clock.Foreground(theme.ModeColor(m.status.Mode))
	}
	sb.WriteString(clock.Render(m.status.Clock) + "\n")
	sb.WriteString(theme.Muted.Render(m.status.StatusText) + "\n\n")
	sb.WriteString(theme.Muted.Render("subject: ") + m.renderSubjects() + "\n\n")

	goal := m.summary.GoalPercent
	sb.WriteString(fmt.Sprintf("%s %s / %dh\n", theme.Muted.Render("today's goal"), m.summary.TotalHours, m.summary.GoalHours))
	sb.WriteString(components.Bar(goal, 24, theme.Green) + fmt.Sprintf(" %.0f%%\n\n", goal))
	sb.WriteString(theme.Muted.Render("1: self study  2: coaching  x: stop  [/]: subject"))
	return sb.String()
}

func (m Model) renderSubjects() string {
	parts := make([]string, len(m.subjects))
	for i, s := range m.subjects {
		if i == m.subject {
			parts[i] = theme.Hot.Render(s)
		} else {
			parts[i] = theme.Muted.Render(s)
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderRecent() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recent Activity") + "\n\n")
	if m.recent.Empty {
		sb.WriteString(theme.Muted.Render(ledgerdto.EmptyPlaceholder))
		return sb.String()
	}
	for _, log := range m.recent.Logs {
		kind := lipgloss.NewStyle().Foreground(theme.ModeColor(log.Type)).Render(fmt.Sprintf("%-10s", log.Type))
		sb.WriteString(fmt.Sprintf("%s %-12s %4d mins  %s\n",
			kind, log.Subject, log.Minutes, theme.Muted.Render(humanize.Time(log.Date))))
	}
	return sb.String()
}
