package analytics

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "studypro/internal/modules/stats/dto"
	"studypro/internal/ui/components"
	"studypro/internal/ui/theme"
)

type Port interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
}

type LoadedMsg struct {
	Summary statsdto.SummaryOutput
	Err     error
}

type Model struct {
	port    Port
	summary statsdto.SummaryOutput
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("analytics port not configured")}
		}
		summary, err := m.port.Summary(context.Background())
		return LoadedMsg{Summary: summary, Err: err}
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
			m.summary = msg.Summary
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Alert.Render("analytics: " + m.err.Error())
	}
	s := m.summary
	cardW := max(m.width/3-4, 16)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Self Study", s.SelfHours, theme.Green, cardW),
		card("Coaching", s.CoachHours, theme.Mauve, cardW),
		card("Total", s.TotalHours, theme.Sapphire, cardW),
	)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Subject Breakdown") + "\n\n")
	if s.Empty {
		sb.WriteString(theme.Muted.Render(statsdto.EmptyPlaceholder))
	} else {
		barW := max(m.width-40, 10)
		for _, sub := range s.Subjects {
			sb.WriteString(fmt.Sprintf("%-14s %s %6s  %s\n",
				sub.Subject, components.Bar(sub.Percent, barW, theme.Lavender), sub.PercentText, theme.Muted.Render(sub.Hours)))
		}
	}
	breakdown := theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
	return lipgloss.JoinVertical(lipgloss.Left, cards, breakdown)
}

func card(label, value string, color lipgloss.Color, width int) string {
	body := theme.Muted.Render(label) + "\n" + lipgloss.NewStyle().Foreground(color).Bold(true).Render(value)
	return theme.Pane.Width(width).Render(body)
}
