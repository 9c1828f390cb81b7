package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studypro/internal/ui/theme"
)

// ConfirmResultMsg is emitted once the dialog is answered.
type ConfirmResultMsg struct{ Yes bool }

// ConfirmDialog is a modal yes/no question. It defaults to No.
type ConfirmDialog struct {
	title    string
	message  string
	selected bool
	visible  bool
}

func NewConfirmDialog(title, message string) ConfirmDialog {
	return ConfirmDialog{title: title, message: message}
}

func (c ConfirmDialog) Visible() bool { return c.visible }

func (c ConfirmDialog) IsYesSelected() bool { return c.selected }

func (c *ConfirmDialog) Open() {
	c.visible = true
	c.selected = false
}

func (c ConfirmDialog) Update(msg tea.Msg) (ConfirmDialog, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch key.String() {
	case "left", "right", "tab", "h", "l":
		c.selected = !c.selected
	case "y", "Y":
		return c.answer(true)
	case "n", "N", "esc":
		return c.answer(false)
	case "enter":
		return c.answer(c.selected)
	}
	return c, nil
}

func (c ConfirmDialog) answer(yes bool) (ConfirmDialog, tea.Cmd) {
	c.visible = false
	c.selected = false
	return c, func() tea.Msg { return ConfirmResultMsg{Yes: yes} }
}

func (c ConfirmDialog) View() string {
	yesStyle := lipgloss.NewStyle().Foreground(theme.Subtext0).Padding(0, 2)
	noStyle := yesStyle
	picked := lipgloss.NewStyle().Background(theme.Peach).Foreground(theme.Base).Bold(true).Padding(0, 2)
	if c.selected {
		yesStyle = picked
	} else {
		noStyle = picked
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Left,
		"[ ", yesStyle.Render("Yes"), " ] [ ", noStyle.Render("No"), " ]")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Red).
		Background(theme.Mantle).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			theme.Alert.Render(c.title),
			"",
			c.message,
			"",
			buttons,
		))
}

// CenteredView renders the dialog centered in a width x height box.
func (c ConfirmDialog) CenteredView(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, c.View())
}
