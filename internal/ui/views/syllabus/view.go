package syllabus

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	syllabusdto "studypro/internal/modules/syllabus/dto"
	"studypro/internal/ui/components"
	"studypro/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Add(ctx context.Context, text string) (syllabusdto.AddOutput, error)
	Toggle(ctx context.Context, id string) (syllabusdto.ChangeOutput, error)
	Remove(ctx context.Context, id string) (syllabusdto.ChangeOutput, error)
	List(ctx context.Context) (syllabusdto.ListOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	List syllabusdto.ListOutput
	Err  error
}

// ChangedMsg reports the outcome of an add, toggle or remove.
type ChangedMsg struct {
	Status string
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists topics with a cursor. While the input is focused it owns the keyboard.
type Model struct {
	port   Port
	input  textinput.Model
	list   syllabusdto.ListOutput
	cursor int
	err    error
	width  int
	height int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "new topic…"
	ti.CharLimit = 200
	return Model{port: port, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("syllabus port not configured")}
		}
		list, err := m.port.List(context.Background())
		return LoadedMsg{List: list, Err: err}
	}
}

// Editing reports whether the text input has focus.
func (m Model) Editing() bool { return m.input.Focused() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-12, 10)
		return m, nil
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.list = msg.List
			m.cursor = max(0, min(m.cursor, len(m.list.Items)-1))
		}
		return m, nil
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "a", "i":
			return m, m.input.Focus()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.list.Items)-1 {
				m.cursor++
			}
		case " ", "enter":
			if id, ok := m.selectedID(); ok {
				return m, m.toggleCmd(id)
			}
		case "d", "delete":
			if id, ok := m.selectedID(); ok {
				return m, m.removeCmd(id)
			}
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		return m, nil
	case "enter":
		text := m.input.Value()
		m.input.SetValue("")
		return m, m.AddCmd(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) selectedID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list.Items) {
		return "", false
	}
	return m.list.Items[m.cursor].ID, true
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Alert.Render("syllabus: " + m.err.Error())
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Syllabus") + "  ")
	sb.WriteString(fmt.Sprintf("%s %d%% Completed\n\n",
		components.Bar(float64(m.list.Percent), 20, theme.Green), m.list.Percent))
	sb.WriteString("+ " + m.input.View() + "\n\n")
	for i, item := range m.list.Items {
		cursor := "  "
		if i == m.cursor && !m.input.Focused() {
			cursor = theme.Hot.Render("> ")
		}
		if item.Done {
			sb.WriteString(cursor + "[x] " + theme.Done.Render(item.Text) + "\n")
		} else {
			sb.WriteString(cursor + "[ ] " + item.Text + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("a: add  space: toggle  d: delete  esc: leave input"))
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

// AddCmd adds text as a topic. Blank text changes nothing.
func (m Model) AddCmd(text string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Add(context.Background(), text)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		if !out.Created {
			return ChangedMsg{Status: "topic text is empty"}
		}
		return ChangedMsg{Status: "added " + out.Item.Text}
	}
}

func (m Model) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Toggle(context.Background(), id)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Status: fmt.Sprintf("%s done=%t", out.Item.Text, out.Item.Done)}
	}
}

func (m Model) removeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Remove(context.Background(), id)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Status: "removed " + out.Item.Text}
	}
}
