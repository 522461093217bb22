// internal/tui/import_stack.go
// Package tui provides the terminal editor for the import stack.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/autoworker/internal/importstack"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	itemStyle   = lipgloss.NewStyle().PaddingLeft(2)
	topStyle    = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("229")).Bold(true)
	emptyStyle  = lipgloss.NewStyle().PaddingLeft(2).Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const helpText = "enter add • ctrl+p pop • ctrl+b back • tab history • ctrl+l clear • esc quit"

// stackModel is the Bubble Tea model for editing an import stack.
type stackModel struct {
	stack       *importstack.Stack
	input       textinput.Model
	showHistory bool
	status      string
	err         error
	width       int
}

func newStackModel(stack *importstack.Stack) *stackModel {
	ti := textinput.New()
	ti.Placeholder = "from package import name, other"
	ti.Prompt = "Import: "
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	if stack == nil {
		stack = &importstack.Stack{}
	}
	return &stackModel{stack: stack, input: ti}
}

// Init starts the cursor blink.
func (m *stackModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m *stackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 20 {
			m.input.Width = msg.Width - 20
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.add(m.input.Value())
			return m, nil
		case "ctrl+p":
			item, err := m.stack.Pop()
			m.setResult(fmt.Sprintf("popped %q", item), err)
			return m, nil
		case "ctrl+b":
			m.setResult("restored last pop", m.stack.Back())
			return m, nil
		case "tab":
			m.showHistory = !m.showHistory
			return m, nil
		case "ctrl+l":
			m.stack.Clear()
			m.setResult("cleared stack and history", nil)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *stackModel) add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	before := m.stack.Len()
	if err := m.stack.PushLine(text); err != nil {
		m.setResult("", err)
		return
	}
	m.input.SetValue("")
	m.setResult(fmt.Sprintf("added %d import(s)", m.stack.Len()-before), nil)
}

func (m *stackModel) setResult(status string, err error) {
	m.err = err
	if err != nil {
		m.status = ""
		return
	}
	m.status = status
}

// View renders the stack, optional history, input and help.
func (m *stackModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Import Stack"))
	b.WriteString("\n")

	items := m.stack.Items()
	var lines []string
	if len(items) == 0 {
		lines = append(lines, emptyStyle.Render("(empty)"))
	}
	for i := len(items) - 1; i >= 0; i-- {
		if i == len(items)-1 {
			lines = append(lines, topStyle.Render(items[i]))
			continue
		}
		lines = append(lines, itemStyle.Render(items[i]))
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if m.showHistory {
		b.WriteString(titleStyle.Render("History"))
		b.WriteString("\n")
		history := m.stack.History()
		if len(history) == 0 {
			b.WriteString(emptyStyle.Render("(no history)"))
			b.WriteString("\n")
		}
		for _, action := range history {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s: %s", action.Kind, action.Item)))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(helpText))
	return b.String()
}

// RunImportStack opens the interactive editor on stack and blocks until the user quits.
func RunImportStack(stack *importstack.Stack) error {
	p := tea.NewProgram(newStackModel(stack))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run import stack editor: %w", err)
	}
	return nil
}
