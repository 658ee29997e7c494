// Package prompt asks the user to confirm destructive operations.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
	"github.com/muesli/termenv"
)

// Decision is the outcome of a confirmation
type Decision int

const (
	// Undecided means no key has been accepted yet
	Undecided Decision = iota
	Accepted
	Denied
)

func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// Mode selects how an answer is entered
type Mode int

const (
	// Immediate decides on a single y or n key press
	Immediate Mode = iota

	// TypeYes requires typing YES and pressing enter
	TypeYes
)

type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Placeholder  lipgloss.Style
	Answer       lipgloss.Style
	Valid        lipgloss.Style
	Invalid      lipgloss.Style
}

// Model is the bubbletea model of a confirmation
type Model struct {
	PromptPrefix string
	Prompt       string
	Mode         Mode
	Styles       Styles

	accept   string
	deny     string
	selected Decision
	done     bool
	text     textinput.Model
}

var _ tea.Model = (*Model)(nil)

// New creates a confirmation showing prompt
func New(prompt string, mode Mode) *Model {
	m := &Model{
		PromptPrefix: "? ",
		Prompt:       prompt,
		Mode:         mode,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
			Answer:       lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(termenv.ANSIBrightBlack)),
			Valid:        lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
			Invalid:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		},
		accept: "y",
		deny:   "N",
	}
	if mode == TypeYes {
		m.accept, m.deny = "YES", "No"
	}
	return m
}

// Selected returns the decision, Denied when the prompt was canceled
func (m *Model) Selected() Decision {
	return m.selected
}

func (m *Model) Init() tea.Cmd {
	input := textinput.New()
	input.Placeholder = m.accept + "/" + m.deny
	if m.Mode == TypeYes {
		input.Placeholder = m.accept
	}
	input.Prompt = strings.TrimSuffix(m.Prompt, " ") + " "
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.CharLimit = len(m.accept)
	input.Focus()
	m.text = input
	return textinput.Blink
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.decide(Denied)
	}

	if m.Mode == Immediate {
		switch strings.ToLower(key.String()) {
		case "y":
			return m.decide(Accepted)
		case "n", "enter":
			return m.decide(Denied)
		}
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		if m.text.Value() == m.accept {
			return m.decide(Accepted)
		}
		return m, nil
	case tea.KeyBackspace:
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}
	if isNextYesChar(key.String(), m.text.Value()) {
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}
	return m, nil
}

// isNextYesChar reports whether s continues "YES" after current
func isNextYesChar(s, current string) bool {
	const want = "YES"
	return len(current) < len(want) && s == want[len(current):len(current)+1]
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))

	if m.done {
		b.WriteString(m.Styles.Prompt.Inline(true).Render(m.Prompt + " "))
		answer := m.deny
		if m.selected == Accepted {
			answer = m.accept
		}
		b.WriteString(m.Styles.Answer.Render(answer))
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(m.text.View())
	if m.Mode == TypeYes {
		b.WriteString(" ")
		if m.text.Value() == m.accept {
			b.WriteString(m.Styles.Valid.Render("✓"))
		} else {
			b.WriteString(m.Styles.Invalid.Render("✗"))
		}
	}
	return b.String()
}
