package prompt

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// ErrNotTerminal is returned when there is no terminal to ask on
var ErrNotTerminal = errors.New("confirmation requires a terminal")

// Confirm asks a yes/no question answered by a single key press
func Confirm(prompt string) (bool, error) {
	return run(New(prompt, Immediate))
}

// ConfirmYes asks a question that is only accepted by typing YES
func ConfirmYes(prompt string) (bool, error) {
	return run(New(prompt, TypeYes))
}

func run(m *Model) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, ErrNotTerminal
	}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return false, fmt.Errorf("confirm failed: %w", err)
	}
	return m.Selected() == Accepted, nil
}
