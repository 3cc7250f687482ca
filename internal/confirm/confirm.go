// Package confirm provides the yes/no collaborator consulted before
// destructive operations.
package confirm

import (
	"io"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/momentum/internal/logger"
)

// Confirmer answers a yes/no question. Implementations block until answered.
type Confirmer interface {
	Confirm(message string) bool
}

// Always answers every question with the same value
type Always bool

func (a Always) Confirm(string) bool { return bool(a) }

// Func adapts a plain function to the Confirmer interface
type Func func(message string) bool

func (f Func) Confirm(message string) bool { return f(message) }

// Prompt asks on the terminal using a huh confirm field
type Prompt struct {
	Affirmative string
	Negative    string
	// Input overrides the terminal for tests; nil uses stdin
	Input io.Reader
	// Output overrides the terminal for tests; nil uses stdout
	Output io.Writer
}

// NewPrompt returns a terminal prompt with Yes/No labels
func NewPrompt() *Prompt {
	return &Prompt{Affirmative: "Yes", Negative: "No"}
}

// Confirm runs the prompt. Aborting or any form error counts as no.
func (p *Prompt) Confirm(message string) bool {
	var answer bool
	field := huh.NewConfirm().
		Title(message).
		Affirmative(p.Affirmative).
		Negative(p.Negative).
		Value(&answer)

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(huh.ThemeDracula())
	if p.Input != nil {
		form = form.WithInput(p.Input)
	}
	if p.Output != nil {
		form = form.WithOutput(p.Output)
	}

	if err := form.Run(); err != nil {
		logger.Debug("Confirmation prompt ended without an answer", "error", err)
		return false
	}
	return answer
}
