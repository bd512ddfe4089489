package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/balazsv/quizdeck/internal/ui/theme"
)

// Prompt is a modal text-entry dialog. The owning screen decides what
// to do on enter (read Value, then Close) and esc (just Close).
type Prompt struct {
	Title string
	Input TextInput
	open  bool
}

// NewPrompt creates a closed prompt.
func NewPrompt() Prompt {
	return Prompt{}
}

// Open shows the dialog with the given title and initial value.
func (p *Prompt) Open(title, initial string) tea.Cmd {
	p.Title = title
	p.Input = NewTextInput("", 200)
	p.Input.SetValue(initial)
	p.open = true
	return p.Input.Init()
}

// Close hides the dialog.
func (p *Prompt) Close() {
	p.open = false
}

// IsOpen reports whether the dialog is visible.
func (p Prompt) IsOpen() bool {
	return p.open
}

// Value returns the entered text, trimmed.
func (p Prompt) Value() string {
	return strings.TrimSpace(p.Input.Value())
}

// Update forwards messages to the input while open.
func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	var cmd tea.Cmd
	p.Input, cmd = p.Input.Update(msg)
	return p, cmd
}

// View renders the dialog centered in the given area.
func (p Prompt) View(width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(p.Title)

	hint := theme.Hint.Render("Enter save   Esc cancel")

	card := theme.Card.Render(title + "\n\n" + p.Input.View() + "\n\n" + hint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
