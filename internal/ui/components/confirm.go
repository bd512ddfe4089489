package components

import (
	"charm.land/lipgloss/v2"

	"github.com/balazsv/quizdeck/internal/ui/theme"
)

// Confirm is a modal yes/no dialog. The owning screen handles the y/n
// keys and calls Close.
type Confirm struct {
	Title string
	open  bool
}

// NewConfirm creates a closed confirm dialog.
func NewConfirm() Confirm {
	return Confirm{}
}

// Open shows the dialog with the given title.
func (c *Confirm) Open(title string) {
	c.Title = title
	c.open = true
}

// Close hides the dialog.
func (c *Confirm) Close() {
	c.open = false
}

// IsOpen reports whether the dialog is visible.
func (c Confirm) IsOpen() bool {
	return c.open
}

// View renders the dialog centered in the given area.
func (c Confirm) View(width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render(c.Title)

	hint := theme.Hint.Render("Y confirm   N cancel")

	card := theme.Card.Render(title + "\n\n" + hint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
