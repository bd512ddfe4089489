package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/balazsv/quizdeck/internal/quiz"
	"github.com/balazsv/quizdeck/internal/router"
	"github.com/balazsv/quizdeck/internal/screen"
	"github.com/balazsv/quizdeck/internal/ui/layout"
	"github.com/balazsv/quizdeck/internal/ui/theme"
)

// SummaryScreen displays the results of a finished test run.
type SummaryScreen struct {
	topicLabel string
	summary    quiz.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(topicLabel string, sum quiz.Summary) *SummaryScreen {
	return &SummaryScreen{topicLabel: topicLabel, summary: sum}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results: " + s.topicLabel
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to questions"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Test complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Questions: %d", sum.TotalQuestions)))
	b.WriteString("\n\n")

	correct := lipgloss.NewStyle().
		Foreground(theme.Success).
		Render(fmt.Sprintf("Correct: %d", sum.CorrectCount))
	incorrect := lipgloss.NewStyle().
		Foreground(theme.Error).
		Render(fmt.Sprintf("Incorrect: %d", sum.IncorrectCount))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		correct+"        "+incorrect))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Score: %.2f%%", sum.Percentage)))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Time: %.2f minutes", sum.ElapsedMinutes)))

	return b.String()
}
