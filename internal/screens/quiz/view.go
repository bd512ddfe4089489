package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/balazsv/quizdeck/internal/quiz"
	"github.com/balazsv/quizdeck/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.confirm.IsOpen() {
		return s.confirm.View(width, height)
	}

	switch s.run.Phase {
	case qz.PhaseNotStarted:
		return s.renderNotStarted(width)
	case qz.PhaseInProgress:
		return s.renderQuestion(width)
	}
	return ""
}

// renderNotStarted renders the pre-test prompt.
func (s *QuizScreen) renderNotStarted(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(s.topicLabel))
	b.WriteString("\n\n")

	count := len(s.run.Questions)
	noun := "questions"
	if count == 1 {
		noun = "question"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%d %s, shuffled order", count, noun)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to begin"))

	return b.String()
}

// renderQuestion renders the active question display.
func (s *QuizScreen) renderQuestion(width int) string {
	q := s.run.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	mins := s.run.ElapsedSeconds / 60
	secs := s.run.ElapsedSeconds % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Q %d/%d", s.run.Position+1, len(s.run.Questions)))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %d:%02d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("*"),
			s.run.CorrectCount,
			mins, secs,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Text))
	if q.MultiAnswer && !q.Answered {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("(select all that apply)"))
	}
	b.WriteString("\n\n")

	b.WriteString(s.renderAnswers(width, q))

	if q.Answered {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Enter for the next question"))
	}

	return b.String()
}

// renderAnswers renders the answer list. While the question is open the
// cursor and selection flags show; once answered, answers are recolored
// by correctness.
func (s *QuizScreen) renderAnswers(width int, q *qz.RunQuestion) string {
	var b strings.Builder

	for i, a := range q.Answers {
		prefix := "  "
		if !q.Answered && i == s.cursor {
			prefix = "> "
		}

		mark := " "
		if a.Selected {
			mark = "x"
		}

		var line string
		if q.MultiAnswer {
			line = fmt.Sprintf("%s[%s] %d) %s", prefix, mark, i+1, a.Text)
		} else {
			line = fmt.Sprintf("%s%d) %s", prefix, i+1, a.Text)
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case q.Answered && a.Correct:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case q.Answered && a.Selected && !a.Correct:
			style = lipgloss.NewStyle().Foreground(theme.Error)
		case q.Answered:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == s.cursor:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		case a.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
