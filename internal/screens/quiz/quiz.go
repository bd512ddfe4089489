package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"

	qz "github.com/balazsv/quizdeck/internal/quiz"
	"github.com/balazsv/quizdeck/internal/router"
	"github.com/balazsv/quizdeck/internal/screen"
	"github.com/balazsv/quizdeck/internal/screens/summary"
	"github.com/balazsv/quizdeck/internal/ui/components"
	"github.com/balazsv/quizdeck/internal/ui/layout"
)

// QuizScreen drives one test run over a topic snapshot.
type QuizScreen struct {
	topicLabel string
	run        *qz.Run
	cursor     int
	confirm    components.Confirm
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscHandler = (*QuizScreen)(nil)

// New creates the quiz screen for a freshly built run.
func New(topicLabel string, run *qz.Run) *QuizScreen {
	return &QuizScreen{topicLabel: topicLabel, run: run}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Test: " + s.topicLabel
}

func (s *QuizScreen) HandlesEsc() bool {
	return s.run.Phase == qz.PhaseInProgress || s.confirm.IsOpen()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirm.IsOpen() {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.run.Phase {
	case qz.PhaseNotStarted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	case qz.PhaseInProgress:
		q := s.run.Current()
		if q != nil && q.Answered {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Next"},
				{Key: "Esc", Description: "Abandon"},
			}
		}
		if q != nil && q.MultiAnswer {
			return []layout.KeyHint{
				{Key: "Space", Description: "Toggle"},
				{Key: "Enter", Description: "Submit"},
				{Key: "1-9", Description: "Toggle"},
				{Key: "Esc", Description: "Abandon"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Answer"},
			{Key: "1-9", Description: "Answer"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		s.run.Tick()
		if s.run.Phase == qz.PhaseInProgress {
			return s, tickCmd()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirm.IsOpen() {
		switch key {
		case "y", "Y":
			s.confirm.Close()
			s.run.Close()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirm.Close()
		}
		return s, nil
	}

	switch s.run.Phase {
	case qz.PhaseNotStarted:
		if key == "enter" {
			s.run.Start()
			return s, tickCmd()
		}
		return s, nil

	case qz.PhaseInProgress:
		return s.handleQuestionKey(key)
	}

	return s, nil
}

func (s *QuizScreen) handleQuestionKey(key string) (screen.Screen, tea.Cmd) {
	q := s.run.Current()
	if q == nil {
		return s, nil
	}

	if key == "esc" {
		s.confirm.Open("Abandon this test?")
		return s, nil
	}

	if q.Answered {
		if key == "enter" {
			return s.advance()
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil

	case "down", "j":
		if s.cursor < len(q.Answers)-1 {
			s.cursor++
		}
		return s, nil

	case "enter":
		if q.MultiAnswer {
			s.run.Commit()
			return s, nil
		}
		if s.cursor >= 0 && s.cursor < len(q.Answers) {
			_ = s.run.Select(q.Answers[s.cursor].ID)
		}
		return s, nil

	case "space", " ":
		if q.MultiAnswer && s.cursor >= 0 && s.cursor < len(q.Answers) {
			_ = s.run.Select(q.Answers[s.cursor].ID)
		}
		return s, nil
	}

	// Digit keys address answers directly.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(q.Answers) {
			s.cursor = idx
			_ = s.run.Select(q.Answers[idx].ID)
		}
	}

	return s, nil
}

// advance moves to the next question, or swaps in the summary once the
// run has ended.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	s.run.Advance()
	s.cursor = 0

	if s.run.Phase != qz.PhaseEnded {
		return s, nil
	}

	sum := s.run.Summary()
	topicLabel := s.topicLabel
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(topicLabel, sum),
		}
	}
}

// tickCmd returns a 1-second tick command. It is armed on Start and
// re-armed only while the run is still in progress.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
