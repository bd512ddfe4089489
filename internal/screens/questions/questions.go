package questions

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/balazsv/quizdeck/internal/bank"
	"github.com/balazsv/quizdeck/internal/catalog"
	"github.com/balazsv/quizdeck/internal/config"
	"github.com/balazsv/quizdeck/internal/quiz"
	"github.com/balazsv/quizdeck/internal/router"
	"github.com/balazsv/quizdeck/internal/screen"
	quizscreen "github.com/balazsv/quizdeck/internal/screens/quiz"
	"github.com/balazsv/quizdeck/internal/transfer"
	"github.com/balazsv/quizdeck/internal/ui/components"
	"github.com/balazsv/quizdeck/internal/ui/layout"
	"github.com/balazsv/quizdeck/internal/ui/theme"
)

// exportedMsg is sent when a questions export finished.
type exportedMsg struct {
	Path string
	Err  error
}

type promptKind int

const (
	promptNone promptKind = iota
	promptEditQuestion
	promptEditAnswer
	promptImportPath
)

// row is one line of the flattened question/answer listing. Answer rows
// carry the answer id; question rows leave it empty.
type row struct {
	questionID int64
	answerID   string
}

func (r row) isAnswer() bool {
	return r.answerID != ""
}

// QuestionsScreen is the bank editor for one topic.
type QuestionsScreen struct {
	topic catalog.Topic
	bank  *bank.Bank
	cfg   config.Config

	cursor   int
	rows     []row
	expanded map[int64]bool

	prompt       components.Prompt
	promptFor    promptKind
	editTarget   row
	confirm      components.Confirm
	deleteTarget row

	status      string
	statusIsErr bool
}

var _ screen.Screen = (*QuestionsScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionsScreen)(nil)
var _ screen.EscHandler = (*QuestionsScreen)(nil)

// New creates the editor screen for a loaded bank.
func New(topic catalog.Topic, b *bank.Bank, cfg config.Config) *QuestionsScreen {
	s := &QuestionsScreen{
		topic:    topic,
		bank:     b,
		cfg:      cfg,
		expanded: make(map[int64]bool),
	}
	s.rebuildRows()
	return s
}

func (s *QuestionsScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionsScreen) Title() string {
	return fmt.Sprintf("%s (%d questions)", s.topic.Label, s.bank.Len())
}

func (s *QuestionsScreen) HandlesEsc() bool {
	return s.prompt.IsOpen() || s.confirm.IsOpen()
}

func (s *QuestionsScreen) KeyHints() []layout.KeyHint {
	if s.prompt.IsOpen() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.confirm.IsOpen() {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Expand"},
		{Key: "A", Description: "Question"},
		{Key: "W", Description: "Answer"},
		{Key: "E", Description: "Edit"},
		{Key: "C", Description: "Copy"},
		{Key: "X", Description: "Delete"},
	}
	if r, ok := s.currentRow(); ok && r.isAnswer() {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Correct"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "S", Description: "Test"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
	return hints
}

func (s *QuestionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportedMsg:
		if msg.Err != nil {
			s.setStatus(fmt.Sprintf("export failed: %v", msg.Err), true)
		} else {
			s.setStatus(fmt.Sprintf("exported to %s", msg.Path), false)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestionsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.prompt.IsOpen() {
		switch key {
		case "enter":
			value := s.prompt.Value()
			kind := s.promptFor
			target := s.editTarget
			s.prompt.Close()
			s.promptFor = promptNone
			if value == "" {
				return s, nil
			}
			switch kind {
			case promptEditQuestion:
				s.reportMutation(s.bank.EditQuestionText(target.questionID, value))
			case promptEditAnswer:
				s.reportMutation(s.bank.EditAnswerText(target.questionID, target.answerID, value))
			case promptImportPath:
				s.importQuestions(value)
			}
			s.rebuildRows()
			return s, nil
		case "esc":
			s.prompt.Close()
			s.promptFor = promptNone
			return s, nil
		}
		var cmd tea.Cmd
		s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd
	}

	if s.confirm.IsOpen() {
		switch key {
		case "y", "Y":
			s.confirm.Close()
			t := s.deleteTarget
			if t.isAnswer() {
				s.reportMutation(s.bank.DeleteAnswer(t.questionID, t.answerID))
			} else {
				s.reportMutation(s.bank.DeleteQuestion(t.questionID))
				delete(s.expanded, t.questionID)
			}
			s.rebuildRows()
		case "n", "N", "esc":
			s.confirm.Close()
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
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
		return s, nil

	case "enter":
		if r, ok := s.currentRow(); ok && !r.isAnswer() {
			s.expanded[r.questionID] = !s.expanded[r.questionID]
			s.rebuildRows()
		}
		return s, nil

	case "a":
		s.status = ""
		if _, err := s.bank.CreateQuestion(); err != nil {
			s.setStatus(fmt.Sprintf("save failed: %v", err), true)
		}
		s.rebuildRows()
		return s, nil

	case "w":
		r, ok := s.currentRow()
		if !ok {
			return s, nil
		}
		s.status = ""
		s.reportMutation(func() error {
			_, err := s.bank.CreateAnswer(r.questionID)
			return err
		}())
		s.expanded[r.questionID] = true
		s.rebuildRows()
		return s, nil

	case "e":
		r, ok := s.currentRow()
		if !ok {
			return s, nil
		}
		s.status = ""
		s.editTarget = r
		if r.isAnswer() {
			s.promptFor = promptEditAnswer
			return s, s.prompt.Open("Edit answer", s.answerText(r))
		}
		s.promptFor = promptEditQuestion
		return s, s.prompt.Open("Edit question", s.questionText(r.questionID))

	case "c":
		r, ok := s.currentRow()
		if !ok {
			return s, nil
		}
		s.status = ""
		if r.isAnswer() {
			s.reportMutation(func() error {
				_, err := s.bank.DuplicateAnswer(r.questionID, r.answerID)
				return err
			}())
		} else {
			s.reportMutation(func() error {
				_, err := s.bank.DuplicateQuestion(r.questionID)
				return err
			}())
		}
		s.rebuildRows()
		return s, nil

	case "x":
		r, ok := s.currentRow()
		if !ok {
			return s, nil
		}
		s.status = ""
		s.deleteTarget = r
		if r.isAnswer() {
			s.confirm.Open("Delete this answer?")
		} else {
			s.confirm.Open("Delete this question and its answers?")
		}
		return s, nil

	case "space", " ":
		r, ok := s.currentRow()
		if !ok || !r.isAnswer() {
			return s, nil
		}
		s.status = ""
		if a, found := s.findAnswer(r); found {
			s.reportMutation(s.bank.SetAnswerCorrect(r.questionID, r.answerID, !a.Correct))
		}
		s.rebuildRows()
		return s, nil

	case "s":
		return s.startTest()

	case "o":
		s.status = ""
		return s, s.exportQuestions()

	case "i":
		s.status = ""
		s.promptFor = promptImportPath
		return s, s.prompt.Open("Import questions from file", "")
	}

	return s, nil
}

// startTest snapshots the bank and pushes the quiz screen.
func (s *QuestionsScreen) startTest() (screen.Screen, tea.Cmd) {
	s.status = ""
	run, err := quiz.NewRun(s.bank.Questions())
	if err != nil {
		if errors.Is(err, quiz.ErrNoQuestions) {
			s.setStatus("no questions to test", true)
		} else {
			s.setStatus(fmt.Sprintf("start failed: %v", err), true)
		}
		return s, nil
	}
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quizscreen.New(s.topic.Label, run),
		}
	}
}

// exportQuestions writes the bank to a timestamped JSON file.
func (s *QuestionsScreen) exportQuestions() tea.Cmd {
	questions := s.bank.Questions()
	topicID := s.topic.ID
	dir := s.cfg.ExportDir
	return func() tea.Msg {
		data, err := transfer.ExportQuestions(questions)
		if err != nil {
			return exportedMsg{Err: err}
		}
		path, err := transfer.WriteExport(dir, transfer.QuestionsFilename(topicID, time.Now()), data)
		return exportedMsg{Path: path, Err: err}
	}
}

// importQuestions replaces the bank from a JSON file. Existing
// questions are untouched when the file does not validate.
func (s *QuestionsScreen) importQuestions(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		s.setStatus(fmt.Sprintf("import failed: %v", err), true)
		return
	}
	questions, err := transfer.ParseQuestions(raw)
	if err != nil {
		s.setStatus("invalid import file", true)
		return
	}
	if err := s.bank.ReplaceAll(questions); err != nil {
		s.setStatus(fmt.Sprintf("import failed: %v", err), true)
		return
	}
	s.expanded = make(map[int64]bool)
	s.setStatus(fmt.Sprintf("imported %d questions", len(questions)), false)
}

// reportMutation turns a bank error into the status line. Stale
// references happen when the listing raced an earlier removal.
func (s *QuestionsScreen) reportMutation(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, bank.ErrStaleRef) {
		s.setStatus("item no longer exists", true)
		return
	}
	s.setStatus(fmt.Sprintf("save failed: %v", err), true)
}

func (s *QuestionsScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusIsErr = isErr
}

func (s *QuestionsScreen) currentRow() (row, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return row{}, false
	}
	return s.rows[s.cursor], true
}

func (s *QuestionsScreen) questionText(id int64) string {
	if q, ok := s.bank.Get(id); ok {
		return q.Text
	}
	return ""
}

func (s *QuestionsScreen) answerText(r row) string {
	if a, ok := s.findAnswer(r); ok {
		return a.Text
	}
	return ""
}

func (s *QuestionsScreen) findAnswer(r row) (bank.Answer, bool) {
	q, ok := s.bank.Get(r.questionID)
	if !ok {
		return bank.Answer{}, false
	}
	for _, a := range q.Answers {
		if a.ID == r.answerID {
			return a, true
		}
	}
	return bank.Answer{}, false
}

// rebuildRows reflattens the listing after any structural change,
// keeping the cursor in range.
func (s *QuestionsScreen) rebuildRows() {
	rows := make([]row, 0, s.bank.Len())
	for _, q := range s.bank.Questions() {
		rows = append(rows, row{questionID: q.ID})
		if !s.expanded[q.ID] {
			continue
		}
		for _, a := range q.Answers {
			rows = append(rows, row{questionID: q.ID, answerID: a.ID})
		}
	}
	s.rows = rows
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *QuestionsScreen) View(width, height int) string {
	if s.prompt.IsOpen() {
		return s.prompt.View(width, height)
	}
	if s.confirm.IsOpen() {
		return s.confirm.View(width, height)
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.rows) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No questions yet. Press A to create one."))
	} else {
		questions := s.bank.Questions()
		byID := make(map[int64]bank.Question, len(questions))
		for _, q := range questions {
			byID[q.ID] = q
		}

		for i, r := range s.rows {
			b.WriteString(s.renderRow(r, byID[r.questionID], i == s.cursor))
			b.WriteString("\n")
		}
	}

	if s.status != "" {
		c := theme.TextDim
		if s.statusIsErr {
			c = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(c).
			Render(s.status))
	}

	return b.String()
}

func (s *QuestionsScreen) renderRow(r row, q bank.Question, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}

	if !r.isAnswer() {
		marker := "▸"
		if s.expanded[q.ID] {
			marker = "▾"
		}
		line := fmt.Sprintf("%s%s %s  (%d answers)", prefix, marker, q.Text, len(q.Answers))
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		return style.Render(line)
	}

	var answer bank.Answer
	for _, a := range q.Answers {
		if a.ID == r.answerID {
			answer = a
			break
		}
	}
	box := "[ ]"
	if answer.Correct {
		box = "[x]"
	}
	line := fmt.Sprintf("%s    %s %s", prefix, box, answer.Text)
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if answer.Correct {
		style = lipgloss.NewStyle().Foreground(theme.Success)
	}
	if selected {
		style = style.Bold(true).Foreground(theme.Primary)
	}
	return style.Render(line)
}
