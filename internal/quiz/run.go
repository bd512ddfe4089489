// Package quiz implements the self-test state machine: an ephemeral,
// randomized, scored traversal of a snapshot of a topic's questions.
//
// A Run owns an independent deep copy of the question data, so nothing
// the learner does during a test writes back to the question bank. The
// run moves NotStarted -> InProgress -> Ended and never back; a closed
// or ended run is simply discarded.
package quiz

import (
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/balazsv/quizdeck/internal/bank"
)

// ErrNoQuestions is returned when a run is constructed from an empty
// question list. The UI must not offer to start a test in that case;
// the constructor fails fast if it happens anyway.
var ErrNoQuestions = errors.New("no questions available")

// ErrUnknownAnswer reports a selection naming an answer id that is not
// part of the current question.
var ErrUnknownAnswer = errors.New("unknown answer")

// Phase is the lifecycle phase of a run.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseEnded
)

// RunAnswer is an answer within a run, annotated with a transient
// selection flag.
type RunAnswer struct {
	ID       string
	Text     string
	Correct  bool
	Selected bool
}

// RunQuestion is a question snapshot within a run. MultiAnswer is
// classified once at construction (more than one correct answer) and
// never changes.
type RunQuestion struct {
	ID          int64
	Text        string
	Answers     []RunAnswer
	MultiAnswer bool
	Answered    bool
}

// Run is a randomized, scored traversal of a question bank snapshot.
type Run struct {
	ID             string
	Questions      []RunQuestion
	Position       int
	CorrectCount   int
	ElapsedSeconds int
	Phase          Phase
}

// NewRun builds a run from a bank snapshot: question order and each
// question's answer order are independently shuffled, every answer
// starts unselected.
func NewRun(src []bank.Question) (*Run, error) {
	return NewRunWithRand(src, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewRunWithRand is NewRun with an injected random source.
func NewRunWithRand(src []bank.Question, rng *rand.Rand) (*Run, error) {
	if len(src) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]RunQuestion, len(src))
	for i, q := range src {
		answers := make([]RunAnswer, len(q.Answers))
		correctCount := 0
		for j, a := range q.Answers {
			answers[j] = RunAnswer{ID: a.ID, Text: a.Text, Correct: a.Correct}
			if a.Correct {
				correctCount++
			}
		}
		shuffle(answers, rng)
		questions[i] = RunQuestion{
			ID:          q.ID,
			Text:        q.Text,
			Answers:     answers,
			MultiAnswer: correctCount > 1,
		}
	}
	shuffle(questions, rng)

	return &Run{ID: uuid.New().String(), Questions: questions}, nil
}

// Start moves the run from NotStarted to InProgress.
func (r *Run) Start() {
	if r.Phase == PhaseNotStarted {
		r.Phase = PhaseInProgress
	}
}

// Current returns the question at the current position, or nil after
// the run has ended.
func (r *Run) Current() *RunQuestion {
	if r.Phase == PhaseEnded || r.Position < 0 || r.Position >= len(r.Questions) {
		return nil
	}
	return &r.Questions[r.Position]
}

// Select registers a choice on the current question.
//
// On a single-answer question the first select is a terminal commit:
// the question becomes answered and a correct pick increments the
// score by exactly one. Selects on an already-answered question are
// ignored. On a multi-answer question Select toggles the answer's
// selection flag; nothing is scored until Commit.
func (r *Run) Select(answerID string) error {
	q := r.Current()
	if r.Phase != PhaseInProgress || q == nil {
		return nil
	}
	if q.Answered {
		return nil
	}

	idx := -1
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownAnswer
	}

	if q.MultiAnswer {
		q.Answers[idx].Selected = !q.Answers[idx].Selected
		return nil
	}

	q.Answers[idx].Selected = true
	q.Answered = true
	if q.Answers[idx].Correct {
		r.CorrectCount++
	}
	return nil
}

// Commit scores a multi-answer question: the question becomes answered
// and earns exactly one point iff the selected set equals the correct
// set. Partial credit is not awarded. A no-op on single-answer or
// already-answered questions.
func (r *Run) Commit() {
	q := r.Current()
	if r.Phase != PhaseInProgress || q == nil || !q.MultiAnswer || q.Answered {
		return
	}

	q.Answered = true
	if selectionMatches(q.Answers) {
		r.CorrectCount++
	}
}

// selectionMatches reports whether the selected set exactly equals the
// correct set: same size, every selected answer correct.
func selectionMatches(answers []RunAnswer) bool {
	selected, correct := 0, 0
	for _, a := range answers {
		if a.Selected {
			selected++
			if !a.Correct {
				return false
			}
		}
		if a.Correct {
			correct++
		}
	}
	return selected == correct && correct > 0
}

// Advance moves to the next question, defensively clearing its answered
// and selection flags. Advancing past the last question ends the run.
func (r *Run) Advance() {
	if r.Phase != PhaseInProgress {
		return
	}

	if r.Position >= len(r.Questions)-1 {
		r.Phase = PhaseEnded
		return
	}

	r.Position++
	next := &r.Questions[r.Position]
	next.Answered = false
	for i := range next.Answers {
		next.Answers[i].Selected = false
	}
}

// Tick advances the elapsed-time counter by one second. It only counts
// while the run is InProgress; ticks arriving after the run ended are
// dropped.
func (r *Run) Tick() {
	if r.Phase == PhaseInProgress {
		r.ElapsedSeconds++
	}
}

// Close abandons the run. The phase moves to Ended so the periodic tick
// stops; no partial score is persisted anywhere.
func (r *Run) Close() {
	r.Phase = PhaseEnded
}
