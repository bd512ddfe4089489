// Package bank manages a single topic's ordered question list.
//
// Answers carry a stable in-memory identifier (never persisted) so
// dialogs and cursors survive structural edits: an id is resolved to a
// position only at the point of mutation, with an existence check. A
// reference to a since-deleted question or answer yields ErrStaleRef
// instead of touching anything.
package bank

import (
	"errors"

	"github.com/google/uuid"

	"github.com/balazsv/quizdeck/internal/ident"
	"github.com/balazsv/quizdeck/internal/store"
)

// ErrStaleRef reports an operation naming a question or answer that no
// longer exists.
var ErrStaleRef = errors.New("stale reference")

// PlaceholderText is the initial text of new questions and answers.
const PlaceholderText = "Edit me."

// Answer is a choice belonging to a question. The ID is assigned at
// load or creation time and is not part of the persisted shape.
type Answer struct {
	ID      string `json:"-"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question is a prompt with an ordered list of answers.
type Question struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Answers []Answer `json:"answers"`
}

// Clone returns a deep copy of q with a fresh question id and fresh
// answer ids.
func (q Question) Clone(alloc *ident.Allocator) Question {
	dup := Question{
		ID:      alloc.Next(),
		Text:    q.Text,
		Answers: make([]Answer, len(q.Answers)),
	}
	for i, a := range q.Answers {
		dup.Answers[i] = Answer{ID: uuid.New().String(), Text: a.Text, Correct: a.Correct}
	}
	return dup
}

// Bank holds one topic's question list and persists the full list
// after every mutation.
type Bank struct {
	kv        store.KV
	alloc     *ident.Allocator
	topicID   int64
	questions []Question
}

// Load creates a Bank for the given topic and loads its persisted
// question list. A missing or corrupt stored list starts empty.
func Load(kv store.KV, alloc *ident.Allocator, topicID int64) (*Bank, error) {
	questions, err := store.LoadList[Question](kv, store.QuestionsKey(topicID))
	if err != nil {
		return nil, err
	}
	for i := range questions {
		alloc.Reserve(questions[i].ID)
		for j := range questions[i].Answers {
			questions[i].Answers[j].ID = uuid.New().String()
		}
		if questions[i].Answers == nil {
			questions[i].Answers = []Answer{}
		}
	}
	return &Bank{kv: kv, alloc: alloc, topicID: topicID, questions: questions}, nil
}

// TopicID returns the owning topic's id.
func (b *Bank) TopicID() int64 {
	return b.topicID
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns a deep copy of the question list in display order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q
		out[i].Answers = make([]Answer, len(q.Answers))
		copy(out[i].Answers, q.Answers)
	}
	return out
}

// Get returns the question with the given id.
func (b *Bank) Get(id int64) (Question, bool) {
	q := b.find(id)
	if q == nil {
		return Question{}, false
	}
	cp := *q
	cp.Answers = make([]Answer, len(q.Answers))
	copy(cp.Answers, q.Answers)
	return cp, true
}

// CreateQuestion appends a new question with placeholder text and no
// answers.
func (b *Bank) CreateQuestion() (Question, error) {
	q := Question{ID: b.alloc.Next(), Text: PlaceholderText, Answers: []Answer{}}
	b.questions = append(b.questions, q)
	if err := b.save(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// EditQuestionText replaces the text of the question with the given id.
func (b *Bank) EditQuestionText(id int64, text string) error {
	q := b.find(id)
	if q == nil {
		return ErrStaleRef
	}
	q.Text = text
	return b.save()
}

// DeleteQuestion removes the question with the given id.
func (b *Bank) DeleteQuestion(id int64) error {
	if b.find(id) == nil {
		return ErrStaleRef
	}
	kept := b.questions[:0]
	for _, q := range b.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	b.questions = kept
	return b.save()
}

// DuplicateQuestion deep-copies the question (text and all answers)
// into a new question appended at the end of the list.
func (b *Bank) DuplicateQuestion(id int64) (Question, error) {
	q := b.find(id)
	if q == nil {
		return Question{}, ErrStaleRef
	}
	dup := q.Clone(b.alloc)
	b.questions = append(b.questions, dup)
	if err := b.save(); err != nil {
		return Question{}, err
	}
	return dup, nil
}

// CreateAnswer appends a new incorrect answer with placeholder text to
// the given question.
func (b *Bank) CreateAnswer(questionID int64) (Answer, error) {
	q := b.find(questionID)
	if q == nil {
		return Answer{}, ErrStaleRef
	}
	a := Answer{ID: uuid.New().String(), Text: PlaceholderText}
	q.Answers = append(q.Answers, a)
	if err := b.save(); err != nil {
		return Answer{}, err
	}
	return a, nil
}

// EditAnswerText replaces the text of an answer.
func (b *Bank) EditAnswerText(questionID int64, answerID, text string) error {
	q, i, err := b.findAnswer(questionID, answerID)
	if err != nil {
		return err
	}
	q.Answers[i].Text = text
	return b.save()
}

// DeleteAnswer removes an answer from its question.
func (b *Bank) DeleteAnswer(questionID int64, answerID string) error {
	q, i, err := b.findAnswer(questionID, answerID)
	if err != nil {
		return err
	}
	q.Answers = append(q.Answers[:i], q.Answers[i+1:]...)
	return b.save()
}

// DuplicateAnswer copies an answer's text and correctness into a new
// answer appended at the end of the question's answer list.
func (b *Bank) DuplicateAnswer(questionID int64, answerID string) (Answer, error) {
	q, i, err := b.findAnswer(questionID, answerID)
	if err != nil {
		return Answer{}, err
	}
	dup := Answer{ID: uuid.New().String(), Text: q.Answers[i].Text, Correct: q.Answers[i].Correct}
	q.Answers = append(q.Answers, dup)
	if err := b.save(); err != nil {
		return Answer{}, err
	}
	return dup, nil
}

// SetAnswerCorrect sets an answer's correctness flag.
func (b *Bank) SetAnswerCorrect(questionID int64, answerID string, correct bool) error {
	q, i, err := b.findAnswer(questionID, answerID)
	if err != nil {
		return err
	}
	q.Answers[i].Correct = correct
	return b.save()
}

// ReplaceAll wholesale-replaces the question list (import semantics: no
// merge) and persists it. Answer ids are reassigned.
func (b *Bank) ReplaceAll(questions []Question) error {
	if questions == nil {
		questions = []Question{}
	}
	for i := range questions {
		b.alloc.Reserve(questions[i].ID)
		if questions[i].Answers == nil {
			questions[i].Answers = []Answer{}
		}
		for j := range questions[i].Answers {
			questions[i].Answers[j].ID = uuid.New().String()
		}
	}
	b.questions = questions
	return b.save()
}

func (b *Bank) find(id int64) *Question {
	for i := range b.questions {
		if b.questions[i].ID == id {
			return &b.questions[i]
		}
	}
	return nil
}

func (b *Bank) findAnswer(questionID int64, answerID string) (*Question, int, error) {
	q := b.find(questionID)
	if q == nil {
		return nil, 0, ErrStaleRef
	}
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			return q, i, nil
		}
	}
	return nil, 0, ErrStaleRef
}

func (b *Bank) save() error {
	return store.SaveList(b.kv, store.QuestionsKey(b.topicID), b.questions)
}
