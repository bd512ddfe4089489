package transfer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balazsv/quizdeck/internal/bank"
	"github.com/balazsv/quizdeck/internal/ident"
)

func TestXLSXRoundTrip(t *testing.T) {
	questions := []bank.Question{
		{
			ID:   1,
			Text: "What is the capital of France?",
			Answers: []bank.Answer{
				{Text: "Paris", Correct: true},
				{Text: "Lyon", Correct: false},
				{Text: "Nice", Correct: false},
			},
		},
		{
			ID:   2,
			Text: "Which are primary colors?",
			Answers: []bank.Answer{
				{Text: "Red", Correct: true},
				{Text: "Blue", Correct: true},
				{Text: "Green", Correct: false},
			},
		},
		{ID: 3, Text: "No answers yet", Answers: []bank.Answer{}},
	}

	path := filepath.Join(t.TempDir(), "questions.xlsx")
	require.NoError(t, ExportQuestionsXLSX(path, questions))

	got, err := ImportQuestionsXLSX(path, ident.NewAllocator())
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, q := range got {
		assert.Equal(t, questions[i].Text, q.Text)
		require.Len(t, q.Answers, len(questions[i].Answers))
		for j, a := range q.Answers {
			assert.Equal(t, questions[i].Answers[j].Text, a.Text)
			assert.Equal(t, questions[i].Answers[j].Correct, a.Correct)
		}
		assert.NotZero(t, q.ID, "imported questions get fresh ids")
	}
}

func TestXLSXImport_AssignsDistinctIDs(t *testing.T) {
	questions := []bank.Question{
		{ID: 1, Text: "First", Answers: []bank.Answer{{Text: "a", Correct: true}}},
		{ID: 2, Text: "Second", Answers: []bank.Answer{{Text: "b", Correct: true}}},
	}

	path := filepath.Join(t.TempDir(), "questions.xlsx")
	require.NoError(t, ExportQuestionsXLSX(path, questions))

	got, err := ImportQuestionsXLSX(path, ident.NewAllocator())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestXLSXImport_MissingFile(t *testing.T) {
	_, err := ImportQuestionsXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), ident.NewAllocator())
	assert.Error(t, err)
}
