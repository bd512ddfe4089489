package quiz

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/balazsv/quizdeck/internal/bank"
)

func testRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// singleQuestion builds a question with one correct answer and
// len(wrong) incorrect ones.
func singleQuestion(id int64, correct string, wrong ...string) bank.Question {
	q := bank.Question{
		ID:   id,
		Text: fmt.Sprintf("question %d", id),
		Answers: []bank.Answer{
			{ID: fmt.Sprintf("a%d-correct", id), Text: correct, Correct: true},
		},
	}
	for i, w := range wrong {
		q.Answers = append(q.Answers, bank.Answer{
			ID:   fmt.Sprintf("a%d-wrong%d", id, i),
			Text: w,
		})
	}
	return q
}

// multiQuestion builds a question whose first nCorrect answers are
// correct.
func multiQuestion(id int64, nCorrect, nTotal int) bank.Question {
	q := bank.Question{ID: id, Text: fmt.Sprintf("question %d", id)}
	for i := 0; i < nTotal; i++ {
		q.Answers = append(q.Answers, bank.Answer{
			ID:      fmt.Sprintf("a%d-%d", id, i),
			Text:    fmt.Sprintf("answer %d", i),
			Correct: i < nCorrect,
		})
	}
	return q
}

func TestNewRun_EmptyFailsConstruction(t *testing.T) {
	_, err := NewRun(nil)
	if err != ErrNoQuestions {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestNewRun_IsPermutation(t *testing.T) {
	src := []bank.Question{
		singleQuestion(1, "a", "b", "c"),
		singleQuestion(2, "a", "b"),
		multiQuestion(3, 2, 4),
		singleQuestion(4, "a"),
		singleQuestion(5, "a", "b", "c", "d"),
	}

	for seed := uint64(0); seed < 20; seed++ {
		run, err := NewRunWithRand(src, testRng(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		// Question id multiset preserved.
		wantIDs := map[int64]int{}
		for _, q := range src {
			wantIDs[q.ID]++
		}
		gotIDs := map[int64]int{}
		for _, q := range run.Questions {
			gotIDs[q.ID]++
		}
		if len(gotIDs) != len(wantIDs) {
			t.Fatalf("seed %d: question ids %v, want %v", seed, gotIDs, wantIDs)
		}
		for id, n := range wantIDs {
			if gotIDs[id] != n {
				t.Fatalf("seed %d: id %d count %d, want %d", seed, id, gotIDs[id], n)
			}
		}

		// Per-question answer multiset preserved, all unselected.
		bySrc := map[int64]bank.Question{}
		for _, q := range src {
			bySrc[q.ID] = q
		}
		for _, q := range run.Questions {
			orig := bySrc[q.ID]
			if len(q.Answers) != len(orig.Answers) {
				t.Fatalf("seed %d: question %d has %d answers, want %d",
					seed, q.ID, len(q.Answers), len(orig.Answers))
			}
			want := map[string]int{}
			for _, a := range orig.Answers {
				want[a.ID]++
			}
			for _, a := range q.Answers {
				want[a.ID]--
				if a.Selected {
					t.Fatalf("seed %d: answer %s starts selected", seed, a.ID)
				}
			}
			for id, n := range want {
				if n != 0 {
					t.Fatalf("seed %d: answer multiset mismatch at %s", seed, id)
				}
			}
		}
	}
}

func TestNewRun_SnapshotIsIndependent(t *testing.T) {
	src := []bank.Question{singleQuestion(1, "a", "b")}
	run, err := NewRunWithRand(src, testRng(1))
	if err != nil {
		t.Fatal(err)
	}

	run.Questions[0].Text = "mutated"
	run.Questions[0].Answers[0].Text = "mutated"

	if src[0].Text == "mutated" || src[0].Answers[0].Text == "mutated" {
		t.Error("mutating the run changed the source snapshot")
	}
}

func TestMultiAnswerClassification(t *testing.T) {
	tests := []struct {
		name string
		q    bank.Question
		want bool
	}{
		{"no correct answers", multiQuestion(1, 0, 3), false},
		{"one correct answer", multiQuestion(2, 1, 3), false},
		{"two correct answers", multiQuestion(3, 2, 3), true},
		{"all correct", multiQuestion(4, 3, 3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRunWithRand([]bank.Question{tt.q}, testRng(7))
			if err != nil {
				t.Fatal(err)
			}
			if run.Questions[0].MultiAnswer != tt.want {
				t.Errorf("MultiAnswer = %v, want %v", run.Questions[0].MultiAnswer, tt.want)
			}
		})
	}
}

func TestPhaseTransitions(t *testing.T) {
	run, _ := NewRunWithRand([]bank.Question{singleQuestion(1, "a")}, testRng(1))

	if run.Phase != PhaseNotStarted {
		t.Fatalf("initial phase = %v", run.Phase)
	}

	run.Start()
	if run.Phase != PhaseInProgress {
		t.Fatalf("phase after Start = %v", run.Phase)
	}

	// Start is idempotent.
	run.Start()
	if run.Phase != PhaseInProgress {
		t.Fatalf("phase after second Start = %v", run.Phase)
	}

	run.Advance() // single question: advancing ends the run
	if run.Phase != PhaseEnded {
		t.Fatalf("phase after final Advance = %v", run.Phase)
	}

	// No transition back from Ended.
	run.Start()
	if run.Phase != PhaseEnded {
		t.Error("Start revived an ended run")
	}
}

func TestSingleAnswer_FirstSelectIsTerminal(t *testing.T) {
	run, _ := NewRunWithRand([]bank.Question{singleQuestion(1, "a", "b", "c")}, testRng(3))
	run.Start()

	q := run.Current()
	var correctID, wrongID string
	for _, a := range q.Answers {
		if a.Correct {
			correctID = a.ID
		} else {
			wrongID = a.ID
		}
	}

	if err := run.Select(correctID); err != nil {
		t.Fatal(err)
	}
	if !q.Answered {
		t.Error("question not marked answered after select")
	}
	if run.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d, want 1", run.CorrectCount)
	}

	// Subsequent selections on the same question are ignored.
	_ = run.Select(wrongID)
	_ = run.Select(correctID)
	if run.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d after repeat selects, want 1", run.CorrectCount)
	}
	if !q.Answered {
		t.Error("answered flag changed after repeat selects")
	}
}

func TestSingleAnswer_WrongPickScoresNothing(t *testing.T) {
	run, _ := NewRunWithRand([]bank.Question{singleQuestion(1, "a", "b")}, testRng(3))
	run.Start()

	q := run.Current()
	for _, a := range q.Answers {
		if !a.Correct {
			_ = run.Select(a.ID)
			break
		}
	}

	if run.CorrectCount != 0 {
		t.Errorf("CorrectCount = %d, want 0", run.CorrectCount)
	}
	if !q.Answered {
		t.Error("wrong pick should still mark the question answered")
	}
}

func TestSelect_UnknownAnswer(t *testing.T) {
	run, _ := NewRunWithRand([]bank.Question{singleQuestion(1, "a")}, testRng(3))
	run.Start()

	if err := run.Select("nope"); err != ErrUnknownAnswer {
		t.Errorf("err = %v, want ErrUnknownAnswer", err)
	}
	if run.Current().Answered {
		t.Error("unknown selection marked the question answered")
	}
}

func TestMultiAnswer_ExactSetScoring(t *testing.T) {
	// Correct set = {0, 2} of four answers.
	q := bank.Question{ID: 1, Text: "q", Answers: []bank.Answer{
		{ID: "A", Text: "A", Correct: true},
		{ID: "B", Text: "B"},
		{ID: "C", Text: "C", Correct: true},
		{ID: "D", Text: "D"},
	}}

	tests := []struct {
		name     string
		selected []string
		credit   bool
	}{
		{"exact match", []string{"A", "C"}, true},
		{"subset", []string{"A"}, false},
		{"superset", []string{"A", "B", "C"}, false},
		{"disjoint", []string{"B", "D"}, false},
		{"empty selection", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRunWithRand([]bank.Question{q}, testRng(11))
			if err != nil {
				t.Fatal(err)
			}
			run.Start()

			for _, id := range tt.selected {
				if err := run.Select(id); err != nil {
					t.Fatal(err)
				}
			}
			run.Commit()

			want := 0
			if tt.credit {
				want = 1
			}
			if run.CorrectCount != want {
				t.Errorf("CorrectCount = %d, want %d", run.CorrectCount, want)
			}
			if !run.Current().Answered {
				t.Error("commit did not mark the question answered")
			}

			// A second commit must not double-score.
			run.Commit()
			if run.CorrectCount != want {
				t.Errorf("CorrectCount = %d after re-commit, want %d", run.CorrectCount, want)
			}
		})
	}
}

func TestMultiAnswer_SelectToggles(t *testing.T) {
	run, _ := NewRunWithRand([]bank.Question{multiQuestion(1, 2, 3)}, testRng(5))
	run.Start()

	q := run.Current()
	id := q.Answers[0].ID

	_ = run.Select(id)
	if !q.Answers[0].Selected {
		t.Fatal("first select did not set the flag")
	}
	_ = run.Select(id)
	if q.Answers[0].Selected {
		t.Fatal("second select did not clear the flag")
	}
	if q.Answered {
		t.Error("toggling must not commit")
	}
	if run.CorrectCount != 0 {
		t.Error("toggling must not score")
	}
}

func TestAdvance_WalksAllQuestionsThenEnds(t *testing.T) {
	src := []bank.Question{
		singleQuestion(1, "a"),
		singleQuestion(2, "a"),
		singleQuestion(3, "a"),
	}
	run, _ := NewRunWithRand(src, testRng(9))
	run.Start()

	seen := map[int64]bool{}
	for run.Phase == PhaseInProgress {
		q := run.Current()
		if seen[q.ID] {
			t.Fatalf("question %d served twice", q.ID)
		}
		seen[q.ID] = true
		run.Advance()
	}

	if len(seen) != 3 {
		t.Errorf("served %d questions, want 3", len(seen))
	}
	if run.Current() != nil {
		t.Error("Current() non-nil after end")
	}
}

func TestTick_OnlyCountsInProgress(t *testing.T) {
	run, _ := NewRunWithRand([]bank.Question{singleQuestion(1, "a")}, testRng(2))

	run.Tick() // NotStarted: dropped
	if run.ElapsedSeconds != 0 {
		t.Errorf("ElapsedSeconds = %d before start, want 0", run.ElapsedSeconds)
	}

	run.Start()
	run.Tick()
	run.Tick()
	if run.ElapsedSeconds != 2 {
		t.Errorf("ElapsedSeconds = %d, want 2", run.ElapsedSeconds)
	}

	run.Close()
	run.Tick() // Ended: dropped
	if run.ElapsedSeconds != 2 {
		t.Errorf("ElapsedSeconds = %d after close, want 2", run.ElapsedSeconds)
	}
}

func TestSummary(t *testing.T) {
	src := make([]bank.Question, 5)
	for i := range src {
		src[i] = singleQuestion(int64(i+1), "a", "b")
	}
	run, _ := NewRunWithRand(src, testRng(13))
	run.Start()

	// Answer 3 correctly, 2 incorrectly.
	for i := 0; i < 5; i++ {
		q := run.Current()
		wantCorrect := i < 3
		for _, a := range q.Answers {
			if a.Correct == wantCorrect {
				_ = run.Select(a.ID)
				break
			}
		}
		run.Advance()
	}
	run.ElapsedSeconds = 90

	sum := run.Summary()
	if sum.TotalQuestions != 5 {
		t.Errorf("TotalQuestions = %d", sum.TotalQuestions)
	}
	if sum.CorrectCount != 3 {
		t.Errorf("CorrectCount = %d, want 3", sum.CorrectCount)
	}
	if sum.IncorrectCount != 2 {
		t.Errorf("IncorrectCount = %d, want 2", sum.IncorrectCount)
	}
	if got := fmt.Sprintf("%.2f", sum.Percentage); got != "60.00" {
		t.Errorf("Percentage = %s, want 60.00", got)
	}
	if got := fmt.Sprintf("%.2f", sum.ElapsedMinutes); got != "1.50" {
		t.Errorf("ElapsedMinutes = %s, want 1.50", got)
	}
}

func TestSummary_OneThirdRoundsToTwoDecimals(t *testing.T) {
	src := []bank.Question{
		singleQuestion(1, "a"),
		singleQuestion(2, "a"),
		singleQuestion(3, "a"),
	}
	run, _ := NewRunWithRand(src, testRng(17))
	run.Start()

	q := run.Current()
	_ = run.Select(q.Answers[0].ID)
	run.Advance()
	run.Advance()
	run.Advance()

	sum := run.Summary()
	if got := fmt.Sprintf("%.2f", sum.Percentage); got != "33.33" {
		t.Errorf("Percentage = %s, want 33.33", got)
	}
}
