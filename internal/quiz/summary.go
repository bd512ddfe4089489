package quiz

import "math"

// Summary holds the terminal scoring data shown when a run ends.
type Summary struct {
	TotalQuestions int
	CorrectCount   int
	IncorrectCount int
	Percentage     float64 // correct/total*100, rounded to 2 decimals
	ElapsedMinutes float64 // elapsed/60, rounded to 2 decimals
}

// Summary builds the final summary. Construction requires a non-empty
// question list, so the percentage division cannot be by zero.
func (r *Run) Summary() Summary {
	total := len(r.Questions)
	return Summary{
		TotalQuestions: total,
		CorrectCount:   r.CorrectCount,
		IncorrectCount: total - r.CorrectCount,
		Percentage:     round2(float64(r.CorrectCount) / float64(total) * 100),
		ElapsedMinutes: round2(float64(r.ElapsedSeconds) / 60),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
