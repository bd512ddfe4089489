package transfer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/balazsv/quizdeck/internal/bank"
	"github.com/balazsv/quizdeck/internal/ident"
)

const xlsxSheet = "Sheet1"

// ExportQuestionsXLSX writes a question list to an .xlsx file, one row
// per answer with the question text repeated. Questions without
// answers get a single row with an empty answer column.
func ExportQuestionsXLSX(path string, questions []bank.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Question", "Answer", "Correct"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := 2
	for _, q := range questions {
		if len(q.Answers) == 0 {
			if err := writeXLSXRow(f, row, q.Text, "", ""); err != nil {
				return err
			}
			row++
			continue
		}
		for _, a := range q.Answers {
			if err := writeXLSXRow(f, row, q.Text, a.Text, strconv.FormatBool(a.Correct)); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, row int, values ...string) error {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}
	return nil
}

// ImportQuestionsXLSX reads a question list from an .xlsx file written
// in the ExportQuestionsXLSX layout. Consecutive rows sharing a
// question text fold into one question; ids come from alloc.
func ImportQuestionsXLSX(path string, alloc *ident.Allocator) ([]bank.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	questions := []bank.Question{}
	var current *bank.Question

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		text := cellAt(row, 0)
		if strings.TrimSpace(text) == "" {
			continue
		}

		if current == nil || current.Text != text {
			questions = append(questions, bank.Question{
				ID:      alloc.Next(),
				Text:    text,
				Answers: []bank.Answer{},
			})
			current = &questions[len(questions)-1]
		}

		answerText := cellAt(row, 1)
		if strings.TrimSpace(answerText) == "" {
			continue
		}
		correct, parseErr := strconv.ParseBool(strings.ToLower(strings.TrimSpace(cellAt(row, 2))))
		if parseErr != nil {
			correct = false
		}
		current.Answers = append(current.Answers, bank.Answer{Text: answerText, Correct: correct})
	}

	return questions, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
