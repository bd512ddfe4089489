// Package transfer handles bulk import and export of topic and
// question lists: JSON codec with shape validation, export file naming,
// and a spreadsheet bridge.
package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/balazsv/quizdeck/internal/bank"
	"github.com/balazsv/quizdeck/internal/catalog"
)

// ExportTopics serializes the topic list as compact JSON.
func ExportTopics(topics []catalog.Topic) ([]byte, error) {
	if topics == nil {
		topics = []catalog.Topic{}
	}
	return json.Marshal(topics)
}

// ParseTopics validates and decodes an exported topic list. A shape
// mismatch yields *ErrInvalidImport and no partial result.
func ParseTopics(raw []byte) ([]catalog.Topic, error) {
	if _, err := validate("topics", topicsSchema, raw); err != nil {
		return nil, err
	}
	var topics []catalog.Topic
	if err := json.Unmarshal(raw, &topics); err != nil {
		return nil, &ErrInvalidImport{Err: err}
	}
	return topics, nil
}

// ExportQuestions serializes a question list as compact JSON.
func ExportQuestions(questions []bank.Question) ([]byte, error) {
	if questions == nil {
		questions = []bank.Question{}
	}
	return json.Marshal(questions)
}

// ParseQuestions validates and decodes an exported question list.
func ParseQuestions(raw []byte) ([]bank.Question, error) {
	if _, err := validate("questions", questionsSchema, raw); err != nil {
		return nil, err
	}
	var questions []bank.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, &ErrInvalidImport{Err: err}
	}
	return questions, nil
}

// timestamp renders t for use in a filename: ISO-8601 with ':' replaced
// by '-' for filesystem compatibility.
func timestamp(t time.Time) string {
	return strings.ReplaceAll(t.UTC().Format(time.RFC3339), ":", "-")
}

// TopicsFilename returns the export filename for the topic list.
func TopicsFilename(now time.Time) string {
	return fmt.Sprintf("topics-%s.json", timestamp(now))
}

// QuestionsFilename returns the export filename for a topic's
// question list.
func QuestionsFilename(topicID int64, now time.Time) string {
	return fmt.Sprintf("questions-%d-%s.json", topicID, timestamp(now))
}

// QuestionsXLSXFilename returns the spreadsheet export filename for a
// topic's question list.
func QuestionsXLSXFilename(topicID int64, now time.Time) string {
	return fmt.Sprintf("questions-%d-%s.xlsx", topicID, timestamp(now))
}

// WriteExport writes data to dir/name and returns the full path.
func WriteExport(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
