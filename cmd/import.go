package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balazsv/quizdeck/internal/bank"
	"github.com/balazsv/quizdeck/internal/catalog"
	"github.com/balazsv/quizdeck/internal/config"
	"github.com/balazsv/quizdeck/internal/ident"
	"github.com/balazsv/quizdeck/internal/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import topics or a topic's questions from a file",
	Long:  "Import replaces the stored list wholesale; nothing is merged. The current data is left untouched when the file does not validate.",
}

var importTopicsCmd = &cobra.Command{
	Use:   "topics <file>",
	Short: "Replace the topic list from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		topics, err := transfer.ParseTopics(raw)
		if err != nil {
			return importError(err)
		}

		cfg := config.Load()
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := catalog.New(st, ident.NewAllocator())
		if err != nil {
			return fmt.Errorf("load topics: %w", err)
		}
		if err := cat.ReplaceAll(topics); err != nil {
			return fmt.Errorf("save topics: %w", err)
		}
		fmt.Printf("imported %d topics\n", len(topics))
		return nil
	},
}

var importQuestionsCmd = &cobra.Command{
	Use:   "questions <topic-id> <file>",
	Short: "Replace a topic's questions from a JSON or XLSX export",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid topic id %q", args[0])
		}
		format, _ := cmd.Flags().GetString("format")
		if format != "json" && format != "xlsx" {
			return fmt.Errorf("unknown format %q (json or xlsx)", format)
		}

		cfg := config.Load()
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		alloc := ident.NewAllocator()
		cat, err := catalog.New(st, alloc)
		if err != nil {
			return fmt.Errorf("load topics: %w", err)
		}
		if _, ok := cat.Get(topicID); !ok {
			return fmt.Errorf("no topic with id %d", topicID)
		}

		var questions []bank.Question
		if format == "xlsx" {
			questions, err = transfer.ImportQuestionsXLSX(args[1], alloc)
			if err != nil {
				return importError(err)
			}
		} else {
			raw, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			questions, err = transfer.ParseQuestions(raw)
			if err != nil {
				return importError(err)
			}
		}

		b, err := bank.Load(st, alloc, topicID)
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		if err := b.ReplaceAll(questions); err != nil {
			return fmt.Errorf("save questions: %w", err)
		}
		fmt.Printf("imported %d questions\n", len(questions))
		return nil
	},
}

func init() {
	importQuestionsCmd.Flags().String("format", "json", "Import format: json or xlsx")

	importCmd.AddCommand(importTopicsCmd)
	importCmd.AddCommand(importQuestionsCmd)
}

// importError keeps validation failures readable on the command line.
func importError(err error) error {
	var inv *transfer.ErrInvalidImport
	if errors.As(err, &inv) {
		return fmt.Errorf("invalid import file: %w", inv.Err)
	}
	return err
}
