package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/balazsv/quizdeck/internal/bank"
	"github.com/balazsv/quizdeck/internal/catalog"
	"github.com/balazsv/quizdeck/internal/config"
	"github.com/balazsv/quizdeck/internal/ident"
	"github.com/balazsv/quizdeck/internal/store"
	"github.com/balazsv/quizdeck/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export topics or a topic's questions to a file",
}

var exportTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Export the topic list as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		data, err := transfer.ExportTopics(cat.Topics())
		if err != nil {
			return err
		}
		path, err := transfer.WriteExport(exportDir(cmd, cfg), transfer.TopicsFilename(time.Now()), data)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var exportQuestionsCmd = &cobra.Command{
	Use:   "questions <topic-id>",
	Short: "Export a topic's questions as JSON or XLSX",
	Args:  cobra.ExactArgs(1),
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

		b, err := bank.Load(st, alloc, topicID)
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		dir := exportDir(cmd, cfg)
		now := time.Now()

		var path string
		if format == "xlsx" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}
			path = filepath.Join(dir, transfer.QuestionsXLSXFilename(topicID, now))
			if err := transfer.ExportQuestionsXLSX(path, b.Questions()); err != nil {
				return err
			}
		} else {
			data, err := transfer.ExportQuestions(b.Questions())
			if err != nil {
				return err
			}
			path, err = transfer.WriteExport(dir, transfer.QuestionsFilename(topicID, now), data)
			if err != nil {
				return err
			}
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	exportQuestionsCmd.Flags().String("format", "json", "Export format: json or xlsx")
	exportCmd.PersistentFlags().String("out", "", "Directory to write into (overrides QUIZDECK_EXPORT_DIR)")

	exportCmd.AddCommand(exportTopicsCmd)
	exportCmd.AddCommand(exportQuestionsCmd)
}

// openStore opens the key-value store at the resolved path.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// exportDir returns --out when given, else the configured export dir.
func exportDir(cmd *cobra.Command, cfg config.Config) string {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return out
	}
	return cfg.ExportDir
}
