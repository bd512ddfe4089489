package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balazsv/quizdeck/internal/app"
	"github.com/balazsv/quizdeck/internal/config"
	"github.com/balazsv/quizdeck/internal/store"
)

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg := config.Load()

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Store:  st,
		Config: cfg,
	})
}
