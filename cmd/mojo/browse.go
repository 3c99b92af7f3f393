package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mozjobs/mojo/internal/browse"
	"github.com/mozjobs/mojo/internal/store"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored offers interactively (TUI)",
	Long:  "Opens the persisted offer snapshot in a list view with a scrollable description pane. No network access.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	offerStore := store.NewJSONStore(cfg.StorePath)
	if err := offerStore.Load(); err != nil {
		logger.Error("failed to load store", "error", err)
		os.Exit(1)
	}

	return browse.Run(offerStore.Offers())
}
