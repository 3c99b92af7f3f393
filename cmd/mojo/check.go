package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mozjobs/mojo/internal/notifier"
	"github.com/mozjobs/mojo/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run once without persisting or emailing",
	Long:  "Dry run: full scrape and filter, every match printed as new, nothing written to the store, no email sent.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: store and mail are disabled")

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	p := buildPipeline(cfg, store.NewNopStore(), notifier.NewLogNotifier(logger), httpClient, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	logger.Info("check complete")
	return nil
}
