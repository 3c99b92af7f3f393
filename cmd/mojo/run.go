package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mozjobs/mojo/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scrape-and-notify cycle",
	Long:  "Fetches the listing page, reports offers not seen before, and updates the store. Invoke from cron or a systemd timer.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"listing_url", cfg.ListingURL,
		"store_path", cfg.StorePath,
		"teams", cfg.Teams,
	)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	n := setupNotifier(cfg, httpClient, logger)
	offerStore := store.NewJSONStore(cfg.StorePath)

	p := buildPipeline(cfg, offerStore, n, httpClient, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
	return nil
}
