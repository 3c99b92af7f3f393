package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mozjobs/mojo/internal/config"
	"github.com/mozjobs/mojo/internal/filter"
	"github.com/mozjobs/mojo/internal/model"
	"github.com/mozjobs/mojo/internal/notifier"
	"github.com/mozjobs/mojo/internal/pipeline"
	"github.com/mozjobs/mojo/internal/ratelimit"
	"github.com/mozjobs/mojo/internal/retry"
	"github.com/mozjobs/mojo/internal/scrape"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "mojo",
	Short: "Mozilla job-offer digest notifier",
	Long:  "Mojo scrapes the Mozilla careers listing, remembers which offers it has seen, and emails a digest of the new ones.",
	// Default to `run` so a bare `mojo` in a cron line does the right thing.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: MOJO_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > MOJO_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("MOJO_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "mailgun":
		logger.Info("using mailgun notifier", "to", cfg.Notification.To)
		return notifier.NewMailgunNotifier(
			cfg.Notification.APIURL,
			cfg.Notification.APIKey,
			cfg.Notification.From,
			cfg.Notification.To,
			httpClient,
			logger,
		)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func buildPipeline(cfg *config.Config, st model.OfferStore, n model.Notifier, httpClient *http.Client, logger *slog.Logger) *pipeline.Pipeline {
	var source model.OfferSource = scrape.NewListing(cfg.ListingURL, httpClient)
	source = retry.NewRetrySource(source, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)

	limiter := ratelimit.NewHostRateLimiter(cfg.DetailDelay)
	enricher := ratelimit.NewPoliteDetailFetcher(scrape.NewDetail(httpClient), limiter)

	return pipeline.New(
		cfg.ListingURL,
		source,
		filter.NewTeamFilter(cfg.Teams),
		enricher,
		st,
		n,
		logger,
	)
}
