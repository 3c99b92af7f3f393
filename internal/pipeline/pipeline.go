package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mozjobs/mojo/internal/digest"
	"github.com/mozjobs/mojo/internal/model"
)

// Pipeline owns one full run: load store → extract → filter → enrich →
// diff-and-merge → notify → save.
type Pipeline struct {
	listingURL string
	source     model.OfferSource
	filter     model.OfferFilter
	enricher   model.DetailFetcher
	store      model.OfferStore
	notifier   model.Notifier
	logger     *slog.Logger
}

// New creates a pipeline wired with all its dependencies.
func New(
	listingURL string,
	source model.OfferSource,
	filter model.OfferFilter,
	enricher model.DetailFetcher,
	store model.OfferStore,
	notifier model.Notifier,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		listingURL: listingURL,
		source:     source,
		filter:     filter,
		enricher:   enricher,
		store:      store,
		notifier:   notifier,
		logger:     logger,
	}
}

// Run executes one cycle. Extraction and store failures abort the run with
// nothing written; enrichment and notification failures degrade it. The
// merged store is saved even when nothing is new and even when the
// notification failed, so an offer is never reported twice.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.store.Load(); err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	candidates, err := p.source.FetchOffers(ctx)
	if err != nil {
		return err
	}

	var matched []model.JobOffer
	for _, offer := range candidates {
		if p.filter.Match(offer) {
			matched = append(matched, offer)
		}
	}

	var enriched []model.JobOffer
	for _, offer := range matched {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		full, err := p.enricher.FetchDetail(ctx, offer)
		if err != nil {
			// Skipped offers were never merged, so the next run retries them.
			p.logger.Warn("enrichment failed, skipping offer",
				"title", offer.Title,
				"link", offer.Link,
				"error", err,
			)
			continue
		}
		enriched = append(enriched, full)
	}

	fresh := p.store.DiffAndMerge(enriched)

	if len(fresh) > 0 {
		if err := p.notify(ctx, fresh); err != nil {
			// The offers are already merged and the save below still runs,
			// so a delivery failure never causes a duplicate digest.
			p.logger.Error("notification failed", "new_offers", len(fresh), "error", err)
		}
	}

	if err := p.store.Save(); err != nil {
		return fmt.Errorf("saving store: %w", err)
	}

	p.logger.Info("run complete",
		"candidates", len(candidates),
		"matched", len(matched),
		"enriched", len(enriched),
		"new", len(fresh),
	)
	return nil
}

func (p *Pipeline) notify(ctx context.Context, fresh []model.JobOffer) error {
	body, err := digest.Render(p.listingURL, fresh)
	if err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}
	return p.notifier.Notify(ctx, fresh, body)
}
