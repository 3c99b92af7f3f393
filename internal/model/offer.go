package model

import "context"

// JobOffer is a single opening from the careers listing page. The detail
// link doubles as the unique identifier: the source exposes no numeric id,
// and two offers sharing a link are the same offer.
type JobOffer struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Position    string `json:"position"` // employment type, e.g. full-time
	Team        string `json:"team"`
	Link        string `json:"link"` // absolute URL
	Description string `json:"description,omitempty"`
}

// OfferSource fetches the listing page and extracts candidate offers
// (descriptions not yet populated).
type OfferSource interface {
	FetchOffers(ctx context.Context) ([]JobOffer, error)
}

// OfferFilter decides whether a candidate offer is of interest.
type OfferFilter interface {
	Match(offer JobOffer) bool
}

// DetailFetcher loads an offer's detail page and returns a copy with the
// full description populated.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, offer JobOffer) (JobOffer, error)
}

// OfferStore is the durable link → offer mapping that survives across runs.
// Load reads the previous snapshot (empty mapping when none exists),
// DiffAndMerge returns the offers whose link was not yet known and adopts
// every candidate into the in-memory mapping, and Save atomically replaces
// the previous snapshot with the current mapping.
type OfferStore interface {
	Load() error
	DiffAndMerge(offers []JobOffer) []JobOffer
	Save() error
}

// Notifier delivers the digest for one run's new offers.
type Notifier interface {
	Notify(ctx context.Context, offers []JobOffer, htmlBody string) error
}
