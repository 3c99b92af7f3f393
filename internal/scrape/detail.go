package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mozjobs/mojo/internal/model"
)

const descriptionClass = "job-post-description"

// Ensure Detail implements model.DetailFetcher.
var _ model.DetailFetcher = (*Detail)(nil)

// Detail fetches an offer's detail page and pulls the full description out
// of its content container.
type Detail struct {
	client *http.Client
}

// NewDetail creates a detail-page enricher.
func NewDetail(client *http.Client) *Detail {
	return &Detail{client: client}
}

// FetchDetail loads the page at offer.Link and returns a copy of the offer
// with Description populated. Failures are scoped to this offer.
func (d *Detail) FetchDetail(ctx context.Context, offer model.JobOffer) (model.JobOffer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, offer.Link, nil)
	if err != nil {
		return offer, &model.EnrichmentError{Link: offer.Link, Err: err}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return offer, &model.EnrichmentError{Link: offer.Link, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return offer, &model.EnrichmentError{
			Link: offer.Link,
			Err:  &model.HTTPError{StatusCode: resp.StatusCode},
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return offer, &model.EnrichmentError{Link: offer.Link, Err: err}
	}

	container := doc.Find("div." + descriptionClass)
	if container.Length() == 0 {
		return offer, &model.EnrichmentError{
			Link: offer.Link,
			Err:  fmt.Errorf("div.%s not found", descriptionClass),
		}
	}

	// Collapse runs of whitespace; the container's text comes back with the
	// page's indentation baked in.
	offer.Description = strings.Join(strings.Fields(container.First().Text()), " ")
	return offer, nil
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
