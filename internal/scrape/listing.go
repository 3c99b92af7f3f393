package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mozjobs/mojo/internal/model"
)

const listingTableID = "listings-positions"

// The listings table opens with a header row and a spacer row, and closes
// with a hidden placeholder row that renders an error message instead of an
// offer. This slicing rule is a property of the page template; keep it
// here and nowhere else.
const (
	leadingNonOfferRows  = 2
	trailingNonOfferRows = 1
)

// Ensure Listing implements model.OfferSource.
var _ model.OfferSource = (*Listing)(nil)

// Listing fetches the careers listing page and extracts candidate offers.
type Listing struct {
	listingURL string
	client     *http.Client
}

// NewListing creates an extractor for the listing page at listingURL.
func NewListing(listingURL string, client *http.Client) *Listing {
	return &Listing{
		listingURL: listingURL,
		client:     client,
	}
}

// FetchOffers retrieves the listing page and extracts one candidate offer
// per position row. Descriptions are not populated at this stage.
func (l *Listing) FetchOffers(ctx context.Context) ([]model.JobOffer, error) {
	base, err := url.Parse(l.listingURL)
	if err != nil {
		return nil, &model.ExtractionError{Reason: "invalid listing URL", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.listingURL, nil)
	if err != nil {
		return nil, &model.ExtractionError{Reason: "building request", Err: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &model.ExtractionError{Reason: "fetching listing page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.ExtractionError{
			Reason: "fetching listing page",
			Err: &model.HTTPError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			},
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &model.ExtractionError{Reason: "parsing listing page", Err: err}
	}

	return extractOffers(doc, base)
}

// extractOffers walks the position rows of the listings table and builds
// one offer per row. Any missing table, cell, or anchor aborts the whole
// extraction: a partial list would mean the page template changed.
func extractOffers(doc *goquery.Document, base *url.URL) ([]model.JobOffer, error) {
	table := doc.Find("table#" + listingTableID)
	if table.Length() == 0 {
		return nil, &model.ExtractionError{Reason: fmt.Sprintf("table #%s not found", listingTableID)}
	}

	rows, err := positionRows(table)
	if err != nil {
		return nil, err
	}

	var offers []model.JobOffer
	for i := 0; i < rows.Length(); i++ {
		offer, err := extractRow(rows.Eq(i), base)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// positionRows selects the rows that hold real offers, dropping the
// leading header/spacer rows and the trailing placeholder row.
func positionRows(table *goquery.Selection) (*goquery.Selection, error) {
	rows := table.Find("tr.position")
	end := rows.Length() - trailingNonOfferRows
	if end < leadingNonOfferRows {
		return nil, &model.ExtractionError{
			Reason: fmt.Sprintf("expected at least %d position rows, found %d",
				leadingNonOfferRows+trailingNonOfferRows, rows.Length()),
		}
	}
	return rows.Slice(leadingNonOfferRows, end), nil
}

func extractRow(row *goquery.Selection, base *url.URL) (model.JobOffer, error) {
	title, err := cellText(row, "title")
	if err != nil {
		return model.JobOffer{}, err
	}
	if title == "" {
		return model.JobOffer{}, &model.ExtractionError{Reason: "position row has an empty title"}
	}
	location, err := cellText(row, "location")
	if err != nil {
		return model.JobOffer{}, err
	}
	position, err := cellText(row, "type")
	if err != nil {
		return model.JobOffer{}, err
	}
	team, err := cellText(row, "name")
	if err != nil {
		return model.JobOffer{}, err
	}

	anchor := row.Find("td.title a")
	href, ok := anchor.Attr("href")
	if !ok {
		return model.JobOffer{}, &model.ExtractionError{
			Reason: fmt.Sprintf("position row %q has no title link", title),
		}
	}
	link, err := resolveLink(base, href)
	if err != nil {
		return model.JobOffer{}, &model.ExtractionError{
			Reason: fmt.Sprintf("position row %q has an invalid link %q", title, href),
			Err:    err,
		}
	}

	return model.JobOffer{
		Title:    title,
		Location: location,
		Position: position,
		Team:     team,
		Link:     link,
	}, nil
}

func cellText(row *goquery.Selection, class string) (string, error) {
	cell := row.Find("td." + class)
	if cell.Length() == 0 {
		return "", &model.ExtractionError{Reason: fmt.Sprintf("position row is missing its %s cell", class)}
	}
	return strings.TrimSpace(cell.First().Text()), nil
}

// resolveLink turns a possibly relative href into an absolute URL. Offers
// always leave the extractor with absolute links.
func resolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
