package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mozjobs/mojo/internal/model"
)

// Ensure MailgunNotifier implements model.Notifier.
var _ model.Notifier = (*MailgunNotifier)(nil)

// MailgunNotifier delivers the digest through the Mailgun messages API.
type MailgunNotifier struct {
	apiURL     string
	apiKey     string
	from       string
	to         string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewMailgunNotifier returns a notifier that posts the digest as a single
// HTML email via Mailgun.
func NewMailgunNotifier(apiURL, apiKey, from, to string, httpClient *http.Client, logger *slog.Logger) *MailgunNotifier {
	return &MailgunNotifier{
		apiURL:     apiURL,
		apiKey:     apiKey,
		from:       from,
		to:         to,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends one email containing htmlBody, with a subject line derived
// from the offer count. A non-2xx response is an error; the caller decides
// whether that aborts anything.
func (n *MailgunNotifier) Notify(ctx context.Context, offers []model.JobOffer, htmlBody string) error {
	if len(offers) == 0 {
		return nil
	}

	form := url.Values{
		"from":    {n.from},
		"to":      {n.to},
		"subject": {subject(len(offers))},
		"html":    {htmlBody},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building mailgun request: %w", err)
	}
	req.SetBasicAuth("api", n.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to mailgun: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mailgun returned %d", resp.StatusCode)
	}

	n.logger.Info("digest sent", "new_offers", len(offers), "to", n.to)
	return nil
}

// subject formats the digest subject line with correct pluralization:
// "1 new position found", "3 new positions found".
func subject(count int) string {
	plural := "s"
	if count == 1 {
		plural = ""
	}
	return fmt.Sprintf("[Mojo] - %d new position%s found", count, plural)
}
