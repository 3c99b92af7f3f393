package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mozjobs/mojo/internal/model"
)

func serveDetail(t *testing.T, handler http.HandlerFunc) (*Detail, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewDetail(srv.Client()), srv
}

func TestFetchDetail_PopulatesDescription(t *testing.T) {
	page := `<html><body>
		<h1>Build Engineer</h1>
		<div class="job-post-description">
			<p>We keep   the trains
			running.</p>
		</div>
	</body></html>`
	detail, srv := serveDetail(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	})

	offer := model.JobOffer{Title: "Build Engineer", Link: srv.URL + "/position/1/"}
	got, err := detail.FetchDetail(context.Background(), offer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Description != "We keep the trains running." {
		t.Errorf("Description = %q, want collapsed whitespace", got.Description)
	}
	if got.Link != offer.Link || got.Title != offer.Title {
		t.Error("FetchDetail must not change other fields")
	}
}

func TestFetchDetail_MissingContainerFails(t *testing.T) {
	detail, srv := serveDetail(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>gone</p></body></html>"))
	})

	offer := model.JobOffer{Link: srv.URL + "/position/1/"}
	_, err := detail.FetchDetail(context.Background(), offer)

	var enrichErr *model.EnrichmentError
	if !errors.As(err, &enrichErr) {
		t.Fatalf("expected EnrichmentError, got %v", err)
	}
	if enrichErr.Link != offer.Link {
		t.Errorf("EnrichmentError.Link = %q, want %q", enrichErr.Link, offer.Link)
	}
}

func TestFetchDetail_ServerErrorFails(t *testing.T) {
	detail, srv := serveDetail(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := detail.FetchDetail(context.Background(), model.JobOffer{Link: srv.URL + "/position/1/"})

	var enrichErr *model.EnrichmentError
	if !errors.As(err, &enrichErr) {
		t.Fatalf("expected EnrichmentError, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"120", 120 * time.Second},
		{"soon", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.in); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
