package notifier

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mozjobs/mojo/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeOffers(n int) []model.JobOffer {
	offers := make([]model.JobOffer, n)
	for i := range offers {
		offers[i] = model.JobOffer{Title: "Role", Team: "IT", Link: "https://x/a"}
	}
	return offers
}

func TestNotify_PostsFormWithAuth(t *testing.T) {
	var gotForm map[string]string
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		r.ParseForm()
		gotForm = map[string]string{
			"from":    r.PostFormValue("from"),
			"to":      r.PostFormValue("to"),
			"subject": r.PostFormValue("subject"),
			"html":    r.PostFormValue("html"),
		}
	}))
	defer srv.Close()

	n := NewMailgunNotifier(srv.URL, "key-secret", "mojo@example.org", "me@example.org", srv.Client(), discardLogger())
	if err := n.Notify(context.Background(), makeOffers(3), "<p>digest</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotUser != "api" || gotPass != "key-secret" {
		t.Errorf("basic auth = %q/%q, want api/key-secret", gotUser, gotPass)
	}
	if gotForm["from"] != "mojo@example.org" || gotForm["to"] != "me@example.org" {
		t.Errorf("from/to = %q/%q", gotForm["from"], gotForm["to"])
	}
	if gotForm["subject"] != "[Mojo] - 3 new positions found" {
		t.Errorf("subject = %q", gotForm["subject"])
	}
	if gotForm["html"] != "<p>digest</p>" {
		t.Errorf("html = %q", gotForm["html"])
	}
}

func TestNotify_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewMailgunNotifier(srv.URL, "bad-key", "a@x", "b@x", srv.Client(), discardLogger())
	if err := n.Notify(context.Background(), makeOffers(1), "<p>digest</p>"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestNotify_NoOffersSendsNothing(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	n := NewMailgunNotifier(srv.URL, "key", "a@x", "b@x", srv.Client(), discardLogger())
	if err := n.Notify(context.Background(), nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("no request should be sent for zero offers")
	}
}

func TestSubject_Pluralization(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "[Mojo] - 1 new position found"},
		{2, "[Mojo] - 2 new positions found"},
		{3, "[Mojo] - 3 new positions found"},
	}
	for _, tt := range tests {
		if got := subject(tt.count); got != tt.want {
			t.Errorf("subject(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
