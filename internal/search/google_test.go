package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/user/seo-console/internal/domain"
)

var configured = domain.Settings{GoogleAPIKey: "key", GoogleCxID: "cx"}

func newTestClient(serverURL string) *GoogleClient {
	return NewGoogleClient(serverURL, 5*time.Second, zap.NewNop())
}

func TestGoogleClient_IndexedCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "site:a.com" {
			t.Errorf("expected site-scoped query, got %q", got)
		}
		if r.URL.Query().Get("key") != "key" || r.URL.Query().Get("cx") != "cx" {
			t.Errorf("credentials not forwarded: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"searchInformation":{"totalResults":"1250"}}`))
	}))
	defer srv.Close()

	count, err := newTestClient(srv.URL).IndexedCount(context.Background(), configured, "a.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.Domain != "a.com" || count.IndexedCount != 1250 {
		t.Errorf("unexpected result: %+v", count)
	}
}

func TestGoogleClient_MissingTotalResultsIsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"searchInformation":{}}`))
	}))
	defer srv.Close()

	count, err := newTestClient(srv.URL).IndexedCount(context.Background(), configured, "a.com")
	if err != nil {
		t.Fatalf("missing count should not be an error: %v", err)
	}
	if count.IndexedCount != 0 {
		t.Errorf("expected 0, got %d", count.IndexedCount)
	}
}

func TestGoogleClient_MissingCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call should happen without credentials")
	}))
	defer srv.Close()

	cases := []domain.Settings{
		{},
		{GoogleAPIKey: "key"},
		{GoogleCxID: "cx"},
	}
	for _, settings := range cases {
		_, err := newTestClient(srv.URL).IndexedCount(context.Background(), settings, "a.com")
		if !errors.Is(err, domain.ErrNotConfigured) {
			t.Errorf("settings %+v: expected ErrNotConfigured, got %v", settings, err)
		}
	}
}

func TestGoogleClient_UpstreamErrorWithFixURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"Custom Search API has not been used","details":[
			{"@type":"type.googleapis.com/google.rpc.ErrorInfo"},
			{"@type":"type.googleapis.com/google.rpc.Help","links":[{"url":"https://console.example.com/enable"}]}
		]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).IndexedCount(context.Background(), configured, "a.com")

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusForbidden {
		t.Errorf("expected upstream status 403, got %d", upstream.StatusCode)
	}
	if upstream.FixURL != "https://console.example.com/enable" {
		t.Errorf("expected remediation link, got %q", upstream.FixURL)
	}
	if upstream.Message == "" {
		t.Error("expected a human-readable message")
	}
}

func TestGoogleClient_UpstreamErrorWithoutHelpDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).IndexedCount(context.Background(), configured, "a.com")

	// Remediation-link extraction is best effort; a garbage body must still
	// produce a usable error.
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected upstream status 429, got %d", upstream.StatusCode)
	}
	if upstream.FixURL != "" {
		t.Errorf("expected no fixUrl, got %q", upstream.FixURL)
	}
}
