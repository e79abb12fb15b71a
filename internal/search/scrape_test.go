package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/seo-console/internal/domain"
)

func TestScraper_IndexedCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != browserUserAgent {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		if got := r.URL.Query().Get("q"); got != "site:a.com" {
			t.Errorf("expected site-scoped query, got %q", got)
		}
		w.Write([]byte(`<html><body><div id="result-stats">About 12,300 results (0.42 seconds)</div></body></html>`))
	}))
	defer srv.Close()

	count, err := NewScraper(srv.URL, 5*time.Second).IndexedCount(context.Background(), "a.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.Domain != "a.com" || count.IndexedCount != 12300 {
		t.Errorf("unexpected result: %+v", count)
	}
}

func TestScraper_MissingPhraseIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A challenge page: 200 but no result-count phrase.
		w.Write([]byte(`<html><body>Our systems have detected unusual traffic</body></html>`))
	}))
	defer srv.Close()

	count, err := NewScraper(srv.URL, 5*time.Second).IndexedCount(context.Background(), "a.com")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got err=%v count=%+v", err, count)
	}
	if count != nil {
		t.Errorf("blocked must not be reported as a count, got %+v", count)
	}
}

func TestScraper_UpstreamStatusPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewScraper(srv.URL, 5*time.Second).IndexedCount(context.Background(), "a.com")

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", upstream.StatusCode)
	}
}

func TestScraper_CountWithoutCommas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`About 7 results`))
	}))
	defer srv.Close()

	count, err := NewScraper(srv.URL, 5*time.Second).IndexedCount(context.Background(), "tiny.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.IndexedCount != 7 {
		t.Errorf("expected 7, got %d", count.IndexedCount)
	}
}
