package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestEnricher(t *testing.T) *Enricher {
	t.Helper()
	e := New(nil, 5*time.Second, zap.NewNop())
	t.Cleanup(e.Close)
	return e
}

func TestIsWordPress_LoginPageFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-login.php" {
			t.Errorf("probe hit %q, expected /wp-login.php", r.URL.Path)
		}
		w.Write([]byte("<html>log in</html>"))
	}))
	defer srv.Close()

	if !newTestEnricher(t).isWordPress(context.Background(), srv.URL+"/some/page") {
		t.Error("200 on the login path should classify as WordPress")
	}
}

func TestIsWordPress_RedirectCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Redirect must be observed, not followed.
		http.Redirect(w, r, "https://elsewhere.example/login", http.StatusFound)
	}))
	defer srv.Close()

	if !newTestEnricher(t).isWordPress(context.Background(), srv.URL) {
		t.Error("a redirect on the login path should classify as WordPress")
	}
}

func TestIsWordPress_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if newTestEnricher(t).isWordPress(context.Background(), srv.URL) {
		t.Error("404 should not classify as WordPress")
	}
}

func TestIsWordPress_ProbeErrorDegrades(t *testing.T) {
	// Closed server: the probe errors out, which must degrade to false
	// rather than fail.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if newTestEnricher(t).isWordPress(context.Background(), url) {
		t.Error("a failed probe should degrade to not detected")
	}

	if newTestEnricher(t).isWordPress(context.Background(), "::not a url::") {
		t.Error("an unparseable url should degrade to not detected")
	}
}
