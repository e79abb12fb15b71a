package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/user/seo-console/internal/domain"
)

// browserUserAgent makes the request look like a regular desktop browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36"

// resultCountRe matches the result-count phrase on a search results page.
// Fragile on purpose: when the phrase is missing we report unavailable, we
// never guess zero.
var resultCountRe = regexp.MustCompile(`About ([\d,]+) results`)

// Scraper extracts a result count from the public search page markup.
type Scraper struct {
	searchURL  string
	httpClient *http.Client
}

func NewScraper(searchURL string, timeout time.Duration) *Scraper {
	return &Scraper{
		searchURL:  searchURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// IndexedCount scrapes the search results page for a site-scoped query.
// A page without the expected phrase means we were blocked or the markup
// changed, which is a different fact than "zero results".
func (s *Scraper) IndexedCount(ctx context.Context, site string) (*domain.IndexCount, error) {
	q := url.Values{}
	q.Set("q", "site:"+site)
	q.Set("hl", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build scrape request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("search page responded with status %d", resp.StatusCode),
		}
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read scrape response: %w", err)
	}

	match := resultCountRe.FindSubmatch(html)
	if match == nil {
		return nil, fmt.Errorf("%w: could not find result count, request may have been blocked or the page layout changed", domain.ErrUnavailable)
	}

	count, err := strconv.Atoi(strings.ReplaceAll(string(match[1]), ",", ""))
	if err != nil {
		return nil, fmt.Errorf("parse result count %q: %w", match[1], err)
	}

	return &domain.IndexCount{Domain: site, IndexedCount: count}, nil
}
