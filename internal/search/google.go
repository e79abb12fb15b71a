package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/user/seo-console/internal/domain"
)

const helpDetailType = "type.googleapis.com/google.rpc.Help"

// GoogleClient queries the Custom Search API for a site-scoped result count.
type GoogleClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGoogleClient(baseURL string, timeout time.Duration, logger *zap.Logger) *GoogleClient {
	return &GoogleClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type searchResponse struct {
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Details []struct {
			Type  string `json:"@type"`
			Links []struct {
				URL string `json:"url"`
			} `json:"links"`
		} `json:"details"`
	} `json:"error"`
}

// IndexedCount asks the API how many pages it holds for site. Credentials
// come from settings; when either is missing the call is refused before any
// network traffic.
func (c *GoogleClient) IndexedCount(ctx context.Context, settings domain.Settings, site string) (*domain.IndexCount, error) {
	if settings.GoogleAPIKey == "" || settings.GoogleCxID == "" {
		return nil, fmt.Errorf("%w: Google API key or CX ID missing from settings", domain.ErrNotConfigured)
	}

	q := url.Values{}
	q.Set("key", settings.GoogleAPIKey)
	q.Set("cx", settings.GoogleCxID)
	q.Set("q", "site:"+site)
	q.Set("alt", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/customsearch/v1?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	// A site with nothing indexed comes back without totalResults. Zero is
	// a valid answer here, not a failure.
	count := 0
	if body.SearchInformation.TotalResults != "" {
		count, err = strconv.Atoi(body.SearchInformation.TotalResults)
		if err != nil {
			return nil, fmt.Errorf("parse totalResults %q: %w", body.SearchInformation.TotalResults, err)
		}
	}

	return &domain.IndexCount{Domain: site, IndexedCount: count}, nil
}

// upstreamError turns a non-success API response into an UpstreamError,
// best-effort extracting the message and a remediation link from the
// structured error payload. Anything missing degrades to defaults.
func (c *GoogleClient) upstreamError(resp *http.Response) *domain.UpstreamError {
	ue := &domain.UpstreamError{
		StatusCode: resp.StatusCode,
		Message:    "Google API failed: " + resp.Status,
	}

	var payload apiError
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("could not decode google error payload", zap.Error(err))
		return ue
	}

	if payload.Error.Message != "" {
		ue.Message = "Google API failed: " + payload.Error.Message
	}
	for _, detail := range payload.Error.Details {
		if detail.Type == helpDetailType && len(detail.Links) > 0 && detail.Links[0].URL != "" {
			ue.FixURL = detail.Links[0].URL
			break
		}
	}
	return ue
}
