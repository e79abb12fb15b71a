package indexnow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/seo-console/internal/domain"
)

// Payload is the body the bulk-submission endpoint expects.
type Payload struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

// Client submits URLs to an IndexNow-compatible endpoint.
type Client struct {
	endpoint   string
	key        string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(endpoint, key string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		key:        key,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Push submits urls in one call. All entries must share one host, since the
// key-verification location is derived from it; mixed-host batches are
// refused rather than silently keyed off the first entry.
func (c *Client) Push(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return domain.Invalidf("url list is empty")
	}

	host, err := hostOf(urls[0])
	if err != nil {
		return err
	}
	for _, u := range urls[1:] {
		h, err := hostOf(u)
		if err != nil {
			return err
		}
		if h != host {
			return domain.Invalidf("mixed hosts in one batch: %q and %q", host, h)
		}
	}

	payload := Payload{
		Host:        host,
		Key:         c.key,
		KeyLocation: fmt.Sprintf("https://%s/%s.txt", host, c.key),
		URLList:     urls,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode indexnow payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build indexnow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("indexnow request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Warn("indexnow submission rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("host", host))
		return &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("IndexNow API failed with status %d. %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	c.logger.Info("submitted urls to indexnow",
		zap.String("host", host),
		zap.Int("count", len(urls)))
	return nil
}

func hostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", domain.Invalidf("invalid url %q", rawURL)
	}
	return u.Hostname(), nil
}
