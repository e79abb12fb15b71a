package enrich

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/seo-console/internal/domain"
)

// Stage names the step an enrichment job is in. A job moves
// Idle → Fetching → Extracting → Persisting → Done; any error after Idle
// lands in Failed.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageFetching   Stage = "fetching"
	StageExtracting Stage = "extracting"
	StagePersisting Stage = "persisting"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// RecordUpdater is the slice of the website store the job needs.
type RecordUpdater interface {
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Website, error)
}

// Enricher renders a page in a headless browser and persists what it finds.
type Enricher struct {
	store       RecordUpdater
	probeClient *http.Client
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func New(store RecordUpdater, timeout time.Duration, logger *zap.Logger) *Enricher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", ""),
		chromedp.Flag("disable-dev-shm-usage", ""),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Enricher{
		store: store,
		probeClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout:     timeout,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// Close releases the browser allocator.
func (e *Enricher) Close() {
	e.allocCancel()
}

// Run enriches one record: CMS probe, render, metadata extraction,
// screenshot, then a partial update keyed by id. The browser tab is released
// on every exit path. The job deliberately detaches from the caller's
// cancellation; an abandoned request still runs to completion or times out
// on its own.
func (e *Enricher) Run(ctx context.Context, id, pageURL string) (*domain.Website, error) {
	if id == "" || pageURL == "" {
		return nil, domain.Invalidf("id and url are required")
	}

	jobCtx, jobCancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout+10*time.Second)
	defer jobCancel()

	stage := StageFetching

	isWP := e.isWordPress(jobCtx, pageURL)

	tabCtx, tabCancel := chromedp.NewContext(e.allocCtx)
	defer tabCancel()
	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, e.timeout)
	defer timeoutCancel()

	var html string
	var screenshot []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(1280, 720),
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
		chromedp.FullScreenshot(&screenshot, 60),
	)
	if err != nil {
		return nil, e.fail(stage, pageURL, err)
	}

	stage = StageExtracting
	meta, err := ExtractMeta(html)
	if err != nil {
		return nil, e.fail(stage, pageURL, err)
	}
	screenshotURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(screenshot)

	stage = StagePersisting
	website, err := e.store.Update(jobCtx, id, map[string]any{
		"is_wordpress":     isWP,
		"meta_title":       meta.Title,
		"meta_description": meta.Description,
		"screenshot_url":   screenshotURI,
	})
	if err != nil {
		return nil, e.fail(stage, pageURL, err)
	}

	e.logger.Info("enriched website",
		zap.String("id", id),
		zap.String("url", pageURL),
		zap.Bool("is_wordpress", isWP))
	return website, nil
}

func (e *Enricher) fail(stage Stage, pageURL string, err error) error {
	e.logger.Warn("enrichment failed",
		zap.String("stage", string(stage)),
		zap.String("url", pageURL),
		zap.Error(err))
	return fmt.Errorf("enrichment %s: %w", stage, err)
}

// isWordPress probes the CMS login path. A success or redirect counts as a
// hit; any probe error degrades to "not detected" and never aborts the job.
func (e *Enricher) isWordPress(ctx context.Context, pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return false
	}

	probeURL := u.Scheme + "://" + u.Host + "/wp-login.php"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := e.probeClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK ||
		(resp.StatusCode >= 300 && resp.StatusCode < 400)
}
