package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/seo-console/internal/config"
	"github.com/user/seo-console/internal/domain"
	"github.com/user/seo-console/internal/monitoring"
)

// WebsiteStore is the record-store surface the handlers need.
type WebsiteStore interface {
	Create(ctx context.Context, in domain.NewWebsite) (*domain.Website, error)
	GetByID(ctx context.Context, id string) (*domain.Website, error)
	List(ctx context.Context) ([]domain.Website, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Website, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// SettingsStore reads and replaces the singleton settings document.
type SettingsStore interface {
	Get(ctx context.Context) (domain.Settings, error)
	Put(ctx context.Context, settings domain.Settings) error
	Ping(ctx context.Context) error
}

// IndexChecker is the authenticated index-count strategy.
type IndexChecker interface {
	IndexedCount(ctx context.Context, settings domain.Settings, site string) (*domain.IndexCount, error)
}

// IndexScraper is the unauthenticated index-count strategy.
type IndexScraper interface {
	IndexedCount(ctx context.Context, site string) (*domain.IndexCount, error)
}

// URLPusher submits URL batches to the notification endpoint.
type URLPusher interface {
	Push(ctx context.Context, urls []string) error
}

// Enricher runs the page-render enrichment job for one record.
type Enricher interface {
	Run(ctx context.Context, id, pageURL string) (*domain.Website, error)
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	websites   WebsiteStore
	settings   SettingsStore
	checker    IndexChecker
	scraper    IndexScraper
	pusher     URLPusher
	enricher   Enricher
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

func NewServer(cfg *config.Config, ws WebsiteStore, ss SettingsStore, ic IndexChecker, sc IndexScraper, up URLPusher, en Enricher, m *monitoring.Metrics, l *zap.Logger) *Server {
	s := &Server{
		config:   cfg,
		websites: ws,
		settings: ss,
		checker:  ic,
		scraper:  sc,
		pusher:   up,
		enricher: en,
		metrics:  m,
		logger:   l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
