package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/metrics", promhttp.Handler().(http.HandlerFunc))
	r.Get("/api/health", s.handleHealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/websites", s.handleListWebsites)
		r.Post("/websites", s.handleCreateOrUpdateWebsite)
		r.Get("/websites/{id}", s.handleGetWebsite)
		r.Put("/websites/{id}", s.handleUpdateWebsite)
		r.Delete("/websites/{id}", s.handleDeleteWebsite)

		r.Get("/settings", s.handleGetSettings)
		r.Post("/settings", s.handleSaveSettings)

		r.Get("/check-indexing", s.handleCheckIndexing)
		r.Get("/scrape-google", s.handleScrapeGoogle)
		r.Post("/index-now", s.handleIndexNow)
		r.Post("/enrich-website", s.handleEnrichWebsite)

		r.Get("/stats", s.handleStats)
	})

	return r
}
