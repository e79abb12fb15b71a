package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/user/seo-console/internal/domain"
)

func (s *Server) handleListWebsites(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("list_websites")

	websites, err := s.websites.List(r.Context())
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, websites)
}

// handleCreateOrUpdateWebsite serves the dual-purpose POST endpoint: a
// payload carrying an id is a partial update, anything else is a create.
func (s *Server) handleCreateOrUpdateWebsite(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("create_website")

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if id, ok := payload["id"].(string); ok && id != "" {
		website, err := s.websites.Update(r.Context(), id, payload)
		if err != nil {
			s.respondWithDomainError(w, err)
			return
		}
		s.respondWithJSON(w, http.StatusOK, website)
		return
	}

	url, _ := payload["url"].(string)
	if url == "" {
		s.respondWithError(w, http.StatusBadRequest, "URL is required")
		return
	}

	in := domain.NewWebsite{
		URL:          url,
		TwitterURL:   optString(payload, "twitter_url"),
		FacebookURL:  optString(payload, "facebook_url"),
		LinkedInURL:  optString(payload, "linkedin_url"),
		InstagramURL: optString(payload, "instagram_url"),
		YouTubeURL:   optString(payload, "youtube_url"),
	}
	if name, ok := payload["name"].(string); ok {
		in.Name = name
	}

	website, err := s.websites.Create(r.Context(), in)
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusCreated, website)
}

func (s *Server) handleGetWebsite(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("get_website")

	website, err := s.websites.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, website)
}

func (s *Server) handleUpdateWebsite(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("update_website")

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	website, err := s.websites.Update(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, website)
}

func (s *Server) handleDeleteWebsite(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("delete_website")

	if err := s.websites.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("get_settings")

	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("save_settings")

	// Pointer fields so a missing key and a non-string value both fail the
	// shape check. Empty strings are fine.
	var payload struct {
		GoogleAPIKey *string `json:"googleApiKey"`
		GoogleCxID   *string `json:"googleCxId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil ||
		payload.GoogleAPIKey == nil || payload.GoogleCxID == nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid settings payload")
		return
	}

	settings := domain.Settings{
		GoogleAPIKey: *payload.GoogleAPIKey,
		GoogleCxID:   *payload.GoogleCxID,
	}
	if err := s.settings.Put(r.Context(), settings); err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Settings saved successfully"})
}

func (s *Server) handleCheckIndexing(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("check_indexing")

	site := r.URL.Query().Get("domain")
	if site == "" {
		s.respondWithError(w, http.StatusBadRequest, "Domain parameter is required")
		return
	}

	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}

	count, err := s.checker.IndexedCount(r.Context(), settings, site)
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, count)
}

func (s *Server) handleScrapeGoogle(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("scrape_google")

	site := r.URL.Query().Get("domain")
	if site == "" {
		s.respondWithError(w, http.StatusBadRequest, "Domain parameter is required")
		return
	}

	count, err := s.scraper.IndexedCount(r.Context(), site)
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, count)
}

func (s *Server) handleIndexNow(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("index_now")

	var payload struct {
		URL     string   `json:"url"`
		URLList []string `json:"urlList"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	urls := payload.URLList
	if payload.URL != "" {
		urls = append([]string{payload.URL}, urls...)
	}
	if len(urls) == 0 {
		s.respondWithError(w, http.StatusBadRequest, "URL to submit is required")
		return
	}

	if err := s.pusher.Push(r.Context(), urls); err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Successfully submitted URLs to IndexNow",
	})
}

func (s *Server) handleEnrichWebsite(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("enrich_website")

	var payload struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.ID == "" || payload.URL == "" {
		s.respondWithError(w, http.StatusBadRequest, "ID and URL are required")
		return
	}

	website, err := s.enricher.Run(r.Context(), payload.ID, payload.URL)
	if err != nil {
		s.metrics.IncEnrichments("failed")
		s.respondWithDomainError(w, err)
		return
	}
	s.metrics.IncEnrichments("ok")
	s.respondWithJSON(w, http.StatusOK, website)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequests("stats")

	total, err := s.websites.Count(r.Context())
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.respondWithDomainError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, domain.Stats{
		TotalWebsites:        total,
		IsGoogleConfigured:   settings.GoogleAPIKey != "" && settings.GoogleCxID != "",
		IsIndexNowConfigured: s.config.IndexNowKey != "",
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	healthStatus := make(map[string]string)

	if err := s.websites.Ping(ctx); err != nil {
		healthStatus["postgres"] = "unhealthy"
		s.logger.Error("health check failed for postgres", zap.Error(err))
	} else {
		healthStatus["postgres"] = "healthy"
	}

	if err := s.settings.Ping(ctx); err != nil {
		healthStatus["redis"] = "unhealthy"
		s.logger.Error("health check failed for redis", zap.Error(err))
	} else {
		healthStatus["redis"] = "healthy"
	}

	if healthStatus["postgres"] != "healthy" || healthStatus["redis"] != "healthy" {
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}
	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// --- Helper Functions ---

// respondWithDomainError maps the error taxonomy onto HTTP statuses.
// Upstream failures pass their status and body through verbatim, carrying a
// fixUrl when one was extracted.
func (s *Server) respondWithDomainError(w http.ResponseWriter, err error) {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrInvalid):
		s.metrics.IncErrors("invalid_request")
		s.respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		s.metrics.IncErrors("not_configured")
		s.respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		s.metrics.IncErrors("not_found")
		s.respondWithError(w, http.StatusNotFound, "Website not found")
	case errors.Is(err, domain.ErrConflict):
		s.metrics.IncErrors("conflict")
		s.respondWithError(w, http.StatusConflict, "This URL already exists")
	case errors.Is(err, domain.ErrUnavailable):
		s.metrics.IncErrors("unavailable")
		s.respondWithError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &upstream):
		s.metrics.IncErrors("upstream_failed")
		body := map[string]string{"message": upstream.Message}
		if upstream.FixURL != "" {
			body["fixUrl"] = upstream.FixURL
		}
		s.respondWithJSON(w, upstream.StatusCode, body)
	default:
		s.metrics.IncErrors("internal")
		s.logger.Error("unexpected error", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "An internal server error occurred")
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// optString reads an optional string field from a decoded payload. Empty
// strings collapse to nil so unset socials store as NULL.
func optString(payload map[string]any, key string) *string {
	if v, ok := payload[key].(string); ok && v != "" {
		return &v
	}
	return nil
}
