package domain

import "time"

// WebsiteStatus values accepted for a website record.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusError    = "error"
)

// Website is one managed site with its optional enrichment metadata.
// Optional columns are pointers so a missing value round-trips as JSON null.
type Website struct {
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	IsWordPress     *bool     `json:"is_wordpress"`
	ScreenshotURL   *string   `json:"screenshot_url"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
	GSCURL          *string   `json:"gsc_url"`
	BingURL         *string   `json:"bing_url"`
	YandexURL       *string   `json:"yandex_url"`
	TwitterURL      *string   `json:"twitter_url"`
	FacebookURL     *string   `json:"facebook_url"`
	LinkedInURL     *string   `json:"linkedin_url"`
	InstagramURL    *string   `json:"instagram_url"`
	YouTubeURL      *string   `json:"youtube_url"`
}

// NewWebsite is the payload for creating a website record.
type NewWebsite struct {
	URL          string  `json:"url"`
	Name         string  `json:"name"`
	TwitterURL   *string `json:"twitter_url"`
	FacebookURL  *string `json:"facebook_url"`
	LinkedInURL  *string `json:"linkedin_url"`
	InstagramURL *string `json:"instagram_url"`
	YouTubeURL   *string `json:"youtube_url"`
}

// Settings is the single process-wide configuration document holding
// third-party credentials. Saved as one JSON blob, replaced wholesale.
type Settings struct {
	GoogleAPIKey string `json:"googleApiKey"`
	GoogleCxID   string `json:"googleCxId"`
}

// IndexCount is the normalized result of both index-count strategies.
type IndexCount struct {
	Domain       string `json:"domain"`
	IndexedCount int    `json:"indexedCount"`
}

// Stats is the dashboard summary.
type Stats struct {
	TotalWebsites        int  `json:"totalWebsites"`
	IsGoogleConfigured   bool `json:"isGoogleConfigured"`
	IsIndexNowConfigured bool `json:"isIndexNowConfigured"`
}
