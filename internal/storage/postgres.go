package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/seo-console/internal/domain"
)

const websiteColumns = `id, url, name, status, created_at,
	is_wordpress, screenshot_url, meta_title, meta_description,
	gsc_url, bing_url, yandex_url,
	twitter_url, facebook_url, linkedin_url, instagram_url, youtube_url`

// WebsiteStore handles interactions with the PostgreSQL database.
type WebsiteStore struct {
	db *pgxpool.Pool
}

func NewWebsiteStore(connStr string) (*WebsiteStore, error) {
	db, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &WebsiteStore{db: db}, nil
}

func (s *WebsiteStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *WebsiteStore) Close() {
	s.db.Close()
}

// Create inserts a new record and returns the reloaded row. Name falls back
// to the URL host when not supplied.
func (s *WebsiteStore) Create(ctx context.Context, in domain.NewWebsite) (*domain.Website, error) {
	if in.URL == "" {
		return nil, domain.Invalidf("url is required")
	}

	name := in.Name
	if name == "" {
		var err error
		name, err = defaultName(in.URL)
		if err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	_, err := s.db.Exec(ctx,
		`INSERT INTO websites (id, url, name, status, twitter_url, facebook_url, linkedin_url, instagram_url, youtube_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, in.URL, name, domain.StatusActive,
		in.TwitterURL, in.FacebookURL, in.LinkedInURL, in.InstagramURL, in.YouTubeURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert website: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches one record by id.
func (s *WebsiteStore) GetByID(ctx context.Context, id string) (*domain.Website, error) {
	row := s.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM websites WHERE id = $1", websiteColumns), id)
	w, err := scanWebsite(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select website: %w", err)
	}
	return w, nil
}

// List returns all records, newest first.
func (s *WebsiteStore) List(ctx context.Context) ([]domain.Website, error) {
	rows, err := s.db.Query(ctx,
		fmt.Sprintf("SELECT %s FROM websites ORDER BY created_at DESC", websiteColumns))
	if err != nil {
		return nil, fmt.Errorf("list websites: %w", err)
	}
	defer rows.Close()

	websites := []domain.Website{}
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		websites = append(websites, *w)
	}
	return websites, rows.Err()
}

// Update modifies exactly the fields present in the mapping, in one
// statement, and returns the reloaded record.
func (s *WebsiteStore) Update(ctx context.Context, id string, fields map[string]any) (*domain.Website, error) {
	stmt, args, err := buildUpdate(id, fields)
	if err != nil {
		return nil, err
	}

	tag, err := s.db.Exec(ctx, stmt, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("update website: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete removes a record. Deleting a missing id is a no-op, not an error.
func (s *WebsiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM websites WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	return nil
}

// Count returns the total number of records.
func (s *WebsiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM websites").Scan(&n); err != nil {
		return 0, fmt.Errorf("count websites: %w", err)
	}
	return n, nil
}

func scanWebsite(row pgx.Row) (*domain.Website, error) {
	var w domain.Website
	err := row.Scan(
		&w.ID, &w.URL, &w.Name, &w.Status, &w.CreatedAt,
		&w.IsWordPress, &w.ScreenshotURL, &w.MetaTitle, &w.MetaDescription,
		&w.GSCURL, &w.BingURL, &w.YandexURL,
		&w.TwitterURL, &w.FacebookURL, &w.LinkedInURL, &w.InstagramURL, &w.YouTubeURL,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// defaultName derives a display label from the URL host.
func defaultName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", domain.Invalidf("invalid url %q", rawURL)
	}
	return u.Host, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
