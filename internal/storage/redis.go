package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/user/seo-console/internal/domain"
)

// settingsKey is the one key the settings document lives under.
const settingsKey = "app:settings"

// SettingsStore keeps the singleton settings document in Redis.
type SettingsStore struct {
	client *redis.Client
}

func NewSettingsStore(addr string) *SettingsStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &SettingsStore{client: rdb}
}

func (s *SettingsStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SettingsStore) Close() error {
	return s.client.Close()
}

// Get returns the stored settings, or the zero value if never saved.
func (s *SettingsStore) Get(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	raw, err := s.client.Get(ctx, settingsKey).Result()
	if errors.Is(err, redis.Nil) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("get settings: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// Put replaces the whole settings document. No merge with the prior value.
func (s *SettingsStore) Put(ctx context.Context, settings domain.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.client.Set(ctx, settingsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}
