package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	PostgresURL       string `mapstructure:"POSTGRES_URL"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	ServerPort        string `mapstructure:"SERVER_PORT"`
	IndexNowKey       string `mapstructure:"INDEXNOW_KEY"`
	IndexNowEndpoint  string `mapstructure:"INDEXNOW_ENDPOINT"`
	GoogleAPIURL      string `mapstructure:"GOOGLE_API_URL"`
	GoogleSearchURL   string `mapstructure:"GOOGLE_SEARCH_URL"`
	EnrichTimeout     int    `mapstructure:"ENRICH_TIMEOUT"`
	HTTPClientTimeout int    `mapstructure:"HTTP_CLIENT_TIMEOUT"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("INDEXNOW_ENDPOINT", "https://api.indexnow.org/indexnow")
	viper.SetDefault("GOOGLE_API_URL", "https://www.googleapis.com")
	viper.SetDefault("GOOGLE_SEARCH_URL", "https://www.google.com/search")
	viper.SetDefault("ENRICH_TIMEOUT", 20) // in seconds
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", 15)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
