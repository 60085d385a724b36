package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	APIKey          string
	UpstreamBaseURL string
	Port            string
	GatewayURL      string
	ImageBaseURL    string
	CategoriesFile  string
	SessionTTL      time.Duration
	LogLevel        string
	GoogleProjectID string
	ExportBucket    string
	Categories      []Category
}

// ErrAPIKeyNotSet is returned when the TMDB_API_KEY environment variable is not set
var ErrAPIKeyNotSet = errors.New("TMDB_API_KEY environment variable not set")

// ErrInvalidSessionTTL is returned when SESSION_TTL cannot be parsed as a positive duration
var ErrInvalidSessionTTL = errors.New("SESSION_TTL must be a positive duration")

const (
	defaultUpstreamBaseURL = "https://api.themoviedb.org/3"
	defaultImageBaseURL    = "https://image.tmdb.org/t/p"
	defaultPort            = "8080"
	defaultSessionTTL      = 30 * time.Minute
)

// Load loads configuration from environment variables. The API key is only
// required by the process hosting the gateway, see RequireAPIKey.
func Load() (*Config, error) {
	port := getenv("PORT", defaultPort)

	ttl := defaultSessionTTL
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, ErrInvalidSessionTTL
		}
		ttl = d
	}

	cfg := &Config{
		APIKey:          os.Getenv("TMDB_API_KEY"),
		UpstreamBaseURL: strings.TrimRight(getenv("TMDB_BASE_URL", defaultUpstreamBaseURL), "/"),
		Port:            port,
		GatewayURL:      getenv("GATEWAY_URL", fmt.Sprintf("http://127.0.0.1:%s/api/tmdb", port)),
		ImageBaseURL:    strings.TrimRight(getenv("IMAGE_BASE_URL", defaultImageBaseURL), "/"),
		CategoriesFile:  os.Getenv("CATEGORIES_FILE"),
		SessionTTL:      ttl,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		GoogleProjectID: os.Getenv("GOOGLE_PROJECT_ID"),
		ExportBucket:    os.Getenv("EXPORT_BUCKET"),
	}

	categories, err := LoadCategories(cfg.CategoriesFile)
	if err != nil {
		return nil, err
	}
	cfg.Categories = categories

	return cfg, nil
}

// RequireAPIKey reports ErrAPIKeyNotSet when the gateway secret is missing
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrAPIKeyNotSet
	}
	return nil
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Browse URL: http://localhost:%s/\n", c.Port)
	fmt.Printf("Gateway URL: http://localhost:%s/api/tmdb\n", c.Port)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
