package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/fetcher"
	"movie-discovery/pkg/gateway"
	"movie-discovery/pkg/models"
)

// Service runs headless discovery queries for the command line
type Service struct {
	config *config.Config
	client *fetcher.Client
	cache  *cache.Cache
	mu     sync.RWMutex
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// NewService creates a service. With an API key the fetcher talks to an
// in-process gateway; without one it uses the configured gateway URL.
func NewService(cfg *config.Config) *Service {
	var client *fetcher.Client
	if cfg.APIKey != "" {
		gw := gateway.New(cfg.APIKey, cfg.UpstreamBaseURL, nil)
		client = fetcher.New(gateway.LocalURL, gateway.LocalClient(gw))
	} else {
		client = fetcher.New(cfg.GatewayURL, nil)
	}
	return &Service{
		config: cfg,
		client: client,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// InitService initializes the service with the given configuration
func InitService(cfg *config.Config) {
	once.Do(func() {
		defaultService = NewService(cfg)
	})
}

// Client returns the fetcher the service uses
func (s *Service) Client() *fetcher.Client {
	return s.client
}

// GetCategories returns the configured genre catalogue
func GetCategories() []config.Category {
	return defaultService.config.Categories
}

// GetTrending returns today's trending titles
func GetTrending(ctx context.Context) ([]models.TitleSummary, error) {
	return defaultService.GetTrendingInternal(ctx)
}

// GetTrendingInternal returns today's trending titles, cached for a few
// minutes
func (s *Service) GetTrendingInternal(ctx context.Context) ([]models.TitleSummary, error) {
	s.mu.RLock()
	if cached, found := s.cache.Get("trending"); found {
		s.mu.RUnlock()
		slog.DebugContext(ctx, "using cached trending")
		return cached.([]models.TitleSummary), nil
	}
	s.mu.RUnlock()

	titles, err := s.client.Trending(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache.Set("trending", titles, cache.DefaultExpiration)
	s.mu.Unlock()
	return titles, nil
}

// SearchTitles returns the titles matching query, most popular first
func SearchTitles(ctx context.Context, query string) ([]models.TitleSummary, error) {
	return defaultService.SearchTitlesInternal(ctx, query)
}

// SearchTitlesInternal returns the titles matching query, most popular first
func (s *Service) SearchTitlesInternal(ctx context.Context, query string) ([]models.TitleSummary, error) {
	titles, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return SortByPopularity(titles), nil
}

// GetTitle returns the full detail of one title
func GetTitle(ctx context.Context, id int) (models.TitleDetail, error) {
	return LoadTitleDetail(ctx, defaultService.client, id)
}

// GetSnapshot collects the browse lists for export
func GetSnapshot(ctx context.Context) (Snapshot, error) {
	return BuildSnapshot(ctx, defaultService.client, defaultService.config.Categories, time.Now())
}
