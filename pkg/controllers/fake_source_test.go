package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/fetcher"
	"movie-discovery/pkg/models"
	"movie-discovery/pkg/render"
)

var errBoom = errors.New("boom")

var fixedNow = time.Date(2026, 10, 14, 21, 30, 0, 0, time.Local)

// fakeSource records every call and answers from overridable functions
type fakeSource struct {
	mu       sync.Mutex
	calls    map[string]int
	genres   []int
	queries  []string
	upcoming []time.Time

	trending  func(ctx context.Context) ([]models.TitleSummary, error)
	popular   func(ctx context.Context) ([]models.TitleSummary, error)
	byGenre   func(ctx context.Context, genreID int) ([]models.TitleSummary, error)
	search    func(ctx context.Context, query string) ([]models.TitleSummary, error)
	details   func(ctx context.Context, id int) (fetcher.TitleCore, error)
	videos    func(ctx context.Context, id int) ([]models.Video, error)
	providers func(ctx context.Context, id int) (map[string][]string, error)
	credits   func(ctx context.Context, id int) ([]models.CastMember, error)
}

func newFakeSource() *fakeSource {
	return &fakeSource{calls: make(map[string]int)}
}

func (f *fakeSource) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) lastGenre() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.genres) == 0 {
		return -1
	}
	return f.genres[len(f.genres)-1]
}

func titles(prefix string, n int) []models.TitleSummary {
	out := make([]models.TitleSummary, n)
	for i := range out {
		out[i] = models.TitleSummary{
			ID:         i + 1,
			Title:      fmt.Sprintf("%s %d", prefix, i+1),
			Popularity: float64(n - i),
		}
	}
	return out
}

func (f *fakeSource) Trending(ctx context.Context) ([]models.TitleSummary, error) {
	f.record("trending")
	if f.trending != nil {
		return f.trending(ctx)
	}
	return titles("Trending", 8), nil
}

func (f *fakeSource) Popular(ctx context.Context) ([]models.TitleSummary, error) {
	f.record("popular")
	if f.popular != nil {
		return f.popular(ctx)
	}
	return titles("Popular", 20), nil
}

func (f *fakeSource) DiscoverByGenre(ctx context.Context, genreID int) ([]models.TitleSummary, error) {
	f.record("genre")
	f.mu.Lock()
	f.genres = append(f.genres, genreID)
	f.mu.Unlock()
	if f.byGenre != nil {
		return f.byGenre(ctx, genreID)
	}
	return titles(fmt.Sprintf("Genre %d", genreID), 12), nil
}

func (f *fakeSource) DiscoverUpcoming(_ context.Context, from time.Time) ([]models.TitleSummary, error) {
	f.record("upcoming")
	f.mu.Lock()
	f.upcoming = append(f.upcoming, from)
	f.mu.Unlock()
	return titles("Upcoming", 9), nil
}

func (f *fakeSource) Search(ctx context.Context, query string) ([]models.TitleSummary, error) {
	f.record("search")
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.search != nil {
		return f.search(ctx, query)
	}
	return titles("Result", 3), nil
}

func (f *fakeSource) Details(ctx context.Context, id int) (fetcher.TitleCore, error) {
	f.record("details")
	if f.details != nil {
		return f.details(ctx, id)
	}
	return fetcher.TitleCore{ID: id, Title: "Detail", Overview: "Synopsis", VoteAverage: 7.26, Genres: []string{"Drama"}}, nil
}

func (f *fakeSource) Videos(ctx context.Context, id int) ([]models.Video, error) {
	f.record("videos")
	if f.videos != nil {
		return f.videos(ctx, id)
	}
	return []models.Video{{Key: "vid", Site: "YouTube", Type: "Trailer"}}, nil
}

func (f *fakeSource) WatchProviders(ctx context.Context, id int) (map[string][]string, error) {
	f.record("providers")
	if f.providers != nil {
		return f.providers(ctx, id)
	}
	return map[string][]string{"US": {"Netflix"}}, nil
}

func (f *fakeSource) Credits(ctx context.Context, id int) ([]models.CastMember, error) {
	f.record("credits")
	if f.credits != nil {
		return f.credits(ctx, id)
	}
	return []models.CastMember{{Name: "Lead", Character: "Hero"}}, nil
}

func newTestRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New("https://image.example.org/t/p")
	require.NoError(t, err)
	return r
}

func newTestPage(t *testing.T, src *fakeSource) *Page {
	t.Helper()
	p, err := NewPage(src, newTestRenderer(t), config.DefaultCategories, func() time.Time { return fixedNow })
	require.NoError(t, err)
	return p
}
