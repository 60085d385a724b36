package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-discovery/pkg/fetcher"
	"movie-discovery/pkg/models"
)

type stubDetails struct {
	core      fetcher.TitleCore
	videos    []models.Video
	providers map[string][]string
	cast      []models.CastMember
	failOn    string
}

var errStub = errors.New("stub failure")

func (s stubDetails) Details(_ context.Context, id int) (fetcher.TitleCore, error) {
	if s.failOn == "details" {
		return fetcher.TitleCore{}, errStub
	}
	core := s.core
	core.ID = id
	return core, nil
}

func (s stubDetails) Videos(context.Context, int) ([]models.Video, error) {
	if s.failOn == "videos" {
		return nil, errStub
	}
	return s.videos, nil
}

func (s stubDetails) WatchProviders(context.Context, int) (map[string][]string, error) {
	if s.failOn == "providers" {
		return nil, errStub
	}
	return s.providers, nil
}

func (s stubDetails) Credits(context.Context, int) ([]models.CastMember, error) {
	if s.failOn == "credits" {
		return nil, errStub
	}
	return s.cast, nil
}

func TestFindTrailer(t *testing.T) {
	tests := []struct {
		name   string
		videos []models.Video
		want   string
	}{
		{
			name: "first youtube trailer wins",
			videos: []models.Video{
				{Key: "teaser", Site: "YouTube", Type: "Teaser"},
				{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
				{Key: "one", Site: "YouTube", Type: "Trailer"},
				{Key: "two", Site: "YouTube", Type: "Trailer"},
			},
			want: "https://www.youtube.com/watch?v=one",
		},
		{
			name: "no matching entry",
			videos: []models.Video{
				{Key: "clip", Site: "YouTube", Type: "Clip"},
				{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
			},
		},
		{name: "empty list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindTrailer(tt.videos)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestStreamingProviders_USOnly(t *testing.T) {
	assert.Equal(t, []string{"Netflix", "Max"}, StreamingProviders(map[string][]string{
		"US": {"Netflix", "Max"},
		"GB": {"Channel 4"},
	}))
	assert.Empty(t, StreamingProviders(map[string][]string{"GB": {"Channel 4"}}))
	assert.Empty(t, StreamingProviders(nil))
}

func TestTopCast_FirstFive(t *testing.T) {
	cast := make([]models.CastMember, 8)
	for i := range cast {
		cast[i].Name = string(rune('A' + i))
	}
	got := TopCast(cast)
	require.Len(t, got, 5)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "E", got[4].Name)
	assert.Len(t, TopCast(cast[:2]), 2)
}

func TestLoadTitleDetail_Joins(t *testing.T) {
	src := stubDetails{
		core:      fetcher.TitleCore{Title: "Heat", VoteAverage: 8.3, Genres: []string{"Crime"}},
		videos:    []models.Video{{Key: "k", Site: "YouTube", Type: "Trailer"}},
		providers: map[string][]string{"US": {"Netflix"}},
		cast:      []models.CastMember{{Name: "Al"}},
	}

	d, err := LoadTitleDetail(context.Background(), src, 949)
	require.NoError(t, err)
	assert.Equal(t, 949, d.ID)
	assert.Equal(t, "Heat", d.Title)
	assert.Equal(t, []string{"Crime"}, d.Genres)
	require.NotNil(t, d.TrailerURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=k", *d.TrailerURL)
	assert.Equal(t, []string{"Netflix"}, d.WatchProviders)
	assert.Len(t, d.TopCast, 1)
}

func TestLoadTitleDetail_AnyFailureFailsAggregate(t *testing.T) {
	resources := map[string]string{
		"details":   fetcher.DetailsResource(1),
		"videos":    fetcher.VideosResource(1),
		"providers": fetcher.WatchProvidersResource(1),
		"credits":   fetcher.CreditsResource(1),
	}
	for failOn, resource := range resources {
		t.Run(failOn, func(t *testing.T) {
			d, err := LoadTitleDetail(context.Background(), stubDetails{failOn: failOn}, 1)

			var aggErr *AggregateError
			require.True(t, errors.As(err, &aggErr))
			assert.Equal(t, resource, aggErr.Resource)
			assert.ErrorIs(t, err, errStub)
			assert.Equal(t, models.TitleDetail{}, d)
		})
	}
}

// settleRecorder fails details and records the context every other call saw
type settleRecorder struct {
	stubDetails
	mu   sync.Mutex
	seen map[string]context.Context
}

func (s *settleRecorder) note(name string, ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[name] = ctx
}

func (s *settleRecorder) Videos(ctx context.Context, id int) ([]models.Video, error) {
	s.note("videos", ctx)
	return s.stubDetails.Videos(ctx, id)
}

func (s *settleRecorder) WatchProviders(ctx context.Context, id int) (map[string][]string, error) {
	s.note("providers", ctx)
	return s.stubDetails.WatchProviders(ctx, id)
}

func (s *settleRecorder) Credits(ctx context.Context, id int) ([]models.CastMember, error) {
	s.note("credits", ctx)
	return s.stubDetails.Credits(ctx, id)
}

func TestLoadTitleDetail_FailureDoesNotCancelSiblings(t *testing.T) {
	src := &settleRecorder{stubDetails: stubDetails{failOn: "details"}, seen: make(map[string]context.Context)}

	_, err := LoadTitleDetail(context.Background(), src, 1)
	assert.ErrorIs(t, err, errStub)

	src.mu.Lock()
	defer src.mu.Unlock()
	require.Len(t, src.seen, 3)
	for name, ctx := range src.seen {
		assert.NoError(t, ctx.Err(), name)
	}
}
