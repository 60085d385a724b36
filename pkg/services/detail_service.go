package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"movie-discovery/pkg/fetcher"
	"movie-discovery/pkg/models"
)

const (
	trailerSite    = "YouTube"
	trailerType    = "Trailer"
	trailerBaseURL = "https://www.youtube.com/watch?v="
	providerRegion = "US"
	topCastCount   = 5
)

// DetailSource is the set of per-title calls the detail aggregate joins
type DetailSource interface {
	Details(ctx context.Context, id int) (fetcher.TitleCore, error)
	Videos(ctx context.Context, id int) ([]models.Video, error)
	WatchProviders(ctx context.Context, id int) (map[string][]string, error)
	Credits(ctx context.Context, id int) ([]models.CastMember, error)
}

// AggregateError reports that one call of a multi-fetch group failed, which
// fails the whole group
type AggregateError struct {
	Resource string
	Err      error
}

func (e *AggregateError) Error() string {
	if e == nil {
		return "aggregate fetch failed"
	}
	return fmt.Sprintf("aggregate fetch failed at %s: %v", e.Resource, e.Err)
}

func (e *AggregateError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LoadTitleDetail issues the details, videos, watch providers and credits
// calls for id concurrently and waits for all four to settle. Siblings of a
// failed call are not cancelled. Any single failure fails the aggregate with
// *AggregateError; no partial detail is returned.
func LoadTitleDetail(ctx context.Context, src DetailSource, id int) (models.TitleDetail, error) {
	var (
		core      fetcher.TitleCore
		videos    []models.Video
		providers map[string][]string
		cast      []models.CastMember
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		if core, err = src.Details(ctx, id); err != nil {
			return &AggregateError{Resource: fetcher.DetailsResource(id), Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if videos, err = src.Videos(ctx, id); err != nil {
			return &AggregateError{Resource: fetcher.VideosResource(id), Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if providers, err = src.WatchProviders(ctx, id); err != nil {
			return &AggregateError{Resource: fetcher.WatchProvidersResource(id), Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if cast, err = src.Credits(ctx, id); err != nil {
			return &AggregateError{Resource: fetcher.CreditsResource(id), Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.TitleDetail{}, err
	}

	return models.TitleDetail{
		ID:             id,
		Title:          core.Title,
		Overview:       core.Overview,
		PosterPath:     core.PosterPath,
		VoteAverage:    core.VoteAverage,
		Genres:         core.Genres,
		TrailerURL:     FindTrailer(videos),
		WatchProviders: StreamingProviders(providers),
		TopCast:        TopCast(cast),
	}, nil
}

// FindTrailer returns the watch URL of the first video hosted on the video
// platform whose type is "Trailer", or nil when there is none
func FindTrailer(videos []models.Video) *string {
	for _, v := range videos {
		if v.Site == trailerSite && v.Type == trailerType && v.Key != "" {
			u := trailerBaseURL + v.Key
			return &u
		}
	}
	return nil
}

// StreamingProviders returns the US flatrate provider names in upstream order
func StreamingProviders(byRegion map[string][]string) []string {
	names := byRegion[providerRegion]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// TopCast returns the first five cast entries in upstream order
func TopCast(cast []models.CastMember) []models.CastMember {
	n := len(cast)
	if n > topCastCount {
		n = topCastCount
	}
	out := make([]models.CastMember, n)
	copy(out, cast[:n])
	return out
}
