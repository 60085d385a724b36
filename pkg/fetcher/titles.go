package fetcher

import (
	"context"
	"encoding/json"
	"time"

	"movie-discovery/pkg/models"
)

const (
	defaultLanguage = "en-US"
	firstPage       = 1
	// DateLayout is the upstream calendar date format
	DateLayout = "2006-01-02"
)

func decode[T any](ctx context.Context, c *Client, resource string, params Params) (T, error) {
	var out T
	body, err := c.Fetch(ctx, resource, params)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &UpstreamError{Endpoint: resource, Status: 200, Message: "unexpected response shape: " + err.Error()}
	}
	return out, nil
}

func (c *Client) list(ctx context.Context, resource string, params Params) ([]models.TitleSummary, error) {
	resp, err := decode[listResponse](ctx, c, resource, params)
	if err != nil {
		return nil, err
	}
	return normalizeList(resp), nil
}

// Trending returns the first page of today's trending titles
func (c *Client) Trending(ctx context.Context) ([]models.TitleSummary, error) {
	return c.list(ctx, ResourceTrending, Params{"language": defaultLanguage, "page": firstPage})
}

// Popular returns the first page of the popular list
func (c *Client) Popular(ctx context.Context) ([]models.TitleSummary, error) {
	return c.list(ctx, ResourcePopular, Params{"language": defaultLanguage, "page": firstPage})
}

// DiscoverByGenre returns the first page of titles in one genre
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int) ([]models.TitleSummary, error) {
	return c.list(ctx, ResourceDiscover, Params{
		"with_genres": genreID,
		"language":    defaultLanguage,
		"page":        firstPage,
	})
}

// DiscoverUpcoming returns the first page of titles released on or after
// from, most popular first
func (c *Client) DiscoverUpcoming(ctx context.Context, from time.Time) ([]models.TitleSummary, error) {
	return c.list(ctx, ResourceDiscover, Params{
		"language":                 defaultLanguage,
		"sort_by":                  "popularity.desc",
		"primary_release_date.gte": from.Format(DateLayout),
		"page":                     firstPage,
	})
}

// Search returns the titles matching query
func (c *Client) Search(ctx context.Context, query string) ([]models.TitleSummary, error) {
	return c.list(ctx, ResourceSearch, Params{"query": query})
}

// Details returns the core details of a title
func (c *Client) Details(ctx context.Context, id int) (TitleCore, error) {
	resp, err := decode[detailsResponse](ctx, c, DetailsResource(id), nil)
	if err != nil {
		return TitleCore{}, err
	}
	return normalizeDetails(resp), nil
}

// Videos returns a title's videos in upstream order
func (c *Client) Videos(ctx context.Context, id int) ([]models.Video, error) {
	resp, err := decode[videosResponse](ctx, c, VideosResource(id), nil)
	if err != nil {
		return nil, err
	}
	return normalizeVideos(resp), nil
}

// WatchProviders returns the flatrate provider names keyed by region code
func (c *Client) WatchProviders(ctx context.Context, id int) (map[string][]string, error) {
	resp, err := decode[watchProvidersResponse](ctx, c, WatchProvidersResource(id), nil)
	if err != nil {
		return nil, err
	}
	return normalizeWatchProviders(resp), nil
}

// Credits returns a title's cast in upstream order
func (c *Client) Credits(ctx context.Context, id int) ([]models.CastMember, error) {
	resp, err := decode[creditsResponse](ctx, c, CreditsResource(id), nil)
	if err != nil {
		return nil, err
	}
	return normalizeCredits(resp), nil
}
