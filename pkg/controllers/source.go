// Package controllers drives the fetch and render lifecycle of every page
// region and routes page events to the controller that owns them.
package controllers

import (
	"context"
	"html/template"
	"log/slog"
	"time"

	"movie-discovery/pkg/models"
	"movie-discovery/pkg/render"
	"movie-discovery/pkg/services"
)

// Source is the upstream data a page needs. *fetcher.Client satisfies it.
type Source interface {
	Trending(ctx context.Context) ([]models.TitleSummary, error)
	Popular(ctx context.Context) ([]models.TitleSummary, error)
	DiscoverByGenre(ctx context.Context, genreID int) ([]models.TitleSummary, error)
	DiscoverUpcoming(ctx context.Context, from time.Time) ([]models.TitleSummary, error)
	Search(ctx context.Context, query string) ([]models.TitleSummary, error)
	services.DetailSource
}

// Retry routes rendered by error panels
const (
	RetryTrendingURL   = "/retry/trending"
	RetryCategoriesURL = "/retry/categories"
	RetryUpcomingURL   = "/retry/upcoming"
	RetrySearchURL     = "/retry/search"
)

// Region sizes
const (
	topGridSize  = 5
	categorySize = 10
	upcomingSize = 5
)

// placeholder renders a skeleton, falling back to an empty busy marker
func placeholder(r *render.Renderer, kind render.SkeletonKind, slots int) template.HTML {
	frag, err := r.Skeleton(kind, slots)
	if err != nil {
		slog.Error("failed to render skeleton", "kind", kind, "error", err)
		return template.HTML(`<div class="skeleton" aria-busy="true"></div>`)
	}
	return frag
}

// errorPanel renders an inline error panel, falling back to plain escaped text
func errorPanel(r *render.Renderer, v render.ErrorView) template.HTML {
	frag, err := r.ErrorPanel(v)
	if err != nil {
		slog.Error("failed to render error panel", "error", err)
		return template.HTML(`<div class="error-panel" role="alert">` + template.HTMLEscapeString(v.Message) + `</div>`)
	}
	return frag
}
