package controllers

import (
	"context"
	"log/slog"
	"time"

	"movie-discovery/pkg/render"
	"movie-discovery/pkg/services"
)

// UpcomingController fills the coming-soon grid
type UpcomingController struct {
	source   Source
	renderer *render.Renderer
	region   *Region
	now      func() time.Time
}

// NewUpcomingController creates an upcoming controller. A nil clock uses
// time.Now.
func NewUpcomingController(source Source, renderer *render.Renderer, region *Region, now func() time.Time) *UpcomingController {
	if now == nil {
		now = time.Now
	}
	return &UpcomingController{source: source, renderer: renderer, region: region, now: now}
}

// Tomorrow returns midnight of the day after t in t's location
func Tomorrow(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// Load fetches titles releasing after today, most popular first, and renders
// up to five
func (c *UpcomingController) Load(ctx context.Context) error {
	tok := c.region.Begin(placeholder(c.renderer, render.SkeletonGrid, upcomingSize))

	titles, err := c.source.DiscoverUpcoming(ctx, Tomorrow(c.now()))
	if err != nil {
		slog.WarnContext(ctx, "upcoming load failed", "error", err)
		c.region.Commit(tok, PhaseFailed, errorPanel(c.renderer, render.ErrorView{
			Message:  "Failed to load upcoming titles.",
			RetryURL: RetryUpcomingURL,
		}))
		return err
	}

	grid, err := c.renderer.Grid(services.Take(titles, upcomingSize))
	if err != nil {
		slog.ErrorContext(ctx, "failed to render upcoming grid", "error", err)
		c.region.Commit(tok, PhaseFailed, errorPanel(c.renderer, render.ErrorView{
			Message:  "Failed to display upcoming titles.",
			RetryURL: RetryUpcomingURL,
		}))
		return err
	}
	c.region.Commit(tok, PhaseSuccess, grid)
	return nil
}
