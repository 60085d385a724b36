package controllers

import (
	"context"
	"errors"
	"log/slog"

	"movie-discovery/pkg/render"
)

// ErrNoTrending is reported when the trending list comes back empty
var ErrNoTrending = errors.New("no trending titles")

// TrendingController fills the hero banner and the top grid from one
// trending call. Both regions succeed or fail together.
type TrendingController struct {
	source   Source
	renderer *render.Renderer
	hero     *Region
	grid     *Region
}

// NewTrendingController creates a trending controller over the hero and top
// grid regions
func NewTrendingController(source Source, renderer *render.Renderer, hero, grid *Region) *TrendingController {
	return &TrendingController{source: source, renderer: renderer, hero: hero, grid: grid}
}

// Load fetches trending titles and renders the first as hero and the next
// five as the top grid
func (c *TrendingController) Load(ctx context.Context) error {
	heroTok := c.hero.Begin(placeholder(c.renderer, render.SkeletonHero, 1))
	gridTok := c.grid.Begin(placeholder(c.renderer, render.SkeletonGrid, topGridSize))

	titles, err := c.source.Trending(ctx)
	if err == nil && len(titles) == 0 {
		err = ErrNoTrending
	}
	if err != nil {
		slog.WarnContext(ctx, "trending load failed", "error", err)
		msg := "Failed to load trending titles."
		if errors.Is(err, ErrNoTrending) {
			msg = "No trending titles"
		}
		panel := errorPanel(c.renderer, render.ErrorView{Message: msg, RetryURL: RetryTrendingURL})
		c.hero.Commit(heroTok, PhaseFailed, panel)
		c.grid.Commit(gridTok, PhaseFailed, panel)
		return err
	}

	hero, err := c.renderer.Hero(titles[0])
	if err != nil {
		return c.renderFailed(ctx, heroTok, gridTok, err)
	}
	rest := titles[1:]
	if len(rest) > topGridSize {
		rest = rest[:topGridSize]
	}
	grid, err := c.renderer.Grid(rest)
	if err != nil {
		return c.renderFailed(ctx, heroTok, gridTok, err)
	}

	c.hero.Commit(heroTok, PhaseSuccess, hero)
	c.grid.Commit(gridTok, PhaseSuccess, grid)
	return nil
}

func (c *TrendingController) renderFailed(ctx context.Context, heroTok, gridTok Token, err error) error {
	slog.ErrorContext(ctx, "failed to render trending", "error", err)
	panel := errorPanel(c.renderer, render.ErrorView{Message: "Failed to display trending titles.", RetryURL: RetryTrendingURL})
	c.hero.Commit(heroTok, PhaseFailed, panel)
	c.grid.Commit(gridTok, PhaseFailed, panel)
	return err
}
