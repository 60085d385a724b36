package controllers

import (
	"context"
	"log/slog"

	"movie-discovery/pkg/models"
	"movie-discovery/pkg/render"
	"movie-discovery/pkg/services"
	"movie-discovery/pkg/viewstate"
)

// CategoryController fills the category grid for the active genre
type CategoryController struct {
	source   Source
	renderer *render.Renderer
	coord    *viewstate.Coordinator
	region   *Region
}

// NewCategoryController creates a category controller over region
func NewCategoryController(source Source, renderer *render.Renderer, coord *viewstate.Coordinator, region *Region) *CategoryController {
	return &CategoryController{source: source, renderer: renderer, coord: coord, region: region}
}

// Select makes genreID the only active category and reloads the grid
func (c *CategoryController) Select(ctx context.Context, genreID int) error {
	c.coord.SelectCategory(genreID)
	return c.Load(ctx)
}

// Load fetches the popular list, or the genre-filtered list when a genre is
// active, and renders up to ten titles
func (c *CategoryController) Load(ctx context.Context) error {
	genreID := c.coord.Category()
	tok := c.region.Begin(placeholder(c.renderer, render.SkeletonGrid, categorySize))

	var (
		titles []models.TitleSummary
		err    error
	)
	if genreID == viewstate.AllCategories {
		titles, err = c.source.Popular(ctx)
	} else {
		titles, err = c.source.DiscoverByGenre(ctx, genreID)
	}
	if err != nil {
		slog.WarnContext(ctx, "category load failed", "genre", genreID, "error", err)
		c.region.Commit(tok, PhaseFailed, errorPanel(c.renderer, render.ErrorView{
			Message:  "Failed to load titles for this category.",
			RetryURL: RetryCategoriesURL,
		}))
		return err
	}

	grid, err := c.renderer.Grid(services.Take(titles, categorySize))
	if err != nil {
		slog.ErrorContext(ctx, "failed to render category grid", "error", err)
		c.region.Commit(tok, PhaseFailed, errorPanel(c.renderer, render.ErrorView{
			Message:  "Failed to display titles for this category.",
			RetryURL: RetryCategoriesURL,
		}))
		return err
	}
	c.region.Commit(tok, PhaseSuccess, grid)
	return nil
}
