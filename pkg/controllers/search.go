package controllers

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"movie-discovery/pkg/render"
	"movie-discovery/pkg/services"
	"movie-discovery/pkg/viewstate"
)

// SearchController renders search results into the top grid and owns the
// section header
type SearchController struct {
	source   Source
	renderer *render.Renderer
	coord    *viewstate.Coordinator
	header   *Region
	grid     *Region

	mu   sync.Mutex
	last string
}

// NewSearchController creates a search controller over the header and top
// grid regions
func NewSearchController(source Source, renderer *render.Renderer, coord *viewstate.Coordinator, header, grid *Region) *SearchController {
	return &SearchController{source: source, renderer: renderer, coord: coord, header: header, grid: grid}
}

// Submit searches for the trimmed query. Blank input is ignored. Results are
// sorted by descending popularity and switch the page to search results; an
// empty result set also switches mode and shows a no-results panel; a failed
// call leaves the mode as it was.
func (c *SearchController) Submit(ctx context.Context, raw string) error {
	query := strings.TrimSpace(raw)
	if query == "" {
		return nil
	}
	c.mu.Lock()
	c.last = query
	c.mu.Unlock()
	c.coord.SetSearchText(query)

	tok := c.grid.Begin(placeholder(c.renderer, render.SkeletonGrid, topGridSize))
	results, err := c.source.Search(ctx, query)
	if err != nil {
		slog.WarnContext(ctx, "search failed", "query", query, "error", err)
		c.grid.Commit(tok, PhaseFailed, errorPanel(c.renderer, render.ErrorView{
			Message:  "Search failed. Please try again.",
			RetryURL: RetrySearchURL,
		}))
		return err
	}

	if len(results) == 0 {
		frag, err := c.renderer.NoResults(query, render.ClearSearchURL)
		if err != nil {
			return c.renderFailed(ctx, tok, err)
		}
		if c.grid.Commit(tok, PhaseSuccess, frag) {
			c.coord.EnterSearch(query)
		}
		return nil
	}

	grid, err := c.renderer.Grid(services.SortByPopularity(results))
	if err != nil {
		return c.renderFailed(ctx, tok, err)
	}
	header, err := c.renderer.SearchHeader(query)
	if err != nil {
		return c.renderFailed(ctx, tok, err)
	}
	if c.grid.Commit(tok, PhaseSuccess, grid) {
		c.coord.EnterSearch(query)
		c.header.Set(PhaseSuccess, header)
	}
	return nil
}

// Retry re-issues the last submitted query
func (c *SearchController) Retry(ctx context.Context) error {
	c.mu.Lock()
	query := c.last
	c.mu.Unlock()
	return c.Submit(ctx, query)
}

// RestoreHeader puts back the browse header
func (c *SearchController) RestoreHeader(ctx context.Context) {
	header, err := c.renderer.BrowseHeader()
	if err != nil {
		slog.ErrorContext(ctx, "failed to render section header", "error", err)
		header = render.TrendingHeader
	}
	c.header.Set(PhaseSuccess, header)
}

func (c *SearchController) renderFailed(ctx context.Context, tok Token, err error) error {
	slog.ErrorContext(ctx, "failed to render search results", "error", err)
	c.grid.Commit(tok, PhaseFailed, errorPanel(c.renderer, render.ErrorView{
		Message:  "Failed to display search results.",
		RetryURL: RetrySearchURL,
	}))
	return err
}
