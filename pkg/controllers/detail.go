package controllers

import (
	"context"
	"log/slog"

	"movie-discovery/pkg/render"
	"movie-discovery/pkg/services"
	"movie-discovery/pkg/viewstate"
)

// DetailController opens the detail modal for one title
type DetailController struct {
	source   Source
	renderer *render.Renderer
	coord    *viewstate.Coordinator
	region   *Region
}

// NewDetailController creates a detail controller over the modal region
func NewDetailController(source Source, renderer *render.Renderer, coord *viewstate.Coordinator, region *Region) *DetailController {
	return &DetailController{source: source, renderer: renderer, coord: coord, region: region}
}

// Open shows the modal in its loading state, then joins the four detail
// calls. Any failing call replaces the whole modal with an error panel
// offering only close.
func (c *DetailController) Open(ctx context.Context, titleID int) error {
	c.coord.OpenModal()
	tok := c.region.Begin(placeholder(c.renderer, render.SkeletonModal, 1))

	detail, err := services.LoadTitleDetail(ctx, c.source, titleID)
	if err != nil {
		slog.WarnContext(ctx, "title detail failed", "title_id", titleID, "error", err)
		c.region.Commit(tok, PhaseFailed, errorPanel(c.renderer, render.ErrorView{
			Message:  "Failed to load title details.",
			CloseURL: render.CloseURL,
		}))
		return err
	}

	frag, err := c.renderer.DetailModal(detail)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render title detail", "title_id", titleID, "error", err)
		c.region.Commit(tok, PhaseFailed, errorPanel(c.renderer, render.ErrorView{
			Message:  "Failed to display title details.",
			CloseURL: render.CloseURL,
		}))
		return err
	}
	c.region.Commit(tok, PhaseSuccess, frag)
	return nil
}

// Close hides the modal and drops its content. A detail response still in
// flight is discarded when it arrives.
func (c *DetailController) Close() {
	c.coord.CloseModal()
	c.region.Reset()
}
