package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movie-discovery/pkg/controllers"
	"movie-discovery/pkg/models"
	"movie-discovery/pkg/sessions"
)

// Handlers translates browser requests into page events
type Handlers struct {
	store *sessions.Store
}

// New creates the browser handlers over a session store
func New(store *sessions.Store) *Handlers {
	return &Handlers{store: store}
}

// Register mounts every browser route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.IndexHandler)
	r.GET("/search", h.SearchHandler)
	r.GET("/search/clear", h.ClearSearchHandler)
	r.GET("/logo", h.LogoHandler)
	r.GET("/categories/all", h.AllCategoriesHandler)
	r.GET("/categories/:id", h.CategoryHandler)
	r.GET("/titles/:id", h.TitleHandler)
	r.GET("/modal/close", h.ModalCloseHandler)
	r.GET("/retry/:target", h.RetryHandler)
	r.GET("/fragments/:region", h.FragmentHandler)
	r.GET("/healthz", HealthHandler)
}

// IndexHandler starts or restarts the page
func (h *Handlers) IndexHandler(c *gin.Context) {
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventPageLoad})
}

// SearchHandler submits the search field
func (h *Handlers) SearchHandler(c *gin.Context) {
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventSearchSubmit, Query: c.Query("q")})
}

// ClearSearchHandler returns to browsing
func (h *Handlers) ClearSearchHandler(c *gin.Context) {
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventClearSearch})
}

// LogoHandler handles a click on the logo
func (h *Handlers) LogoHandler(c *gin.Context) {
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventLogoClick})
}

// AllCategoriesHandler selects the unfiltered category
func (h *Handlers) AllCategoriesHandler(c *gin.Context) {
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventCategorySelect, GenreID: 0})
}

// CategoryHandler selects one genre
func (h *Handlers) CategoryHandler(c *gin.Context) {
	id, ok := positiveParam(c, "id")
	if !ok {
		return
	}
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventCategorySelect, GenreID: id})
}

// TitleHandler opens the detail modal for a title
func (h *Handlers) TitleHandler(c *gin.Context) {
	id, ok := positiveParam(c, "id")
	if !ok {
		return
	}
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventCardOpen, TitleID: id})
}

// ModalCloseHandler closes the detail modal
func (h *Handlers) ModalCloseHandler(c *gin.Context) {
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventModalClose})
}

// RetryHandler re-issues the last request of a failed region
func (h *Handlers) RetryHandler(c *gin.Context) {
	h.dispatchAndRender(c, controllers.Event{Kind: controllers.EventRetry, Target: c.Param("target")})
}

// FragmentHandler returns the current content of one visible region
func (h *Handlers) FragmentHandler(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	frag, visible := page.Fragment(models.RegionID(c.Param("region")))
	if !visible {
		c.String(http.StatusNotFound, "Region not found")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(frag))
}

// HealthHandler reports liveness
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// dispatchAndRender applies ev to the caller's page and renders the result.
// A new session is loaded before ev is applied. Fetches outlive the request:
// a browser that navigates away must not turn its regions into error panels.
func (h *Handlers) dispatchAndRender(c *gin.Context, ev controllers.Event) {
	page, created, ok := h.session(c)
	if !ok {
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())

	if created && ev.Kind != controllers.EventPageLoad {
		if err := page.Dispatch(ctx, controllers.Event{Kind: controllers.EventPageLoad}); err != nil {
			slog.WarnContext(ctx, "initial page load failed", "error", err)
		}
	}

	if err := page.Dispatch(ctx, ev); err != nil {
		if errors.Is(err, controllers.ErrUnknownCategory) || errors.Is(err, controllers.ErrUnknownRetryTarget) || errors.Is(err, controllers.ErrUnknownEvent) {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		slog.WarnContext(ctx, "event failed", "event", string(ev.Kind), "error", err)
	}

	html, err := page.Render()
	if err != nil {
		slog.ErrorContext(ctx, "failed to render page", "error", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// session returns the caller's page, issuing a cookie for a new session
func (h *Handlers) session(c *gin.Context) (*controllers.Page, bool, bool) {
	id, _ := c.Cookie(sessions.CookieName)
	page, sessionID, created, err := h.store.GetOrCreate(id)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to create session", "error", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return nil, false, false
	}
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessions.CookieName, sessionID, int(h.store.TTL().Seconds()), "/", "", false, true)
	}
	return page, created, true
}

// page returns an existing session's page without creating one
func (h *Handlers) page(c *gin.Context) (*controllers.Page, bool) {
	id, err := c.Cookie(sessions.CookieName)
	if err != nil {
		c.String(http.StatusNotFound, "Session not found")
		return nil, false
	}
	page, ok := h.store.Get(id)
	if !ok {
		c.String(http.StatusNotFound, "Session not found")
		return nil, false
	}
	return page, true
}

func positiveParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
