package controllers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/models"
	"movie-discovery/pkg/render"
	"movie-discovery/pkg/viewstate"
)

// EventKind names a user or lifecycle event
type EventKind string

// Event kinds
const (
	EventPageLoad       EventKind = "page-load"
	EventCategorySelect EventKind = "category-select"
	EventSearchSubmit   EventKind = "search-submit"
	EventClearSearch    EventKind = "clear-search"
	EventLogoClick      EventKind = "logo-click"
	EventCardOpen       EventKind = "card-open"
	EventModalClose     EventKind = "modal-close"
	EventRetry          EventKind = "retry"
)

// Retry targets
const (
	RetryTrending   = "trending"
	RetryCategories = "categories"
	RetryUpcoming   = "upcoming"
	RetrySearch     = "search"
)

var (
	// ErrHandlerRegistered is returned when an event kind already has a handler
	ErrHandlerRegistered = errors.New("handler already registered")
	// ErrUnknownEvent is returned when no handler exists for an event kind
	ErrUnknownEvent = errors.New("unknown event")
	// ErrUnknownRetryTarget is returned for a retry of a region that has none
	ErrUnknownRetryTarget = errors.New("unknown retry target")
	// ErrUnknownCategory is returned when a genre is not in the catalogue
	ErrUnknownCategory = errors.New("unknown category")
)

// Event is one dispatched event with its payload
type Event struct {
	Kind    EventKind
	GenreID int
	Query   string
	TitleID int
	Target  string
}

// HandlerFunc handles one event
type HandlerFunc func(ctx context.Context, ev Event) error

// Page is the state of one browser page: the coordinator, every region and
// the controllers that fill them
type Page struct {
	coord      *viewstate.Coordinator
	renderer   *render.Renderer
	categories []config.Category
	regions    map[models.RegionID]*Region

	mu       sync.RWMutex
	handlers map[EventKind]HandlerFunc

	trending *TrendingController
	category *CategoryController
	upcoming *UpcomingController
	search   *SearchController
	detail   *DetailController
}

// NewPage builds a page and registers one handler per event kind. A nil
// clock uses time.Now.
func NewPage(source Source, renderer *render.Renderer, categories []config.Category, now func() time.Time) (*Page, error) {
	p := &Page{
		coord:      viewstate.New(),
		renderer:   renderer,
		categories: categories,
		regions:    make(map[models.RegionID]*Region, len(models.Regions)),
		handlers:   make(map[EventKind]HandlerFunc),
	}
	for _, id := range models.Regions {
		p.regions[id] = NewRegion(id)
	}

	p.trending = NewTrendingController(source, renderer, p.regions[models.RegionHero], p.regions[models.RegionTopGrid])
	p.category = NewCategoryController(source, renderer, p.coord, p.regions[models.RegionCategories])
	p.upcoming = NewUpcomingController(source, renderer, p.regions[models.RegionUpcoming], now)
	p.search = NewSearchController(source, renderer, p.coord, p.regions[models.RegionTopHeader], p.regions[models.RegionTopGrid])
	p.detail = NewDetailController(source, renderer, p.coord, p.regions[models.RegionModal])
	p.search.RestoreHeader(context.Background())

	registrations := []struct {
		kind EventKind
		h    HandlerFunc
	}{
		{EventPageLoad, p.onPageLoad},
		{EventCategorySelect, p.onCategorySelect},
		{EventSearchSubmit, p.onSearchSubmit},
		{EventClearSearch, p.onClearSearch},
		{EventLogoClick, p.onLogoClick},
		{EventCardOpen, p.onCardOpen},
		{EventModalClose, p.onModalClose},
		{EventRetry, p.onRetry},
	}
	for _, reg := range registrations {
		if err := p.On(reg.kind, reg.h); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// On registers the handler for kind. Each kind takes exactly one handler.
func (p *Page) On(kind EventKind, h HandlerFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.handlers[kind]; exists {
		return fmt.Errorf("%w: %s", ErrHandlerRegistered, kind)
	}
	p.handlers[kind] = h
	return nil
}

// Dispatch routes ev to its handler. Fetch failures are rendered into the
// affected region and also returned for logging.
func (p *Page) Dispatch(ctx context.Context, ev Event) error {
	p.mu.RLock()
	h, ok := p.handlers[ev.Kind]
	p.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Kind)
	}
	return h(ctx, ev)
}

// Coordinator returns the page's view-state coordinator
func (p *Page) Coordinator() *viewstate.Coordinator {
	return p.coord
}

// Region returns the region with id
func (p *Page) Region(id models.RegionID) (*Region, bool) {
	r, ok := p.regions[id]
	return r, ok
}

// Fragment returns the current content of a visible region
func (p *Page) Fragment(id models.RegionID) (template.HTML, bool) {
	r, ok := p.regions[id]
	if !ok || !p.coord.Visible(id) {
		return "", false
	}
	_, frag := r.Snapshot()
	return frag, true
}

// View assembles the full page from the visible regions
func (p *Page) View() (render.PageView, error) {
	state := p.coord.State()
	v := render.PageView{
		SearchText: p.coord.SearchText(),
		ShowBrowse: state.Mode == models.ModeBrowse,
		ShowModal:  state.ModalOpen,
	}
	if state.ModalOpen {
		v.BodyClass = "modal-open"
	}
	v.TopHeader, _ = p.Fragment(models.RegionTopHeader)
	v.TopGrid, _ = p.Fragment(models.RegionTopGrid)
	v.Hero, _ = p.Fragment(models.RegionHero)
	v.Categories, _ = p.Fragment(models.RegionCategories)
	v.Upcoming, _ = p.Fragment(models.RegionUpcoming)
	v.Modal, _ = p.Fragment(models.RegionModal)

	if v.ShowBrowse {
		bar, err := p.renderer.CategoryBar(p.categories, p.coord.Category())
		if err != nil {
			return v, err
		}
		v.CategoryBar = bar
	}
	return v, nil
}

// Render renders the full page document
func (p *Page) Render() (template.HTML, error) {
	v, err := p.View()
	if err != nil {
		return "", err
	}
	return p.renderer.Page(v)
}

// onPageLoad resets the page to browse with all categories active and loads
// the trending, category and upcoming regions concurrently
func (p *Page) onPageLoad(ctx context.Context, _ Event) error {
	p.coord.ExitSearch()
	p.detail.Close()
	p.coord.SelectCategory(viewstate.AllCategories)
	p.search.RestoreHeader(ctx)

	var g errgroup.Group
	g.Go(func() error { return p.trending.Load(ctx) })
	g.Go(func() error { return p.category.Load(ctx) })
	g.Go(func() error { return p.upcoming.Load(ctx) })
	return g.Wait()
}

func (p *Page) onCategorySelect(ctx context.Context, ev Event) error {
	if !p.knownCategory(ev.GenreID) {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, ev.GenreID)
	}
	return p.category.Select(ctx, ev.GenreID)
}

func (p *Page) onSearchSubmit(ctx context.Context, ev Event) error {
	return p.search.Submit(ctx, ev.Query)
}

// onClearSearch returns to browse and always refetches trending
func (p *Page) onClearSearch(ctx context.Context, _ Event) error {
	p.coord.ExitSearch()
	p.search.RestoreHeader(ctx)
	return p.trending.Load(ctx)
}

// onLogoClick clears the search only while search results are shown
func (p *Page) onLogoClick(ctx context.Context, ev Event) error {
	if p.coord.Mode() != models.ModeSearchResults {
		return nil
	}
	return p.onClearSearch(ctx, ev)
}

func (p *Page) onCardOpen(ctx context.Context, ev Event) error {
	return p.detail.Open(ctx, ev.TitleID)
}

func (p *Page) onModalClose(_ context.Context, _ Event) error {
	p.detail.Close()
	return nil
}

func (p *Page) onRetry(ctx context.Context, ev Event) error {
	switch ev.Target {
	case RetryTrending:
		return p.trending.Load(ctx)
	case RetryCategories:
		return p.category.Load(ctx)
	case RetryUpcoming:
		return p.upcoming.Load(ctx)
	case RetrySearch:
		return p.search.Retry(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownRetryTarget, ev.Target)
	}
}

func (p *Page) knownCategory(genreID int) bool {
	for _, c := range p.categories {
		if c.GenreID == genreID {
			return true
		}
	}
	return false
}
