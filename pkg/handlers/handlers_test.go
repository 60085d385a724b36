package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/controllers"
	"movie-discovery/pkg/fetcher"
	"movie-discovery/pkg/models"
	"movie-discovery/pkg/render"
	"movie-discovery/pkg/sessions"
)

type stubSource struct {
	mu       sync.Mutex
	trending int
	queries  []string
}

func list(prefix string, n int) []models.TitleSummary {
	out := make([]models.TitleSummary, n)
	for i := range out {
		out[i] = models.TitleSummary{ID: i + 1, Title: fmt.Sprintf("%s %d", prefix, i+1), Popularity: float64(i)}
	}
	return out
}

// Like a real HTTP client, the list calls fail once their context is done.
func (s *stubSource) Trending(ctx context.Context) ([]models.TitleSummary, error) {
	s.mu.Lock()
	s.trending++
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return list("Trending", 6), nil
}

func (s *stubSource) Popular(ctx context.Context) ([]models.TitleSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return list("Popular", 10), nil
}

func (s *stubSource) DiscoverByGenre(_ context.Context, genreID int) ([]models.TitleSummary, error) {
	return list(fmt.Sprintf("Genre %d", genreID), 10), nil
}

func (s *stubSource) DiscoverUpcoming(context.Context, time.Time) ([]models.TitleSummary, error) {
	return list("Upcoming", 5), nil
}

func (s *stubSource) Search(_ context.Context, query string) ([]models.TitleSummary, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	if query == "nothing" {
		return nil, nil
	}
	return list("Result", 3), nil
}

func (s *stubSource) Details(ctx context.Context, id int) (fetcher.TitleCore, error) {
	if err := ctx.Err(); err != nil {
		return fetcher.TitleCore{}, err
	}
	if id == 404 {
		return fetcher.TitleCore{}, &fetcher.UpstreamError{Endpoint: fetcher.DetailsResource(id), Status: http.StatusNotFound}
	}
	return fetcher.TitleCore{ID: id, Title: "Detail", VoteAverage: 6}, nil
}

func (s *stubSource) Videos(context.Context, int) ([]models.Video, error) {
	return nil, nil
}

func (s *stubSource) WatchProviders(context.Context, int) (map[string][]string, error) {
	return nil, nil
}

func (s *stubSource) Credits(context.Context, int) ([]models.CastMember, error) {
	return nil, nil
}

type browser struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newBrowser(t *testing.T, src *stubSource) *browser {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := render.New("https://image.example.org/t/p")
	require.NoError(t, err)
	store, err := sessions.NewStore(time.Minute, func() (*controllers.Page, error) {
		return controllers.NewPage(src, r, config.DefaultCategories, nil)
	})
	require.NoError(t, err)

	router := gin.New()
	New(store).Register(router)
	return &browser{t: t, router: router}
}

func (b *browser) get(target string) (*httptest.ResponseRecorder, *goquery.Document) {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == sessions.CookieName {
			b.cookie = c
		}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(b.t, err)
	return w, doc
}

func TestIndex_IssuesSessionAndRendersBrowse(t *testing.T) {
	b := newBrowser(t, &stubSource{})

	w, doc := b.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)

	assert.Equal(t, 1, doc.Find("#hero .hero").Length())
	assert.Equal(t, 5, doc.Find("#top-grid .card").Length())
	assert.Equal(t, 10, doc.Find("#category-grid .card").Length())
	assert.Equal(t, 5, doc.Find("#upcoming .card").Length())
	assert.Equal(t, "All", doc.Find(".category-btn.active").Text())
}

func TestSearchFlow(t *testing.T) {
	src := &stubSource{}
	b := newBrowser(t, src)
	b.get("/")

	w, doc := b.get("/search?q=dune")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `Search Results for "dune"`, doc.Find("#top-header .section-title").Text())
	assert.Equal(t, 0, doc.Find("#hero").Length())
	assert.Equal(t, 0, doc.Find("#categories").Length())
	assert.Equal(t, 0, doc.Find("#upcoming").Length())
	value, _ := doc.Find("#search-input").Attr("value")
	assert.Equal(t, "dune", value)

	_, doc = b.get("/search/clear")
	assert.Equal(t, 1, doc.Find("#hero").Length())
	assert.Equal(t, 2, src.trending)
	value, _ = doc.Find("#search-input").Attr("value")
	assert.Empty(t, value)
}

func TestSearch_NoResults(t *testing.T) {
	b := newBrowser(t, &stubSource{})
	_, doc := b.get("/search?q=nothing")

	assert.Contains(t, doc.Find(".no-results-message").Text(), "nothing")
	assert.Equal(t, 0, doc.Find("#hero").Length())
}

func TestNewSessionOnDeepLinkLoadsBrowseFirst(t *testing.T) {
	src := &stubSource{}
	b := newBrowser(t, src)

	w, doc := b.get("/categories/35")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, src.trending)
	assert.Equal(t, "Comedy", doc.Find(".category-btn.active").Text())
	assert.Equal(t, "Genre 35 1", doc.Find("#category-grid .card-title").First().Text())
}

func TestCategory_Errors(t *testing.T) {
	b := newBrowser(t, &stubSource{})
	b.get("/")

	w, _ := b.get("/categories/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = b.get("/categories/424242")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTitleModal(t *testing.T) {
	b := newBrowser(t, &stubSource{})
	b.get("/")

	_, doc := b.get("/titles/12")
	assert.True(t, doc.Find("body").HasClass("modal-open"))
	assert.Equal(t, "Detail", doc.Find("#modal .modal-title").Text())

	_, doc = b.get("/modal/close")
	assert.Equal(t, 0, doc.Find("#modal").Length())
	assert.False(t, doc.Find("body").HasClass("modal-open"))

	_, doc = b.get("/titles/404")
	assert.Equal(t, 1, doc.Find("#modal .error-panel").Length())
	assert.Equal(t, 1, doc.Find("#modal a.btn-close").Length())
}

func TestRetryAndFragments(t *testing.T) {
	src := &stubSource{}
	b := newBrowser(t, src)
	b.get("/")

	w, _ := b.get("/retry/trending")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, src.trending)

	w, _ = b.get("/retry/bogus")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, doc := b.get("/fragments/top-grid")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, doc.Find(".card").Length())

	w, _ = b.get("/fragments/modal")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFragments_NoSession(t *testing.T) {
	b := newBrowser(t, &stubSource{})
	w, _ := b.get("/fragments/top-grid")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	b := newBrowser(t, &stubSource{})
	w, _ := b.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestAbandonedRequestStillFillsRegions(t *testing.T) {
	src := &stubSource{}
	b := newBrowser(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/titles/12", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#hero .hero").Length())
	assert.Equal(t, 0, doc.Find(".error-panel").Length())
	assert.Equal(t, 10, doc.Find("#category-grid .card").Length())
	assert.Equal(t, "Detail", doc.Find("#modal .modal-title").Text())
}
