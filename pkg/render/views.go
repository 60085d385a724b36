package render

import (
	"fmt"
	"html/template"
	"strings"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/models"
)

// Image sizes and fallbacks
const (
	PosterSize        = "w500"
	BackdropSize      = "original"
	ProfileSize       = "w185"
	PlaceholderPoster = "https://placehold.co/500x750?text=No+Image"
	PlaceholderAvatar = "https://via.placeholder.com/100"

	NoYear           = "N/A"
	NoProviders      = "Not streaming currently"
	NoTrailer        = "Not available"
	TrendingHeader   = "Trending Now"
	CloseURL         = "/modal/close"
	ClearSearchURL   = "/search/clear"
	AllCategoriesURL = "/categories/all"
)

// CardView is the data behind one title card
type CardView struct {
	ID        int
	Title     string
	PosterURL string
	Year      string
	Rating    string
	HasRating bool
	DetailURL string
}

// HeroView is the data behind the hero banner
type HeroView struct {
	ID          int
	Title       string
	Overview    string
	BackdropURL string
	DetailURL   string
}

// CastView is one cast entry of the detail modal
type CastView struct {
	Name      string
	Character string
	AvatarURL string
}

// DetailView is the data behind the detail modal
type DetailView struct {
	ID         int
	Title      string
	Overview   string
	PosterURL  string
	Rating     string
	Genres     string
	Providers  string
	TrailerURL string
	HasTrailer bool
	Cast       []CastView
	CloseURL   string
}

// ErrorView describes an inline error panel. Empty URLs omit the affordance.
type ErrorView struct {
	Message  string
	RetryURL string
	CloseURL string
}

// CategoryButton is one genre control
type CategoryButton struct {
	Name  string
	Genre string
	URL   string
	Class string
}

// PageView is the full page assembled from region fragments
type PageView struct {
	BodyClass   string
	SearchText  string
	ShowBrowse  bool
	ShowModal   bool
	Hero        template.HTML
	TopHeader   template.HTML
	TopGrid     template.HTML
	CategoryBar template.HTML
	Categories  template.HTML
	Upcoming    template.HTML
	Modal       template.HTML
}

// SkeletonKind names the placeholder shape of a loading region
type SkeletonKind string

// Skeleton kinds
const (
	SkeletonGrid  SkeletonKind = "grid"
	SkeletonHero  SkeletonKind = "hero"
	SkeletonModal SkeletonKind = "modal"
)

// DetailURL returns the route that opens the detail flow for a title
func DetailURL(id int) string {
	return fmt.Sprintf("/titles/%d", id)
}

// CategoryURL returns the route that selects a genre; 0 selects all
func CategoryURL(genreID int) string {
	if genreID == 0 {
		return AllCategoriesURL
	}
	return fmt.Sprintf("/categories/%d", genreID)
}

// ReleaseYear returns the leading component of a release date, or "N/A"
func ReleaseYear(date *string) string {
	if date == nil || *date == "" {
		return NoYear
	}
	year, _, _ := strings.Cut(*date, "-")
	if year == "" {
		return NoYear
	}
	return year
}

// FormatRating formats a vote average with exactly one decimal
func FormatRating(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// ImageURL joins the CDN base, a size segment and an image path. An absent
// path yields fallback.
func (r *Renderer) ImageURL(size string, imagePath *string, fallback string) string {
	if imagePath == nil || *imagePath == "" {
		return fallback
	}
	return r.imageBase + "/" + size + "/" + strings.TrimLeft(*imagePath, "/")
}

// CardData builds the view of one title card
func (r *Renderer) CardData(t models.TitleSummary) CardView {
	v := CardView{
		ID:        t.ID,
		Title:     t.Title,
		PosterURL: r.ImageURL(PosterSize, t.PosterPath, PlaceholderPoster),
		Year:      ReleaseYear(t.ReleaseDate),
		DetailURL: DetailURL(t.ID),
	}
	if t.VoteAverage != nil {
		v.HasRating = true
		v.Rating = FormatRating(*t.VoteAverage)
	}
	return v
}

// Card renders one title card
func (r *Renderer) Card(t models.TitleSummary) (template.HTML, error) {
	return r.execute(tplCard, r.CardData(t))
}

// Grid renders one card per title in input order
func (r *Renderer) Grid(titles []models.TitleSummary) (template.HTML, error) {
	cards := make([]template.HTML, 0, len(titles))
	for _, t := range titles {
		card, err := r.Card(t)
		if err != nil {
			return "", err
		}
		cards = append(cards, card)
	}
	return r.execute(tplGrid, struct{ Cards []template.HTML }{Cards: cards})
}

// HeroData builds the view of the hero banner
func (r *Renderer) HeroData(t models.TitleSummary) HeroView {
	return HeroView{
		ID:          t.ID,
		Title:       t.Title,
		Overview:    t.Overview,
		BackdropURL: r.ImageURL(BackdropSize, t.BackdropPath, PlaceholderPoster),
		DetailURL:   DetailURL(t.ID),
	}
}

// Hero renders the hero banner; both actions open the detail flow
func (r *Renderer) Hero(t models.TitleSummary) (template.HTML, error) {
	return r.execute(tplHero, r.HeroData(t))
}

// DetailData builds the view of the detail modal
func (r *Renderer) DetailData(d models.TitleDetail) DetailView {
	v := DetailView{
		ID:        d.ID,
		Title:     d.Title,
		Overview:  d.Overview,
		PosterURL: r.ImageURL(PosterSize, d.PosterPath, PlaceholderPoster),
		Rating:    FormatRating(d.VoteAverage),
		Genres:    strings.Join(d.Genres, ", "),
		Providers: NoProviders,
		CloseURL:  CloseURL,
	}
	if len(d.WatchProviders) > 0 {
		v.Providers = strings.Join(d.WatchProviders, ", ")
	}
	if d.TrailerURL != nil {
		v.HasTrailer = true
		v.TrailerURL = *d.TrailerURL
	}
	for _, m := range d.TopCast {
		v.Cast = append(v.Cast, CastView{
			Name:      m.Name,
			Character: m.Character,
			AvatarURL: r.ImageURL(ProfileSize, m.ImagePath, PlaceholderAvatar),
		})
	}
	return v
}

// DetailModal renders the detail modal body
func (r *Renderer) DetailModal(d models.TitleDetail) (template.HTML, error) {
	return r.execute(tplModal, r.DetailData(d))
}

// Skeleton renders a loading placeholder with the given number of slots
func (r *Renderer) Skeleton(kind SkeletonKind, slots int) (template.HTML, error) {
	if slots < 1 {
		slots = 1
	}
	return r.execute(tplSkeleton, struct {
		Class string
		Slots []int
	}{
		Class: "skeleton skeleton-" + string(kind),
		Slots: make([]int, slots),
	})
}

// ErrorPanel renders an inline error with optional retry and close actions
func (r *Renderer) ErrorPanel(v ErrorView) (template.HTML, error) {
	return r.execute(tplError, struct {
		ErrorView
		HasRetry bool
		HasClose bool
	}{
		ErrorView: v,
		HasRetry:  v.RetryURL != "",
		HasClose:  v.CloseURL != "",
	})
}

// NoResults renders the empty search panel naming the query
func (r *Renderer) NoResults(query, browseURL string) (template.HTML, error) {
	return r.execute(tplNoResults, struct {
		Message   string
		BrowseURL string
	}{
		Message:   fmt.Sprintf("No results found for \"%s\"", query),
		BrowseURL: browseURL,
	})
}

// BrowseHeader renders the default section header
func (r *Renderer) BrowseHeader() (template.HTML, error) {
	return r.execute(tplHeader, struct {
		Text     string
		HasClear bool
		ClearURL string
	}{Text: TrendingHeader})
}

// SearchHeader renders the header naming the query with a clear action
func (r *Renderer) SearchHeader(query string) (template.HTML, error) {
	return r.execute(tplHeader, struct {
		Text     string
		HasClear bool
		ClearURL string
	}{
		Text:     fmt.Sprintf("Search Results for \"%s\"", query),
		HasClear: true,
		ClearURL: ClearSearchURL,
	})
}

// CategoryButtons builds the genre controls; exactly the active genre is
// marked active
func CategoryButtons(categories []config.Category, active int) []CategoryButton {
	buttons := make([]CategoryButton, 0, len(categories))
	for _, c := range categories {
		class := "category-btn"
		if c.GenreID == active {
			class += " active"
		}
		buttons = append(buttons, CategoryButton{
			Name:  c.Name,
			Genre: fmt.Sprint(c.GenreID),
			URL:   CategoryURL(c.GenreID),
			Class: class,
		})
	}
	return buttons
}

// CategoryBar renders the genre controls
func (r *Renderer) CategoryBar(categories []config.Category, active int) (template.HTML, error) {
	return r.execute(tplCategories, struct{ Buttons []CategoryButton }{
		Buttons: CategoryButtons(categories, active),
	})
}

// Page renders the full document
func (r *Renderer) Page(v PageView) (template.HTML, error) {
	return r.execute(tplPage, v)
}
