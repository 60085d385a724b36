package models

// TitleSummary represents one record of a list-type upstream call
// (trending, popular, discover, search)
type TitleSummary struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	PosterPath   *string  `json:"posterPath,omitempty"`
	BackdropPath *string  `json:"backdropPath,omitempty"`
	Overview     string   `json:"overview"`
	ReleaseDate  *string  `json:"releaseDate,omitempty"`
	VoteAverage  *float64 `json:"voteAverage,omitempty"`
	Popularity   float64  `json:"popularity"`
}

// CastMember is one entry of a title's top cast
type CastMember struct {
	Name      string  `json:"name"`
	Character string  `json:"character"`
	ImagePath *string `json:"imagePath,omitempty"`
}

// TitleDetail is the aggregate of the details, videos, watch providers and
// credits responses for a single title id
type TitleDetail struct {
	ID             int          `json:"id"`
	Title          string       `json:"title"`
	Overview       string       `json:"overview"`
	PosterPath     *string      `json:"posterPath,omitempty"`
	VoteAverage    float64      `json:"voteAverage"`
	Genres         []string     `json:"genres"`
	TrailerURL     *string      `json:"trailerUrl,omitempty"`
	WatchProviders []string     `json:"watchProviders"`
	TopCast        []CastMember `json:"topCast"`
}

// Video is one entry of a title's videos list
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Mode is the mutually exclusive view mode of a page
type Mode int

const (
	// ModeBrowse shows hero, top grid, category grid and upcoming grid
	ModeBrowse Mode = iota
	// ModeSearchResults hides the browse-only regions
	ModeSearchResults
)

func (m Mode) String() string {
	switch m {
	case ModeSearchResults:
		return "search-results"
	default:
		return "browse"
	}
}

// ViewState is a snapshot of the page mode and the modal overlay flag
type ViewState struct {
	Mode      Mode `json:"mode"`
	ModalOpen bool `json:"modalOpen"`
}

// RegionID names one independently rendered area of the page
type RegionID string

// Page regions
const (
	RegionHero       RegionID = "hero"
	RegionTopHeader  RegionID = "top-header"
	RegionTopGrid    RegionID = "top-grid"
	RegionCategories RegionID = "categories"
	RegionUpcoming   RegionID = "upcoming"
	RegionModal      RegionID = "modal"
)

// Regions lists every page region in document order
var Regions = []RegionID{
	RegionHero, RegionTopHeader, RegionTopGrid, RegionCategories, RegionUpcoming, RegionModal,
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
