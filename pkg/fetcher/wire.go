package fetcher

import (
	"strings"

	"movie-discovery/pkg/models"
)

// Upstream response shapes. Every field that the upstream may omit or null is
// a pointer, and the normalize functions decide the default once so that the
// controllers never see an absent field.

type listResponse struct {
	Page    int           `json:"page"`
	Results []titleRecord `json:"results"`
}

type titleRecord struct {
	ID           int      `json:"id"`
	Title        *string  `json:"title"`
	Name         *string  `json:"name"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	Overview     *string  `json:"overview"`
	ReleaseDate  *string  `json:"release_date"`
	VoteAverage  *float64 `json:"vote_average"`
	Popularity   *float64 `json:"popularity"`
}

type detailsResponse struct {
	ID          int      `json:"id"`
	Title       *string  `json:"title"`
	Overview    *string  `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	VoteAverage *float64 `json:"vote_average"`
	Genres      []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type videosResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

type watchProvidersResponse struct {
	Results map[string]struct {
		Flatrate []struct {
			ProviderName string `json:"provider_name"`
		} `json:"flatrate"`
	} `json:"results"`
}

type creditsResponse struct {
	Cast []struct {
		Name        string  `json:"name"`
		Character   string  `json:"character"`
		ProfilePath *string `json:"profile_path"`
	} `json:"cast"`
}

// TitleCore is the normalized core details of a title
type TitleCore struct {
	ID          int
	Title       string
	Overview    string
	PosterPath  *string
	VoteAverage float64
	Genres      []string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	return models.StringPtr(strings.TrimSpace(*s))
}

func normalizeTitle(r titleRecord) models.TitleSummary {
	title := deref(r.Title)
	if title == "" {
		title = deref(r.Name)
	}

	out := models.TitleSummary{
		ID:           r.ID,
		Title:        title,
		PosterPath:   optional(r.PosterPath),
		BackdropPath: optional(r.BackdropPath),
		Overview:     deref(r.Overview),
		ReleaseDate:  optional(r.ReleaseDate),
	}
	// Unrated titles are reported as 0.
	if r.VoteAverage != nil && *r.VoteAverage != 0 {
		v := *r.VoteAverage
		out.VoteAverage = &v
	}
	if r.Popularity != nil {
		out.Popularity = *r.Popularity
	}
	return out
}

func normalizeList(resp listResponse) []models.TitleSummary {
	out := make([]models.TitleSummary, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, normalizeTitle(r))
	}
	return out
}

func normalizeDetails(resp detailsResponse) TitleCore {
	core := TitleCore{
		ID:         resp.ID,
		Title:      deref(resp.Title),
		Overview:   deref(resp.Overview),
		PosterPath: optional(resp.PosterPath),
		Genres:     make([]string, 0, len(resp.Genres)),
	}
	if resp.VoteAverage != nil {
		core.VoteAverage = *resp.VoteAverage
	}
	for _, g := range resp.Genres {
		core.Genres = append(core.Genres, g.Name)
	}
	return core
}

func normalizeVideos(resp videosResponse) []models.Video {
	out := make([]models.Video, 0, len(resp.Results))
	for _, v := range resp.Results {
		out = append(out, models.Video{Key: v.Key, Site: v.Site, Type: v.Type})
	}
	return out
}

func normalizeWatchProviders(resp watchProvidersResponse) map[string][]string {
	out := make(map[string][]string, len(resp.Results))
	for region, r := range resp.Results {
		names := make([]string, 0, len(r.Flatrate))
		for _, p := range r.Flatrate {
			names = append(names, p.ProviderName)
		}
		out[region] = names
	}
	return out
}

func normalizeCredits(resp creditsResponse) []models.CastMember {
	out := make([]models.CastMember, 0, len(resp.Cast))
	for _, c := range resp.Cast {
		out = append(out, models.CastMember{
			Name:      c.Name,
			Character: c.Character,
			ImagePath: optional(c.ProfilePath),
		})
	}
	return out
}
