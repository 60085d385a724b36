package fetcher

import (
	"fmt"
	"regexp"
)

// Upstream resource paths used by the controllers
const (
	ResourceTrending = "/trending/movie/day"
	ResourcePopular  = "/movie/popular"
	ResourceDiscover = "/discover/movie"
	ResourceSearch   = "/search/movie"
)

var knownResources = []*regexp.Regexp{
	regexp.MustCompile(`^/trending/movie/day$`),
	regexp.MustCompile(`^/movie/popular$`),
	regexp.MustCompile(`^/discover/movie$`),
	regexp.MustCompile(`^/search/movie$`),
	regexp.MustCompile(`^/movie/[0-9]+$`),
	regexp.MustCompile(`^/movie/[0-9]+/videos$`),
	regexp.MustCompile(`^/movie/[0-9]+/watch/providers$`),
	regexp.MustCompile(`^/movie/[0-9]+/credits$`),
}

// Known reports whether path is a resource the gateway may be asked for
func Known(path string) bool {
	for _, re := range knownResources {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// DetailsResource returns the core details path for a title
func DetailsResource(id int) string { return fmt.Sprintf("/movie/%d", id) }

// VideosResource returns the videos path for a title
func VideosResource(id int) string { return fmt.Sprintf("/movie/%d/videos", id) }

// WatchProvidersResource returns the watch providers path for a title
func WatchProvidersResource(id int) string { return fmt.Sprintf("/movie/%d/watch/providers", id) }

// CreditsResource returns the credits path for a title
func CreditsResource(id int) string { return fmt.Sprintf("/movie/%d/credits", id) }
