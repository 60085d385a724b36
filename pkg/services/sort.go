package services

import (
	"sort"

	"movie-discovery/pkg/models"
)

// SortByPopularity returns a copy of titles ordered by descending popularity.
// Equal popularity keeps the input order.
func SortByPopularity(titles []models.TitleSummary) []models.TitleSummary {
	out := make([]models.TitleSummary, len(titles))
	copy(out, titles)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Popularity > out[j].Popularity
	})
	return out
}

// Take returns at most n leading titles
func Take(titles []models.TitleSummary, n int) []models.TitleSummary {
	if n < 0 {
		n = 0
	}
	if len(titles) < n {
		n = len(titles)
	}
	return titles[:n]
}
