package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Category is one genre button in the category bar. A zero GenreID is the
// "all" button, which shows the popular list instead of a genre discovery.
type Category struct {
	Name    string `toml:"name"`
	GenreID int    `toml:"genre_id"`
}

// categoryFile mirrors the layout of a CATEGORIES_FILE:
//
//	[[category]]
//	name = "Action"
//	genre_id = 28
type categoryFile struct {
	Categories []Category `toml:"category"`
}

// DefaultCategories is the built-in category bar.
var DefaultCategories = []Category{
	{Name: "All"},
	{Name: "Action", GenreID: 28},
	{Name: "Comedy", GenreID: 35},
	{Name: "Drama", GenreID: 18},
	{Name: "Horror", GenreID: 27},
	{Name: "Sci-Fi", GenreID: 878},
	{Name: "Animation", GenreID: 16},
	{Name: "Thriller", GenreID: 53},
}

// LoadCategories reads the category catalogue from a TOML file. An empty path
// returns DefaultCategories. The "all" button is prepended when the file omits it.
func LoadCategories(path string) ([]Category, error) {
	if path == "" {
		out := make([]Category, len(DefaultCategories))
		copy(out, DefaultCategories)
		return out, nil
	}

	var f categoryFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to read categories file %s: %w", path, err)
	}
	return normalizeCategories(f.Categories)
}

func normalizeCategories(in []Category) ([]Category, error) {
	seen := make(map[int]bool, len(in))
	out := make([]Category, 0, len(in)+1)
	hasAll := false
	for _, c := range in {
		if c.Name == "" {
			return nil, fmt.Errorf("category with genre_id %d has no name", c.GenreID)
		}
		if c.GenreID < 0 {
			return nil, fmt.Errorf("category %q has a negative genre_id", c.Name)
		}
		if seen[c.GenreID] {
			return nil, fmt.Errorf("duplicate genre_id %d", c.GenreID)
		}
		seen[c.GenreID] = true
		if c.GenreID == 0 {
			hasAll = true
		}
		out = append(out, c)
	}
	if !hasAll {
		out = append([]Category{{Name: "All"}}, out...)
	}
	return out, nil
}
