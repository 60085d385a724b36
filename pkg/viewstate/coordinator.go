// Package viewstate holds the per-page view mode, modal flag and category
// selection. Controllers read and write it only through Coordinator methods.
package viewstate

import (
	"sync"

	"movie-discovery/pkg/models"
)

// AllCategories is the selection that means no genre filter
const AllCategories = 0

// Coordinator owns the state shared between section controllers
type Coordinator struct {
	mu       sync.RWMutex
	state    models.ViewState
	category int
	query    string
	input    string
}

// New returns a coordinator in browse mode with all categories selected
func New() *Coordinator {
	return &Coordinator{state: models.ViewState{Mode: models.ModeBrowse}}
}

// State returns a snapshot of the mode and modal flag
func (c *Coordinator) State() models.ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Mode returns the current view mode
func (c *Coordinator) Mode() models.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Mode
}

// EnterSearch switches to search results for query
func (c *Coordinator) EnterSearch(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Mode = models.ModeSearchResults
	c.query = query
	c.input = query
}

// ExitSearch returns to browse mode and clears the search input
func (c *Coordinator) ExitSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Mode = models.ModeBrowse
	c.query = ""
	c.input = ""
}

// Query returns the query of the last successful search, empty in browse mode
func (c *Coordinator) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// SetSearchText records the text currently in the search field
func (c *Coordinator) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// SearchText returns the text of the search field
func (c *Coordinator) SearchText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.input
}

// OpenModal sets the modal flag; the mode is unchanged
func (c *Coordinator) OpenModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ModalOpen = true
}

// CloseModal clears the modal flag
func (c *Coordinator) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ModalOpen = false
}

// ModalOpen reports whether the modal overlay is shown
func (c *Coordinator) ModalOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.ModalOpen
}

// SelectCategory makes genreID the single active category and returns the
// previous one
func (c *Coordinator) SelectCategory(genreID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.category
	c.category = genreID
	return prev
}

// Category returns the active genre id, AllCategories when unfiltered
func (c *Coordinator) Category() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.category
}

// Visible reports whether region is rendered in the current state
func (c *Coordinator) Visible(region models.RegionID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch region {
	case models.RegionHero, models.RegionCategories, models.RegionUpcoming:
		return c.state.Mode == models.ModeBrowse
	case models.RegionModal:
		return c.state.ModalOpen
	default:
		return true
	}
}
