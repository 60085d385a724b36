package controllers

import (
	"html/template"
	"sync"

	"movie-discovery/pkg/models"
)

// Phase is the lifecycle state of a region
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Token identifies one fetch issued for a region. Only the most recently
// issued token may commit.
type Token uint64

// Region is one independently rendered area of the page
type Region struct {
	id         models.RegionID
	mu         sync.Mutex
	phase      Phase
	fragment   template.HTML
	generation Token
}

// NewRegion returns an idle, empty region
func NewRegion(id models.RegionID) *Region {
	return &Region{id: id}
}

// ID returns the region id
func (r *Region) ID() models.RegionID {
	return r.id
}

// Begin enters Loading with placeholder shown and returns the token the
// matching response must commit with
func (r *Region) Begin(placeholder template.HTML) Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.phase = PhaseLoading
	r.fragment = placeholder
	return r.generation
}

// Commit applies a response if tok is still current. A stale response is
// discarded and Commit reports false.
func (r *Region) Commit(tok Token, phase Phase, fragment template.HTML) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tok != r.generation {
		return false
	}
	r.phase = phase
	r.fragment = fragment
	return true
}

// Set replaces the content immediately and invalidates in-flight fetches
func (r *Region) Set(phase Phase, fragment template.HTML) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.phase = phase
	r.fragment = fragment
}

// Reset empties the region and invalidates in-flight fetches
func (r *Region) Reset() {
	r.Set(PhaseIdle, "")
}

// Snapshot returns the current phase and fragment
func (r *Region) Snapshot() (Phase, template.HTML) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase, r.fragment
}

// Current returns the latest issued token
func (r *Region) Current() Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}
