// Package sessions keeps one page per browser, keyed by a random cookie id
// and expired after a period of inactivity.
package sessions

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"movie-discovery/pkg/controllers"
)

// CookieName is the session cookie
const CookieName = "md_session"

// NewPageFunc builds the page for a fresh session
type NewPageFunc func() (*controllers.Page, error)

// ErrInvalidTTL is returned for a non-positive session lifetime
var ErrInvalidTTL = errors.New("session ttl must be positive")

// Store maps session ids to pages
type Store struct {
	pages   *cache.Cache
	ttl     time.Duration
	newPage NewPageFunc
	mu      sync.Mutex
}

// NewStore creates a store whose sessions expire after ttl without use
func NewStore(ttl time.Duration, newPage NewPageFunc) (*Store, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &Store{
		pages:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
		newPage: newPage,
	}, nil
}

// Get returns the page for id and extends its lifetime
func (s *Store) Get(id string) (*controllers.Page, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	v, found := s.pages.Get(id)
	if !found {
		return nil, false
	}
	page := v.(*controllers.Page)
	s.pages.Set(id, page, s.ttl)
	return page, true
}

// GetOrCreate returns the page for id, creating a session with a new id when
// id is unknown or expired. created reports whether a new id was issued.
func (s *Store) GetOrCreate(id string) (page *controllers.Page, sessionID string, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page, ok := s.Get(id); ok {
		return page, id, false, nil
	}

	page, err = s.newPage()
	if err != nil {
		return nil, "", false, err
	}
	sessionID = uuid.NewString()
	s.pages.Set(sessionID, page, s.ttl)
	return page, sessionID, true, nil
}

// Delete ends a session
func (s *Store) Delete(id string) {
	s.pages.Delete(id)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	return s.pages.ItemCount()
}

// TTL returns the session lifetime
func (s *Store) TTL() time.Duration {
	return s.ttl
}
