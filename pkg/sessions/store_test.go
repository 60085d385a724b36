package sessions

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/controllers"
	"movie-discovery/pkg/fetcher"
	"movie-discovery/pkg/render"
)

func newPageFunc(t *testing.T) NewPageFunc {
	t.Helper()
	r, err := render.New("https://image.example.org/t/p")
	require.NoError(t, err)
	client := fetcher.New("http://127.0.0.1:1/api/tmdb", nil)
	return func() (*controllers.Page, error) {
		return controllers.NewPage(client, r, config.DefaultCategories, nil)
	}
}

func TestNewStore_RejectsNonPositiveTTL(t *testing.T) {
	_, err := NewStore(0, newPageFunc(t))
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestGetOrCreate(t *testing.T) {
	s, err := NewStore(time.Minute, newPageFunc(t))
	require.NoError(t, err)

	page, id, created, err := s.GetOrCreate("")
	require.NoError(t, err)
	assert.True(t, created)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	again, sameID, created, err := s.GetOrCreate(id)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, sameID)
	assert.Same(t, page, again)
	assert.Equal(t, 1, s.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	s, err := NewStore(time.Minute, newPageFunc(t))
	require.NoError(t, err)

	a, _, _, err := s.GetOrCreate("")
	require.NoError(t, err)
	b, _, _, err := s.GetOrCreate("")
	require.NoError(t, err)

	a.Coordinator().EnterSearch("dune")
	assert.NotSame(t, a, b)
	assert.Empty(t, b.Coordinator().Query())
}

func TestGet_UnknownOrMalformed(t *testing.T) {
	s, err := NewStore(time.Minute, newPageFunc(t))
	require.NoError(t, err)

	_, ok := s.Get("not-a-uuid")
	assert.False(t, ok)
	_, ok = s.Get(uuid.NewString())
	assert.False(t, ok)
}

func TestExpiredSessionIsReplaced(t *testing.T) {
	s, err := NewStore(20*time.Millisecond, newPageFunc(t))
	require.NoError(t, err)

	_, id, _, err := s.GetOrCreate("")
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)

	_, newID, created, err := s.GetOrCreate(id)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, id, newID)
}

func TestDelete(t *testing.T) {
	s, err := NewStore(time.Minute, newPageFunc(t))
	require.NoError(t, err)
	_, id, _, err := s.GetOrCreate("")
	require.NoError(t, err)

	s.Delete(id)
	_, ok := s.Get(id)
	assert.False(t, ok)
}

func TestGetOrCreate_PageError(t *testing.T) {
	boom := errors.New("boom")
	s, err := NewStore(time.Minute, func() (*controllers.Page, error) { return nil, boom })
	require.NoError(t, err)

	_, _, _, err = s.GetOrCreate("")
	assert.ErrorIs(t, err, boom)
}
