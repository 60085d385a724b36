package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-discovery/pkg/config"
)

func newUpstreamService(t *testing.T, body string) (*Service, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewService(&config.Config{APIKey: "key", UpstreamBaseURL: srv.URL}), &hits
}

func TestService_SearchSortsByPopularity(t *testing.T) {
	s, _ := newUpstreamService(t, `{"results":[
		{"id":1,"title":"A","popularity":1},
		{"id":2,"title":"B","popularity":30},
		{"id":3,"title":"C","popularity":7}
	]}`)

	got, err := s.SearchTitlesInternal(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestService_TrendingIsCached(t *testing.T) {
	s, hits := newUpstreamService(t, `{"results":[{"id":1,"title":"A"}]}`)

	first, err := s.GetTrendingInternal(context.Background())
	require.NoError(t, err)
	second, err := s.GetTrendingInternal(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}
