package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"movie-discovery/pkg/models"
)

func TestRegion_LastIssuedWins(t *testing.T) {
	r := NewRegion(models.RegionTopGrid)

	first := r.Begin("loading 1")
	second := r.Begin("loading 2")

	assert.True(t, r.Commit(second, PhaseSuccess, "second"))
	assert.False(t, r.Commit(first, PhaseSuccess, "first"))

	phase, frag := r.Snapshot()
	assert.Equal(t, PhaseSuccess, phase)
	assert.EqualValues(t, "second", frag)
}

func TestRegion_BeginShowsPlaceholder(t *testing.T) {
	r := NewRegion(models.RegionHero)
	r.Begin("skeleton")

	phase, frag := r.Snapshot()
	assert.Equal(t, PhaseLoading, phase)
	assert.EqualValues(t, "skeleton", frag)
}

func TestRegion_ResetInvalidatesInFlight(t *testing.T) {
	r := NewRegion(models.RegionModal)
	tok := r.Begin("loading")
	r.Reset()

	assert.False(t, r.Commit(tok, PhaseSuccess, "late"))
	phase, frag := r.Snapshot()
	assert.Equal(t, PhaseIdle, phase)
	assert.Empty(t, frag)
	assert.NotEqual(t, tok, r.Current())
}

func TestRegion_SetInvalidatesInFlight(t *testing.T) {
	r := NewRegion(models.RegionTopHeader)
	tok := r.Begin("loading")
	r.Set(PhaseSuccess, "header")

	assert.False(t, r.Commit(tok, PhaseFailed, "late"))
	_, frag := r.Snapshot()
	assert.EqualValues(t, "header", frag)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "success", PhaseSuccess.String())
	assert.Equal(t, "failed", PhaseFailed.String())
}

func TestTomorrow_LocalCalendar(t *testing.T) {
	got := Tomorrow(fixedNow)
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, fixedNow.Location(), got.Location())
}
