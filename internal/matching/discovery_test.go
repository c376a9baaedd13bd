package matching_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/matching"
	"github.com/oggyb/muzz-match/internal/testutil"
)

func ids(profiles []db.Profile) []uint64 {
	out := make([]uint64, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.UserID)
	}
	return out
}

func TestDiscover_ExcludesSwipedAndIncompatible(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	got, err := f.discovery.Discover(ctx, 1, 0)
	require.NoError(t, err)
	// 4 is a man looking for women: not compatible with 1 (M→F)
	assert.ElementsMatch(t, []uint64{2, 3}, ids(got))

	_, err = f.ledger.RecordSwipe(ctx, 1, 2, db.DecisionPass)
	require.NoError(t, err)

	got, err = f.discovery.Discover(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3}, ids(got))

	got, err = f.discovery.Discover(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDiscover_AgeAndDistance(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	now := time.Now().UTC()
	born := func(years int) *time.Time { b := now.AddDate(-years, 0, -1); return &b }
	coords := func(lat, lng float64) (*float64, *float64) { return &lat, &lng }

	londonLat, londonLng := coords(51.5072, -0.1276)
	parisLat, parisLng := coords(48.8566, 2.3522)

	require.NoError(t, f.db.Model(&db.Profile{}).Where("user_id = ?", 1).Updates(map[string]any{
		"birth_date": born(30), "latitude": londonLat, "longitude": londonLng,
		"max_distance_km": 100, "min_age_preference": 25, "max_age_preference": 35,
	}).Error)
	// 2: right age, but in Paris (~340km)
	require.NoError(t, f.db.Model(&db.Profile{}).Where("user_id = ?", 2).Updates(map[string]any{
		"birth_date": born(28), "latitude": parisLat, "longitude": parisLng,
	}).Error)
	// 3: in London, but too young for 1
	require.NoError(t, f.db.Model(&db.Profile{}).Where("user_id = ?", 3).Updates(map[string]any{
		"birth_date": born(21), "latitude": londonLat, "longitude": londonLng,
	}).Error)

	got, err := f.discovery.Discover(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	// widen the radius: Paris is back in
	require.NoError(t, f.db.Model(&db.Profile{}).Where("user_id = ?", 1).Update("max_distance_km", 500).Error)
	got, err = f.discovery.Discover(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids(got))
}

func TestDiscover_ReadsPastFilteredCandidates(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	now := time.Now().UTC()
	born := func(years int) time.Time { return now.AddDate(-years, 0, -1) }

	// 20 compatible women, all too old for 1 and all updated most recently
	var crowd []testutil.Person
	for id := uint64(100); id < 120; id++ {
		crowd = append(crowd, testutil.Person{ID: id, Gender: "F", LookingFor: "M"})
	}
	testutil.SeedProfiles(t, f.db, crowd...)
	require.NoError(t, f.db.Model(&db.Profile{}).Where("user_id >= ?", 100).UpdateColumns(map[string]any{
		"birth_date": born(60), "updated_at": now,
	}).Error)

	require.NoError(t, f.db.Model(&db.Profile{}).Where("user_id = ?", 1).UpdateColumns(map[string]any{
		"birth_date": born(30), "min_age_preference": 25, "max_age_preference": 35,
	}).Error)
	require.NoError(t, f.db.Model(&db.Profile{}).Where("user_id IN ?", []uint64{2, 3}).UpdateColumns(map[string]any{
		"birth_date": born(28), "updated_at": now.Add(-time.Hour),
	}).Error)

	got, err := f.discovery.Discover(ctx, 1, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3}, ids(got))

	// a bigger page than the pool ends cleanly
	got, err = f.discovery.Discover(ctx, 1, 50)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3}, ids(got))
}

func TestAgeCompatible_BothDirections(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	b30 := time.Date(1994, 1, 1, 0, 0, 0, 0, time.UTC)
	b45 := time.Date(1979, 1, 1, 0, 0, 0, 0, time.UTC)

	viewer := db.Profile{BirthDate: &b45, MinAgePreference: 18, MaxAgePreference: 50}
	candidate := db.Profile{BirthDate: &b30, MinAgePreference: 25, MaxAgePreference: 40}

	// viewer accepts 30, but candidate does not accept 45
	assert.False(t, matching.AgeCompatible(viewer, candidate, now))

	// unknown viewer age skips the reverse check
	viewer.BirthDate = nil
	assert.True(t, matching.AgeCompatible(viewer, candidate, now))
}

func TestDistanceKm(t *testing.T) {
	d := matching.DistanceKm(51.5072, -0.1276, 48.8566, 2.3522)
	assert.InDelta(t, 343, d, 5)
	assert.InDelta(t, 0, matching.DistanceKm(10, 10, 10, 10), 1e-9)
}
