package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-match/internal/auth"
	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/identity"
	"github.com/oggyb/muzz-match/internal/repository"
	"github.com/oggyb/muzz-match/internal/testutil"
)

func TestDirectory_Summaries(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	testutil.SeedProfiles(t, gdb, testutil.Person{ID: 1, Gender: "M", LookingFor: "F"})
	dir := identity.NewDirectory(repository.NewProfileRepository(gdb))

	got, err := dir.Summaries(ctx, []uint64{1, 99})
	require.NoError(t, err)
	assert.Equal(t, "user1", got[1].DisplayName)
	assert.Equal(t, identity.Summary{UserID: 99}, got[99])

	_, err = dir.Profile(ctx, 99)
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestSummarize_Age(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	p := db.Profile{UserID: 1, BirthDate: &birth}
	assert.Equal(t, 33, identity.Summarize(p, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)).Age)
	assert.Equal(t, 34, identity.Summarize(p, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)).Age)
	assert.Equal(t, 0, identity.Summarize(db.Profile{UserID: 2}, time.Now()).Age)
}

func TestDirectory_CurrentUser(t *testing.T) {
	dir := identity.NewDirectory(nil)
	_, err := dir.CurrentUser(context.Background())
	assert.ErrorIs(t, err, svcErr.ErrUnauthenticated)

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: 5})
	id, err := dir.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
}
