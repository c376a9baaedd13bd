package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/repository"
	"github.com/oggyb/muzz-match/internal/testutil"
)

func swipe(t *testing.T, repo *repository.SwipeRepository, from, to uint64, d db.Decision) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &db.Swipe{FromUserID: from, ToUserID: to, Decision: d}))
}

func TestSwipeCreate_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSwipeRepository(testutil.NewDB(t))

	s := db.Swipe{FromUserID: 1, ToUserID: 2, Decision: db.DecisionLike}
	require.NoError(t, repo.Create(ctx, &s))
	assert.Len(t, s.ID, 36)

	// a second decision on the same ordered pair is rejected, whatever it is
	err := repo.Create(ctx, &db.Swipe{FromUserID: 1, ToUserID: 2, Decision: db.DecisionPass})
	assert.ErrorIs(t, err, svcErr.ErrDuplicateSwipe)

	stored, err := repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, db.DecisionLike, stored.Decision)

	// the reverse direction is a different pair
	swipe(t, repo, 2, 1, db.DecisionPass)
}

func TestFindReciprocal(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSwipeRepository(testutil.NewDB(t))

	got, err := repo.FindReciprocal(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	swipe(t, repo, 2, 1, db.DecisionSuperLike)
	got, err = repo.FindReciprocal(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(2), got.FromUserID)

	// a pass never counts as reciprocal
	swipe(t, repo, 3, 1, db.DecisionPass)
	got, err = repo.FindReciprocal(ctx, 1, 3)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSwipedTargets(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSwipeRepository(testutil.NewDB(t))

	swipe(t, repo, 1, 2, db.DecisionLike)
	swipe(t, repo, 1, 3, db.DecisionPass)
	swipe(t, repo, 4, 1, db.DecisionLike)

	ids, err := repo.SwipedTargets(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3}, ids)
}

func TestGetLikersAndPagination(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	repo := repository.NewSwipeRepository(gdb)

	// actors 1,2,3,4 liked recipient 99
	for _, actor := range []uint64{1, 2, 3, 4} {
		swipe(t, repo, actor, 99, db.DecisionLike)
	}
	// recipient passed actor 2 → exclude
	swipe(t, repo, 99, 2, db.DecisionPass)

	total, err := repo.CountLikers(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	var seen []uint64
	var token *string
	for page := 0; page < 5; page++ {
		swipes, next, err := repo.GetLikers(ctx, 99, token, 2)
		require.NoError(t, err)
		for _, s := range swipes {
			seen = append(seen, s.FromUserID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.ElementsMatch(t, []uint64{1, 3, 4}, seen)
}

func TestGetNewLikers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSwipeRepository(testutil.NewDB(t))

	// actor 1 liked 99, and 99 liked back → mutual
	swipe(t, repo, 1, 99, db.DecisionLike)
	swipe(t, repo, 99, 1, db.DecisionLike)

	// actor 2 liked 99, but not mutual
	swipe(t, repo, 2, 99, db.DecisionLike)

	swipes, next, err := repo.GetNewLikers(ctx, 99, nil, 10)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, swipes, 1)
	assert.Equal(t, uint64(2), swipes[0].FromUserID)
}

func TestGetLikers_BadToken(t *testing.T) {
	repo := repository.NewSwipeRepository(testutil.NewDB(t))
	bad := "not-a-token"
	_, _, err := repo.GetLikers(context.Background(), 1, &bad, 10)
	assert.ErrorIs(t, err, svcErr.ErrInvalidArgument)
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}
