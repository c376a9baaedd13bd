package explore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/oggyb/muzz-match/internal/api/explore"
	"github.com/oggyb/muzz-match/internal/app"
	"github.com/oggyb/muzz-match/internal/auth"
	"github.com/oggyb/muzz-match/internal/cache"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/logger"
	"github.com/oggyb/muzz-match/internal/service/explore"
	"github.com/oggyb/muzz-match/internal/testutil"
)

//
// Test helpers
//

// recorder captures notifications instead of pushing them to sockets.
type recorder struct {
	mu     sync.Mutex
	closed []string
}

func (r *recorder) MessageCreated(db.Message) {}
func (r *recorder) MessageRead(db.Message)    {}
func (r *recorder) ConversationClosed(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, id)
}

type fixture struct {
	svc    *explore.Service
	appCtx *app.AppContext
	cache  *cache.RedisCache
	notes  *recorder
}

// setupService wires the Explore service on an in-memory SQLite DB and a
// miniredis.
//
// Dataset: user1 (M looking for F), user2 and user3 (F looking for M).
// No swipes; each test records the ones it needs.
func setupService(t *testing.T) fixture {
	t.Helper()

	gdb := testutil.NewDB(t)
	testutil.SeedProfiles(t, gdb,
		testutil.Person{ID: 1, Gender: "M", LookingFor: "F"},
		testutil.Person{ID: 2, Gender: "F", LookingFor: "M"},
		testutil.Person{ID: 3, Gender: "F", LookingFor: "M"},
	)
	rc, _ := testutil.NewRedis(t)

	appCtx := app.New(config.New(), gdb, rc, logger.Discard())
	notes := &recorder{}
	appCtx.Notifier = notes

	return fixture{
		svc:    explore.NewExploreService(appCtx),
		appCtx: appCtx,
		cache:  rc,
		notes:  notes,
	}
}

func as(userID uint64) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UserID: userID})
}

func (f fixture) swipe(t *testing.T, from uint64, to, decision string) *pb.SwipeResponse {
	t.Helper()
	resp, err := f.svc.Swipe(as(from), &pb.SwipeRequest{RecipientUserID: to, Decision: decision})
	require.NoError(t, err)
	return resp
}

//
// Tests
//

func TestSwipe_RequiresIdentity(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.Swipe(context.Background(), &pb.SwipeRequest{RecipientUserID: "2", Decision: "like"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestSwipe_RejectsBadInput(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.Swipe(as(1), &pb.SwipeRequest{RecipientUserID: "abc", Decision: "like"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = f.svc.Swipe(as(1), &pb.SwipeRequest{RecipientUserID: "2", Decision: "maybe"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = f.svc.Swipe(as(1), &pb.SwipeRequest{RecipientUserID: "1", Decision: "like"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = f.svc.Swipe(as(1), &pb.SwipeRequest{RecipientUserID: "99", Decision: "like"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

// TestSwipe_MutualLike ensures the second like of a pair creates the match.
func TestSwipe_MutualLike(t *testing.T) {
	f := setupService(t)

	first := f.swipe(t, 1, "2", "like")
	assert.False(t, first.Matched)
	assert.Nil(t, first.Match)
	assert.Equal(t, "1", first.Swipe.FromUserID)

	second := f.swipe(t, 2, "1", "super_like")
	require.True(t, second.Matched)
	require.NotNil(t, second.Match)
	assert.Equal(t, "1", second.Match.Other.UserID)
	assert.True(t, second.Match.IsActive)

	conv, err := f.appCtx.Registry.GetConversation(context.Background(), second.Match.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
}

func TestSwipe_Duplicate(t *testing.T) {
	f := setupService(t)
	f.swipe(t, 1, "2", "pass")

	_, err := f.svc.Swipe(as(1), &pb.SwipeRequest{RecipientUserID: "2", Decision: "like"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
	assert.Equal(t, "DUPLICATE_SWIPE", svcErr.Reason(err))
}

// TestListLikedYou checks that users the caller passed are not listed.
func TestListLikedYou(t *testing.T) {
	f := setupService(t)
	f.swipe(t, 2, "1", "like")
	f.swipe(t, 3, "1", "like")
	f.swipe(t, 1, "3", "pass")

	resp, err := f.svc.ListLikedYou(as(1), &pb.ListLikedYouRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Likers, 1)
	assert.Equal(t, "2", resp.Likers[0].ActorID)
	assert.Equal(t, "like", resp.Likers[0].Decision)
	assert.Nil(t, resp.NextPaginationToken)
}

func TestListLikedYou_Pages(t *testing.T) {
	f := setupService(t)
	f.swipe(t, 2, "1", "like")
	f.swipe(t, 3, "1", "like")

	page1, err := f.svc.ListLikedYou(as(1), &pb.ListLikedYouRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page1.Likers, 1)
	require.NotNil(t, page1.NextPaginationToken)

	page2, err := f.svc.ListLikedYou(as(1), &pb.ListLikedYouRequest{Limit: 1, PaginationToken: page1.NextPaginationToken})
	require.NoError(t, err)
	require.Len(t, page2.Likers, 1)
	assert.NotEqual(t, page1.Likers[0].ActorID, page2.Likers[0].ActorID)

	bad := "%%%"
	_, err = f.svc.ListLikedYou(as(1), &pb.ListLikedYouRequest{PaginationToken: &bad})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestListNewLikedYou drops likers once the caller likes them back.
func TestListNewLikedYou(t *testing.T) {
	f := setupService(t)
	f.swipe(t, 2, "1", "like")

	resp, err := f.svc.ListNewLikedYou(as(1), &pb.ListLikedYouRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Likers, 1)

	f.swipe(t, 1, "2", "like")

	resp, err = f.svc.ListNewLikedYou(as(1), &pb.ListLikedYouRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Likers, 0)
}

// TestCountLikedYouCache verifies the count is cached and invalidated.
func TestCountLikedYouCache(t *testing.T) {
	ctx := context.Background()
	f := setupService(t)
	f.swipe(t, 2, "1", "like")

	// First call → DB
	resp1, err := f.svc.CountLikedYou(as(1), &pb.CountLikedYouRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), resp1.Count)

	n, hit, err := f.cache.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(1), n)

	// a new like drops the cached value
	f.swipe(t, 3, "1", "like")
	_, hit, err = f.cache.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)

	resp2, err := f.svc.CountLikedYou(as(1), &pb.CountLikedYouRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), resp2.Count)
}

func TestDiscover_SkipsSwiped(t *testing.T) {
	f := setupService(t)

	resp, err := f.svc.Discover(as(1), &pb.DiscoverRequest{})
	require.NoError(t, err)
	var ids []string
	for _, p := range resp.Profiles {
		ids = append(ids, p.UserID)
		assert.Equal(t, "F", p.Gender)
	}
	assert.ElementsMatch(t, []string{"2", "3"}, ids)

	f.swipe(t, 1, "2", "pass")

	resp, err = f.svc.Discover(as(1), &pb.DiscoverRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Profiles, 1)
	assert.Equal(t, "3", resp.Profiles[0].UserID)
}

func TestMatches_SeenAndUnmatch(t *testing.T) {
	f := setupService(t)
	f.swipe(t, 1, "2", "like")
	matchID := f.swipe(t, 2, "1", "like").Match.ID

	list, err := f.svc.ListMatches(as(1), &pb.ListMatchesRequest{})
	require.NoError(t, err)
	require.Len(t, list.Matches, 1)
	assert.Equal(t, "2", list.Matches[0].Other.UserID)
	assert.False(t, list.Matches[0].Seen)

	seen, err := f.svc.MarkMatchSeen(as(1), &pb.MatchRequest{MatchID: matchID})
	require.NoError(t, err)
	assert.True(t, seen.Match.Seen)

	// the other side has not looked yet
	list, err = f.svc.ListMatches(as(2), &pb.ListMatchesRequest{})
	require.NoError(t, err)
	require.Len(t, list.Matches, 1)
	assert.False(t, list.Matches[0].Seen)

	_, err = f.svc.Unmatch(as(3), &pb.MatchRequest{MatchID: matchID})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = f.svc.Unmatch(as(1), &pb.MatchRequest{MatchID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	gone, err := f.svc.Unmatch(as(1), &pb.MatchRequest{MatchID: matchID})
	require.NoError(t, err)
	assert.False(t, gone.Match.IsActive)

	conv, err := f.appCtx.Registry.GetConversation(context.Background(), matchID)
	require.NoError(t, err)
	assert.Equal(t, []string{conv.ID}, f.notes.closed)

	list, err = f.svc.ListMatches(as(2), &pb.ListMatchesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Matches)
}
