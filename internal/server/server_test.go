package server_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	explorepb "github.com/oggyb/muzz-match/internal/api/explore"
	inboxpb "github.com/oggyb/muzz-match/internal/api/inbox"
	"github.com/oggyb/muzz-match/internal/app"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/logger"
	"github.com/oggyb/muzz-match/internal/server"
	"github.com/oggyb/muzz-match/internal/service/explore"
	"github.com/oggyb/muzz-match/internal/service/inbox"
	"github.com/oggyb/muzz-match/internal/testutil"
)

type harness struct {
	appCtx  *app.AppContext
	conn    *grpc.ClientConn
	explore explorepb.ExploreServiceClient
	inbox   inboxpb.InboxServiceClient
}

// startServer runs the full gRPC stack over an in-memory listener.
func startServer(t *testing.T) harness {
	t.Helper()

	gdb := testutil.NewDB(t)
	testutil.SeedProfiles(t, gdb,
		testutil.Person{ID: 1, Gender: "M", LookingFor: "F"},
		testutil.Person{ID: 2, Gender: "F", LookingFor: "M"},
	)
	rc, _ := testutil.NewRedis(t)
	appCtx := app.New(config.New(), gdb, rc, logger.Discard())

	grpcServer, _ := server.NewGRPCServer(appCtx.Tokens, logger.Discard(),
		explore.NewRegistrar(appCtx),
		inbox.NewRegistrar(appCtx),
	)
	lis := bufconn.Listen(1 << 20)
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return harness{
		appCtx:  appCtx,
		conn:    conn,
		explore: explorepb.NewExploreServiceClient(conn),
		inbox:   inboxpb.NewInboxServiceClient(conn),
	}
}

func (h harness) as(t *testing.T, userID uint64) context.Context {
	t.Helper()
	token, _, err := h.appCtx.Tokens.Issue(userID)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestGRPC_RequiresToken(t *testing.T) {
	h := startServer(t)

	_, err := h.explore.CountLikedYou(context.Background(), &explorepb.CountLikedYouRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer nope")
	_, err = h.explore.CountLikedYou(ctx, &explorepb.CountLikedYouRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGRPC_HealthIsPublic(t *testing.T) {
	h := startServer(t)

	resp, err := healthpb.NewHealthClient(h.conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

// TestGRPC_MatchThenChat goes from two likes to a delivered message over the wire.
func TestGRPC_MatchThenChat(t *testing.T) {
	h := startServer(t)

	first, err := h.explore.Swipe(h.as(t, 1), &explorepb.SwipeRequest{RecipientUserID: "2", Decision: "like"})
	require.NoError(t, err)
	assert.False(t, first.Matched)

	second, err := h.explore.Swipe(h.as(t, 2), &explorepb.SwipeRequest{RecipientUserID: "1", Decision: "like"})
	require.NoError(t, err)
	require.True(t, second.Matched)

	_, err = h.explore.Swipe(h.as(t, 2), &explorepb.SwipeRequest{RecipientUserID: "1", Decision: "like"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	convs, err := h.inbox.ListConversations(h.as(t, 1), &inboxpb.ListConversationsRequest{})
	require.NoError(t, err)
	require.Len(t, convs.Conversations, 1)
	convID := convs.Conversations[0].ID
	assert.Equal(t, second.Match.ID, convs.Conversations[0].MatchID)

	sent, err := h.inbox.SendMessage(h.as(t, 1), &inboxpb.SendMessageRequest{ConversationID: convID, TextContent: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", sent.Message.TextContent)

	msgs, err := h.inbox.ListMessages(h.as(t, 2), &inboxpb.ListMessagesRequest{ConversationID: convID})
	require.NoError(t, err)
	require.Len(t, msgs.Messages, 1)
	assert.Equal(t, sent.Message.ID, msgs.Messages[0].ID)
}

func TestRecoveryInterceptor(t *testing.T) {
	intercept := server.RecoveryInterceptor(logger.Discard())
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Panic"}

	_, err := intercept(context.Background(), nil, info, func(context.Context, any) (any, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	r := server.NewRouter(ws, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/conversations/abc", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	down := server.NewRouter(ws, func(context.Context) error { return context.DeadlineExceeded })
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
