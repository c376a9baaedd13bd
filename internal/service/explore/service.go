package explore

import (
	"context"
	"strconv"
	"time"

	pb "github.com/oggyb/muzz-match/internal/api/explore"
	"github.com/oggyb/muzz-match/internal/app"
	"github.com/oggyb/muzz-match/internal/auth"
	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/identity"
	"github.com/oggyb/muzz-match/internal/matching"
)

// Service implements the Explore gRPC API: swiping, discovery, the
// liked-you lists and the caller's matches.
// The caller is always the authenticated user; no method takes an actor id.
type Service struct {
	appCtx *app.AppContext

	pb.UnimplementedExploreServiceServer
}

// NewExploreService creates a new Explore service with dependencies from AppContext.
func NewExploreService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

// Swipe records the caller's decision and reports whether it produced a match.
//
// Behavior:
//   - recipient_user_id must be a uint64 other than the caller.
//   - decision must be like, pass or super_like.
//   - A second decision on the same user → AlreadyExists (DUPLICATE_SWIPE).
//   - A like answering a like returns matched=true plus the match; racing
//     reciprocal swipes see the same match.
//
// Example:
//
//	svc.Swipe(ctx, &pb.SwipeRequest{RecipientUserID: "2", Decision: "like"})
func (s *Service) Swipe(ctx context.Context, req *pb.SwipeRequest) (*pb.SwipeResponse, error) {
	s.appCtx.Logger.Debug("Swipe called", "recipient", req.GetRecipientUserID(), "decision", req.GetDecision())

	actorID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	recipientID, err := strconv.ParseUint(req.GetRecipientUserID(), 10, 64)
	if err != nil {
		return nil, svcErr.InvalidArgument("recipient_user_id must be a valid uint64")
	}
	decision := db.Decision(req.GetDecision())
	if !decision.Valid() {
		return nil, svcErr.InvalidArgument("decision must be one of like, pass, super_like")
	}

	outcome, err := s.appCtx.Engine.ProcessSwipe(ctx, actorID, recipientID, decision)
	if err != nil {
		s.appCtx.Logger.Debug("ProcessSwipe failed", "actor", actorID, "recipient", recipientID, "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &pb.SwipeResponse{
		Swipe:   toSwipe(outcome.Swipe),
		Matched: outcome.Matched,
	}
	if outcome.Match != nil {
		other, err := s.appCtx.Directory.Summary(ctx, recipientID)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		resp.Match = toMatch(matching.MatchView{Match: *outcome.Match, Other: other})
	}

	s.appCtx.Logger.Debug("Swipe result", "actor", actorID, "recipient", recipientID, "matched", resp.Matched)
	return resp, nil
}

// Discover returns candidate profiles the caller has not decided on yet.
//
// Example:
//
//	svc.Discover(ctx, &pb.DiscoverRequest{Limit: 10})
func (s *Service) Discover(ctx context.Context, req *pb.DiscoverRequest) (*pb.DiscoverResponse, error) {
	viewerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("Discover called", "viewer", viewerID, "limit", req.GetLimit())

	profiles, err := s.appCtx.Discovery.Discover(ctx, viewerID, int(req.GetLimit()))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	now := time.Now()
	resp := &pb.DiscoverResponse{Profiles: make([]*pb.Profile, 0, len(profiles))}
	for _, p := range profiles {
		card := toProfile(identity.Summarize(p, now))
		card.Gender = p.Gender
		resp.Profiles = append(resp.Profiles, card)
	}
	return resp, nil
}

// ListLikedYou returns all users who liked the caller.
//
// Behavior:
//   - Users the caller explicitly passed are excluded.
//   - Supports cursor-based pagination with paginationToken.
//   - Returns actor_id + timestamp pairs, newest first.
//
// Example:
//
//	svc.ListLikedYou(ctx, &pb.ListLikedYouRequest{})
func (s *Service) ListLikedYou(ctx context.Context, req *pb.ListLikedYouRequest) (*pb.ListLikedYouResponse, error) {
	recipientID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("ListLikedYou called", "recipient", recipientID, "token", req.GetPaginationToken())

	swipes, nextToken, err := s.appCtx.Ledger.ListLikers(ctx, recipientID, req.PaginationToken, int(req.GetLimit()))
	if err != nil {
		s.appCtx.Logger.Error("ListLikers failed", "err", err)
		return nil, svcErr.Map(err)
	}

	resp := toLikers(swipes, nextToken)
	s.appCtx.Logger.Debug("ListLikedYou result", "liker_count", len(resp.Likers), "next_token", resp.GetNextPaginationToken())
	return resp, nil
}

// ListNewLikedYou returns users who liked the caller and whom the caller has
// not decided on yet.
//
// Example:
//
//	svc.ListNewLikedYou(ctx, &pb.ListLikedYouRequest{})
func (s *Service) ListNewLikedYou(ctx context.Context, req *pb.ListLikedYouRequest) (*pb.ListLikedYouResponse, error) {
	recipientID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("ListNewLikedYou called", "recipient", recipientID)

	swipes, nextToken, err := s.appCtx.Ledger.ListNewLikers(ctx, recipientID, req.PaginationToken, int(req.GetLimit()))
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return toLikers(swipes, nextToken), nil
}

// CountLikedYou returns how many users liked the caller.
// Served from Redis (likes:count:userID) when cached, else from the DB with
// the result written back for an hour.
func (s *Service) CountLikedYou(ctx context.Context, _ *pb.CountLikedYouRequest) (*pb.CountLikedYouResponse, error) {
	recipientID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("CountLikedYou called", "recipient", recipientID)

	count, err := s.appCtx.Ledger.CountLikers(ctx, recipientID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.CountLikedYouResponse{Count: uint64(count)}, nil
}

// ListMatches returns the caller's active matches, newest first.
func (s *Service) ListMatches(ctx context.Context, _ *pb.ListMatchesRequest) (*pb.ListMatchesResponse, error) {
	viewerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("ListMatches called", "viewer", viewerID)

	views, err := s.appCtx.Engine.ListMatches(ctx, viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	resp := &pb.ListMatchesResponse{Matches: make([]*pb.Match, 0, len(views))}
	for _, v := range views {
		resp.Matches = append(resp.Matches, toMatch(v))
	}
	return resp, nil
}

// MarkMatchSeen flags the match as seen by the caller.
func (s *Service) MarkMatchSeen(ctx context.Context, req *pb.MatchRequest) (*pb.MatchResponse, error) {
	viewerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.GetMatchID() == "" {
		return nil, svcErr.InvalidArgument("match_id is required")
	}
	s.appCtx.Logger.Debug("MarkMatchSeen called", "viewer", viewerID, "match_id", req.GetMatchID())

	m, err := s.appCtx.Engine.MarkSeen(ctx, req.GetMatchID(), viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return s.matchResponse(ctx, m, viewerID)
}

// Unmatch undoes a match. The conversation leaves both inboxes and any live
// session on it is told and closed; its history stays readable.
func (s *Service) Unmatch(ctx context.Context, req *pb.MatchRequest) (*pb.MatchResponse, error) {
	viewerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.GetMatchID() == "" {
		return nil, svcErr.InvalidArgument("match_id is required")
	}
	s.appCtx.Logger.Debug("Unmatch called", "viewer", viewerID, "match_id", req.GetMatchID())

	m, err := s.appCtx.Engine.Unmatch(ctx, req.GetMatchID(), viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	conv, err := s.appCtx.Registry.GetConversation(ctx, m.ID)
	if err != nil {
		s.appCtx.Logger.Warn("conversation lookup after unmatch failed", "match_id", m.ID, "err", err)
	} else if s.appCtx.Notifier != nil {
		s.appCtx.Notifier.ConversationClosed(conv.ID)
	}
	return s.matchResponse(ctx, m, viewerID)
}

func (s *Service) matchResponse(ctx context.Context, m db.Match, viewerID uint64) (*pb.MatchResponse, error) {
	other, err := s.appCtx.Directory.Summary(ctx, m.Other(viewerID))
	if err != nil {
		return nil, svcErr.Map(err)
	}
	seen := m.SeenByHigh
	if m.UserLow == viewerID {
		seen = m.SeenByLow
	}
	return &pb.MatchResponse{Match: toMatch(matching.MatchView{Match: m, Other: other, Seen: seen})}, nil
}

//
// Conversions
//

func toSwipe(sw db.Swipe) *pb.Swipe {
	return &pb.Swipe{
		ID:            sw.ID,
		FromUserID:    strconv.FormatUint(sw.FromUserID, 10),
		ToUserID:      strconv.FormatUint(sw.ToUserID, 10),
		Decision:      string(sw.Decision),
		UnixTimestamp: uint64(sw.CreatedAt.UnixMilli()),
	}
}

func toMatch(v matching.MatchView) *pb.Match {
	return &pb.Match{
		ID:        v.Match.ID,
		Other:     toProfile(v.Other),
		MatchedAt: uint64(v.Match.MatchedAt.UnixMilli()),
		IsActive:  v.Match.IsActive,
		Seen:      v.Seen,
	}
}

func toProfile(sum identity.Summary) *pb.Profile {
	return &pb.Profile{
		UserID:      strconv.FormatUint(sum.UserID, 10),
		DisplayName: sum.DisplayName,
		Age:         sum.Age,
		City:        sum.City,
		Country:     sum.Country,
		Bio:         sum.Bio,
	}
}

func toLikers(swipes []db.Swipe, nextToken *string) *pb.ListLikedYouResponse {
	resp := &pb.ListLikedYouResponse{Likers: make([]*pb.Liker, 0, len(swipes))}
	for _, sw := range swipes {
		resp.Likers = append(resp.Likers, &pb.Liker{
			ActorID:       strconv.FormatUint(sw.FromUserID, 10),
			UnixTimestamp: uint64(sw.CreatedAt.UnixMilli()),
			Decision:      string(sw.Decision),
		})
	}
	if nextToken != nil {
		resp.NextPaginationToken = nextToken
	}
	return resp
}
