package explore

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/muzz-match/internal/api"
)

const ServiceName = "muzz.match.v1.ExploreService"

const (
	ExploreService_Swipe_FullMethodName           = "/" + ServiceName + "/Swipe"
	ExploreService_Discover_FullMethodName        = "/" + ServiceName + "/Discover"
	ExploreService_ListLikedYou_FullMethodName    = "/" + ServiceName + "/ListLikedYou"
	ExploreService_ListNewLikedYou_FullMethodName = "/" + ServiceName + "/ListNewLikedYou"
	ExploreService_CountLikedYou_FullMethodName   = "/" + ServiceName + "/CountLikedYou"
	ExploreService_ListMatches_FullMethodName     = "/" + ServiceName + "/ListMatches"
	ExploreService_MarkMatchSeen_FullMethodName   = "/" + ServiceName + "/MarkMatchSeen"
	ExploreService_Unmatch_FullMethodName         = "/" + ServiceName + "/Unmatch"
)

// ExploreServiceClient is the client API for ExploreService.
type ExploreServiceClient interface {
	Swipe(ctx context.Context, in *SwipeRequest, opts ...grpc.CallOption) (*SwipeResponse, error)
	Discover(ctx context.Context, in *DiscoverRequest, opts ...grpc.CallOption) (*DiscoverResponse, error)
	ListLikedYou(ctx context.Context, in *ListLikedYouRequest, opts ...grpc.CallOption) (*ListLikedYouResponse, error)
	ListNewLikedYou(ctx context.Context, in *ListLikedYouRequest, opts ...grpc.CallOption) (*ListLikedYouResponse, error)
	CountLikedYou(ctx context.Context, in *CountLikedYouRequest, opts ...grpc.CallOption) (*CountLikedYouResponse, error)
	ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error)
	MarkMatchSeen(ctx context.Context, in *MatchRequest, opts ...grpc.CallOption) (*MatchResponse, error)
	Unmatch(ctx context.Context, in *MatchRequest, opts ...grpc.CallOption) (*MatchResponse, error)
}

type exploreServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewExploreServiceClient(cc grpc.ClientConnInterface) ExploreServiceClient {
	return &exploreServiceClient{cc}
}

func (c *exploreServiceClient) Swipe(ctx context.Context, in *SwipeRequest, opts ...grpc.CallOption) (*SwipeResponse, error) {
	return api.Invoke[SwipeResponse](ctx, c.cc, ExploreService_Swipe_FullMethodName, in, opts)
}

func (c *exploreServiceClient) Discover(ctx context.Context, in *DiscoverRequest, opts ...grpc.CallOption) (*DiscoverResponse, error) {
	return api.Invoke[DiscoverResponse](ctx, c.cc, ExploreService_Discover_FullMethodName, in, opts)
}

func (c *exploreServiceClient) ListLikedYou(ctx context.Context, in *ListLikedYouRequest, opts ...grpc.CallOption) (*ListLikedYouResponse, error) {
	return api.Invoke[ListLikedYouResponse](ctx, c.cc, ExploreService_ListLikedYou_FullMethodName, in, opts)
}

func (c *exploreServiceClient) ListNewLikedYou(ctx context.Context, in *ListLikedYouRequest, opts ...grpc.CallOption) (*ListLikedYouResponse, error) {
	return api.Invoke[ListLikedYouResponse](ctx, c.cc, ExploreService_ListNewLikedYou_FullMethodName, in, opts)
}

func (c *exploreServiceClient) CountLikedYou(ctx context.Context, in *CountLikedYouRequest, opts ...grpc.CallOption) (*CountLikedYouResponse, error) {
	return api.Invoke[CountLikedYouResponse](ctx, c.cc, ExploreService_CountLikedYou_FullMethodName, in, opts)
}

func (c *exploreServiceClient) ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error) {
	return api.Invoke[ListMatchesResponse](ctx, c.cc, ExploreService_ListMatches_FullMethodName, in, opts)
}

func (c *exploreServiceClient) MarkMatchSeen(ctx context.Context, in *MatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return api.Invoke[MatchResponse](ctx, c.cc, ExploreService_MarkMatchSeen_FullMethodName, in, opts)
}

func (c *exploreServiceClient) Unmatch(ctx context.Context, in *MatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return api.Invoke[MatchResponse](ctx, c.cc, ExploreService_Unmatch_FullMethodName, in, opts)
}

// ExploreServiceServer is the server API for ExploreService.
// Implementations must embed UnimplementedExploreServiceServer.
type ExploreServiceServer interface {
	Swipe(context.Context, *SwipeRequest) (*SwipeResponse, error)
	Discover(context.Context, *DiscoverRequest) (*DiscoverResponse, error)
	ListLikedYou(context.Context, *ListLikedYouRequest) (*ListLikedYouResponse, error)
	ListNewLikedYou(context.Context, *ListLikedYouRequest) (*ListLikedYouResponse, error)
	CountLikedYou(context.Context, *CountLikedYouRequest) (*CountLikedYouResponse, error)
	ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error)
	MarkMatchSeen(context.Context, *MatchRequest) (*MatchResponse, error)
	Unmatch(context.Context, *MatchRequest) (*MatchResponse, error)
	mustEmbedUnimplementedExploreServiceServer()
}

// UnimplementedExploreServiceServer answers Unimplemented for every method.
type UnimplementedExploreServiceServer struct{}

func (UnimplementedExploreServiceServer) Swipe(context.Context, *SwipeRequest) (*SwipeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Swipe not implemented")
}
func (UnimplementedExploreServiceServer) Discover(context.Context, *DiscoverRequest) (*DiscoverResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Discover not implemented")
}
func (UnimplementedExploreServiceServer) ListLikedYou(context.Context, *ListLikedYouRequest) (*ListLikedYouResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListLikedYou not implemented")
}
func (UnimplementedExploreServiceServer) ListNewLikedYou(context.Context, *ListLikedYouRequest) (*ListLikedYouResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListNewLikedYou not implemented")
}
func (UnimplementedExploreServiceServer) CountLikedYou(context.Context, *CountLikedYouRequest) (*CountLikedYouResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CountLikedYou not implemented")
}
func (UnimplementedExploreServiceServer) ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMatches not implemented")
}
func (UnimplementedExploreServiceServer) MarkMatchSeen(context.Context, *MatchRequest) (*MatchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkMatchSeen not implemented")
}
func (UnimplementedExploreServiceServer) Unmatch(context.Context, *MatchRequest) (*MatchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Unmatch not implemented")
}
func (UnimplementedExploreServiceServer) mustEmbedUnimplementedExploreServiceServer() {}

func RegisterExploreServiceServer(s grpc.ServiceRegistrar, srv ExploreServiceServer) {
	s.RegisterService(&ExploreService_ServiceDesc, srv)
}

var ExploreService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ExploreServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Swipe",
			Handler: api.Unary(ExploreService_Swipe_FullMethodName, func(s ExploreServiceServer, ctx context.Context, in *SwipeRequest) (any, error) {
				return s.Swipe(ctx, in)
			}),
		},
		{
			MethodName: "Discover",
			Handler: api.Unary(ExploreService_Discover_FullMethodName, func(s ExploreServiceServer, ctx context.Context, in *DiscoverRequest) (any, error) {
				return s.Discover(ctx, in)
			}),
		},
		{
			MethodName: "ListLikedYou",
			Handler: api.Unary(ExploreService_ListLikedYou_FullMethodName, func(s ExploreServiceServer, ctx context.Context, in *ListLikedYouRequest) (any, error) {
				return s.ListLikedYou(ctx, in)
			}),
		},
		{
			MethodName: "ListNewLikedYou",
			Handler: api.Unary(ExploreService_ListNewLikedYou_FullMethodName, func(s ExploreServiceServer, ctx context.Context, in *ListLikedYouRequest) (any, error) {
				return s.ListNewLikedYou(ctx, in)
			}),
		},
		{
			MethodName: "CountLikedYou",
			Handler: api.Unary(ExploreService_CountLikedYou_FullMethodName, func(s ExploreServiceServer, ctx context.Context, in *CountLikedYouRequest) (any, error) {
				return s.CountLikedYou(ctx, in)
			}),
		},
		{
			MethodName: "ListMatches",
			Handler: api.Unary(ExploreService_ListMatches_FullMethodName, func(s ExploreServiceServer, ctx context.Context, in *ListMatchesRequest) (any, error) {
				return s.ListMatches(ctx, in)
			}),
		},
		{
			MethodName: "MarkMatchSeen",
			Handler: api.Unary(ExploreService_MarkMatchSeen_FullMethodName, func(s ExploreServiceServer, ctx context.Context, in *MatchRequest) (any, error) {
				return s.MarkMatchSeen(ctx, in)
			}),
		},
		{
			MethodName: "Unmatch",
			Handler: api.Unary(ExploreService_Unmatch_FullMethodName, func(s ExploreServiceServer, ctx context.Context, in *MatchRequest) (any, error) {
				return s.Unmatch(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}
