package inbox

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/muzz-match/internal/api"
)

const ServiceName = "muzz.match.v1.InboxService"

const (
	InboxService_ListConversations_FullMethodName = "/" + ServiceName + "/ListConversations"
	InboxService_GetConversation_FullMethodName   = "/" + ServiceName + "/GetConversation"
	InboxService_ListMessages_FullMethodName      = "/" + ServiceName + "/ListMessages"
	InboxService_SendMessage_FullMethodName       = "/" + ServiceName + "/SendMessage"
	InboxService_MarkRead_FullMethodName          = "/" + ServiceName + "/MarkRead"
	InboxService_MarkAllRead_FullMethodName       = "/" + ServiceName + "/MarkAllRead"
)

// InboxServiceClient is the client API for InboxService.
type InboxServiceClient interface {
	ListConversations(ctx context.Context, in *ListConversationsRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error)
	GetConversation(ctx context.Context, in *GetConversationRequest, opts ...grpc.CallOption) (*ConversationResponse, error)
	ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error)
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	MarkAllRead(ctx context.Context, in *MarkAllReadRequest, opts ...grpc.CallOption) (*MarkAllReadResponse, error)
}

type inboxServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInboxServiceClient(cc grpc.ClientConnInterface) InboxServiceClient {
	return &inboxServiceClient{cc}
}

func (c *inboxServiceClient) ListConversations(ctx context.Context, in *ListConversationsRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error) {
	return api.Invoke[ListConversationsResponse](ctx, c.cc, InboxService_ListConversations_FullMethodName, in, opts)
}

func (c *inboxServiceClient) GetConversation(ctx context.Context, in *GetConversationRequest, opts ...grpc.CallOption) (*ConversationResponse, error) {
	return api.Invoke[ConversationResponse](ctx, c.cc, InboxService_GetConversation_FullMethodName, in, opts)
}

func (c *inboxServiceClient) ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error) {
	return api.Invoke[ListMessagesResponse](ctx, c.cc, InboxService_ListMessages_FullMethodName, in, opts)
}

func (c *inboxServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return api.Invoke[MessageResponse](ctx, c.cc, InboxService_SendMessage_FullMethodName, in, opts)
}

func (c *inboxServiceClient) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return api.Invoke[MessageResponse](ctx, c.cc, InboxService_MarkRead_FullMethodName, in, opts)
}

func (c *inboxServiceClient) MarkAllRead(ctx context.Context, in *MarkAllReadRequest, opts ...grpc.CallOption) (*MarkAllReadResponse, error) {
	return api.Invoke[MarkAllReadResponse](ctx, c.cc, InboxService_MarkAllRead_FullMethodName, in, opts)
}

// InboxServiceServer is the server API for InboxService.
// Implementations must embed UnimplementedInboxServiceServer.
type InboxServiceServer interface {
	ListConversations(context.Context, *ListConversationsRequest) (*ListConversationsResponse, error)
	GetConversation(context.Context, *GetConversationRequest) (*ConversationResponse, error)
	ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*MessageResponse, error)
	MarkRead(context.Context, *MarkReadRequest) (*MessageResponse, error)
	MarkAllRead(context.Context, *MarkAllReadRequest) (*MarkAllReadResponse, error)
	mustEmbedUnimplementedInboxServiceServer()
}

// UnimplementedInboxServiceServer answers Unimplemented for every method.
type UnimplementedInboxServiceServer struct{}

func (UnimplementedInboxServiceServer) ListConversations(context.Context, *ListConversationsRequest) (*ListConversationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListConversations not implemented")
}
func (UnimplementedInboxServiceServer) GetConversation(context.Context, *GetConversationRequest) (*ConversationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetConversation not implemented")
}
func (UnimplementedInboxServiceServer) ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMessages not implemented")
}
func (UnimplementedInboxServiceServer) SendMessage(context.Context, *SendMessageRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SendMessage not implemented")
}
func (UnimplementedInboxServiceServer) MarkRead(context.Context, *MarkReadRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkRead not implemented")
}
func (UnimplementedInboxServiceServer) MarkAllRead(context.Context, *MarkAllReadRequest) (*MarkAllReadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkAllRead not implemented")
}
func (UnimplementedInboxServiceServer) mustEmbedUnimplementedInboxServiceServer() {}

func RegisterInboxServiceServer(s grpc.ServiceRegistrar, srv InboxServiceServer) {
	s.RegisterService(&InboxService_ServiceDesc, srv)
}

var InboxService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InboxServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListConversations",
			Handler: api.Unary(InboxService_ListConversations_FullMethodName, func(s InboxServiceServer, ctx context.Context, in *ListConversationsRequest) (any, error) {
				return s.ListConversations(ctx, in)
			}),
		},
		{
			MethodName: "GetConversation",
			Handler: api.Unary(InboxService_GetConversation_FullMethodName, func(s InboxServiceServer, ctx context.Context, in *GetConversationRequest) (any, error) {
				return s.GetConversation(ctx, in)
			}),
		},
		{
			MethodName: "ListMessages",
			Handler: api.Unary(InboxService_ListMessages_FullMethodName, func(s InboxServiceServer, ctx context.Context, in *ListMessagesRequest) (any, error) {
				return s.ListMessages(ctx, in)
			}),
		},
		{
			MethodName: "SendMessage",
			Handler: api.Unary(InboxService_SendMessage_FullMethodName, func(s InboxServiceServer, ctx context.Context, in *SendMessageRequest) (any, error) {
				return s.SendMessage(ctx, in)
			}),
		},
		{
			MethodName: "MarkRead",
			Handler: api.Unary(InboxService_MarkRead_FullMethodName, func(s InboxServiceServer, ctx context.Context, in *MarkReadRequest) (any, error) {
				return s.MarkRead(ctx, in)
			}),
		},
		{
			MethodName: "MarkAllRead",
			Handler: api.Unary(InboxService_MarkAllRead_FullMethodName, func(s InboxServiceServer, ctx context.Context, in *MarkAllReadRequest) (any, error) {
				return s.MarkAllRead(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}
