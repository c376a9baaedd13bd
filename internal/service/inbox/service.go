package inbox

import (
	"context"
	"strconv"

	pb "github.com/oggyb/muzz-match/internal/api/inbox"
	"github.com/oggyb/muzz-match/internal/app"
	"github.com/oggyb/muzz-match/internal/auth"
	"github.com/oggyb/muzz-match/internal/chat"
	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

// Service implements the Inbox gRPC API on top of the conversation registry
// and the message store. Messages sent here reach live sessions through the
// AppContext notifier.
type Service struct {
	appCtx *app.AppContext

	pb.UnimplementedInboxServiceServer
}

func NewInboxService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

// ListConversations returns the caller's conversations, most recently
// active first, each with its last message, unread count and the other
// participant. Conversations of undone matches are left out.
func (s *Service) ListConversations(ctx context.Context, _ *pb.ListConversationsRequest) (*pb.ListConversationsResponse, error) {
	viewerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("ListConversations called", "viewer", viewerID)

	views, err := s.appCtx.Registry.ListViews(ctx, viewerID)
	if err != nil {
		s.appCtx.Logger.Error("ListViews failed", "viewer", viewerID, "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListConversationsResponse{Conversations: make([]*pb.Conversation, 0, len(views))}
	for _, v := range views {
		resp.Conversations = append(resp.Conversations, toConversation(v))
	}
	return resp, nil
}

// GetConversation renders the conversation of a match for the caller.
//
// Behavior:
//   - Unknown match → NotFound.
//   - Caller not part of the match → PermissionDenied.
//   - Still served after an unmatch, with is_active=false.
func (s *Service) GetConversation(ctx context.Context, req *pb.GetConversationRequest) (*pb.ConversationResponse, error) {
	viewerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.GetMatchID() == "" {
		return nil, svcErr.InvalidArgument("match_id is required")
	}
	s.appCtx.Logger.Debug("GetConversation called", "viewer", viewerID, "match_id", req.GetMatchID())

	conv, err := s.appCtx.Registry.GetConversation(ctx, req.GetMatchID())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	view, err := s.appCtx.Registry.RenderConversation(ctx, conv, viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.ConversationResponse{Conversation: toConversation(view)}, nil
}

// ListMessages pages through a conversation oldest first.
//
// Example:
//
//	svc.ListMessages(ctx, &pb.ListMessagesRequest{ConversationID: id, Limit: 50})
func (s *Service) ListMessages(ctx context.Context, req *pb.ListMessagesRequest) (*pb.ListMessagesResponse, error) {
	viewerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.GetConversationID() == "" {
		return nil, svcErr.InvalidArgument("conversation_id is required")
	}
	s.appCtx.Logger.Debug("ListMessages called", "viewer", viewerID, "conversation_id", req.GetConversationID(), "token", req.GetPaginationToken())

	msgs, nextToken, err := s.appCtx.Store.List(ctx, req.GetConversationID(), viewerID, req.PaginationToken, int(req.Limit))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListMessagesResponse{Messages: make([]*pb.Message, 0, len(msgs))}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, toMessage(m))
	}
	if nextToken != nil {
		resp.NextPaginationToken = nextToken
	}
	return resp, nil
}

// SendMessage appends a message from the caller and pushes it to any live
// session of the conversation.
//
// Behavior:
//   - kind defaults to text; text needs non-blank text_content, image and
//     file need attachment_ref → else InvalidArgument (INVALID_MESSAGE).
//   - Caller not a participant, or match undone → PermissionDenied.
func (s *Service) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.MessageResponse, error) {
	senderID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.GetConversationID() == "" {
		return nil, svcErr.InvalidArgument("conversation_id is required")
	}
	kind := db.MessageKind(req.Kind)
	if kind == "" {
		kind = db.KindText
	}
	s.appCtx.Logger.Debug("SendMessage called", "sender", senderID, "conversation_id", req.GetConversationID(), "kind", kind)

	msg, err := s.appCtx.Store.Append(ctx, req.GetConversationID(), senderID, kind, chat.Payload{
		Text:          req.TextContent,
		AttachmentRef: req.AttachmentRef,
	})
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if s.appCtx.Notifier != nil {
		s.appCtx.Notifier.MessageCreated(msg)
	}
	return &pb.MessageResponse{Message: toMessage(msg)}, nil
}

// MarkRead marks one message addressed to the caller as read. Repeating it
// keeps the original read_at.
func (s *Service) MarkRead(ctx context.Context, req *pb.MarkReadRequest) (*pb.MessageResponse, error) {
	readerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.GetMessageID() == "" {
		return nil, svcErr.InvalidArgument("message_id is required")
	}
	s.appCtx.Logger.Debug("MarkRead called", "reader", readerID, "message_id", req.GetMessageID())

	msg, err := s.appCtx.Store.MarkRead(ctx, req.GetMessageID(), readerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if s.appCtx.Notifier != nil {
		s.appCtx.Notifier.MessageRead(msg)
	}
	return &pb.MessageResponse{Message: toMessage(msg)}, nil
}

// MarkAllRead marks every unread message the other participant sent.
func (s *Service) MarkAllRead(ctx context.Context, req *pb.MarkAllReadRequest) (*pb.MarkAllReadResponse, error) {
	readerID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.GetConversationID() == "" {
		return nil, svcErr.InvalidArgument("conversation_id is required")
	}
	s.appCtx.Logger.Debug("MarkAllRead called", "reader", readerID, "conversation_id", req.GetConversationID())

	n, err := s.appCtx.Store.MarkAllRead(ctx, req.GetConversationID(), readerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.MarkAllReadResponse{Count: uint64(n)}, nil
}

//
// Conversions
//

func toConversation(v chat.ConversationView) *pb.Conversation {
	c := &pb.Conversation{
		ID:      v.Conversation.ID,
		MatchID: v.Match.ID,
		Other: &pb.Participant{
			UserID:      strconv.FormatUint(v.Other.UserID, 10),
			DisplayName: v.Other.DisplayName,
			Age:         v.Other.Age,
			City:        v.Other.City,
		},
		UnreadCount: uint64(v.UnreadCount),
		IsActive:    v.Match.IsActive,
		UpdatedAt:   uint64(v.Conversation.UpdatedAt.UnixMilli()),
	}
	if v.LastMessage != nil {
		c.LastMessage = toMessage(*v.LastMessage)
	}
	return c
}

func toMessage(m db.Message) *pb.Message {
	out := &pb.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       strconv.FormatUint(m.SenderID, 10),
		Kind:           string(m.Kind),
		TextContent:    m.TextContent,
		AttachmentRef:  m.AttachmentRef,
		IsRead:         m.IsRead,
		CreatedAt:      uint64(m.CreatedAt.UnixMilli()),
	}
	if m.ReadAt != nil {
		at := uint64(m.ReadAt.UnixMilli())
		out.ReadAt = &at
	}
	return out
}
