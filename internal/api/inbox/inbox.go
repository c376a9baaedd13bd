// Package inbox defines the muzz.match.v1.InboxService wire contract.
package inbox

// Participant is the other side of a conversation.
type Participant struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Age         int    `json:"age,omitempty"`
	City        string `json:"city,omitempty"`
}

// Message timestamps are unix milliseconds.
type Message struct {
	ID             string  `json:"id"`
	ConversationID string  `json:"conversation_id"`
	SenderID       string  `json:"sender_id"`
	Kind           string  `json:"kind"`
	TextContent    string  `json:"text_content,omitempty"`
	AttachmentRef  string  `json:"attachment_ref,omitempty"`
	IsRead         bool    `json:"is_read"`
	ReadAt         *uint64 `json:"read_at,omitempty"`
	CreatedAt      uint64  `json:"created_at"`
}

type Conversation struct {
	ID          string       `json:"id"`
	MatchID     string       `json:"match_id"`
	Other       *Participant `json:"other"`
	LastMessage *Message     `json:"last_message,omitempty"`
	UnreadCount uint64       `json:"unread_count"`
	IsActive    bool         `json:"is_active"`
	UpdatedAt   uint64       `json:"updated_at"`
}

type ListConversationsRequest struct{}

type ListConversationsResponse struct {
	Conversations []*Conversation `json:"conversations"`
}

type GetConversationRequest struct {
	MatchID string `json:"match_id"`
}

func (r *GetConversationRequest) GetMatchID() string {
	if r == nil {
		return ""
	}
	return r.MatchID
}

type ConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
}

type ListMessagesRequest struct {
	ConversationID  string  `json:"conversation_id"`
	PaginationToken *string `json:"pagination_token,omitempty"`
	Limit           uint32  `json:"limit,omitempty"`
}

func (r *ListMessagesRequest) GetConversationID() string {
	if r == nil {
		return ""
	}
	return r.ConversationID
}

func (r *ListMessagesRequest) GetPaginationToken() string {
	if r == nil || r.PaginationToken == nil {
		return ""
	}
	return *r.PaginationToken
}

type ListMessagesResponse struct {
	Messages            []*Message `json:"messages"`
	NextPaginationToken *string    `json:"next_pagination_token,omitempty"`
}

// SendMessageRequest appends to a conversation. Kind defaults to text.
type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Kind           string `json:"kind,omitempty"`
	TextContent    string `json:"text_content,omitempty"`
	AttachmentRef  string `json:"attachment_ref,omitempty"`
}

func (r *SendMessageRequest) GetConversationID() string {
	if r == nil {
		return ""
	}
	return r.ConversationID
}

type MessageResponse struct {
	Message *Message `json:"message"`
}

type MarkReadRequest struct {
	MessageID string `json:"message_id"`
}

func (r *MarkReadRequest) GetMessageID() string {
	if r == nil {
		return ""
	}
	return r.MessageID
}

type MarkAllReadRequest struct {
	ConversationID string `json:"conversation_id"`
}

func (r *MarkAllReadRequest) GetConversationID() string {
	if r == nil {
		return ""
	}
	return r.ConversationID
}

type MarkAllReadResponse struct {
	Count uint64 `json:"count"`
}
