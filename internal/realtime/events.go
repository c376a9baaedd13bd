package realtime

import (
	"strconv"
	"time"

	"github.com/oggyb/muzz-match/internal/db"
)

// Inbound event types.
const (
	TypeChatMessage = "chat_message"
	TypeTyping      = "typing"
	TypeReadReceipt = "read_receipt"
)

// Outbound event types.
const (
	TypeNewMessage         = "new_message"
	TypeMessageSent        = "message_sent"
	TypeMessageRead        = "message_read"
	TypePresence           = "presence"
	TypeError              = "error"
	TypeConversationClosed = "conversation_closed"
)

const (
	PresenceOnline  = "online"
	PresenceOffline = "offline"
)

// Inbound is the envelope every client frame is decoded into.
type Inbound struct {
	Type          string `json:"type"`
	Content       string `json:"content,omitempty"`
	Kind          string `json:"kind,omitempty"`
	AttachmentRef string `json:"attachment_ref,omitempty"`
	IsTyping      *bool  `json:"is_typing,omitempty"`
	MessageID     string `json:"message_id,omitempty"`
}

// Outbound is the envelope of every server frame.
type Outbound struct {
	Type           string          `json:"type"`
	ConversationID string          `json:"conversation_id,omitempty"`
	UserID         string          `json:"user_id,omitempty"`
	Message        *MessagePayload `json:"message,omitempty"`
	IsTyping       *bool           `json:"is_typing,omitempty"`
	Status         string          `json:"status,omitempty"`
	Error          string          `json:"error,omitempty"`
	At             time.Time       `json:"at"`
}

// MessagePayload is a persisted message on the wire.
type MessagePayload struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	SenderID       string     `json:"sender_id"`
	Kind           string     `json:"kind"`
	TextContent    string     `json:"text_content,omitempty"`
	AttachmentRef  string     `json:"attachment_ref,omitempty"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func newMessagePayload(m db.Message) *MessagePayload {
	return &MessagePayload{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       uid(m.SenderID),
		Kind:           string(m.Kind),
		TextContent:    m.TextContent,
		AttachmentRef:  m.AttachmentRef,
		IsRead:         m.IsRead,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

func messageEvent(eventType string, m db.Message) Outbound {
	return Outbound{
		Type:           eventType,
		ConversationID: m.ConversationID,
		Message:        newMessagePayload(m),
		At:             time.Now().UTC(),
	}
}

func typingEvent(conversationID string, userID uint64, typing bool) Outbound {
	return Outbound{
		Type:           TypeTyping,
		ConversationID: conversationID,
		UserID:         uid(userID),
		IsTyping:       &typing,
		At:             time.Now().UTC(),
	}
}

func presenceEvent(conversationID string, userID uint64, status string) Outbound {
	return Outbound{
		Type:           TypePresence,
		ConversationID: conversationID,
		UserID:         uid(userID),
		Status:         status,
		At:             time.Now().UTC(),
	}
}

func errorEvent(conversationID, msg string) Outbound {
	return Outbound{
		Type:           TypeError,
		ConversationID: conversationID,
		Error:          msg,
		At:             time.Now().UTC(),
	}
}

func uid(id uint64) string { return strconv.FormatUint(id, 10) }
