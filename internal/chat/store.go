package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/metrics"
	"github.com/oggyb/muzz-match/internal/repository"
)

// Payload is the user-supplied part of a message.
type Payload struct {
	Text          string
	AttachmentRef string
}

// Notifier fans persisted changes out to live sessions. Implementations must
// not block.
type Notifier interface {
	MessageCreated(m db.Message)
	MessageRead(m db.Message)
	ConversationClosed(conversationID string)
}

// Store is the durable, ordered message log of every conversation.
type Store struct {
	db       *gorm.DB
	registry *Registry
	messages *repository.MessageRepository
	clock    *Clock
	log      *slog.Logger
}

func NewStore(gdb *gorm.DB, registry *Registry, log *slog.Logger) *Store {
	return &Store{
		db:       gdb,
		registry: registry,
		messages: repository.NewMessageRepository(gdb),
		clock:    NewClock(),
		log:      log,
	}
}

// Validate checks the kind-specific payload rules.
//
//   - text needs non-blank text;
//   - image and file need an attachment reference;
//   - any other kind is invalid.
func Validate(kind db.MessageKind, p Payload) error {
	switch kind {
	case db.KindText:
		if strings.TrimSpace(p.Text) == "" {
			return svcErr.ErrInvalidMessage
		}
	case db.KindImage, db.KindFile:
		if strings.TrimSpace(p.AttachmentRef) == "" {
			return svcErr.ErrInvalidMessage
		}
	default:
		return svcErr.ErrInvalidMessage
	}
	return nil
}

// Append persists a message and bumps the conversation.
//
// Behavior:
//   - Unknown conversation → ErrNotFound.
//   - Sender not a participant, or match no longer active → ErrForbidden.
//   - Payload not matching its kind → ErrInvalidMessage.
//   - All checks run before anything is written; insert and touch share a
//     transaction so a failure leaves no trace.
func (s *Store) Append(ctx context.Context, conversationID string, sender uint64, kind db.MessageKind, p Payload) (db.Message, error) {
	if _, err := s.registry.Authorize(ctx, conversationID, sender, true); err != nil {
		return db.Message{}, err
	}
	if err := Validate(kind, p); err != nil {
		return db.Message{}, err
	}

	msg := db.Message{
		ConversationID: conversationID,
		SenderID:       sender,
		Kind:           kind,
		TextContent:    p.Text,
		AttachmentRef:  p.AttachmentRef,
		CreatedAt:      s.clock.Next(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.messages.WithTx(tx).Create(ctx, &msg); err != nil {
			return err
		}
		return s.registry.WithTx(tx).Touch(ctx, conversationID, msg.CreatedAt)
	})
	if err != nil {
		return db.Message{}, err
	}

	metrics.RecordMessage(string(kind))
	s.log.Debug("message appended", "conversation_id", conversationID, "message_id", msg.ID, "sender", sender, "kind", kind)
	return msg, nil
}

// MarkRead flips one message to read on behalf of reader.
//
// Behavior:
//   - Unknown message → ErrNotFound.
//   - Reader is the sender, or not a participant → ErrForbidden.
//   - Already read → returned as is, readAt unchanged.
func (s *Store) MarkRead(ctx context.Context, messageID string, reader uint64) (db.Message, error) {
	msg, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return db.Message{}, err
	}
	if msg.SenderID == reader {
		return db.Message{}, svcErr.ErrForbidden
	}
	if _, err := s.registry.Authorize(ctx, msg.ConversationID, reader, false); err != nil {
		return db.Message{}, err
	}
	if msg.IsRead {
		return msg, nil
	}

	if err := s.messages.MarkRead(ctx, msg.ID, now()); err != nil {
		return db.Message{}, err
	}
	return s.messages.Get(ctx, msg.ID)
}

// MarkReadIn is MarkRead restricted to one conversation: a message from any
// other conversation is reported as ErrNotFound.
func (s *Store) MarkReadIn(ctx context.Context, conversationID, messageID string, reader uint64) (db.Message, error) {
	msg, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return db.Message{}, err
	}
	if msg.ConversationID != conversationID {
		return db.Message{}, svcErr.ErrNotFound
	}
	return s.MarkRead(ctx, messageID, reader)
}

// MarkAllRead marks every unread message in the conversation not sent by
// reader. Returns how many changed.
func (s *Store) MarkAllRead(ctx context.Context, conversationID string, reader uint64) (int64, error) {
	if _, err := s.registry.Authorize(ctx, conversationID, reader, false); err != nil {
		return 0, err
	}
	n, err := s.messages.MarkAllRead(ctx, conversationID, reader, now())
	if err != nil {
		return 0, err
	}
	s.log.Debug("conversation marked read", "conversation_id", conversationID, "reader", reader, "count", n)
	return n, nil
}

// List pages through the conversation oldest first. History stays readable
// to both participants after an unmatch.
func (s *Store) List(ctx context.Context, conversationID string, viewer uint64, token *string, limit int) ([]db.Message, *string, error) {
	if _, err := s.registry.Authorize(ctx, conversationID, viewer, false); err != nil {
		return nil, nil, err
	}
	return s.messages.List(ctx, conversationID, token, limit)
}

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
