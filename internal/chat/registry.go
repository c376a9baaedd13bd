package chat

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/identity"
	"github.com/oggyb/muzz-match/internal/repository"
)

// Participants binds a conversation to the two users of its match.
type Participants struct {
	Conversation db.Conversation
	Match        db.Match
}

// Has reports whether userID is one of the two participants.
func (p Participants) Has(userID uint64) bool { return p.Match.Has(userID) }

// Other returns the participant that is not userID.
func (p Participants) Other(userID uint64) uint64 { return p.Match.Other(userID) }

// Active is false once the match was undone.
func (p Participants) Active() bool { return p.Match.IsActive }

// ConversationView is a conversation rendered for one viewer.
type ConversationView struct {
	Conversation db.Conversation
	Match        db.Match
	LastMessage  *db.Message
	UnreadCount  int64
	Other        identity.Summary
}

// Registry owns conversations: exactly one per match, created together with it.
type Registry struct {
	conversations *repository.ConversationRepository
	matches       *repository.MatchRepository
	messages      *repository.MessageRepository
	directory     *identity.Directory
	log           *slog.Logger
}

func NewRegistry(gdb *gorm.DB, directory *identity.Directory, log *slog.Logger) *Registry {
	return &Registry{
		conversations: repository.NewConversationRepository(gdb),
		matches:       repository.NewMatchRepository(gdb),
		messages:      repository.NewMessageRepository(gdb),
		directory:     directory,
		log:           log,
	}
}

// WithTx returns a copy of the registry that runs on tx.
func (r *Registry) WithTx(tx *gorm.DB) *Registry {
	cp := *r
	cp.conversations = r.conversations.WithTx(tx)
	cp.matches = r.matches.WithTx(tx)
	cp.messages = r.messages.WithTx(tx)
	return &cp
}

// EnsureForMatch creates the conversation of m on the caller's transaction.
// Idempotent: a second call returns the existing row.
func (r *Registry) EnsureForMatch(ctx context.Context, tx *gorm.DB, m db.Match) (db.Conversation, error) {
	at := m.MatchedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	conv, err := r.conversations.WithTx(tx).EnsureForMatch(ctx, m.ID, at)
	if err != nil {
		return db.Conversation{}, err
	}
	r.log.Debug("conversation ensured", "conversation_id", conv.ID, "match_id", m.ID)
	return conv, nil
}

// GetConversation returns the conversation of a match.
func (r *Registry) GetConversation(ctx context.Context, matchID string) (db.Conversation, error) {
	return r.conversations.GetByMatch(ctx, matchID)
}

// Participants loads the conversation together with its match.
func (r *Registry) Participants(ctx context.Context, conversationID string) (Participants, error) {
	conv, err := r.conversations.Get(ctx, conversationID)
	if err != nil {
		return Participants{}, err
	}
	m, err := r.matches.Get(ctx, conv.MatchID)
	if err != nil {
		return Participants{}, err
	}
	return Participants{Conversation: conv, Match: m}, nil
}

// Authorize returns the participants when userID belongs to the conversation,
// ErrForbidden otherwise. With requireActive an unmatched pair is also Forbidden.
func (r *Registry) Authorize(ctx context.Context, conversationID string, userID uint64, requireActive bool) (Participants, error) {
	p, err := r.Participants(ctx, conversationID)
	if err != nil {
		return Participants{}, err
	}
	if !p.Has(userID) || (requireActive && !p.Active()) {
		return Participants{}, svcErr.ErrForbidden
	}
	return p, nil
}

// ListForUser returns conversations of the user's active matches, most
// recently updated first.
func (r *Registry) ListForUser(ctx context.Context, userID uint64) ([]db.Conversation, error) {
	return r.conversations.ListForUser(ctx, userID)
}

// Touch bumps updated_at. Called after every accepted message.
func (r *Registry) Touch(ctx context.Context, conversationID string, at time.Time) error {
	return r.conversations.Touch(ctx, conversationID, at)
}

// RenderConversation builds the viewer's summary of conv: last message, unread
// count and the other participant.
func (r *Registry) RenderConversation(ctx context.Context, conv db.Conversation, viewerID uint64) (ConversationView, error) {
	m, err := r.matches.Get(ctx, conv.MatchID)
	if err != nil {
		return ConversationView{}, err
	}
	if !m.Has(viewerID) {
		return ConversationView{}, svcErr.ErrForbidden
	}

	last, err := r.messages.Latest(ctx, conv.ID)
	if err != nil {
		return ConversationView{}, err
	}
	unread, err := r.messages.CountUnread(ctx, conv.ID, viewerID)
	if err != nil {
		return ConversationView{}, err
	}
	other, err := r.directory.Summary(ctx, m.Other(viewerID))
	if err != nil {
		return ConversationView{}, err
	}

	return ConversationView{
		Conversation: conv,
		Match:        m,
		LastMessage:  last,
		UnreadCount:  unread,
		Other:        other,
	}, nil
}

// ListViews renders every listed conversation of the viewer.
func (r *Registry) ListViews(ctx context.Context, viewerID uint64) ([]ConversationView, error) {
	convs, err := r.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	views := make([]ConversationView, 0, len(convs))
	for _, c := range convs {
		v, err := r.RenderConversation(ctx, c, viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
