package realtime

import (
	"context"
	"time"

	"github.com/oggyb/muzz-match/internal/cache"
)

// Tracker keeps presence and typing state in Redis. Nothing here is durable:
// presence is a per-user count of joined sessions, typing a per-conversation
// hash that expires when nobody writes to it.
type Tracker struct {
	cache     *cache.RedisCache
	typingTTL time.Duration
	now       func() time.Time
}

func NewTracker(rc *cache.RedisCache, typingTTL time.Duration) *Tracker {
	if typingTTL <= 0 {
		typingTTL = 30 * time.Second
	}
	return &Tracker{cache: rc, typingTTL: typingTTL, now: time.Now}
}

// Online registers a joined session of userID.
func (t *Tracker) Online(ctx context.Context, userID uint64) error {
	_, err := t.cache.IncrOnline(ctx, userID)
	return err
}

// Offline drops one session and reports whether the user is now fully offline.
func (t *Tracker) Offline(ctx context.Context, userID uint64) (bool, error) {
	n, err := t.cache.DecrOnline(ctx, userID, t.now().UTC())
	if err != nil {
		return true, err
	}
	return n == 0, nil
}

// IsOnline reports whether userID has at least one joined session.
func (t *Tracker) IsOnline(ctx context.Context, userID uint64) (bool, error) {
	n, err := t.cache.OnlineCount(ctx, userID)
	return n > 0, err
}

// LastSeen is the moment the user's last session closed.
func (t *Tracker) LastSeen(ctx context.Context, userID uint64) (time.Time, error) {
	return t.cache.LastSeen(ctx, userID)
}

// SetTyping overwrites the user's typing flag in a conversation.
func (t *Tracker) SetTyping(ctx context.Context, conversationID string, userID uint64, typing bool) error {
	return t.cache.SetTyping(ctx, conversationID, userID, typing, t.typingTTL)
}

// ClearTyping removes the entry and reports whether the user was flagged as typing.
func (t *Tracker) ClearTyping(ctx context.Context, conversationID string, userID uint64) (bool, error) {
	typing, err := t.isTyping(ctx, conversationID, userID)
	if err != nil {
		return false, err
	}
	if _, err := t.cache.ClearTyping(ctx, conversationID, userID); err != nil {
		return false, err
	}
	return typing, nil
}

// Typing lists users currently typing in a conversation.
func (t *Tracker) Typing(ctx context.Context, conversationID string) ([]uint64, error) {
	return t.cache.Typing(ctx, conversationID)
}

func (t *Tracker) isTyping(ctx context.Context, conversationID string, userID uint64) (bool, error) {
	users, err := t.cache.Typing(ctx, conversationID)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u == userID {
			return true, nil
		}
	}
	return false, nil
}
