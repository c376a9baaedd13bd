package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/oggyb/muzz-match/internal/chat"
	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/metrics"
)

// room is the member set of one conversation. Membership changes hold both
// the hub lock and the room lock; readers only need the room lock.
type room struct {
	mu      sync.RWMutex
	members map[*Session]struct{}
}

func (r *room) snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.members))
	for m := range r.members {
		out = append(out, m)
	}
	return out
}

// Hub tracks live sessions per conversation and fans events out to them.
// Delivery is best-effort: a slow session drops events instead of stalling
// everyone else.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room

	tracker *Tracker
	store   *chat.Store
	opts    Options
	log     *slog.Logger
}

var _ chat.Notifier = (*Hub)(nil)

func NewHub(tracker *Tracker, store *chat.Store, opts Options, log *slog.Logger) *Hub {
	return &Hub{
		rooms:   make(map[string]*room),
		tracker: tracker,
		store:   store,
		opts:    opts.withDefaults(),
		log:     log.With("component", "realtime_hub"),
	}
}

// NewSession creates a session in Connecting state for a conversation.
func (h *Hub) NewSession(conversationID string) *Session {
	return newSession(h, conversationID, h.opts, h.log)
}

// Join moves an authenticated session into its conversation room, marks the
// user online and tells the rest of the room.
func (h *Hub) Join(ctx context.Context, s *Session) error {
	s.presence.Lock()
	defer s.presence.Unlock()

	h.mu.Lock()
	if !s.state.advance(StateAuthenticated, StateJoinedRoom) {
		h.mu.Unlock()
		return svcErr.Invalid("session cannot join from state %s", s.State())
	}
	r, ok := h.rooms[s.ConversationID]
	if !ok {
		r = &room{members: make(map[*Session]struct{})}
		h.rooms[s.ConversationID] = r
	}
	r.mu.Lock()
	peers := make(map[uint64]struct{})
	for m := range r.members {
		if m.UserID != s.UserID {
			peers[m.UserID] = struct{}{}
		}
	}
	r.members[s] = struct{}{}
	r.mu.Unlock()
	h.mu.Unlock()

	metrics.SessionJoined()
	if err := h.tracker.Online(ctx, s.UserID); err != nil {
		s.log.Warn("presence online failed", "err", err)
	}

	// the joiner learns who is already here
	for peer := range peers {
		s.reply(presenceEvent(s.ConversationID, peer, PresenceOnline))
	}
	h.Broadcast(s.ConversationID, presenceEvent(s.ConversationID, s.UserID, PresenceOnline), s)
	s.log.Info("session joined")
	return nil
}

// leave is called once by Session.Close for sessions that had joined.
//
// The room hears typing:false and offline once the user has no session left
// in that room, whatever the user still has open elsewhere. The global
// counter only decides last_seen.
func (h *Hub) leave(s *Session) {
	s.presence.Lock()
	defer s.presence.Unlock()

	lastInRoom := true
	h.mu.Lock()
	if r, ok := h.rooms[s.ConversationID]; ok {
		r.mu.Lock()
		delete(r.members, s)
		for m := range r.members {
			if m.UserID == s.UserID {
				lastInRoom = false
				break
			}
		}
		empty := len(r.members) == 0
		r.mu.Unlock()
		if empty {
			delete(h.rooms, s.ConversationID)
		}
	}
	h.mu.Unlock()
	metrics.SessionLeft()

	ctx, cancel := context.WithTimeout(context.Background(), h.opts.OpTimeout)
	defer cancel()

	offline, err := h.tracker.Offline(ctx, s.UserID)
	if err != nil {
		s.log.Warn("presence offline failed", "err", err)
	}
	if lastInRoom {
		wasTyping, err := h.tracker.ClearTyping(ctx, s.ConversationID, s.UserID)
		if err != nil {
			s.log.Warn("clear typing failed", "err", err)
		}
		if wasTyping {
			h.Broadcast(s.ConversationID, typingEvent(s.ConversationID, s.UserID, false), nil)
		}
		h.Broadcast(s.ConversationID, presenceEvent(s.ConversationID, s.UserID, PresenceOffline), nil)
	}
	s.log.Info("session left", "left_room", lastInRoom, "offline", offline)
}

// Broadcast delivers evt to every session in the conversation except one.
// It never blocks on a slow receiver.
func (h *Hub) Broadcast(conversationID string, evt Outbound, except *Session) {
	members := h.members(conversationID)
	if len(members) == 0 {
		return
	}
	frame, err := json.Marshal(evt)
	if err != nil {
		h.log.Error("marshal event failed", "type", evt.Type, "err", err)
		return
	}
	for _, m := range members {
		if m == except {
			continue
		}
		if m.enqueue(frame) {
			metrics.RecordEvent(evt.Type, "out")
		}
	}
}

func (h *Hub) members(conversationID string) []*Session {
	h.mu.RLock()
	r, ok := h.rooms[conversationID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return r.snapshot()
}

// RoomSize returns how many sessions are joined to a conversation.
func (h *Hub) RoomSize(conversationID string) int {
	return len(h.members(conversationID))
}

// MessageCreated pushes a message persisted outside the socket (the RPC
// path) to everyone in the room.
func (h *Hub) MessageCreated(m db.Message) {
	h.Broadcast(m.ConversationID, messageEvent(TypeNewMessage, m), nil)
}

func (h *Hub) MessageRead(m db.Message) {
	h.Broadcast(m.ConversationID, messageEvent(TypeMessageRead, m), nil)
}

// ConversationClosed tells every session the conversation is gone, then
// closes them.
func (h *Hub) ConversationClosed(conversationID string) {
	members := h.members(conversationID)
	evt := Outbound{
		Type:           TypeConversationClosed,
		ConversationID: conversationID,
		At:             time.Now().UTC(),
	}
	for _, m := range members {
		m.reply(evt)
	}
	for _, m := range members {
		m.Close()
	}
	if len(members) > 0 {
		h.log.Info("conversation closed", "conversation_id", conversationID, "sessions", len(members))
	}
}

// Shutdown closes every live session.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	rooms := make([]*room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	var all []*Session
	for _, r := range rooms {
		all = append(all, r.snapshot()...)
	}
	for _, m := range all {
		m.Close()
	}
}
