package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/oggyb/muzz-match/internal/chat"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/metrics"
)

// Options tune a live session.
type Options struct {
	SendBuffer     int
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	EventsPerSec   float64
	EventBurst     int
	OpTimeout      time.Duration
}

// OptionsFromConfig reads the Realtime section.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SendBuffer:     cfg.Realtime.SendBuffer,
		WriteWait:      cfg.Realtime.WriteWait,
		PongWait:       cfg.Realtime.PongWait,
		MaxMessageSize: cfg.Realtime.MaxMessageSize,
		EventsPerSec:   cfg.Realtime.EventsPerSec,
		EventBurst:     cfg.Realtime.EventBurst,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 64
	}
	if o.WriteWait <= 0 {
		o.WriteWait = 10 * time.Second
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = 16 << 10
	}
	if o.EventsPerSec <= 0 {
		o.EventsPerSec = 20
	}
	if o.EventBurst <= 0 {
		o.EventBurst = 40
	}
	if o.OpTimeout <= 0 {
		o.OpTimeout = 5 * time.Second
	}
	return o
}

// send pings a little more often than the peer is expected to answer
func (o Options) pingPeriod() time.Duration { return o.PongWait * 9 / 10 }

// Conn is the part of *websocket.Conn a session uses.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Session is one live connection bound to a single conversation for its
// whole life.
type Session struct {
	ID             string
	UserID         uint64
	ConversationID string

	hub     *Hub
	conn    Conn
	opts    Options
	limiter *rate.Limiter
	log     *slog.Logger

	state     stateBox
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	started   atomic.Bool
	// serializes join and leave so presence counts stay paired
	presence sync.Mutex
}

func newSession(hub *Hub, conversationID string, opts Options, log *slog.Logger) *Session {
	opts = opts.withDefaults()
	id := uuid.NewString()
	return &Session{
		ID:             id,
		ConversationID: conversationID,
		hub:            hub,
		opts:           opts,
		limiter:        rate.NewLimiter(rate.Limit(opts.EventsPerSec), opts.EventBurst),
		log:            log.With("session_id", id, "conversation_id", conversationID),
		send:           make(chan []byte, opts.SendBuffer),
		done:           make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state.load() }

// Done is closed once the session is closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// authenticate binds the verified identity. Connecting → Authenticated.
func (s *Session) authenticate(userID uint64) bool {
	if !s.state.advance(StateConnecting, StateAuthenticated) {
		return false
	}
	s.UserID = userID
	s.log = s.log.With("user_id", userID)
	return true
}

// Close tears the session down exactly once. A joined session leaves its
// room, goes offline and drops its typing flag; others only close.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		prev := s.state.close()
		close(s.done)

		if prev == StateJoinedRoom {
			s.hub.leave(s)
		}
		// with pumps running the writer owns the connection and closes it
		if s.conn != nil && !s.started.Load() {
			_ = s.conn.Close()
		}
		s.log.Debug("session closed", "from_state", prev.String())
	})
}

// attach binds the upgraded connection. Must happen before Join.
func (s *Session) attach(conn Conn) { s.conn = conn }

// run starts the pumps on an attached, joined connection.
func (s *Session) run() {
	s.started.Store(true)
	go s.writePump()
	go s.readPump()
}

// enqueue hands a frame to the writer without blocking. A full queue drops it.
func (s *Session) enqueue(frame []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- frame:
		return true
	default:
		metrics.RecordDropped()
		s.log.Warn("send queue full, dropping event")
		return false
	}
}

func (s *Session) reply(evt Outbound) {
	frame, err := json.Marshal(evt)
	if err != nil {
		s.log.Error("marshal reply failed", "err", err)
		return
	}
	if s.enqueue(frame) {
		metrics.RecordEvent(evt.Type, "out")
	}
}

func (s *Session) replyError(msg string) {
	s.reply(errorEvent(s.ConversationID, msg))
}

func (s *Session) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(s.opts.MaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("connection dropped", "err", err)
			}
			return
		}
		s.handle(data)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(s.opts.pingPeriod())
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
		s.Close()
	}()

	for {
		select {
		case frame := <-s.send:
			if err := s.write(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			s.flush()
			_ = s.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(s.opts.WriteWait),
			)
			return
		}
	}
}

// flush writes whatever is still queued, without waiting for more.
func (s *Session) flush() {
	for {
		select {
		case frame := <-s.send:
			if err := s.write(websocket.TextMessage, frame); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (s *Session) write(messageType int, data []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
	return s.conn.WriteMessage(messageType, data)
}

// handle processes one inbound frame. Nothing in here closes the session.
func (s *Session) handle(data []byte) {
	if s.State() != StateJoinedRoom {
		return
	}
	if !s.limiter.Allow() {
		s.replyError("rate limit exceeded")
		return
	}

	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		s.log.Debug("malformed frame", "err", err)
		s.replyError("malformed payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.OpTimeout)
	defer cancel()

	switch in.Type {
	case TypeChatMessage:
		metrics.RecordEvent(in.Type, "in")
		s.handleChatMessage(ctx, in)
	case TypeTyping:
		metrics.RecordEvent(in.Type, "in")
		s.handleTyping(ctx, in)
	case TypeReadReceipt:
		metrics.RecordEvent(in.Type, "in")
		s.handleReadReceipt(ctx, in)
	default:
		metrics.RecordEvent("unknown", "in")
		s.replyError("unknown event type")
	}
}

func (s *Session) handleChatMessage(ctx context.Context, in Inbound) {
	kind := db.MessageKind(in.Kind)
	if kind == "" {
		kind = db.KindText
	}

	msg, err := s.hub.store.Append(ctx, s.ConversationID, s.UserID, kind, chat.Payload{
		Text:          in.Content,
		AttachmentRef: in.AttachmentRef,
	})
	switch {
	case errors.Is(err, svcErr.ErrInvalidMessage):
		// nothing to deliver
		return
	case err != nil:
		s.log.Warn("append failed", "err", err)
		s.replyError(publicError(err))
		return
	}

	s.reply(messageEvent(TypeMessageSent, msg))
	s.hub.Broadcast(s.ConversationID, messageEvent(TypeNewMessage, msg), s)
}

func (s *Session) handleTyping(ctx context.Context, in Inbound) {
	if in.IsTyping == nil {
		s.replyError("is_typing is required")
		return
	}
	if err := s.hub.tracker.SetTyping(ctx, s.ConversationID, s.UserID, *in.IsTyping); err != nil {
		// ephemeral state; peers still get the event
		s.log.Warn("typing state write failed", "err", err)
	}
	s.hub.Broadcast(s.ConversationID, typingEvent(s.ConversationID, s.UserID, *in.IsTyping), s)
}

func (s *Session) handleReadReceipt(ctx context.Context, in Inbound) {
	if in.MessageID == "" {
		s.replyError("message_id is required")
		return
	}
	msg, err := s.hub.store.MarkReadIn(ctx, s.ConversationID, in.MessageID, s.UserID)
	if err != nil {
		s.replyError(publicError(err))
		return
	}
	s.hub.Broadcast(s.ConversationID, messageEvent(TypeMessageRead, msg), nil)
}

// publicError maps domain errors to the short codes clients see.
func publicError(err error) string {
	switch {
	case errors.Is(err, svcErr.ErrForbidden):
		return "forbidden"
	case errors.Is(err, svcErr.ErrNotFound):
		return "not_found"
	case errors.Is(err, svcErr.ErrTransientStore):
		return "unavailable"
	default:
		return "internal"
	}
}
