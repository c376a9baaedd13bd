package realtime

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/oggyb/muzz-match/internal/auth"
	"github.com/oggyb/muzz-match/internal/chat"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

// Handler upgrades /ws/conversations/{conversationID} into a live session.
// Authentication and participation are checked before the upgrade, so a
// rejected client gets a plain HTTP status.
type Handler struct {
	hub      *Hub
	verifier auth.Verifier
	registry *chat.Registry
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewHandler(hub *Hub, verifier auth.Verifier, registry *chat.Registry, allowedOrigins []string, log *slog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		verifier: verifier,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	s := h.hub.NewSession(conversationID)

	identity, err := h.verifier.Verify(auth.TokenFromRequest(r))
	if err != nil {
		s.Close()
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	s.authenticate(identity.UserID)

	if _, err := h.registry.Authorize(r.Context(), conversationID, identity.UserID, true); err != nil {
		s.Close()
		switch {
		case errors.Is(err, svcErr.ErrNotFound):
			http.Error(w, "conversation not found", http.StatusNotFound)
		case errors.Is(err, svcErr.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			h.log.Error("authorize socket failed", "conversation_id", conversationID, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the response
		h.log.Debug("upgrade failed", "err", err)
		s.Close()
		return
	}
	s.attach(conn)

	if err := h.hub.Join(r.Context(), s); err != nil {
		s.Close()
		return
	}
	s.run()
}

// originChecker allows every origin when the list is empty.
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.ToLower(strings.TrimSpace(o))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}
