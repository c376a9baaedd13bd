package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

type identityContextKey string

const identityKey identityContextKey = "auth_identity"

// Identity is the authenticated caller.
type Identity struct {
	UserID    uint64
	ExpiresAt time.Time
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// UserID returns the caller id or ErrUnauthenticated.
func UserID(ctx context.Context) (uint64, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity.UserID == 0 {
		return 0, svcErr.ErrUnauthenticated
	}
	return identity.UserID, nil
}

// BearerToken strips the "Bearer " prefix, case-insensitively.
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// TokenFromRequest reads the credential from ?token= first, then from the
// Authorization header. Browsers cannot set headers on a websocket handshake.
func TokenFromRequest(r *http.Request) string {
	if tok := strings.TrimSpace(r.URL.Query().Get("token")); tok != "" {
		return tok
	}
	return BearerToken(r.Header.Get("Authorization"))
}
