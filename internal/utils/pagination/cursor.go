package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Cursor is the opaque pagination state we encode/decode.
// ID + UnixMilli establish a stable keyset position: rows are ordered by
// (timestamp, id) and the cursor remembers the last row handed out.
type Cursor struct {
	ID        string `json:"id"`
	UnixMilli int64  `json:"ts,omitempty"`
}

// IsZero reports whether the cursor points at the first page.
func (c Cursor) IsZero() bool {
	return c.ID == "" && c.UnixMilli == 0
}

// Time returns the cursor timestamp in UTC.
func (c Cursor) Time() time.Time {
	return time.UnixMilli(c.UnixMilli).UTC()
}

// At builds a cursor for a row identified by id with the given timestamp.
func At(id string, ts time.Time) Cursor {
	return Cursor{ID: id, UnixMilli: ts.UnixMilli()}
}

// Encode converts a Cursor into a Base64 string.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Decode parses a Base64 string into a Cursor.
// Empty token → empty cursor (first page).
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, svcErr.Invalid("invalid pagination token")
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, svcErr.Invalid("invalid pagination token")
	}
	return c, nil
}

// Limit clamps a requested page size into [1, MaxLimit], using DefaultLimit for zero.
func Limit(requested int) int {
	switch {
	case requested <= 0:
		return DefaultLimit
	case requested > MaxLimit:
		return MaxLimit
	default:
		return requested
	}
}

// Deref safely dereferences a string pointer for pagination tokens.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
