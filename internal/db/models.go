package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Decision is the verdict a user gives on another user's profile.
type Decision string

const (
	DecisionLike      Decision = "like"
	DecisionPass      Decision = "pass"
	DecisionSuperLike Decision = "super_like"
)

// Valid reports whether d is one of the known decisions.
func (d Decision) Valid() bool {
	switch d {
	case DecisionLike, DecisionPass, DecisionSuperLike:
		return true
	}
	return false
}

// Positive reports whether d counts towards a mutual like.
func (d Decision) Positive() bool {
	return d == DecisionLike || d == DecisionSuperLike
}

// MessageKind is the payload type of a chat message.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
	KindFile  MessageKind = "file"
)

// User table. Owned by the account service; we only read it.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Active       bool   `gorm:"default:true"`
	LastLoginAt  time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Profile holds the matching attributes and the per-user counters.
//
// Gender: M, F, O. LookingFor: M, F, B (both).
// SwipeCount and MatchCount are only ever changed with "col = col + 1"
// updates so concurrent swipes never lose increments.
type Profile struct {
	UserID           uint64 `gorm:"primaryKey;autoIncrement:false"`
	DisplayName      string `gorm:"size:64"`
	Bio              string `gorm:"size:500"`
	Gender           string `gorm:"size:1;not null;index:idx_profile_gender_looking,priority:1"`
	LookingFor       string `gorm:"size:1;not null;index:idx_profile_gender_looking,priority:2"`
	BirthDate        *time.Time
	City             string `gorm:"size:100"`
	Country          string `gorm:"size:100"`
	Latitude         *float64
	Longitude        *float64
	MaxDistanceKm    int       `gorm:"not null;default:50"`
	MinAgePreference int       `gorm:"not null;default:18"`
	MaxAgePreference int       `gorm:"not null;default:35"`
	SwipeCount       int64     `gorm:"not null;default:0"`
	MatchCount       int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// Age returns the age in full years at the given instant, or -1 when unknown.
func (p Profile) Age(at time.Time) int {
	if p.BirthDate == nil {
		return -1
	}
	b := p.BirthDate.UTC()
	at = at.UTC()
	age := at.Year() - b.Year()
	if at.Month() < b.Month() || (at.Month() == b.Month() && at.Day() < b.Day()) {
		age--
	}
	return age
}

// Swipe is an immutable like/pass decision by FromUserID about ToUserID.
//
// Unique index idx_swipe_pair(from_user_id, to_user_id):
//   - at most one decision per ordered pair; a second insert is a duplicate.
//
// Index idx_swipe_to_decision(to_user_id, decision, created_at DESC):
//   - "who liked me" lists and the reciprocal-like probe.
type Swipe struct {
	ID         string    `gorm:"primaryKey;size:36"`
	FromUserID uint64    `gorm:"not null;uniqueIndex:idx_swipe_pair,priority:1"`
	ToUserID   uint64    `gorm:"not null;uniqueIndex:idx_swipe_pair,priority:2;index:idx_swipe_to_decision,priority:1"`
	Decision   Decision  `gorm:"size:16;not null;index:idx_swipe_to_decision,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_swipe_to_decision,priority:3,sort:desc"`
}

// Match is a mutual like. UserLow < UserHigh always, so a pair maps to one row
// whichever side swiped last; idx_match_pair enforces it.
type Match struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserLow    uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:1"`
	UserHigh   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:2;index"`
	IsActive   bool      `gorm:"not null;default:true"`
	MatchedAt  time.Time `gorm:"autoCreateTime"`
	SeenByLow  bool      `gorm:"not null;default:false"`
	SeenByHigh bool      `gorm:"not null;default:false"`
}

// Has reports whether userID is one of the two participants.
func (m Match) Has(userID uint64) bool {
	return m.UserLow == userID || m.UserHigh == userID
}

// Other returns the participant that is not userID.
func (m Match) Other(userID uint64) uint64 {
	if m.UserLow == userID {
		return m.UserHigh
	}
	return m.UserLow
}

// Conversation is bound 1:1 to a Match and created together with it.
type Conversation struct {
	ID        string    `gorm:"primaryKey;size:36"`
	MatchID   string    `gorm:"size:36;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"index"`
}

// Message is append-only apart from the unread → read transition.
type Message struct {
	ID             string      `gorm:"primaryKey;size:36"`
	ConversationID string      `gorm:"size:36;not null;index:idx_message_conversation_created,priority:1"`
	SenderID       uint64      `gorm:"not null"`
	Kind           MessageKind `gorm:"size:8;not null;default:text"`
	TextContent    string      `gorm:"type:text"`
	AttachmentRef  string      `gorm:"size:512"`
	IsRead         bool        `gorm:"not null;default:false"`
	ReadAt         *time.Time
	CreatedAt      time.Time `gorm:"not null;index:idx_message_conversation_created,priority:2"`
}

func (s *Swipe) BeforeCreate(*gorm.DB) error        { s.ID = ensureID(s.ID); return nil }
func (m *Match) BeforeCreate(*gorm.DB) error        { m.ID = ensureID(m.ID); return nil }
func (c *Conversation) BeforeCreate(*gorm.DB) error { c.ID = ensureID(c.ID); return nil }
func (m *Message) BeforeCreate(*gorm.DB) error      { m.ID = ensureID(m.ID); return nil }

func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// AllModels lists every table managed by AutoMigrate.
func AllModels() []any {
	return []any{&User{}, &Profile{}, &Swipe{}, &Match{}, &Conversation{}, &Message{}}
}
