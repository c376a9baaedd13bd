package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

// ConversationRepository stores the one conversation that belongs to each match.
type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(database *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: database}
}

// WithTx returns a copy of the repository that runs on tx.
func (r *ConversationRepository) WithTx(tx *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: tx}
}

// EnsureForMatch creates the conversation for matchID if it does not exist and
// returns whichever row is stored. Safe to call any number of times.
func (r *ConversationRepository) EnsureForMatch(ctx context.Context, matchID string, at time.Time) (db.Conversation, error) {
	conv := db.Conversation{MatchID: matchID, CreatedAt: at, UpdatedAt: at}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&conv).Error
	if err != nil {
		return db.Conversation{}, svcErr.FromStore(err)
	}
	return r.GetByMatch(ctx, matchID)
}

// GetByMatch loads the conversation bound to a match.
func (r *ConversationRepository) GetByMatch(ctx context.Context, matchID string) (db.Conversation, error) {
	var conv db.Conversation
	err := r.db.WithContext(ctx).Where("match_id = ?", matchID).First(&conv).Error
	return conv, svcErr.FromStore(err)
}

// Get loads a conversation by id.
func (r *ConversationRepository) Get(ctx context.Context, id string) (db.Conversation, error) {
	var conv db.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	return conv, svcErr.FromStore(err)
}

// ListForUser returns the conversations of the user's active matches, most
// recently updated first.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Conversation, error) {
	var convs []db.Conversation
	err := r.db.WithContext(ctx).
		Table("conversations c").
		Select("c.*").
		Joins("JOIN matches m ON m.id = c.match_id").
		Where("(m.user_low = ? OR m.user_high = ?) AND m.is_active = ?", userID, userID, true).
		Order("c.updated_at DESC, c.id DESC").
		Find(&convs).Error
	if err != nil {
		return nil, svcErr.FromStore(err)
	}
	return convs, nil
}

// Touch moves updated_at forward. Older timestamps never win.
func (r *ConversationRepository) Touch(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&db.Conversation{}).
		Where("id = ? AND updated_at < ?", id, at).
		UpdateColumn("updated_at", at).Error
	return svcErr.FromStore(err)
}
