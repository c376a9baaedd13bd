package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/utils/pagination"
)

// MessageRepository persists chat messages. Rows are append-only apart from
// the unread → read flip.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// WithTx returns a copy of the repository that runs on tx.
func (r *MessageRepository) WithTx(tx *gorm.DB) *MessageRepository {
	return &MessageRepository{db: tx}
}

// Create inserts a message. ID is assigned if empty.
func (r *MessageRepository) Create(ctx context.Context, m *db.Message) error {
	return svcErr.FromStore(r.db.WithContext(ctx).Create(m).Error)
}

// Get loads a message by id.
func (r *MessageRepository) Get(ctx context.Context, id string) (db.Message, error) {
	var m db.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	return m, svcErr.FromStore(err)
}

// MarkRead flips one message to read. Already-read rows keep their read_at.
func (r *MessageRepository) MarkRead(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&db.Message{}).
		Where("id = ? AND is_read = ?", id, false).
		UpdateColumns(map[string]any{"is_read": true, "read_at": at}).Error
	return svcErr.FromStore(err)
}

// MarkAllRead flips every unread message in the conversation that reader did
// not send. Returns the number of rows changed.
func (r *MessageRepository) MarkAllRead(ctx context.Context, conversationID string, reader uint64, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&db.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, reader, false).
		UpdateColumns(map[string]any{"is_read": true, "read_at": at})
	if res.Error != nil {
		return 0, svcErr.FromStore(res.Error)
	}
	return res.RowsAffected, nil
}

// Latest returns the newest message in a conversation, or nil if it is empty.
func (r *MessageRepository) Latest(ctx context.Context, conversationID string) (*db.Message, error) {
	var msgs []db.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&msgs).Error
	if err != nil {
		return nil, svcErr.FromStore(err)
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	return &msgs[0], nil
}

// CountUnread counts unread messages addressed to viewer.
func (r *MessageRepository) CountUnread(ctx context.Context, conversationID string, viewer uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, viewer, false).
		Count(&n).Error
	if err != nil {
		return 0, svcErr.FromStore(err)
	}
	return n, nil
}

// List returns messages oldest first, continuing after the cursor.
//
// Behavior:
//   - Ordered by created_at ASC, id ASC.
//   - Supports cursor-based pagination via paginationToken.
func (r *MessageRepository) List(
	ctx context.Context,
	conversationID string,
	paginationToken *string,
	limit int,
) ([]db.Message, *string, error) {
	cursor, err := pagination.Decode(pagination.Deref(paginationToken))
	if err != nil {
		return nil, nil, err
	}
	limit = pagination.Limit(limit)

	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Limit(limit + 1)

	if !cursor.IsZero() {
		ts := cursor.Time()
		query = query.Where(
			"(created_at > ? OR (created_at = ? AND id > ?))",
			ts, ts, cursor.ID,
		)
	}

	var msgs []db.Message
	if err := query.Find(&msgs).Error; err != nil {
		return nil, nil, svcErr.FromStore(err)
	}

	var nextToken *string
	if len(msgs) > limit {
		last := msgs[limit-1]
		token, _ := pagination.Encode(pagination.At(last.ID, last.CreatedAt))
		nextToken = &token
		msgs = msgs[:limit]
	}
	return msgs, nextToken, nil
}
