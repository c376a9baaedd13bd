package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

// MatchRepository stores mutual likes keyed by the canonical (low, high) pair.
type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// WithTx returns a copy of the repository that runs on tx.
func (r *MatchRepository) WithTx(tx *gorm.DB) *MatchRepository {
	return &MatchRepository{db: tx}
}

// Canonical orders a pair so that low < high.
func Canonical(a, b uint64) (low, high uint64) {
	if a > b {
		return b, a
	}
	return a, b
}

// CreateIfAbsent inserts m unless a match for the same pair exists.
//
// Behavior:
//   - m.UserLow/UserHigh must already be canonical.
//   - Relies on idx_match_pair; the loser of a race inserts nothing.
//   - Returns true when this call created the row.
func (r *MatchRepository) CreateIfAbsent(ctx context.Context, m *db.Match) (bool, error) {
	m.IsActive = true
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if res.Error != nil {
		return false, svcErr.FromStore(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// GetByPair loads the match for two users in either order.
func (r *MatchRepository) GetByPair(ctx context.Context, a, b uint64) (db.Match, error) {
	low, high := Canonical(a, b)
	var m db.Match
	err := r.db.WithContext(ctx).
		Where("user_low = ? AND user_high = ?", low, high).
		First(&m).Error
	return m, svcErr.FromStore(err)
}

// Get loads a match by id.
func (r *MatchRepository) Get(ctx context.Context, id string) (db.Match, error) {
	var m db.Match
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	return m, svcErr.FromStore(err)
}

// ListActiveForUser returns the user's active matches, newest first.
func (r *MatchRepository) ListActiveForUser(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("(user_low = ? OR user_high = ?) AND is_active = ?", userID, userID, true).
		Order("matched_at DESC, id DESC").
		Find(&matches).Error
	if err != nil {
		return nil, svcErr.FromStore(err)
	}
	return matches, nil
}

// MarkSeen flips the seen flag belonging to userID. Never resets it.
func (r *MatchRepository) MarkSeen(ctx context.Context, m db.Match, userID uint64) error {
	column := "seen_by_high"
	if m.UserLow == userID {
		column = "seen_by_low"
	}
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("id = ?", m.ID).
		UpdateColumn(column, true).Error
	return svcErr.FromStore(err)
}

// Deactivate marks a match inactive. Reports whether the row changed.
func (r *MatchRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("is_active", false)
	if res.Error != nil {
		return false, svcErr.FromStore(res.Error)
	}
	return res.RowsAffected == 1, nil
}
