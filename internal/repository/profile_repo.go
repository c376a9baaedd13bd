package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
)

// ProfileRepository reads profiles and owns the counter columns.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// WithTx returns a copy of the repository that runs on tx.
func (r *ProfileRepository) WithTx(tx *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

// Get loads one profile.
func (r *ProfileRepository) Get(ctx context.Context, userID uint64) (db.Profile, error) {
	var p db.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	return p, svcErr.FromStore(err)
}

// GetMany loads profiles by id. Missing ids are simply absent from the map.
func (r *ProfileRepository) GetMany(ctx context.Context, userIDs []uint64) (map[uint64]db.Profile, error) {
	out := make(map[uint64]db.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var profiles []db.Profile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, svcErr.FromStore(err)
	}
	for _, p := range profiles {
		out[p.UserID] = p
	}
	return out, nil
}

// IncrementSwipeCount bumps swipe_count in a single statement.
func (r *ProfileRepository) IncrementSwipeCount(ctx context.Context, userID uint64) error {
	return r.increment(ctx, "swipe_count", userID)
}

// IncrementMatchCount bumps match_count of every given user in a single statement.
func (r *ProfileRepository) IncrementMatchCount(ctx context.Context, userIDs ...uint64) error {
	return r.increment(ctx, "match_count", userIDs...)
}

func (r *ProfileRepository) increment(ctx context.Context, column string, userIDs ...uint64) error {
	err := r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Where("user_id IN ?", userIDs).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
	return svcErr.FromStore(err)
}

// CandidateFilter narrows the discovery candidate query.
type CandidateFilter struct {
	Viewer  db.Profile
	Exclude []uint64
	Limit   int
	Offset  int
}

// Candidates returns profiles whose gender/looking-for pairing is compatible
// with the viewer, skipping excluded ids. Age and distance are refined by the caller.
//
// Behavior:
//   - candidate.gender must be wanted by the viewer (or viewer looks for B).
//   - viewer.gender must be wanted by the candidate (or candidate looks for B).
//   - Ordered by most recently updated first.
func (r *ProfileRepository) Candidates(ctx context.Context, f CandidateFilter) ([]db.Profile, error) {
	query := r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Where("user_id <> ?", f.Viewer.UserID).
		Where("looking_for IN ?", []string{f.Viewer.Gender, "B"})

	if f.Viewer.LookingFor != "B" {
		query = query.Where("gender = ?", f.Viewer.LookingFor)
	}
	if len(f.Exclude) > 0 {
		query = query.Where("user_id NOT IN ?", f.Exclude)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var profiles []db.Profile
	if err := query.Order("updated_at DESC, user_id ASC").Find(&profiles).Error; err != nil {
		return nil, svcErr.FromStore(err)
	}
	return profiles, nil
}
