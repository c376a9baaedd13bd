package repository

import (
	"context"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/utils/pagination"
)

// positive decisions, as a SQL list
var positiveDecisions = []db.Decision{db.DecisionLike, db.DecisionSuperLike}

// SwipeRepository provides data access methods for the Swipe model.
// It encapsulates all queries related to likes/passes between users.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// WithTx returns a copy of the repository that runs on tx.
func (r *SwipeRepository) WithTx(tx *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: tx}
}

// Create inserts an immutable swipe from swipe.FromUserID to swipe.ToUserID.
//
// Behavior:
//   - The (from_user_id, to_user_id) unique index rejects a second decision.
//   - Insert uses ON CONFLICT DO NOTHING; zero rows affected → ErrDuplicateSwipe.
//   - On success swipe.ID and swipe.CreatedAt are populated.
//
// Example:
//
//	repo.Create(ctx, &db.Swipe{FromUserID: 1, ToUserID: 2, Decision: db.DecisionLike})
func (r *SwipeRepository) Create(ctx context.Context, swipe *db.Swipe) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(swipe)
	if res.Error != nil {
		return svcErr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return svcErr.ErrDuplicateSwipe
	}
	return nil
}

// FindReciprocal returns the positive swipe to → from, or nil when there is none.
//
// Example:
//
//	repo.FindReciprocal(ctx, 1, 2) // -> user 2's like on user 1, if any
func (r *SwipeRepository) FindReciprocal(ctx context.Context, from, to uint64) (*db.Swipe, error) {
	var swipes []db.Swipe
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND decision IN ?", to, from, positiveDecisions).
		Limit(1).
		Find(&swipes).Error
	if err != nil {
		return nil, svcErr.FromStore(err)
	}
	if len(swipes) == 0 {
		return nil, nil
	}
	return &swipes[0], nil
}

// SwipedTargets lists every user that from has already decided on, pass included.
func (r *SwipeRepository) SwipedTargets(ctx context.Context, from uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("from_user_id = ?", from).
		Pluck("to_user_id", &ids).Error
	if err != nil {
		return nil, svcErr.FromStore(err)
	}
	return ids, nil
}

// GetLikers returns all users who liked the given recipient.
//
// Behavior:
//   - Only swipes where to_user_id = X and decision is like/super_like are returned.
//   - Excludes users that the recipient explicitly passed.
//   - Ordered by created_at DESC, from_user_id DESC.
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	repo.GetLikers(ctx, 42, nil, 20) // list first 20 people who liked user 42
func (r *SwipeRepository) GetLikers(
	ctx context.Context,
	recipientID uint64,
	paginationToken *string,
	limit int,
) ([]db.Swipe, *string, error) {
	return r.pageLikers(r.likersQuery(ctx, recipientID), paginationToken, limit)
}

// GetNewLikers returns users who liked the recipient but have not been liked back.
//
// Behavior:
//   - Same base set as GetLikers.
//   - Excludes mutual likes (recipient already liked them back).
//   - Ordered by created_at DESC, from_user_id DESC.
//
// Example:
//
//	repo.GetNewLikers(ctx, 42, nil, 20) // list first 20 one-way likes for user 42
func (r *SwipeRepository) GetNewLikers(
	ctx context.Context,
	recipientID uint64,
	paginationToken *string,
	limit int,
) ([]db.Swipe, *string, error) {
	// subquery to exclude mutual likes
	mutual := r.db.
		Table("swipes").
		Select("1").
		Where("from_user_id = s.to_user_id AND to_user_id = s.from_user_id AND decision IN ?", positiveDecisions)

	query := r.likersQuery(ctx, recipientID).Where("NOT EXISTS (?)", mutual)
	return r.pageLikers(query, paginationToken, limit)
}

// CountLikers returns how many users liked the given recipient.
//
// Behavior:
//   - Same filter as GetLikers.
//   - Used in conjunction with Redis cache (DB is fallback).
func (r *SwipeRepository) CountLikers(ctx context.Context, recipientID uint64) (int64, error) {
	var count int64
	if err := r.likersQuery(ctx, recipientID).Count(&count).Error; err != nil {
		return 0, svcErr.FromStore(err)
	}
	return count, nil
}

func (r *SwipeRepository) likersQuery(ctx context.Context, recipientID uint64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.to_user_id = ? AND s.decision IN ?", recipientID, positiveDecisions).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s2
				WHERE s2.from_user_id = ?
				  AND s2.to_user_id = s.from_user_id
				  AND s2.decision = ?
			)`, recipientID, db.DecisionPass)
}

func (r *SwipeRepository) pageLikers(
	query *gorm.DB,
	paginationToken *string,
	limit int,
) ([]db.Swipe, *string, error) {
	cursor, err := pagination.Decode(pagination.Deref(paginationToken))
	if err != nil {
		return nil, nil, err
	}
	limit = pagination.Limit(limit)

	// apply cursor
	if !cursor.IsZero() {
		actorID, err := strconv.ParseUint(cursor.ID, 10, 64)
		if err != nil {
			return nil, nil, svcErr.Invalid("invalid pagination token")
		}
		ts := cursor.Time()
		query = query.Where(
			"(s.created_at < ? OR (s.created_at = ? AND s.from_user_id < ?))",
			ts, ts, actorID,
		)
	}

	var swipes []db.Swipe
	err = query.
		Select("s.*").
		Order("s.created_at DESC, s.from_user_id DESC").
		Limit(limit + 1).
		Find(&swipes).Error
	if err != nil {
		return nil, nil, svcErr.FromStore(err)
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(swipes) > limit {
		last := swipes[limit-1]
		token, _ := pagination.Encode(pagination.At(strconv.FormatUint(last.FromUserID, 10), last.CreatedAt))
		nextToken = &token
		swipes = swipes[:limit]
	}

	return swipes, nextToken, nil
}
