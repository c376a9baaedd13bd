package matching

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/cache"
	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/metrics"
	"github.com/oggyb/muzz-match/internal/repository"
)

// Ledger is the source of truth for "has A already decided about B".
// It is the only writer of swipes and of Profile.SwipeCount.
type Ledger struct {
	db       *gorm.DB
	swipes   *repository.SwipeRepository
	profiles *repository.ProfileRepository
	cache    *cache.RedisCache
	log      *slog.Logger
}

// NewLedger wires the ledger. rc may be nil, in which case liker counts are
// always read from the database.
func NewLedger(gdb *gorm.DB, rc *cache.RedisCache, log *slog.Logger) *Ledger {
	return &Ledger{
		db:       gdb,
		swipes:   repository.NewSwipeRepository(gdb),
		profiles: repository.NewProfileRepository(gdb),
		cache:    rc,
		log:      log,
	}
}

// RecordSwipe persists an immutable decision by from about to.
//
// Behavior:
//   - from == to, zero ids and unknown decisions → ErrInvalidArgument.
//   - Unknown target profile → ErrNotFound.
//   - Existing (from, to) record → ErrDuplicateSwipe, nothing changes.
//   - The swipe and the swipe_count bump commit together, before any
//     reciprocity probe runs.
func (l *Ledger) RecordSwipe(ctx context.Context, from, to uint64, decision db.Decision) (db.Swipe, error) {
	if from == 0 || to == 0 {
		return db.Swipe{}, svcErr.Invalid("user ids must be set")
	}
	if from == to {
		return db.Swipe{}, svcErr.Invalid("cannot swipe on yourself")
	}
	if !decision.Valid() {
		return db.Swipe{}, svcErr.Invalid("unknown decision %q", decision)
	}
	if _, err := l.profiles.Get(ctx, to); err != nil {
		return db.Swipe{}, err
	}

	swipe := db.Swipe{FromUserID: from, ToUserID: to, Decision: decision}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := l.swipes.WithTx(tx).Create(ctx, &swipe); err != nil {
			return err
		}
		return l.profiles.WithTx(tx).IncrementSwipeCount(ctx, from)
	})
	if err != nil {
		return db.Swipe{}, err
	}

	metrics.RecordSwipe(string(decision))
	l.invalidateCounts(ctx, swipe)
	l.log.Debug("swipe recorded", "from", from, "to", to, "decision", decision, "swipe_id", swipe.ID)
	return swipe, nil
}

// HasReciprocal returns to's positive swipe on from, or nil.
func (l *Ledger) HasReciprocal(ctx context.Context, from, to uint64) (*db.Swipe, error) {
	return l.swipes.FindReciprocal(ctx, from, to)
}

// SwipedTargets lists everyone from has decided about, passes included.
func (l *Ledger) SwipedTargets(ctx context.Context, from uint64) ([]uint64, error) {
	return l.swipes.SwipedTargets(ctx, from)
}

// ListLikers pages through users who liked user, minus the ones user passed.
func (l *Ledger) ListLikers(ctx context.Context, user uint64, token *string, limit int) ([]db.Swipe, *string, error) {
	return l.swipes.GetLikers(ctx, user, token, limit)
}

// ListNewLikers is ListLikers without the users already liked back.
func (l *Ledger) ListNewLikers(ctx context.Context, user uint64, token *string, limit int) ([]db.Swipe, *string, error) {
	return l.swipes.GetNewLikers(ctx, user, token, limit)
}

// CountLikers returns how many users liked user.
// Cache-first strategy:
//  1. Attempts to read from Redis (likes:count:userID).
//  2. On miss or cache failure, falls back to DB via repository.CountLikers.
//  3. On DB fetch, updates Redis with a 1h TTL.
func (l *Ledger) CountLikers(ctx context.Context, user uint64) (int64, error) {
	if l.cache != nil {
		n, ok, err := l.cache.GetLikeCount(ctx, user)
		if err != nil {
			l.log.Warn("like count cache read failed", "user_id", user, "err", err)
		} else if ok {
			return n, nil
		}
	}

	count, err := l.swipes.CountLikers(ctx, user)
	if err != nil {
		return 0, err
	}

	if l.cache != nil {
		if err := l.cache.UpdateLikeCount(ctx, user, count); err != nil {
			l.log.Warn("like count cache write failed", "user_id", user, "err", err)
		}
	}
	return count, nil
}

// A like changes the target's liker count; a pass hides the target from the
// swiper's own liker list.
func (l *Ledger) invalidateCounts(ctx context.Context, s db.Swipe) {
	if l.cache == nil {
		return
	}
	user := s.ToUserID
	if !s.Decision.Positive() {
		user = s.FromUserID
	}
	if err := l.cache.InvalidateLikeCount(ctx, user); err != nil {
		l.log.Warn("like count invalidation failed", "user_id", user, "err", err)
	}
}
