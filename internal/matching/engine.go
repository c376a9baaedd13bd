package matching

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/db"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/identity"
	"github.com/oggyb/muzz-match/internal/metrics"
	"github.com/oggyb/muzz-match/internal/repository"
)

// ConversationCreator opens the conversation of a freshly created match.
// It runs on the match transaction and must be idempotent.
type ConversationCreator interface {
	EnsureForMatch(ctx context.Context, tx *gorm.DB, m db.Match) (db.Conversation, error)
}

// SwipeOutcome is the result of ProcessSwipe.
type SwipeOutcome struct {
	Swipe   db.Swipe
	Matched bool
	Match   *db.Match
}

// MatchView is a match as seen by one of its participants.
type MatchView struct {
	Match db.Match
	Other identity.Summary
	Seen  bool
}

// Engine turns swipes into matches. It is the only writer of Match rows and
// of Profile.MatchCount.
type Engine struct {
	db            *gorm.DB
	ledger        *Ledger
	matches       *repository.MatchRepository
	profiles      *repository.ProfileRepository
	conversations ConversationCreator
	directory     *identity.Directory
	log           *slog.Logger
}

func NewEngine(
	gdb *gorm.DB,
	ledger *Ledger,
	conversations ConversationCreator,
	directory *identity.Directory,
	log *slog.Logger,
) *Engine {
	return &Engine{
		db:            gdb,
		ledger:        ledger,
		matches:       repository.NewMatchRepository(gdb),
		profiles:      repository.NewProfileRepository(gdb),
		conversations: conversations,
		directory:     directory,
		log:           log,
	}
}

// ProcessSwipe records the decision and, on a mutual like, makes sure the
// pair has a match.
//
// Behavior:
//   - ErrDuplicateSwipe from the ledger is returned unchanged.
//   - pass → not matched, nothing but the ledger entry.
//   - like/super_like without a reciprocal like → not matched.
//   - like/super_like with one → EnsureMatch; racing callers get the same match.
func (e *Engine) ProcessSwipe(ctx context.Context, from, to uint64, decision db.Decision) (SwipeOutcome, error) {
	swipe, err := e.ledger.RecordSwipe(ctx, from, to, decision)
	if err != nil {
		return SwipeOutcome{}, err
	}

	out := SwipeOutcome{Swipe: swipe}
	if !decision.Positive() {
		return out, nil
	}

	reciprocal, err := e.ledger.HasReciprocal(ctx, from, to)
	if err != nil {
		return out, err
	}
	if reciprocal == nil {
		return out, nil
	}

	m, err := e.EnsureMatch(ctx, from, to)
	if err != nil {
		return out, err
	}
	out.Matched = true
	out.Match = &m
	return out, nil
}

// EnsureMatch returns the match for the unordered pair (a, b), creating it if
// needed.
//
// Behavior:
//   - Pair is normalized to (low, high) before touching storage.
//   - One transaction: insert-if-absent; on insert bump match_count of both
//     profiles; either way make sure the conversation exists.
//   - Losing a concurrent insert reads back the winner's row.
func (e *Engine) EnsureMatch(ctx context.Context, a, b uint64) (db.Match, error) {
	low, high := repository.Canonical(a, b)
	if low == high || low == 0 {
		return db.Match{}, svcErr.Invalid("a match needs two distinct users")
	}

	var (
		result  db.Match
		created bool
	)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		matches := e.matches.WithTx(tx)

		m := db.Match{UserLow: low, UserHigh: high}
		inserted, err := matches.CreateIfAbsent(ctx, &m)
		if err != nil {
			return err
		}

		if inserted {
			if err := e.profiles.WithTx(tx).IncrementMatchCount(ctx, low, high); err != nil {
				return err
			}
		} else {
			if m, err = matches.GetByPair(ctx, low, high); err != nil {
				return err
			}
		}

		if _, err := e.conversations.EnsureForMatch(ctx, tx, m); err != nil {
			return err
		}

		result, created = m, inserted
		return nil
	})
	if err != nil {
		return db.Match{}, err
	}

	if created {
		metrics.RecordMatch()
		e.log.Info("match created", "match_id", result.ID, "user_low", low, "user_high", high)
	} else {
		e.log.Debug("match already existed", "match_id", result.ID, "user_low", low, "user_high", high)
	}
	return result, nil
}

// ListMatches returns the viewer's active matches, newest first.
func (e *Engine) ListMatches(ctx context.Context, viewer uint64) ([]MatchView, error) {
	matches, err := e.matches.ListActiveForUser(ctx, viewer)
	if err != nil {
		return nil, err
	}

	others := make([]uint64, 0, len(matches))
	for _, m := range matches {
		others = append(others, m.Other(viewer))
	}
	summaries, err := e.directory.Summaries(ctx, others)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, MatchView{
			Match: m,
			Other: summaries[m.Other(viewer)],
			Seen:  seenBy(m, viewer),
		})
	}
	return views, nil
}

// MarkSeen records that viewer has looked at the match. Monotonic.
func (e *Engine) MarkSeen(ctx context.Context, matchID string, viewer uint64) (db.Match, error) {
	m, err := e.participantMatch(ctx, matchID, viewer)
	if err != nil {
		return db.Match{}, err
	}
	if seenBy(m, viewer) {
		return m, nil
	}
	if err := e.matches.MarkSeen(ctx, m, viewer); err != nil {
		return db.Match{}, err
	}
	if m.UserLow == viewer {
		m.SeenByLow = true
	} else {
		m.SeenByHigh = true
	}
	return m, nil
}

// Unmatch deactivates the match. One-way; repeating it is a no-op.
func (e *Engine) Unmatch(ctx context.Context, matchID string, viewer uint64) (db.Match, error) {
	m, err := e.participantMatch(ctx, matchID, viewer)
	if err != nil {
		return db.Match{}, err
	}
	changed, err := e.matches.Deactivate(ctx, m.ID)
	if err != nil {
		return db.Match{}, err
	}
	if changed {
		e.log.Info("match deactivated", "match_id", m.ID, "by", viewer)
	}
	m.IsActive = false
	return m, nil
}

func (e *Engine) participantMatch(ctx context.Context, matchID string, viewer uint64) (db.Match, error) {
	m, err := e.matches.Get(ctx, matchID)
	if err != nil {
		return db.Match{}, err
	}
	if !m.Has(viewer) {
		return db.Match{}, svcErr.ErrForbidden
	}
	return m, nil
}

func seenBy(m db.Match, viewer uint64) bool {
	if m.UserLow == viewer {
		return m.SeenByLow
	}
	return m.SeenByHigh
}
