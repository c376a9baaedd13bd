// Package identity is the read-only view of users and profiles owned by the
// account service.
package identity

import (
	"context"
	"time"

	"github.com/oggyb/muzz-match/internal/auth"
	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/repository"
)

// Summary is what one user may see about another.
type Summary struct {
	UserID      uint64 `json:"user_id,string"`
	DisplayName string `json:"display_name"`
	Age         int    `json:"age,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// Directory answers profile lookups for the matching and chat layers.
type Directory struct {
	profiles *repository.ProfileRepository
	now      func() time.Time
}

func NewDirectory(profiles *repository.ProfileRepository) *Directory {
	return &Directory{profiles: profiles, now: time.Now}
}

// CurrentUser returns the authenticated caller from ctx.
func (d *Directory) CurrentUser(ctx context.Context) (uint64, error) {
	return auth.UserID(ctx)
}

// Profile returns the full profile of a user.
func (d *Directory) Profile(ctx context.Context, userID uint64) (db.Profile, error) {
	return d.profiles.Get(ctx, userID)
}

// Summary renders one user. Unknown users come back as a bare id.
func (d *Directory) Summary(ctx context.Context, userID uint64) (Summary, error) {
	all, err := d.Summaries(ctx, []uint64{userID})
	if err != nil {
		return Summary{}, err
	}
	return all[userID], nil
}

// Summaries renders many users with a single query.
func (d *Directory) Summaries(ctx context.Context, userIDs []uint64) (map[uint64]Summary, error) {
	profiles, err := d.profiles.GetMany(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	now := d.now()
	out := make(map[uint64]Summary, len(userIDs))
	for _, id := range userIDs {
		p, ok := profiles[id]
		if !ok {
			out[id] = Summary{UserID: id}
			continue
		}
		out[id] = Summarize(p, now)
	}
	return out, nil
}

// Summarize converts a profile into its public summary.
func Summarize(p db.Profile, now time.Time) Summary {
	s := Summary{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		City:        p.City,
		Country:     p.Country,
		Bio:         p.Bio,
	}
	if age := p.Age(now); age >= 0 {
		s.Age = age
	}
	return s
}
