package matching

import (
	"context"
	"math"
	"time"

	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/identity"
	"github.com/oggyb/muzz-match/internal/repository"
	"github.com/oggyb/muzz-match/internal/utils/pagination"
)

const (
	earthRadiusKm = 6371.0
	// candidates fetched per requested profile on each page, before
	// age/distance refinement
	overfetch = 5
)

// Discovery builds the swipe feed: compatible profiles the viewer has not
// decided about yet.
type Discovery struct {
	ledger    *Ledger
	directory *identity.Directory
	profiles  *repository.ProfileRepository
	now       func() time.Time
}

func NewDiscovery(ledger *Ledger, directory *identity.Directory, profiles *repository.ProfileRepository) *Discovery {
	return &Discovery{ledger: ledger, directory: directory, profiles: profiles, now: time.Now}
}

// Discover returns up to limit candidates for viewer.
//
// Filters:
//   - mutual gender / looking-for compatibility (B accepts anyone);
//   - self and already swiped targets (pass included) are excluded;
//   - candidate age inside the viewer's range and viewer age inside the
//     candidate's range, each applied only when that birth date is known;
//   - great-circle distance ≤ viewer.MaxDistanceKm when both have coordinates.
//
// Candidates are read page by page until limit of them pass the in-memory
// filters or the compatible pool runs out.
func (d *Discovery) Discover(ctx context.Context, viewerID uint64, limit int) ([]db.Profile, error) {
	limit = pagination.Limit(limit)

	viewer, err := d.directory.Profile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	swiped, err := d.ledger.SwipedTargets(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	now := d.now()
	page := limit * overfetch
	out := make([]db.Profile, 0, limit)
	for offset := 0; ; offset += page {
		candidates, err := d.profiles.Candidates(ctx, repository.CandidateFilter{
			Viewer:  viewer,
			Exclude: swiped,
			Limit:   page,
			Offset:  offset,
		})
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			if !AgeCompatible(viewer, c, now) || !WithinDistance(viewer, c) {
				continue
			}
			out = append(out, c)
			if len(out) == limit {
				return out, nil
			}
		}
		if len(candidates) < page {
			return out, nil
		}
	}
}

// AgeCompatible checks both directions of the age preference.
func AgeCompatible(viewer, candidate db.Profile, now time.Time) bool {
	if age := candidate.Age(now); age >= 0 && !inRange(age, viewer.MinAgePreference, viewer.MaxAgePreference) {
		return false
	}
	if age := viewer.Age(now); age >= 0 && !inRange(age, candidate.MinAgePreference, candidate.MaxAgePreference) {
		return false
	}
	return true
}

// WithinDistance applies the viewer's radius when both coordinates are known.
func WithinDistance(viewer, candidate db.Profile) bool {
	if viewer.Latitude == nil || viewer.Longitude == nil || candidate.Latitude == nil || candidate.Longitude == nil {
		return true
	}
	if viewer.MaxDistanceKm <= 0 {
		return true
	}
	km := DistanceKm(*viewer.Latitude, *viewer.Longitude, *candidate.Latitude, *candidate.Longitude)
	return km <= float64(viewer.MaxDistanceKm)
}

// DistanceKm is the haversine great-circle distance.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1, phi2 := lat1*math.Pi/180, lat2*math.Pi/180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) + math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// a zero bound means "no preference" on that side
func inRange(age, lo, hi int) bool {
	if lo > 0 && age < lo {
		return false
	}
	if hi > 0 && age > hi {
		return false
	}
	return true
}
