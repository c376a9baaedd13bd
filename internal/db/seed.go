package db

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// demo coordinates around a few cities so the distance filter has something to do
var seedCities = []struct {
	Name, Country string
	Lat, Lng      float64
}{
	{"London", "UK", 51.5072, -0.1276},
	{"Manchester", "UK", 53.4808, -2.2426},
	{"Paris", "FR", 48.8566, 2.3522},
}

// SeedTestData resets the database and populates it with demo users, profiles
// and a handful of likes.
//
// Behavior:
//  1. Clears messages, conversations, matches, swipes, profiles and users.
//  2. Creates 20 users (10 male, 10 female) with hashed passwords and profiles.
//  3. Adds one-way likes from every woman to two men, so the first like back
//     from the seeded man produces a match.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(db *gorm.DB, log *slog.Logger) ([]User, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"messages", "conversations", "matches", "swipes", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'")
	}

	log.Info("cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// --- Seed Users + Profiles (10 male, 10 female) ---
	users := make([]User, 0, 20)
	for i := 1; i <= 20; i++ {
		user := User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Active:       true,
			LastLoginAt:  time.Now().Add(-time.Duration(r.Intn(500)) * time.Hour),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}

		gender, lookingFor := "M", "F"
		if i > 10 {
			gender, lookingFor = "F", "M"
		}
		city := seedCities[r.Intn(len(seedCities))]
		birth := time.Now().UTC().AddDate(-(20 + r.Intn(15)), -r.Intn(12), 0)
		lat, lng := city.Lat, city.Lng

		profile := Profile{
			UserID:           user.ID,
			DisplayName:      user.Username,
			Gender:           gender,
			LookingFor:       lookingFor,
			BirthDate:        &birth,
			City:             city.Name,
			Country:          city.Country,
			Latitude:         &lat,
			Longitude:        &lng,
			MaxDistanceKm:    500,
			MinAgePreference: 18,
			MaxAgePreference: 40,
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to seed profile: %w", err)
		}
		users = append(users, user)
	}
	log.Info("seeded users", "count", len(users))

	// --- Seed one-way likes: woman i → men i-10 and i-9 ---
	likes := 0
	for i := 11; i <= 20; i++ {
		for _, target := range []int{i - 10, (i-10)%10 + 1} {
			swipe := Swipe{
				FromUserID: users[i-1].ID,
				ToUserID:   users[target-1].ID,
				Decision:   DecisionLike,
			}
			res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&swipe)
			if res.Error != nil {
				return nil, fmt.Errorf("failed to seed swipe: %w", res.Error)
			}
			likes += int(res.RowsAffected)
		}
	}
	log.Info("seeded likes", "count", likes)

	return users, nil
}
