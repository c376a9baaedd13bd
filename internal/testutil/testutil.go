// Package testutil spins up the isolated stores used by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/muzz-match/internal/cache"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/db"
)

// NewDB opens an in-memory SQLite DB private to the test and migrates it.
//
// The pool is capped at one connection: SQLite serializes writers anyway and a
// single connection keeps concurrent tests away from "database is locked".
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		Logger:  logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))
	return dbase
}

// NewRedis starts a miniredis and returns a cache client bound to it.
func NewRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	rc := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = rc.Client.Close() })
	return rc, mr
}

// Person is a compact profile fixture.
type Person struct {
	ID         uint64
	Gender     string
	LookingFor string
}

// SeedProfiles inserts a user + profile per person.
func SeedProfiles(t *testing.T, gdb *gorm.DB, people ...Person) {
	t.Helper()
	for _, p := range people {
		user := db.User{
			ID:           p.ID,
			Username:     fmt.Sprintf("user%d", p.ID),
			Email:        fmt.Sprintf("u%d@test.com", p.ID),
			PasswordHash: "x",
			Active:       true,
		}
		require.NoError(t, gdb.Create(&user).Error)
		profile := db.Profile{
			UserID:      p.ID,
			DisplayName: user.Username,
			Gender:      p.Gender,
			LookingFor:  p.LookingFor,
		}
		require.NoError(t, gdb.Create(&profile).Error)
	}
}
