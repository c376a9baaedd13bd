package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/auth"
	"github.com/oggyb/muzz-match/internal/cache"
	"github.com/oggyb/muzz-match/internal/chat"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/identity"
	"github.com/oggyb/muzz-match/internal/matching"
	"github.com/oggyb/muzz-match/internal/realtime"
	"github.com/oggyb/muzz-match/internal/repository"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.) and the
// components built on top of them.
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger

	Tokens    *auth.JWTManager
	Directory *identity.Directory
	Ledger    *matching.Ledger
	Engine    *matching.Engine
	Discovery *matching.Discovery
	Registry  *chat.Registry
	Store     *chat.Store
	Tracker   *realtime.Tracker
	Hub       *realtime.Hub

	// Notifier receives changes made outside a live session. It is the Hub
	// unless a caller swaps it.
	Notifier chat.Notifier
}

// New wires every component on top of the given stores.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	profiles := repository.NewProfileRepository(db)
	directory := identity.NewDirectory(profiles)

	ledger := matching.NewLedger(db, rdb, logger.With("component", "ledger"))
	registry := chat.NewRegistry(db, directory, logger.With("component", "registry"))
	engine := matching.NewEngine(db, ledger, registry, directory, logger.With("component", "engine"))
	store := chat.NewStore(db, registry, logger.With("component", "store"))

	tracker := realtime.NewTracker(rdb, cfg.Realtime.TypingTTL)
	hub := realtime.NewHub(tracker, store, realtime.OptionsFromConfig(cfg), logger)

	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Tokens:     auth.NewJWTManagerFromConfig(cfg),
		Directory:  directory,
		Ledger:     ledger,
		Engine:     engine,
		Discovery:  matching.NewDiscovery(ledger, directory, profiles),
		Registry:   registry,
		Store:      store,
		Tracker:    tracker,
		Hub:        hub,
		Notifier:   hub,
	}
}
