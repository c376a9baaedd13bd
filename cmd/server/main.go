package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/oggyb/muzz-match/internal/app"
	"github.com/oggyb/muzz-match/internal/cache"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/logger"
	"github.com/oggyb/muzz-match/internal/realtime"
	"github.com/oggyb/muzz-match/internal/server"
	"github.com/oggyb/muzz-match/internal/service/explore"
	"github.com/oggyb/muzz-match/internal/service/inbox"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg, log)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	appCtx := app.New(cfg, database, redisCache, log)

	if cfg.App.ENV == "development" {
		if _, err := db.SeedTestData(database, log); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	grpcServer, healthServer := server.NewGRPCServer(appCtx.Tokens, log,
		explore.NewRegistrar(appCtx),
		inbox.NewRegistrar(appCtx),
	)
	wsHandler := realtime.NewHandler(appCtx.Hub, appCtx.Tokens, appCtx.Registry, cfg.Realtime.AllowedOrigins, log)
	router := server.NewRouter(wsHandler, redisCache.Ping)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting gRPC server", "addr", cfg.GRPC.Host+":"+cfg.GRPC.Port)
		return server.ServeGRPC(gctx, cfg, grpcServer, healthServer)
	})
	g.Go(func() error {
		return server.ServeHTTP(gctx, cfg, router, log)
	})
	g.Go(func() error {
		// hijacked websocket connections outlive http.Server.Shutdown
		<-gctx.Done()
		appCtx.Hub.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
