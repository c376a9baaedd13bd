package main

import (
	"fmt"
	"log"
	"time"

	"github.com/oggyb/muzz-match/internal/auth"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/logger"
)

func main() {
	// Load configuration
	cfg := config.New()
	logger.InitFromConfig(cfg)

	database, err := db.NewDB(cfg, logger.L())
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	users, err := db.SeedTestData(database, logger.L())
	if err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	// dev tokens so grpcurl / websocket clients can act as any seeded user
	tokens := auth.NewJWTManagerFromConfig(cfg)
	for _, u := range users {
		token, exp, err := tokens.Issue(u.ID)
		if err != nil {
			log.Fatalf("failed to issue token for user %d: %v", u.ID, err)
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", u.ID, u.Username, exp.Format(time.RFC3339), token)
	}

	log.Println("Seeding completed.")
}
