package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"brandmarket/internal/config"
	"brandmarket/internal/database"
	"brandmarket/internal/repository"
)

// One-shot housekeeping binary, meant to run from cron. Drops dead refresh
// tokens and clears verification columns whose codes can no longer be used.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()

	tokens, err := repository.NewRefreshTokenRepository(db).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	// expired codes are dead weight; the block window must survive so a
	// blocked user cannot shortcut the wait by letting the code expire
	now := time.Now().UTC()
	res := db.WithContext(ctx).Exec(`
		UPDATE users
		SET verify_code_hash = NULL, verify_expires_at = NULL
		WHERE verify_expires_at IS NOT NULL
		  AND verify_expires_at < ?
		  AND (verify_blocked_until IS NULL OR verify_blocked_until < ?)`,
		now, now,
	)
	if res.Error != nil {
		log.Fatalf("cleanup verification codes failed: %v", res.Error)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d verification_codes=%d", tokens, res.RowsAffected)
}
