package worker

// backup_cron.go
// Background goroutine that enqueues one snapshot job per day at the
// configured hour. A Redis SETNX key prevents double-enqueue when several
// server instances share the same Redis.

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const backupCronTick = time.Minute

// StartBackupCron launches a goroutine that checks once per minute whether
// the daily snapshot for the current date is due and not yet claimed.
// It respects the context for graceful shutdown.
func StartBackupCron(ctx context.Context, rdb *redis.Client, dispatcher *Dispatcher, hour int) {
	go func() {
		ticker := time.NewTicker(backupCronTick)
		defer ticker.Stop()

		log.Info().Int("hour", hour).Msg("backup_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("backup_cron: shutting down")
				return
			case <-ticker.C:
				tickBackupCron(ctx, rdb, dispatcher, hour)
			}
		}
	}()
}

func tickBackupCron(ctx context.Context, rdb *redis.Client, dispatcher *Dispatcher, hour int) {
	now := time.Now()
	if now.Hour() != hour {
		return
	}

	// Claim today's run. The key expires after 48h so it never lingers.
	key := fmt.Sprintf("backup_cron:done:%s", now.Format("2006-01-02"))
	claimed, err := rdb.SetNX(ctx, key, "1", 48*time.Hour).Result()
	if err != nil {
		log.Error().Err(err).Msg("backup_cron: claim failed")
		return
	}
	if !claimed {
		return
	}

	if err := dispatcher.EnqueueBackup(ctx, "nightly automatic snapshot"); err != nil {
		log.Error().Err(err).Msg("backup_cron: enqueue failed")
		// Release the claim so the next tick retries.
		rdb.Del(ctx, key)
		return
	}
	log.Info().Str("date", now.Format("2006-01-02")).Msg("backup_cron: snapshot job enqueued")
}
