package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether Postgres and Redis answer within a short deadline.
// The body carries per-dependency status only, nothing about the instances.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbUp := false
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			dbUp = true
		}
		redisUp := rdb.Ping(ctx).Err() == nil

		status := http.StatusOK
		if !dbUp || !redisUp {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":   statusWord(dbUp && redisUp),
			"database": statusWord(dbUp),
			"redis":    statusWord(redisUp),
		})
	}
}

func statusWord(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
