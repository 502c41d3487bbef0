package cron

import (
	"context"
	"time"

	"medilink/services/dispatch"
	"medilink/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tickLockKey = "escalation:tick-lock"

// StartEscalationScheduler runs the periodic escalation tick until ctx is
// cancelled. The scheduler is a singleton per deployment; the Redis lock keeps
// concurrent instances from fanning out the same candidates twice.
func StartEscalationScheduler(ctx context.Context, svc dispatch.DispatchService, redisClient *redis.Client, interval time.Duration) {
	logger := utils.GetLogger()
	instanceID := uuid.New().String()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("escalation scheduler started",
		zap.Duration("interval", interval), zap.String("instance", instanceID))

	for {
		select {
		case <-ctx.Done():
			logger.Info("escalation scheduler shutdown signal received")
			return
		case <-ticker.C:
			runTick(ctx, svc, redisClient, logger, instanceID, interval)
		}
	}
}

func runTick(ctx context.Context, svc dispatch.DispatchService, redisClient *redis.Client, logger *zap.Logger, instanceID string, interval time.Duration) {
	if redisClient != nil {
		acquired, err := redisClient.SetNX(ctx, tickLockKey, instanceID, interval).Result()
		if err != nil {
			logger.Warn("escalation tick lock unavailable, skipping tick", zap.Error(err))
			return
		}
		if !acquired {
			logger.Debug("escalation tick held by another instance")
			return
		}
		defer redisClient.Del(ctx, tickLockKey)
	}

	if err := svc.EscalateStale(ctx); err != nil {
		// Tick failures defer to the next period; nothing retries in-process.
		logger.Error("escalation tick failed", zap.Error(err))
	}
}
