package cron

import (
	"context"
	"time"

	"stayfinder/config"
	"stayfinder/models"
	"stayfinder/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// PushSender delivers one queued notification.
type PushSender interface {
	Send(ctx context.Context, payload models.PushPayload) error
}

// QueueRedisOpt is the Redis connection shared by the push queue client and worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitPushWorker starts the push delivery worker in the background and returns
// the server so the caller can shut it down.
func InitPushWorker(ctx context.Context, sender PushSender, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationPush, handlePushTask(sender, logger))

	go monitorRedisConnection(ctx, logger)

	go func() {
		logger.Info("starting push worker")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("push worker failed to start",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempt == maxAttempts {
				logger.Error("push worker giving up; notifications will not be pushed")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempt*2) * time.Second):
			}
		}
	}()

	return srv
}

func handlePushTask(sender PushSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParsePushTask(task)
		if err != nil {
			logger.Warn("dropping push task", zap.Error(err))
			return asynq.SkipRetry
		}
		if err := sender.Send(ctx, p); err != nil {
			logger.Warn("push delivery failed",
				zap.String("notificationID", p.NotificationID),
				zap.String("recipient", p.Recipient),
				zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue database until ctx ends.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("push queue redis unreachable", zap.Error(err))
			}
		}
	}
}
