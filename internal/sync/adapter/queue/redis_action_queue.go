package queue

import (
	"context"
	"encoding/json"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/config"
	"hubsync/internal/sync/domain/model"

	"github.com/redis/go-redis/v9"
)

// RedisActionQueue implements repository.ActionQueue using Redis
// Streams. Each pushed action becomes one stream entry; consumers own
// delivery retries and backpressure.
type RedisActionQueue struct {
	client    *redis.Client
	stream    string
	maxLength int64
	logger    logger.Logger
}

// NewRedisActionQueue creates a new Redis-backed action queue
func NewRedisActionQueue(client *redis.Client, cfg *config.RedisConfig, log logger.Logger) *RedisActionQueue {
	return &RedisActionQueue{
		client:    client,
		stream:    cfg.ActionStream,
		maxLength: cfg.StreamMaxLength,
		logger:    log.WithComponent("action_queue"),
	}
}

// Push appends one action to the stream
func (q *RedisActionQueue) Push(ctx context.Context, hubID string, action *model.Action) error {
	properties, err := json.Marshal(action.MeetingProperties)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize action properties").WithCause(err).WithComponent("action_queue")
	}

	_, err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		MaxLen: q.maxLength,
		Approx: true,
		Values: map[string]interface{}{
			"hubId":              hubID,
			"actionName":         action.ActionName,
			"actionDate":         action.ActionDate.UnixMilli(),
			"includeInAnalytics": action.IncludeInAnalytics,
			"meetingProperties":  properties,
		},
	}).Result()

	if err != nil {
		q.logger.WithFields(map[string]interface{}{
			"stream":      q.stream,
			"hub_id":      hubID,
			"action_name": action.ActionName,
		}).Errorf("Failed to push action: %v", err)
		return apperrors.NewInfrastructureError("failed to push action to queue").WithCause(err).WithComponent("action_queue")
	}

	q.logger.WithFields(map[string]interface{}{
		"stream":      q.stream,
		"hub_id":      hubID,
		"action_name": action.ActionName,
	}).Debug("Action pushed")

	return nil
}
