package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stayfinder/models"

	"github.com/hibiken/asynq"
)

const TypeNotificationPush = "notification:push"

// NewPushTask wraps a push payload. Delivery is retried a few times and then dropped.
func NewPushTask(payload models.PushPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationPush, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
		asynq.Retention(time.Hour),
	}
	return task, opts, nil
}

// ParsePushTask decodes the payload of a push task.
func ParsePushTask(task *asynq.Task) (models.PushPayload, error) {
	var p models.PushPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid push payload: %w", err)
	}
	return p, nil
}

// Enqueuer is the asynq client surface used by PushQueue.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PushQueue enqueues push deliveries on Redis.
type PushQueue struct {
	client Enqueuer
}

func NewPushQueue(client Enqueuer) *PushQueue {
	return &PushQueue{client: client}
}

func (q *PushQueue) EnqueuePush(ctx context.Context, payload models.PushPayload) error {
	task, opts, err := NewPushTask(payload)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeNotificationPush, err)
	}
	return nil
}
