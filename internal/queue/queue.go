package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twaasoulElm3refa/editor-tool/db"
	"github.com/twaasoulElm3refa/editor-tool/internal/model"
)

// pollInterval paces readiness checks while a caller waits on a task.
const pollInterval = 500 * time.Millisecond

// RedisQueue is the broker plus result backend for editor tasks, layered on
// the process-wide Redis connection.
type RedisQueue struct{}

func NewRedisQueue() *RedisQueue {
	return &RedisQueue{}
}

// Enqueue marks the task queued in the result backend and pushes it onto the
// worker queue.
func (q *RedisQueue) Enqueue(task model.EditorTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encoding task: %w", err)
	}

	if err := q.SetState(task.TaskID, model.TaskState{Status: model.StatusQueued}); err != nil {
		return err
	}

	return db.PushToQueue(db.EditorQueueKey, string(payload))
}

func (q *RedisQueue) SetState(taskID string, state model.TaskState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding task state: %w", err)
	}
	return db.SetTaskState(taskID, string(payload))
}

// State returns nil for an unknown task id.
func (q *RedisQueue) State(taskID string) (*model.TaskState, error) {
	payload, err := db.GetTaskState(taskID)
	if err != nil {
		return nil, err
	}

	if payload == "" {
		return nil, nil
	}

	var state model.TaskState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("decoding task state: %w", err)
	}

	return &state, nil
}

// Wait polls the result backend until the task reaches a terminal status or
// the timeout elapses. Timeout comes back as context.DeadlineExceeded so a
// stuck task can never stall the caller indefinitely.
func (q *RedisQueue) Wait(ctx context.Context, taskID string, timeout time.Duration) (*model.TaskState, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		state, err := q.State(taskID)
		if err != nil {
			return nil, err
		}

		if state != nil && (state.Status == model.StatusCompleted || state.Status == model.StatusFailed) {
			return state, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
