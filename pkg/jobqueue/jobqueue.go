package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	defaultMaxAttempts = 3
	defaultPopTimeout  = 5 * time.Second
)

// Task задача в очереди
// Payload хранится как сырой JSON и декодируется обработчиком по Type
type Task struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Queue очередь задач поверх Redis списка (LPUSH / BRPOP)
// Используется для best-effort фоновых задач: упавшая задача
// перекладывается обратно в очередь, после maxAttempts попыток отбрасывается
type Queue struct {
	client      *redis.Client
	key         string
	maxAttempts int
	popTimeout  time.Duration
	log         Logger
}

// NewQueue создает очередь задач с ключом key
func NewQueue(client *redis.Client, key string, log Logger) *Queue {
	return &Queue{
		client:      client,
		key:         key,
		maxAttempts: defaultMaxAttempts,
		popTimeout:  defaultPopTimeout,
		log:         log,
	}
}

// Publish кладет задачу в очередь
func (q *Queue) Publish(ctx context.Context, taskType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("jobqueue: marshal payload: %w", err)
	}

	data, err := json.Marshal(&Task{Type: taskType, Payload: raw})
	if err != nil {
		return fmt.Errorf("jobqueue: marshal task: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("jobqueue: lpush: %w", err)
	}
	return nil
}

// Consume блокирующе читает задачи из очереди и передает их handler
// Возвращается при отмене контекста. Ошибки handler не останавливают цикл.
func (q *Queue) Consume(ctx context.Context, handler func(ctx context.Context, task *Task) error) {
	q.log.Info("jobqueue: consumer started for key=%s", q.key)

	for {
		select {
		case <-ctx.Done():
			q.log.Info("jobqueue: consumer stopped for key=%s", q.key)
			return
		default:
		}

		result, err := q.client.BRPop(ctx, q.popTimeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			q.log.Error("jobqueue: brpop failed: %v", err)
			// Пауза, чтобы не крутить цикл на постоянной ошибке соединения
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		// BRPop возвращает [key, value]
		if len(result) < 2 {
			continue
		}

		var task Task
		if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
			q.log.Error("jobqueue: failed to unmarshal task, dropping: %v", err)
			continue
		}

		if err := handler(ctx, &task); err != nil {
			q.retry(ctx, &task, err)
		}
	}
}

// retry перекладывает упавшую задачу обратно в очередь или отбрасывает ее
func (q *Queue) retry(ctx context.Context, task *Task, cause error) {
	task.Attempts++
	if task.Attempts >= q.maxAttempts {
		q.log.Error("jobqueue: task type=%s dropped after %d attempts: %v", task.Type, task.Attempts, cause)
		return
	}

	q.log.Warn("jobqueue: task type=%s failed (attempt %d/%d), requeueing: %v",
		task.Type, task.Attempts, q.maxAttempts, cause)

	data, err := json.Marshal(task)
	if err != nil {
		q.log.Error("jobqueue: failed to marshal task for requeue: %v", err)
		return
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		q.log.Error("jobqueue: failed to requeue task: %v", err)
	}
}
