package cron

import (
	"context"
	"encoding/json"
	"log"

	"therapair/config"
	"therapair/services/matching"
	"therapair/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeMatchCacheInvalidate tasks flush memoized match results after a
// therapist's schedule or profile changes. Matching reads a snapshot of the
// candidate pool, so stale cached rankings are only ever as old as the queue
// lag plus the cache TTL.
const TypeMatchCacheInvalidate = "cache:invalidate_matches"

// InvalidatePayload carries the mutation that triggered the flush.
type InvalidatePayload struct {
	TherapistID string `json:"therapistId"`
	Reason      string `json:"reason"` // e.g. "template_replaced", "override_created"
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}
}

// TaskClient enqueues background tasks.
type TaskClient struct {
	client *asynq.Client
}

// NewTaskClient creates an asynq client against the task queue Redis DB.
func NewTaskClient() *TaskClient {
	return &TaskClient{client: asynq.NewClient(redisOpts())}
}

// EnqueueMatchCacheInvalidation schedules a flush of memoized match results.
func (t *TaskClient) EnqueueMatchCacheInvalidation(therapistID, reason string) error {
	payload, err := json.Marshal(InvalidatePayload{TherapistID: therapistID, Reason: reason})
	if err != nil {
		return err
	}
	_, err = t.client.Enqueue(asynq.NewTask(TypeMatchCacheInvalidate, payload))
	return err
}

// Close releases the underlying asynq client.
func (t *TaskClient) Close() error {
	return t.client.Close()
}

// InitCacheWorker runs the async worker in background.
func InitCacheWorker() {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMatchCacheInvalidate, handleMatchCacheInvalidate)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("cron: cache worker failed: %v", err)
		}
	}()
}

// handleMatchCacheInvalidate deletes every memoized match result. Criteria
// keys are opaque hashes, so a per-therapist flush is not possible; the whole
// namespace goes.
func handleMatchCacheInvalidate(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var payload InvalidatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	cache := utils.GetCacheClient()
	iter := cache.Scan(ctx, 0, matching.MatchCachePrefix+"*", 100).Iterator()
	deleted := 0
	for iter.Next(ctx) {
		if err := cache.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Error("failed to delete cached match result", zap.String("key", iter.Val()), zap.Error(err))
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return err
	}

	logger.Info("flushed match cache",
		zap.String("therapistID", payload.TherapistID),
		zap.String("reason", payload.Reason),
		zap.Int("deleted", deleted))
	return nil
}
