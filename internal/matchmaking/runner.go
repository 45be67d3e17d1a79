// internal/matchmaking/runner.go
// Background execution of generation runs. Triggering callers get a job id
// back immediately and never block on, or hear about, completion; results
// are observable only through the recommendation store.

package matchmaking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrQueueFull = errors.New("generation queue is full")

type job struct {
	id       string
	userID   int64
	enqueued time.Time
}

// RunnerConfig tunes the background runner
type RunnerConfig struct {
	QueueSize int           // pending jobs before Enqueue rejects
	Workers   int           // concurrent generation runs
	LockTTL   time.Duration // single-flight lock lifetime per source
}

// Runner drains queued generation jobs through the orchestrator
type Runner struct {
	service Service
	locker  Locker
	cfg     RunnerConfig
	jobs    chan job
	wg      sync.WaitGroup
}

func NewRunner(service Service, locker Locker, cfg RunnerConfig) *Runner {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	return &Runner{
		service: service,
		locker:  locker,
		cfg:     cfg,
		jobs:    make(chan job, cfg.QueueSize),
	}
}

// Start launches the worker goroutines. They exit when ctx is cancelled
// and Wait returns once in-flight runs have finished.
func (r *Runner) Start(ctx context.Context) {
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j := <-r.jobs:
					r.process(ctx, j)
				}
			}
		}()
	}
}

// Wait blocks until all workers have stopped
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Enqueue schedules a generation run for the user and returns a job id.
// It never blocks: a full queue rejects with ErrQueueFull.
func (r *Runner) Enqueue(userID int64) (string, error) {
	j := job{
		id:       uuid.NewString(),
		userID:   userID,
		enqueued: time.Now(),
	}

	select {
	case r.jobs <- j:
		return j.id, nil
	default:
		return "", ErrQueueFull
	}
}

// process runs one job under the source user's single-flight lock
func (r *Runner) process(ctx context.Context, j job) {
	key := lockKey(j.userID)

	acquired, err := r.locker.TryLock(ctx, key, r.cfg.LockTTL)
	if err != nil {
		log.Printf("generation job %s: lock error for user %d: %v", j.id, j.userID, err)
		return
	}
	if !acquired {
		log.Printf("generation job %s: run already in flight for user %d, skipping", j.id, j.userID)
		RecordRun("locked")
		return
	}
	defer func() {
		if err := r.locker.Unlock(ctx, key); err != nil {
			log.Printf("generation job %s: unlock error for user %d: %v", j.id, j.userID, err)
		}
	}()

	if err := r.service.GenerateForUser(ctx, j.userID); err != nil {
		// The failure sink for fire-and-forget runs: callers never see
		// these errors, so they must land in the log and metrics.
		log.Printf("generation job %s failed for user %d: %v", j.id, j.userID, err)
	}
}

func lockKey(userID int64) string {
	return fmt.Sprintf("matchgen:lock:%d", userID)
}
