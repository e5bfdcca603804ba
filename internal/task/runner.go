package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrQueueFull is returned by Submit when the in-memory queue has no room.
var ErrQueueFull = errors.New("task queue is full")

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// ExecuteTimeout bounds a single task execution.
	// If zero, defaults to 10 seconds.
	ExecuteTimeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:    2,
		QueueSize:      64,
		ExecuteTimeout: 10 * time.Second,
	}
}

// Runner manages background task processing over a bounded queue with a
// fixed worker pool.
type Runner struct {
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewRunner creates a new Runner. If logger is nil, a default logger will
// be used.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 1
	}
	if config.ExecuteTimeout == 0 {
		config.ExecuteTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "task_runner"))

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
		errHandler: func(task Task, err error) {
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler replaces the default log-only failure handler. The
// handler runs on a worker goroutine.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a task to the queue without blocking. Returns ErrQueueFull
// when the queue has no capacity; the caller decides whether dropping the
// side effect is acceptable.
func (r *Runner) Submit(task Task) error {
	select {
	case r.taskChan <- task:
		r.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(r.taskChan),
			"queue_cap", cap(r.taskChan))
		return nil
	default:
		return fmt.Errorf("%w: capacity %d reached", ErrQueueFull, cap(r.taskChan))
	}
}

// Start launches the worker goroutines.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop shuts the runner down. Queued tasks that no worker has picked up
// yet are drained and discarded; in-flight executions finish first.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

// worker processes tasks from the queue until the runner stops.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-r.taskChan:
			if !ok {
				return
			}
			r.processTask(task, id)
		}
	}
}

// processTask executes a single task with the configured timeout.
func (r *Runner) processTask(task Task, workerID int) {
	log := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	ctx, cancel := context.WithTimeout(context.Background(), r.config.ExecuteTimeout)
	defer cancel()

	log.Debug("processing task")

	if err := task.Execute(ctx); err != nil {
		r.errHandler(task, err)
		return
	}

	log.Debug("task completed")
}
