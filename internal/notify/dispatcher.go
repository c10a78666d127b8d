package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/email"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
)

const pollTimeout = time.Second

// Metrics counts dispatcher outcomes.
type Metrics struct {
	Delivered atomic.Int64
	Failed    atomic.Int64
	Attempts  atomic.Int64
}

// Dispatcher drains the queue with a fixed pool of workers. Each job gets
// at most maxAttempts deliveries with exponential backoff, then is dropped.
type Dispatcher struct {
	queue       Queue
	sender      email.Sender
	workers     int
	maxAttempts int
	baseDelay   time.Duration
	logger      *logging.Logger

	metrics Metrics
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewDispatcher(queue Queue, sender email.Sender, workers, maxAttempts int, baseDelay time.Duration, logger *logging.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Dispatcher{
		queue:       queue,
		sender:      sender,
		workers:     workers,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
	}
}

// Start launches the workers. They run until Stop is called or ctx ends.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(ctx, i)
	}
	d.logger.Info("notification dispatcher started", "workers", d.workers)
}

// Stop stops polling and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
	d.logger.Info("notification dispatcher stopped",
		"delivered", d.metrics.Delivered.Load(),
		"failed", d.metrics.Failed.Load(),
	)
}

func (d *Dispatcher) Metrics() *Metrics {
	return &d.metrics
}

func (d *Dispatcher) run(ctx context.Context, worker int) {
	defer d.wg.Done()
	logger := d.logger.WithFields(map[string]any{"worker": worker})

	for {
		if ctx.Err() != nil {
			return
		}

		job, err := d.queue.Dequeue(ctx, pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("failed to poll notification queue", "error", err)
			// avoid a hot loop while Redis is down
			select {
			case <-ctx.Done():
				return
			case <-time.After(pollTimeout):
			}
			continue
		}
		if job == nil {
			continue
		}

		// an accepted job is finished even during shutdown
		d.Process(context.WithoutCancel(ctx), *job)
	}
}

// Process delivers one job with bounded retries. Failures are logged and dropped.
func (d *Dispatcher) Process(ctx context.Context, job Job) {
	logger := d.logger.WithFields(map[string]any{"job_id": job.ID, "kind": job.Kind})

	backoff := retry.WithMaxRetries(uint64(d.maxAttempts-1), retry.NewExponential(d.baseDelay))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		d.metrics.Attempts.Add(1)

		err := d.deliver(ctx, job)
		if err == nil {
			return nil
		}
		if errors.Is(err, errUnknownKind) {
			return err
		}
		logger.Warn("notification attempt failed", "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	})
	if err != nil {
		d.metrics.Failed.Add(1)
		logger.Error("notification dropped", "attempts", attempt, "error", err)
		return
	}

	d.metrics.Delivered.Add(1)
	logger.Info("notification delivered", "attempts", attempt, "latency", time.Since(job.EnqueuedAt).String())
}

var errUnknownKind = errors.New("unknown notification kind")

func (d *Dispatcher) deliver(ctx context.Context, job Job) error {
	switch job.Kind {
	case KindVerification:
		return d.sender.SendVerificationEmail(ctx, job.To, job.Link)
	default:
		return fmt.Errorf("%w: %q", errUnknownKind, job.Kind)
	}
}
