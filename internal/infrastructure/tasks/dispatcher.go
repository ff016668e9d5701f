package tasks

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"globalpartner_checkout/internal/infrastructure/metrics"
	"globalpartner_checkout/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

type job struct {
	name string
	run  func(ctx context.Context) error
}

// Dispatcher runs fire-and-forget tasks on a fixed worker pool. Tasks never
// inherit the caller's context: a webhook response must not cancel the
// emails it triggered.
type Dispatcher struct {
	queue   chan job
	timeout time.Duration
	group   *errgroup.Group
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.RWMutex
	closed bool
	extra  sync.WaitGroup
}

var _ interfaces.ITaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		queue:   make(chan job, queueSize),
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
	d.group = new(errgroup.Group)
	for i := 0; i < workers; i++ {
		d.group.Go(func() error {
			for j := range d.queue {
				d.execute(j)
			}
			return nil
		})
	}
	return d
}

// Submit enqueues the task. When the queue is full the task runs on its own
// goroutine instead of blocking the caller; after Shutdown tasks are dropped.
func (d *Dispatcher) Submit(name string, task func(ctx context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("[tasks][dispatcher] dropped task=%s reason=shutdown", name)
		metrics.SideEffectTasksTotal.WithLabelValues(name, "dropped").Inc()
		return
	}

	j := job{name: name, run: task}
	select {
	case d.queue <- j:
	default:
		log.Printf("[tasks][dispatcher] queue full, running inline task=%s", name)
		d.extra.Add(1)
		go func() {
			defer d.extra.Done()
			d.execute(j)
		}()
	}
}

func (d *Dispatcher) execute(j job) {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := safeRun(ctx, j.run)
	if err != nil {
		metrics.SideEffectTasksTotal.WithLabelValues(j.name, "failure").Inc()
		log.Printf("[tasks][dispatcher] task failed task=%s duration=%s err=%v", j.name, time.Since(start), err)
		return
	}
	metrics.SideEffectTasksTotal.WithLabelValues(j.name, "success").Inc()
	log.Printf("[tasks][dispatcher] task done task=%s duration=%s", j.name, time.Since(start))
}

func safeRun(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

// Shutdown stops accepting tasks and waits for queued ones to finish. When
// ctx expires first, running tasks are cancelled.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = d.group.Wait()
		d.extra.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return ctx.Err()
	}
}
