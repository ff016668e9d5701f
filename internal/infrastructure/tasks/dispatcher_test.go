package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcher_RunsSubmittedTasks(t *testing.T) {
	d := NewDispatcher(2, 4, time.Second)

	var done int32
	for i := 0; i < 10; i++ {
		d.Submit("count", func(ctx context.Context) error {
			atomic.AddInt32(&done, 1)
			return nil
		})
	}
	d.Submit("fails", func(ctx context.Context) error { return errors.New("boom") })
	d.Submit("panics", func(ctx context.Context) error { panic("boom") })

	if err := d.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
	if done != 10 {
		t.Fatalf("expected 10 tasks to run, got %d", done)
	}
}

func TestDispatcher_TaskContextIsDetachedAndBounded(t *testing.T) {
	d := NewDispatcher(1, 1, 50*time.Millisecond)

	result := make(chan error, 1)
	d.Submit("slow", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			result <- ctx.Err()
		case <-time.After(2 * time.Second):
			result <- nil
		}
		return nil
	})

	select {
	case err := <-result:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected task timeout, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("task was not bounded by its timeout")
	}
	_ = d.Shutdown(context.Background())
}

func TestDispatcher_DropsAfterShutdown(t *testing.T) {
	d := NewDispatcher(1, 1, time.Second)
	if err := d.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ran int32
	d.Submit("late", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	time.Sleep(20 * time.Millisecond)
	if ran != 0 {
		t.Fatalf("task submitted after shutdown must not run")
	}
}

func TestDispatcher_ShutdownHonoursDeadline(t *testing.T) {
	d := NewDispatcher(1, 1, time.Minute)
	started := make(chan struct{})
	d.Submit("stuck", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
