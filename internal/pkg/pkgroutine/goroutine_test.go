package pkgroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewManagerDefaultMax(t *testing.T) {
	mgr := NewManager(0)
	if got := cap(mgr.sema); got != DefaultMaxGoroutine {
		t.Fatalf("expected cap %d, got %d", DefaultMaxGoroutine, got)
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2)
	errOne := errors.New("one")
	errTwo := errors.New("two")

	mgr.Go(context.Background(), func(ctx context.Context) error {
		return errOne
	})
	mgr.Go(context.Background(), func(ctx context.Context) error {
		return errTwo
	})

	joined := mgr.Wait()
	if joined == nil {
		t.Fatalf("expected errors")
	}
	if !errors.Is(joined, errOne) {
		t.Fatalf("expected errOne to be present")
	}
	if !errors.Is(joined, errTwo) {
		t.Fatalf("expected errTwo to be present")
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	mgr := NewManager(1)
	mgr.Go(context.Background(), func(ctx context.Context) error {
		panic("boom")
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestManagerEveryRunsUntilCanceled(t *testing.T) {
	mgr := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	mgr.Every(ctx, "count", time.Millisecond, func(ctx context.Context, now time.Time) error {
		if ticks.Add(1) >= 3 {
			cancel()
		}
		return errors.New("ignored")
	})

	done := make(chan error, 1)
	go func() { done <- mgr.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for periodic task to stop")
	}

	if ticks.Load() < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
	}
}

func TestManagerEveryIgnoresNonPositiveInterval(t *testing.T) {
	mgr := NewManager(1)
	mgr.Every(context.Background(), "noop", 0, func(context.Context, time.Time) error {
		t.Fatal("must not run")
		return nil
	})
	if err := mgr.Wait(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
