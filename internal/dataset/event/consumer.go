package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.DatasetProfiledEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// ArchiveConsumer drains the bus with a fixed pool of workers. Each event ID
// is handled at most once; failures are retried with exponential backoff and
// then dropped with an error log.
type ArchiveConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewArchiveConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *ArchiveConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	maxRetries := max(cfg.MaxRetries, 0)

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ArchiveConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (c *ArchiveConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for queued events to drain. When ctx ends
// first, in-flight retries are abandoned.
func (c *ArchiveConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.cancel()
		return nil
	case <-ctx.Done():
		c.cancel()
		return ctx.Err()
	}
}

func (c *ArchiveConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *ArchiveConsumer) processEvent(event entity.DatasetProfiledEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if _, loaded := c.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate dataset event", "event_id", event.EventID, "dataset_id", event.DatasetID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(c.ctx, event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to archive dataset after retries", "event_id", event.EventID, "dataset_id", event.DatasetID, "error", err)
			return
		}

		slog.Warn("archive attempt failed", "event_id", event.EventID, "dataset_id", event.DatasetID, "attempt", attempt+1, "error", err)
		if !c.sleep(backoff) {
			return
		}
		backoff *= 2
	}
}

func (c *ArchiveConsumer) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-c.ctx.Done():
		return false
	}
}
