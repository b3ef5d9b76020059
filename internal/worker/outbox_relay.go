package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/metrics"
)

// EventSource exposes the outbox to the relay.
type EventSource interface {
	FetchPending(ctx context.Context, limit int) ([]model.OrderEvent, error)
	MarkSent(ctx context.Context, id int64) error
}

// EventSink delivers events to subscribers.
type EventSink interface {
	Publish(ctx context.Context, event model.OrderEvent) error
}

// OutboxRelay polls unsent order events and publishes them with a worker pool.
//
// Events of one order always go to the same worker, so they are published in
// outbox order. A failed event blocks later events of its order until the next
// poll. Delivery is at-least-once.
type OutboxRelay struct {
	source       EventSource
	sink         EventSink
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger
	metrics      *metrics.Metrics

	jobs   []chan job
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

type job struct {
	event model.OrderEvent
	batch *batch
}

// batch tracks one polled set of events.
type batch struct {
	wg     sync.WaitGroup
	mu     sync.Mutex
	failed map[int64]bool
}

func (b *batch) blocked(orderID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failed[orderID]
}

func (b *batch) fail(orderID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failed[orderID] = true
}

// NewOutboxRelay constructs the relay worker pool.
func NewOutboxRelay(source EventSource, sink EventSink, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger, m *metrics.Metrics) *OutboxRelay {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	jobs := make([]chan job, workers)
	for i := range jobs {
		jobs[i] = make(chan job, batchSize)
	}
	return &OutboxRelay{
		source:       source,
		sink:         sink,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		metrics:      m,
		jobs:         jobs,
	}
}

// Start launches background relaying.
func (r *OutboxRelay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx, r.jobs[i])
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop cancels polling and waits for all workers to finish.
func (r *OutboxRelay) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *OutboxRelay) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer func() {
		for _, ch := range r.jobs {
			close(ch)
		}
	}()
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.relayBatch(ctx)
		}
	}
}

// relayBatch fans one batch out and waits for it, so the next poll never
// sees events that are still in flight.
func (r *OutboxRelay) relayBatch(ctx context.Context) {
	events, err := r.source.FetchPending(ctx, r.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("fetch pending events failed", slog.String("error", err.Error()))
		}
		return
	}
	if len(events) == 0 {
		return
	}

	b := &batch{failed: make(map[int64]bool)}
	for _, event := range events {
		b.wg.Add(1)
		select {
		case <-ctx.Done():
			b.wg.Done()
			b.wg.Wait()
			return
		case r.jobs[r.route(event.OrderID)] <- job{event: event, batch: b}:
		}
	}
	b.wg.Wait()
}

func (r *OutboxRelay) route(orderID int64) int {
	if orderID < 0 {
		orderID = -orderID
	}
	return int(orderID % int64(r.workers))
}

func (r *OutboxRelay) worker(ctx context.Context, jobs <-chan job) {
	defer r.wg.Done()
	for j := range jobs {
		r.handle(ctx, j)
		j.batch.wg.Done()
	}
}

func (r *OutboxRelay) handle(ctx context.Context, j job) {
	event := j.event
	if ctx.Err() != nil || j.batch.blocked(event.OrderID) {
		return
	}

	err := r.sink.Publish(ctx, event)
	r.metrics.ObserveEvent(err)
	if err != nil {
		j.batch.fail(event.OrderID)
		r.logger.Warn("publish order event failed",
			slog.String("event_id", event.EventID),
			slog.Int64("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := r.source.MarkSent(ctx, event.ID); err != nil {
		j.batch.fail(event.OrderID)
		r.logger.Error("mark event sent failed",
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()),
		)
	}
}
