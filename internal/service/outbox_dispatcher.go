package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/msaedi/instructly-sub007/internal/models"
	"github.com/msaedi/instructly-sub007/pkg/config"
	"github.com/msaedi/instructly-sub007/pkg/jobs"
)

type outboxRelayRepo interface {
	ListPending(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, attempts, maxRetries int) error
}

// Publisher hands an outbox event to its downstream consumer. Delivery
// guarantees beyond the at-least-once durable enqueue are the consumer's
// responsibility.
type Publisher interface {
	Publish(ctx context.Context, event models.OutboxEvent) error
}

// LogPublisher is the default publisher: it logs the event and succeeds.
type LogPublisher struct {
	Logger *zap.Logger
}

// Publish implements Publisher.
func (p LogPublisher) Publish(_ context.Context, event models.OutboxEvent) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("outbox event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.EventType),
		zap.String("aggregate_id", event.AggregateID),
	)
	return nil
}

// OutboxDispatcher polls pending outbox rows and relays them through a
// worker queue. It is the only background component; the engine itself
// never spawns goroutines.
type OutboxDispatcher struct {
	repo      outboxRelayRepo
	publisher Publisher
	queue     *jobs.Queue
	logger    *zap.Logger
	cfg       config.OutboxConfig
}

// NewOutboxDispatcher builds the relay.
func NewOutboxDispatcher(repo outboxRelayRepo, publisher Publisher, logger *zap.Logger, cfg config.OutboxConfig) *OutboxDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = LogPublisher{Logger: logger}
	}
	d := &OutboxDispatcher{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
	d.queue = jobs.NewQueue("outbox", d.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return d
}

// Start launches the poll loop and workers until ctx is cancelled.
func (d *OutboxDispatcher) Start(ctx context.Context) {
	d.queue.Start(ctx)
	go d.poll(ctx)
}

// Stop drains the workers.
func (d *OutboxDispatcher) Stop() {
	d.queue.Stop()
}

func (d *OutboxDispatcher) poll(ctx context.Context) {
	interval := d.cfg.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.dispatchBatch(ctx)
		}
	}
}

func (d *OutboxDispatcher) dispatchBatch(ctx context.Context) {
	limit := d.cfg.BatchSize
	if limit <= 0 {
		limit = 50
	}
	events, err := d.repo.ListPending(ctx, limit)
	if err != nil {
		d.logger.Warn("outbox poll failed", zap.Error(err))
		return
	}
	for _, event := range events {
		job := jobs.Job{ID: event.ID, Type: event.EventType, Payload: event}
		if err := d.queue.Enqueue(job); err != nil {
			d.logger.Warn("outbox enqueue failed", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
}

func (d *OutboxDispatcher) handle(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(models.OutboxEvent)
	if !ok {
		d.logger.Error("outbox job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}

	if err := d.publisher.Publish(ctx, event); err != nil {
		if markErr := d.repo.MarkFailed(ctx, event.ID, event.Attempts+1, d.cfg.MaxRetries); markErr != nil {
			d.logger.Warn("outbox mark failed errored", zap.String("event_id", event.ID), zap.Error(markErr))
		}
		return err
	}
	if err := d.repo.MarkSent(ctx, event.ID); err != nil {
		d.logger.Warn("outbox mark sent errored", zap.String("event_id", event.ID), zap.Error(err))
	}
	return nil
}
