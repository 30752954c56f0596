package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/msaedi/instructly-sub007/internal/models"
	"github.com/msaedi/instructly-sub007/pkg/config"
	"github.com/msaedi/instructly-sub007/pkg/jobs"
)

type relayRepoStub struct {
	mu      sync.Mutex
	pending []models.OutboxEvent
	sent    []string
	failed  map[string]int
}

func newRelayRepoStub(events ...models.OutboxEvent) *relayRepoStub {
	return &relayRepoStub{pending: events, failed: make(map[string]int)}
}

func (s *relayRepoStub) ListPending(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) > limit {
		return append([]models.OutboxEvent(nil), s.pending[:limit]...), nil
	}
	return append([]models.OutboxEvent(nil), s.pending...), nil
}

func (s *relayRepoStub) MarkSent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, id)
	kept := s.pending[:0]
	for _, event := range s.pending {
		if event.ID != id {
			kept = append(kept, event)
		}
	}
	s.pending = kept
	return nil
}

func (s *relayRepoStub) MarkFailed(ctx context.Context, id string, attempts, maxRetries int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[id] = attempts
	return nil
}

func (s *relayRepoStub) sentIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

type publisherStub struct {
	mu        sync.Mutex
	err       error
	delivered []models.OutboxEvent
}

func (p *publisherStub) Publish(ctx context.Context, event models.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.delivered = append(p.delivered, event)
	return nil
}

func testEvent(id string) models.OutboxEvent {
	return models.OutboxEvent{
		ID:          id,
		EventType:   models.OutboxEventWeekSaved,
		AggregateID: testInstructor,
		Payload:     types.JSONText(`{}`),
		Status:      models.OutboxStatusPending,
	}
}

func TestOutboxHandleMarksSent(t *testing.T) {
	repo := newRelayRepoStub()
	publisher := &publisherStub{}
	d := NewOutboxDispatcher(repo, publisher, zap.NewNop(), config.OutboxConfig{MaxRetries: 3})

	event := testEvent("evt-1")
	err := d.handle(context.Background(), jobs.Job{ID: event.ID, Type: event.EventType, Payload: event})
	require.NoError(t, err)

	assert.Equal(t, []string{"evt-1"}, repo.sentIDs())
	require.Len(t, publisher.delivered, 1)
	assert.Equal(t, "evt-1", publisher.delivered[0].ID)
	assert.Empty(t, repo.failed)
}

func TestOutboxHandleMarksFailed(t *testing.T) {
	repo := newRelayRepoStub()
	publisher := &publisherStub{err: errors.New("broker down")}
	d := NewOutboxDispatcher(repo, publisher, zap.NewNop(), config.OutboxConfig{MaxRetries: 3})

	event := testEvent("evt-1")
	event.Attempts = 1
	err := d.handle(context.Background(), jobs.Job{ID: event.ID, Type: event.EventType, Payload: event})
	require.Error(t, err)

	assert.Empty(t, repo.sentIDs())
	assert.Equal(t, 2, repo.failed["evt-1"], "attempt count advances on failure")
}

func TestOutboxHandleIgnoresForeignPayload(t *testing.T) {
	repo := newRelayRepoStub()
	d := NewOutboxDispatcher(repo, &publisherStub{}, zap.NewNop(), config.OutboxConfig{})

	err := d.handle(context.Background(), jobs.Job{ID: "junk", Payload: 42})
	require.NoError(t, err, "malformed jobs are dropped, not retried")
	assert.Empty(t, repo.sentIDs())
}

func TestOutboxDispatchBatchRelaysPending(t *testing.T) {
	repo := newRelayRepoStub(testEvent("evt-1"), testEvent("evt-2"))
	publisher := &publisherStub{}
	d := NewOutboxDispatcher(repo, publisher, zap.NewNop(), config.OutboxConfig{
		PollInterval: time.Hour, // poll manually below
		BatchSize:    10,
		Workers:      1,
		MaxRetries:   1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	d.dispatchBatch(ctx)

	assert.Eventually(t, func() bool {
		return len(repo.sentIDs()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{"evt-1", "evt-2"}, repo.sentIDs())
}

func TestOutboxDispatchBatchHonoursLimit(t *testing.T) {
	repo := newRelayRepoStub(testEvent("evt-1"), testEvent("evt-2"), testEvent("evt-3"))
	events, err := repo.ListPending(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestLogPublisherAlwaysSucceeds(t *testing.T) {
	assert.NoError(t, LogPublisher{}.Publish(context.Background(), testEvent("evt-1")))
}
