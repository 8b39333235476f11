package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebase/internal/platform/logger"
	audit "carebase/pkg/platform/audit"
	"carebase/pkg/platform/audit/store/memory"
)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
	fail   bool
}

func (s *recordingSink) Deliver(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("broker unavailable")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) delivered() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Event(nil), s.events...)
}

func testEvent(action string) audit.Event {
	return audit.Event{
		OrgID:        "clinic-east",
		Action:       action,
		ResourceType: "patient",
		ResourceID:   "p-1",
	}
}

func TestEmitSynchronous(t *testing.T) {
	store := memory.NewStore()
	sink := &recordingSink{}
	pub := NewPublisher(store, WithSink(sink), WithLogger(logger.New()))

	require.NoError(t, pub.Emit(context.Background(), testEvent(audit.ActionCreate)))

	events, err := pub.ListByOrg(context.Background(), "clinic-east")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionCreate, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp stamped on emit")
	assert.Len(t, sink.delivered(), 1)
}

func TestEmitSinkFailureDoesNotFailEmit(t *testing.T) {
	store := memory.NewStore()
	pub := NewPublisher(store, WithSink(&recordingSink{fail: true}), WithLogger(logger.New()))

	require.NoError(t, pub.Emit(context.Background(), testEvent(audit.ActionDelete)))

	events, err := store.ListByOrg(context.Background(), "clinic-east")
	require.NoError(t, err)
	assert.Len(t, events, 1, "store append still happens")
}

func TestEmitAsyncDrainsOnClose(t *testing.T) {
	store := memory.NewStore()
	sink := &recordingSink{}
	pub := NewPublisher(store, WithSink(sink), WithAsyncBuffer(64), WithLogger(logger.New()))

	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), testEvent(audit.ActionUpdate)))
	}
	pub.Close()

	events, err := store.ListByOrg(context.Background(), "clinic-east")
	require.NoError(t, err)
	assert.Len(t, events, 10)
	assert.Len(t, sink.delivered(), 10)
}

func TestEmitAsyncDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	store := memory.NewStore()
	gate := &gatedSink{block: block}
	pub := NewPublisher(store, WithSink(gate), WithAsyncBuffer(1), WithLogger(logger.New()))

	// First event occupies the drain goroutine, second fills the buffer;
	// everything after that is dropped without blocking.
	for range 5 {
		require.NoError(t, pub.Emit(context.Background(), testEvent(audit.ActionCreate)))
	}
	close(block)
	pub.Close()

	events, err := store.ListByOrg(context.Background(), "clinic-east")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(events), 3)
	assert.GreaterOrEqual(t, len(events), 1)
}

func TestCloseWithoutAsyncIsNoop(t *testing.T) {
	pub := NewPublisher(memory.NewStore())
	pub.Close()
	require.NoError(t, pub.Emit(context.Background(), testEvent(audit.ActionCreate)))
}

type gatedSink struct {
	block <-chan struct{}
	once  sync.Once
}

func (s *gatedSink) Deliver(_ context.Context, _ audit.Event) error {
	s.once.Do(func() {
		select {
		case <-s.block:
		case <-time.After(5 * time.Second):
		}
	})
	return nil
}
