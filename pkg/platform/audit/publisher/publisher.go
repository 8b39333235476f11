package publisher

import (
	"context"
	"log/slog"
	"time"

	"carebase/pkg/domain"
	audit "carebase/pkg/platform/audit"
)

// Publisher appends audit events to the store and fans them out to sinks.
// Synchronous by default; WithAsyncBuffer switches to a bounded channel
// drained by a background goroutine, dropping events when the buffer is full
// rather than blocking the request path.
type Publisher struct {
	store  audit.Store
	sinks  []audit.Sink
	logger *slog.Logger

	inbox chan audit.Event
	done  chan struct{}
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous publishing with the given buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

// WithSink adds an out-of-process delivery target.
func WithSink(sink audit.Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

// WithLogger sets the logger for drop/delivery warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher builds a publisher over the given store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.done = make(chan struct{})
		go p.drain()
	}
	return p
}

// Emit records an event. Timestamp is stamped here when the caller left it
// zero. In async mode a full buffer drops the event with a warning; audit
// loss is preferable to blocking a clinical workflow request.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if p.inbox == nil {
		return p.process(ctx, event)
	}

	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.Warn("audit buffer full, dropping event",
			"org_id", event.OrgID.String(),
			"action", event.Action,
			"resource_type", event.ResourceType,
		)
		return nil
	}
}

// ListByOrg exposes the store's query surface through the publisher so
// callers hold a single audit dependency.
func (p *Publisher) ListByOrg(ctx context.Context, org domain.OrgID) ([]audit.Event, error) {
	return p.store.ListByOrg(ctx, org)
}

// Close drains the async buffer and stops the background goroutine.
func (p *Publisher) Close() {
	if p.inbox == nil {
		return
	}
	close(p.inbox)
	<-p.done
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.inbox {
		if err := p.process(context.Background(), event); err != nil {
			p.logger.Warn("audit event processing failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
}

func (p *Publisher) process(ctx context.Context, event audit.Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		if err := sink.Deliver(ctx, event); err != nil {
			p.logger.Warn("audit sink delivery failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
	return nil
}
