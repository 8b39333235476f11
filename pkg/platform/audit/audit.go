// Package audit captures the who/what/when of every write operation and
// domain action. Events are transport-agnostic so stores and sinks can fan
// out: the local store is the query surface for the dashboard, the Kafka sink
// feeds the compliance pipeline.
package audit

import (
	"context"
	"time"

	"carebase/pkg/domain"
)

// Event is emitted from handlers after a successful mutation. Keep it flat;
// consumers index on org, domain and action.
type Event struct {
	OrgID         domain.OrgID
	Domain        domain.ServiceDomain
	Action        string
	ResourceType  string
	ResourceID    string
	CorrelationID string
	RequestID     string
	// Actor is the authenticated subject, empty when auth is disabled.
	Actor     string
	ClientIP  string
	Browser   string
	Timestamp time.Time
}

// Well-known actions. Domain verbs (acknowledge, complete) use their verb
// name directly.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByOrg(ctx context.Context, org domain.OrgID) ([]Event, error)
}

// Sink receives a copy of every event for out-of-process delivery. Sinks are
// best-effort: a sink failure never fails the originating request.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}
