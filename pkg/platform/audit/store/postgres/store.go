package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"carebase/pkg/domain"
	audit "carebase/pkg/platform/audit"
)

// Store persists audit events in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE audit_events (
//	    id             UUID PRIMARY KEY,
//	    org_id         TEXT NOT NULL,
//	    domain         TEXT NOT NULL,
//	    action         TEXT NOT NULL,
//	    resource_type  TEXT NOT NULL,
//	    resource_id    TEXT NOT NULL,
//	    correlation_id TEXT NOT NULL,
//	    request_id     TEXT NOT NULL DEFAULT '',
//	    actor          TEXT NOT NULL DEFAULT '',
//	    client_ip      TEXT NOT NULL DEFAULT '',
//	    browser        TEXT NOT NULL DEFAULT '',
//	    occurred_at    TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX audit_events_org_idx ON audit_events (org_id, occurred_at);
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL-backed audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects via the pq driver. The audit store keeps its own database/sql
// connection so audit writes never compete with the domain stores' pool.
func Open(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	return db, nil
}

// Append writes one audit event.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	const query = `
		INSERT INTO audit_events
			(id, org_id, domain, action, resource_type, resource_id,
			 correlation_id, request_id, actor, client_ip, browser, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		event.OrgID.String(),
		event.Domain.String(),
		event.Action,
		event.ResourceType,
		event.ResourceID,
		event.CorrelationID,
		event.RequestID,
		event.Actor,
		event.ClientIP,
		event.Browser,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListByOrg returns events for one org, oldest first.
func (s *Store) ListByOrg(ctx context.Context, org domain.OrgID) ([]audit.Event, error) {
	const query = `
		SELECT org_id, domain, action, resource_type, resource_id,
		       correlation_id, request_id, actor, client_ip, browser, occurred_at
		FROM audit_events
		WHERE org_id = $1
		ORDER BY occurred_at
	`
	rows, err := s.db.QueryContext(ctx, query, org.String())
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var e audit.Event
		var orgID, domainName string
		if err := rows.Scan(&orgID, &domainName, &e.Action, &e.ResourceType, &e.ResourceID,
			&e.CorrelationID, &e.RequestID, &e.Actor, &e.ClientIP, &e.Browser, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.OrgID = domain.OrgID(orgID)
		e.Domain = domain.ServiceDomain(domainName)
		events = append(events, e)
	}
	return events, rows.Err()
}
