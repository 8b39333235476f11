// Package repository defines the contract every domain repository must
// satisfy. Roughly ninety generated repositories and five hundred generated
// handlers depend structurally on these method sets, so the base interfaces
// are CLOSED FOR MODIFICATION: new capabilities are added as new interfaces
// that repositories opt into (see ActionRepository), never by widening
// ReadRepository or CrudRepository. Widening a base interface forces a
// mechanical regeneration of every implementation.
//
// Failure semantics: absence is a typed condition, not a nil result. FindByID,
// Update and Delete return sentinel.ErrNotFound (possibly wrapped) when no
// entity within the org scope matches; store-level faults propagate unmodified
// with no retry or translation. Callers distinguish absence from fault with
// errors.Is.
package repository

import (
	"context"

	"github.com/google/uuid"

	"carebase/pkg/domain"
)

// DefaultLimit applies when a list call specifies no limit.
// MaxLimit caps what a caller may request.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListParams is the baseline paging input for List. Domains that need richer
// filtering embed it in their own params struct.
type ListParams struct {
	// Cursor is an opaque continuation token from a previous page, empty for
	// the first page.
	Cursor string
	// Limit is the maximum number of items to return; 0 means DefaultLimit.
	Limit int
}

// EffectiveLimit resolves the caller-specified limit against the defaults.
func (p ListParams) EffectiveLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	}
	return p.Limit
}

// Page is one page of results plus opaque continuation tokens.
//
// Invariant: len(Items) never exceeds the caller-specified limit. NextCursor
// and PrevCursor are nil at the respective ends of the result set.
type Page[E any] struct {
	Items      []E
	NextCursor *string
	PrevCursor *string
}

// ReadRepository is the read-side contract. Every listable resource
// implements it. The org scope is mandatory on every call; implementations
// must never return an entity owned by a different org.
type ReadRepository[E any, P any] interface {
	FindByID(ctx context.Context, org domain.OrgID, id uuid.UUID) (*E, error)
	List(ctx context.Context, org domain.OrgID, params P) (Page[E], error)
}

// WriteRepository is the write-side contract. Create returns the stored
// entity; Update and Delete return sentinel.ErrNotFound when the target does
// not exist within the org scope.
type WriteRepository[E any, C any, U any] interface {
	Create(ctx context.Context, org domain.OrgID, input C) (*E, error)
	Update(ctx context.Context, org domain.OrgID, id uuid.UUID, input U) (*E, error)
	Delete(ctx context.Context, org domain.OrgID, id uuid.UUID) error
}

// CrudRepository composes the read and write contracts for resources with
// full lifecycle management.
type CrudRepository[E any, P any, C any, U any] interface {
	ReadRepository[E, P]
	WriteRepository[E, C, U]
}

// ActionRepository marks repositories that expose domain-specific verbs
// beyond CRUD (e.g. acknowledge a decision, complete a task). It is a
// capability marker: the verbs themselves are ordinary methods on the
// concrete repository, and Actions names them for introspection. Adding a
// verb to a repository never touches the base interfaces above.
type ActionRepository interface {
	Actions() []string
}
