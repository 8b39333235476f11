// Package envelope builds the uniform {data, meta} wrapper applied to every
// successful API response.
//
// The builder embeds data directly: no defensive cloning, no field stripping.
// Pagination is attached by the list handler, never by the builder; the
// builder only knows about the single data/meta shape.
package envelope

import (
	"time"

	"carebase/internal/shared/timefmt"
)

// Pagination is the list-response continuation block.
type Pagination struct {
	NextCursor *string `json:"nextCursor"`
	PrevCursor *string `json:"prevCursor"`
	// Limit is the ACTUAL number of items returned in this page, not the
	// requested page size. Client generators must not assume requested-limit
	// semantics; this convention is part of the API contract.
	Limit int `json:"limit"`
}

// Meta carries per-response tracing information.
type Meta struct {
	CorrelationID string      `json:"correlationId"`
	Timestamp     string      `json:"timestamp"`
	Pagination    *Pagination `json:"pagination,omitempty"`
}

// Response is the wire shape of every successful response.
type Response[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// New wraps a single entity. Meta is present only when a correlation ID is
// supplied; its timestamp is captured at construction time.
func New[T any](data T, correlationID string) Response[T] {
	return Response[T]{Data: data, Meta: newMeta(correlationID)}
}

// NewList wraps a page of entities. The shape is identical to New; the
// handler attaches Pagination to Meta before writing the response.
func NewList[T any](items []T, correlationID string) Response[[]T] {
	return Response[[]T]{Data: items, Meta: newMeta(correlationID)}
}

func newMeta(correlationID string) *Meta {
	if correlationID == "" {
		return nil
	}
	return &Meta{
		CorrelationID: correlationID,
		Timestamp:     timefmt.ISO(time.Now()),
	}
}
