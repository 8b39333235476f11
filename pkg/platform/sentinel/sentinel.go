package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so handlers can translate them into coded
// domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist within the supplied org scope
// - ErrConflict: write conflicts with existing state (duplicate key, version)
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: backing service temporarily unavailable
//
// A cross-tenant lookup is indistinguishable from absence: stores return
// ErrNotFound for both, never a hint that the entity exists in another org.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
