// Package faults translates store-level sentinel errors into coded domain
// errors at the handler boundary. Anything unrecognized passes through
// wrapped as an internal fault: no retry, no transformation, the boundary
// decides.
package faults

import (
	"errors"

	dErrors "carebase/pkg/domain-errors"
	"carebase/pkg/platform/sentinel"
)

// FromStore maps a repository error onto the coded taxonomy. The resource
// name feeds the client-facing message ("patient not found").
func FromStore(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, resource+" not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, resource+" conflicts with existing state")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeConflict, resource+" is in the wrong state for this operation")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeInternal, "store unavailable")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "store failure")
}
