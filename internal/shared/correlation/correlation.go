// Package correlation generates per-request trace identifiers.
//
// A correlation ID is created fresh for every handler invocation, returned in
// the response meta, and recorded on audit events. It is never persisted as
// an entity and carries no state: uniqueness is delegated entirely to the
// UUID source, so generation is safe for unbounded concurrent use.
package correlation

import (
	"github.com/google/uuid"

	"carebase/pkg/domain"
)

// New returns a domain-tagged correlation ID of the form <PREFIX>-<uuidv4>,
// e.g. "PAT-9f1c...".
func New(d domain.ServiceDomain) string {
	return d.Prefix() + "-" + uuid.NewString()
}

// Generic returns an untagged identifier for non-transactional uses
// (background jobs, internal fan-out) where no service domain applies.
func Generic() string {
	return uuid.NewString()
}
