package domain

import (
	dErrors "carebase/pkg/domain-errors"
)

// OrgID is the tenant scope for every repository operation.
// It is a validated domain primitive, not a bare string: a repository call
// site cannot omit it, and a handler cannot forward an unvalidated header
// value without going through ParseOrgID first.
//
// Invariant: no repository operation may return or mutate an entity whose
// tenant does not match the supplied OrgID. The stores enforce this by
// filtering on the scope; callers never see cross-tenant rows.
type OrgID string

const maxOrgIDLength = 64

// ParseOrgID constructs an OrgID from external input.
//
// Usage: call from the org-scope middleware when translating the X-Org-Id
// header; direct casting bypasses validation.
//
// Errors: returns CodeInvalidInput when the value is empty, too long, or
// contains characters outside [A-Za-z0-9._-].
func ParseOrgID(s string) (OrgID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "org id cannot be empty")
	}
	if len(s) > maxOrgIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "org id too long")
	}
	for _, r := range s {
		if !isOrgIDRune(r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "org id contains invalid characters")
		}
	}
	return OrgID(s), nil
}

func isOrgIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.':
		return true
	}
	return false
}

// String returns the string representation of the org ID.
func (o OrgID) String() string {
	return string(o)
}

// IsNil returns true if the org ID is empty.
func (o OrgID) IsNil() bool {
	return o == ""
}
