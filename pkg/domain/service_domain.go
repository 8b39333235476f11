package domain

import (
	"fmt"
)

// ServiceDomain identifies one of the five service domains of the platform.
// This is a domain primitive that enforces validity at parse time; the
// correlation ID generator uses its prefix to tag request identifiers.
type ServiceDomain string

// The five service domains.
const (
	DomainDecision    ServiceDomain = "decision"
	DomainIntegration ServiceDomain = "integration"
	DomainKnowledge   ServiceDomain = "knowledge"
	DomainPatient     ServiceDomain = "patient"
	DomainWorkflow    ServiceDomain = "workflow"
)

// domainPrefixes is the single source of truth for valid domains and their
// correlation ID prefixes.
var domainPrefixes = map[ServiceDomain]string{
	DomainDecision:    "DEC",
	DomainIntegration: "INT",
	DomainKnowledge:   "KNO",
	DomainPatient:     "PAT",
	DomainWorkflow:    "WOR",
}

// ParseServiceDomain validates and returns a ServiceDomain.
// Returns an error if the domain is unknown.
func ParseServiceDomain(s string) (ServiceDomain, error) {
	d := ServiceDomain(s)
	if _, ok := domainPrefixes[d]; !ok {
		return "", fmt.Errorf("unknown service domain: %s", s)
	}
	return d, nil
}

// String returns the string representation of the service domain.
func (d ServiceDomain) String() string {
	return string(d)
}

// Prefix returns the correlation ID prefix for the domain (e.g. "PAT").
func (d ServiceDomain) Prefix() string {
	return domainPrefixes[d]
}

// IsValid checks if the domain is one of the supported values.
func (d ServiceDomain) IsValid() bool {
	_, ok := domainPrefixes[d]
	return ok
}

// ServiceDomains returns all supported service domains.
func ServiceDomains() []ServiceDomain {
	return []ServiceDomain{
		DomainDecision,
		DomainIntegration,
		DomainKnowledge,
		DomainPatient,
		DomainWorkflow,
	}
}
