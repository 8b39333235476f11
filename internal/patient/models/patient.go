package models

import (
	"time"

	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
)

// PatientStatus tracks whether a record is in active care.
type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

// IsValid checks the status against the supported values.
func (s PatientStatus) IsValid() bool {
	return s == PatientStatusActive || s == PatientStatusInactive
}

// Patient is the clinical-data aggregate for one person within an org.
//
// Invariants:
//   - MRN is non-empty and unique within the owning org
//   - GivenName and FamilyName are non-empty
//   - CreatedAt is immutable after construction
type Patient struct {
	ID         id.PatientID  `json:"id"`
	OrgID      id.OrgID      `json:"orgId"`
	MRN        string        `json:"mrn"`
	GivenName  string        `json:"givenName"`
	FamilyName string        `json:"familyName"`
	BirthDate  string        `json:"birthDate"`
	Status     PatientStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// CreatePatient is the input for creating a patient record.
type CreatePatient struct {
	MRN        string
	GivenName  string
	FamilyName string
	BirthDate  string
	Status     PatientStatus
}

// UpdatePatient is the partial-update input; nil fields are left unchanged.
type UpdatePatient struct {
	GivenName  *string
	FamilyName *string
	BirthDate  *string
	Status     *PatientStatus
}

// NewPatient validates and constructs a patient record.
func NewPatient(patientID id.PatientID, org id.OrgID, input CreatePatient, now time.Time) (*Patient, error) {
	if input.MRN == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "mrn cannot be empty")
	}
	if input.GivenName == "" || input.FamilyName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "patient name cannot be empty")
	}
	status := input.Status
	if status == "" {
		status = PatientStatusActive
	}
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid patient status")
	}
	return &Patient{
		ID:         patientID,
		OrgID:      org,
		MRN:        input.MRN,
		GivenName:  input.GivenName,
		FamilyName: input.FamilyName,
		BirthDate:  input.BirthDate,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Apply merges a partial update, bumping UpdatedAt.
func (p *Patient) Apply(input UpdatePatient, now time.Time) error {
	if input.Status != nil && !input.Status.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "invalid patient status")
	}
	if input.GivenName != nil {
		if *input.GivenName == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "patient name cannot be empty")
		}
		p.GivenName = *input.GivenName
	}
	if input.FamilyName != nil {
		if *input.FamilyName == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "patient name cannot be empty")
		}
		p.FamilyName = *input.FamilyName
	}
	if input.BirthDate != nil {
		p.BirthDate = *input.BirthDate
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	p.UpdatedAt = now
	return nil
}
