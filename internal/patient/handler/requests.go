package handler

import (
	"carebase/internal/patient/models"
	dErrors "carebase/pkg/domain-errors"
)

// CreatePatientRequest is the HTTP input for POST /patients. The schema
// layer upstream has already shape-checked the body; Validate enforces the
// domain-level rules the schema cannot express.
type CreatePatientRequest struct {
	MRN        string `json:"mrn"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
	BirthDate  string `json:"birthDate"`
	Status     string `json:"status"`
}

func (r CreatePatientRequest) Validate() error {
	if r.MRN == "" {
		return dErrors.New(dErrors.CodeValidation, "mrn is required")
	}
	if r.GivenName == "" {
		return dErrors.New(dErrors.CodeValidation, "givenName is required")
	}
	if r.FamilyName == "" {
		return dErrors.New(dErrors.CodeValidation, "familyName is required")
	}
	if r.Status != "" && !models.PatientStatus(r.Status).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be active or inactive")
	}
	return nil
}

func (r CreatePatientRequest) ToInput() models.CreatePatient {
	return models.CreatePatient{
		MRN:        r.MRN,
		GivenName:  r.GivenName,
		FamilyName: r.FamilyName,
		BirthDate:  r.BirthDate,
		Status:     models.PatientStatus(r.Status),
	}
}

// UpdatePatientRequest is the HTTP input for PATCH /patients/{id}.
// Absent fields are left unchanged.
type UpdatePatientRequest struct {
	GivenName  *string `json:"givenName"`
	FamilyName *string `json:"familyName"`
	BirthDate  *string `json:"birthDate"`
	Status     *string `json:"status"`
}

func (r UpdatePatientRequest) Validate() error {
	if r.GivenName != nil && *r.GivenName == "" {
		return dErrors.New(dErrors.CodeValidation, "givenName cannot be empty")
	}
	if r.FamilyName != nil && *r.FamilyName == "" {
		return dErrors.New(dErrors.CodeValidation, "familyName cannot be empty")
	}
	if r.Status != nil && !models.PatientStatus(*r.Status).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be active or inactive")
	}
	return nil
}

func (r UpdatePatientRequest) ToInput() models.UpdatePatient {
	input := models.UpdatePatient{
		GivenName:  r.GivenName,
		FamilyName: r.FamilyName,
		BirthDate:  r.BirthDate,
	}
	if r.Status != nil {
		status := models.PatientStatus(*r.Status)
		input.Status = &status
	}
	return input
}
