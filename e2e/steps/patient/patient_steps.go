package patient

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any) error
	DataField(field string) (any, error)
	Save(name, value string)
	Saved(name string) (string, error)
}

// RegisterSteps registers patient-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &patientSteps{tc: tc}

	ctx.Step(`^I register a patient with MRN "([^"]*)"$`, steps.registerPatient)
	ctx.Step(`^I save the patient id$`, steps.savePatientID)
	ctx.Step(`^I fetch the saved patient$`, steps.fetchSavedPatient)
	ctx.Step(`^I delete the saved patient$`, steps.deleteSavedPatient)
	ctx.Step(`^the patient MRN should be "([^"]*)"$`, steps.assertMRN)
	ctx.Step(`^the patient status should be "([^"]*)"$`, steps.assertStatus)
}

type patientSteps struct {
	tc TestContext
}

func (s *patientSteps) registerPatient(ctx context.Context, mrn string) error {
	body := map[string]any{
		"mrn":        mrn,
		"givenName":  "Ada",
		"familyName": "Lovelace",
		"birthDate":  "1815-12-10",
	}
	return s.tc.Do("POST", "/patients", body)
}

func (s *patientSteps) savePatientID(ctx context.Context) error {
	id, err := s.tc.DataField("id")
	if err != nil {
		return err
	}
	s.tc.Save("patient", id.(string))
	return nil
}

func (s *patientSteps) fetchSavedPatient(ctx context.Context) error {
	id, err := s.tc.Saved("patient")
	if err != nil {
		return err
	}
	return s.tc.Do("GET", "/patients/"+id, nil)
}

func (s *patientSteps) deleteSavedPatient(ctx context.Context) error {
	id, err := s.tc.Saved("patient")
	if err != nil {
		return err
	}
	return s.tc.Do("DELETE", "/patients/"+id, nil)
}

func (s *patientSteps) assertMRN(ctx context.Context, expected string) error {
	mrn, err := s.tc.DataField("mrn")
	if err != nil {
		return err
	}
	if mrn != expected {
		return fmt.Errorf("expected MRN %q, got %v", expected, mrn)
	}
	return nil
}

func (s *patientSteps) assertStatus(ctx context.Context, expected string) error {
	status, err := s.tc.DataField("status")
	if err != nil {
		return err
	}
	if status != expected {
		return fmt.Errorf("expected patient status %q, got %v", expected, status)
	}
	return nil
}
