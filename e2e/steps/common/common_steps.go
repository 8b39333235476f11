package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SetOrg(org string)
	Do(method, path string, body any) error
	LastStatus() int
	ErrorCode() (string, error)
}

// RegisterSteps registers tenant-scope and assertion step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I am working in org "([^"]*)"$`, steps.setOrg)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I DELETE "([^"]*)"$`, steps.del)
	ctx.Step(`^the response status should be (\d+)$`, steps.assertStatus)
	ctx.Step(`^the response error should be "([^"]*)"$`, steps.assertErrorCode)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) setOrg(ctx context.Context, org string) error {
	s.tc.SetOrg(org)
	return nil
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.Do("GET", path, nil)
}

func (s *commonSteps) del(ctx context.Context, path string) error {
	return s.tc.Do("DELETE", path, nil)
}

func (s *commonSteps) assertStatus(ctx context.Context, expected int) error {
	if s.tc.LastStatus() != expected {
		return fmt.Errorf("expected status %d, got %d", expected, s.tc.LastStatus())
	}
	return nil
}

func (s *commonSteps) assertErrorCode(ctx context.Context, expected string) error {
	code, err := s.tc.ErrorCode()
	if err != nil {
		return err
	}
	if code != expected {
		return fmt.Errorf("expected error %q, got %q", expected, code)
	}
	return nil
}
