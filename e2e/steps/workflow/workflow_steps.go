package workflow

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

// RegisterSteps registers workflow-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &workflowSteps{tc: tc}

	ctx.Step(`^I create a task titled "([^"]*)"$`, steps.createTask)
	ctx.Step(`^I save the task id$`, steps.saveTaskID)
	ctx.Step(`^I complete the saved task$`, steps.completeSavedTask)
	ctx.Step(`^the task status should be "([^"]*)"$`, steps.assertStatus)
	ctx.Step(`^the task should carry a completion timestamp$`, steps.assertCompletedAt)
}

type workflowSteps struct {
	tc TestContext
}

func (s *workflowSteps) createTask(ctx context.Context, title string) error {
	body := map[string]any{
		"title":    title,
		"assignee": "dr.hart",
	}
	return s.tc.Do("POST", "/tasks", body)
}

func (s *workflowSteps) saveTaskID(ctx context.Context) error {
	id, err := s.tc.DataField("id")
	if err != nil {
		return err
	}
	s.tc.Save("task", id.(string))
	return nil
}

func (s *workflowSteps) completeSavedTask(ctx context.Context) error {
	id, err := s.tc.Saved("task")
	if err != nil {
		return err
	}
	return s.tc.Do("POST", "/tasks/"+id+"/complete", nil)
}

func (s *workflowSteps) assertStatus(ctx context.Context, expected string) error {
	status, err := s.tc.DataField("status")
	if err != nil {
		return err
	}
	if status != expected {
		return fmt.Errorf("expected task status %q, got %v", expected, status)
	}
	return nil
}

func (s *workflowSteps) assertCompletedAt(ctx context.Context) error {
	completedAt, err := s.tc.DataField("completedAt")
	if err != nil {
		return err
	}
	if completedAt == nil || completedAt == "" {
		return fmt.Errorf("expected a completion timestamp, got %v", completedAt)
	}
	return nil
}
