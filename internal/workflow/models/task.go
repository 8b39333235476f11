package models

import (
	"time"

	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
)

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid checks the status against the supported values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// Task is a unit of clinical work assigned within an org.
//
// Invariants:
//   - Title is non-empty
//   - CompletedAt is set if and only if Status is completed
//   - CreatedAt is immutable after construction
type Task struct {
	ID          id.TaskID     `json:"id"`
	OrgID       id.OrgID      `json:"orgId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Assignee    string        `json:"assignee"`
	PatientID   *id.PatientID `json:"patientId"`
	Status      TaskStatus    `json:"status"`
	DueAt       *time.Time    `json:"dueAt"`
	CompletedAt *time.Time    `json:"completedAt"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CreateTask is the input for creating a task.
type CreateTask struct {
	Title       string
	Description string
	Assignee    string
	PatientID   *id.PatientID
	DueAt       *time.Time
}

// UpdateTask is the partial-update input; nil fields are left unchanged.
// Status transitions into completed go through Complete, not here.
type UpdateTask struct {
	Title       *string
	Description *string
	Assignee    *string
	DueAt       *time.Time
	Status      *TaskStatus
}

// NewTask validates and constructs a task in pending state.
func NewTask(taskID id.TaskID, org id.OrgID, input CreateTask, now time.Time) (*Task, error) {
	if input.Title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "task title cannot be empty")
	}
	return &Task{
		ID:          taskID,
		OrgID:       org,
		Title:       input.Title,
		Description: input.Description,
		Assignee:    input.Assignee,
		PatientID:   input.PatientID,
		Status:      TaskStatusPending,
		DueAt:       input.DueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Apply merges a partial update, bumping UpdatedAt.
func (t *Task) Apply(input UpdateTask, now time.Time) error {
	if input.Status != nil {
		if !input.Status.IsValid() {
			return dErrors.New(dErrors.CodeInvariantViolation, "invalid task status")
		}
		if *input.Status == TaskStatusCompleted {
			return dErrors.New(dErrors.CodeInvariantViolation, "tasks are completed through the complete action")
		}
		if t.Status.IsTerminal() {
			return dErrors.New(dErrors.CodeConflict, "task is in a terminal state")
		}
		t.Status = *input.Status
	}
	if input.Title != nil {
		if *input.Title == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "task title cannot be empty")
		}
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Assignee != nil {
		t.Assignee = *input.Assignee
	}
	if input.DueAt != nil {
		t.DueAt = input.DueAt
	}
	t.UpdatedAt = now
	return nil
}

// Complete transitions the task to completed. Only pending and in_progress
// tasks can complete; anything else is an invalid-state transition.
func (t *Task) Complete(now time.Time) error {
	if t.Status.IsTerminal() {
		return dErrors.New(dErrors.CodeConflict, "task is already in a terminal state")
	}
	t.Status = TaskStatusCompleted
	completedAt := now
	t.CompletedAt = &completedAt
	t.UpdatedAt = now
	return nil
}
