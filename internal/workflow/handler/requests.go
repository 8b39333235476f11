package handler

import (
	"carebase/internal/shared/timefmt"
	"carebase/internal/workflow/models"
	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
)

// CreateTaskRequest is the HTTP input for POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	PatientID   string `json:"patientId"`
	DueAt       string `json:"dueAt"`
}

func (r CreateTaskRequest) Validate() error {
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.PatientID != "" {
		if _, err := id.ParsePatientID(r.PatientID); err != nil {
			return dErrors.New(dErrors.CodeValidation, "patientId must be a valid uuid")
		}
	}
	if r.DueAt != "" {
		if _, err := timefmt.Parse(r.DueAt); err != nil {
			return dErrors.New(dErrors.CodeValidation, "dueAt must be an ISO-8601 timestamp")
		}
	}
	return nil
}

func (r CreateTaskRequest) ToInput() models.CreateTask {
	input := models.CreateTask{
		Title:       r.Title,
		Description: r.Description,
		Assignee:    r.Assignee,
	}
	if r.PatientID != "" {
		if pid, err := id.ParsePatientID(r.PatientID); err == nil {
			input.PatientID = &pid
		}
	}
	if r.DueAt != "" {
		if due, err := timefmt.Parse(r.DueAt); err == nil {
			input.DueAt = &due
		}
	}
	return input
}

// UpdateTaskRequest is the HTTP input for PATCH /tasks/{id}.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Assignee    *string `json:"assignee"`
	DueAt       *string `json:"dueAt"`
	Status      *string `json:"status"`
}

func (r UpdateTaskRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	if r.Status != nil && !models.TaskStatus(*r.Status).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be pending, in_progress, completed or cancelled")
	}
	if r.DueAt != nil && *r.DueAt != "" {
		if _, err := timefmt.Parse(*r.DueAt); err != nil {
			return dErrors.New(dErrors.CodeValidation, "dueAt must be an ISO-8601 timestamp")
		}
	}
	return nil
}

func (r UpdateTaskRequest) ToInput() models.UpdateTask {
	input := models.UpdateTask{
		Title:       r.Title,
		Description: r.Description,
		Assignee:    r.Assignee,
	}
	if r.Status != nil {
		status := models.TaskStatus(*r.Status)
		input.Status = &status
	}
	if r.DueAt != nil && *r.DueAt != "" {
		if due, err := timefmt.Parse(*r.DueAt); err == nil {
			input.DueAt = &due
		}
	}
	return input
}
