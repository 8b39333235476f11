package handler

import (
	"carebase/internal/shared/timefmt"
	"carebase/internal/workflow/models"
)

// TaskResponse is the wire DTO for a task. Timestamps are ISO-8601 strings
// with offset; optional timestamps are omitted when unset.
type TaskResponse struct {
	ID          string `json:"id"`
	OrgID       string `json:"orgId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
	PatientID   string `json:"patientId,omitempty"`
	Status      string `json:"status"`
	DueAt       string `json:"dueAt,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// FromModel converts a stored task to its wire shape.
func FromModel(t *models.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID.String(),
		OrgID:       t.OrgID.String(),
		Title:       t.Title,
		Description: t.Description,
		Assignee:    t.Assignee,
		Status:      string(t.Status),
		CreatedAt:   timefmt.ISO(t.CreatedAt),
		UpdatedAt:   timefmt.ISO(t.UpdatedAt),
	}
	if t.PatientID != nil {
		resp.PatientID = t.PatientID.String()
	}
	if t.DueAt != nil {
		resp.DueAt = timefmt.ISO(*t.DueAt)
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = timefmt.ISO(*t.CompletedAt)
	}
	return resp
}

// FromModels converts a page of tasks.
func FromModels(tasks []models.Task) []*TaskResponse {
	out := make([]*TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = FromModel(&tasks[i])
	}
	return out
}
