package handler

import (
	"carebase/internal/knowledge/models"
	"carebase/internal/shared/timefmt"
	dErrors "carebase/pkg/domain-errors"
)

// CreateGuidelineRequest is the HTTP input for POST /guidelines. Dates are
// accepted in any inbound representation and re-serialized to the wire
// layout before storage.
type CreateGuidelineRequest struct {
	Code          string `json:"code"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	EffectiveDate string `json:"effectiveDate"`
	ReviewDate    string `json:"reviewDate"`
}

func (r CreateGuidelineRequest) Validate() error {
	if r.Code == "" {
		return dErrors.New(dErrors.CodeValidation, "code is required")
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.EffectiveDate != "" {
		if _, err := timefmt.Parse(r.EffectiveDate); err != nil {
			return dErrors.New(dErrors.CodeValidation, "effectiveDate must be an ISO-8601 date")
		}
	}
	if r.ReviewDate != "" {
		if _, err := timefmt.Parse(r.ReviewDate); err != nil {
			return dErrors.New(dErrors.CodeValidation, "reviewDate must be an ISO-8601 date")
		}
	}
	return nil
}

func (r CreateGuidelineRequest) ToInput() models.CreateGuideline {
	return models.CreateGuideline{
		Code:          r.Code,
		Title:         r.Title,
		Body:          r.Body,
		EffectiveDate: isoDate(r.EffectiveDate),
		ReviewDate:    isoDate(r.ReviewDate),
	}
}

// UpdateGuidelineRequest is the HTTP input for PATCH /guidelines/{id}.
// Absent fields are left unchanged.
type UpdateGuidelineRequest struct {
	Title         *string `json:"title"`
	Body          *string `json:"body"`
	EffectiveDate *string `json:"effectiveDate"`
	ReviewDate    *string `json:"reviewDate"`
	Status        *string `json:"status"`
}

func (r UpdateGuidelineRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	if r.Status != nil && !models.GuidelineStatus(*r.Status).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be draft, published or retired")
	}
	if r.EffectiveDate != nil && *r.EffectiveDate != "" {
		if _, err := timefmt.Parse(*r.EffectiveDate); err != nil {
			return dErrors.New(dErrors.CodeValidation, "effectiveDate must be an ISO-8601 date")
		}
	}
	if r.ReviewDate != nil && *r.ReviewDate != "" {
		if _, err := timefmt.Parse(*r.ReviewDate); err != nil {
			return dErrors.New(dErrors.CodeValidation, "reviewDate must be an ISO-8601 date")
		}
	}
	return nil
}

func (r UpdateGuidelineRequest) ToInput() models.UpdateGuideline {
	input := models.UpdateGuideline{
		Title: r.Title,
		Body:  r.Body,
	}
	if r.EffectiveDate != nil {
		normalized := isoDate(*r.EffectiveDate)
		input.EffectiveDate = &normalized
	}
	if r.ReviewDate != nil {
		normalized := isoDate(*r.ReviewDate)
		input.ReviewDate = &normalized
	}
	if r.Status != nil {
		status := models.GuidelineStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// isoDate re-serializes an inbound date to the wire layout; validation has
// already rejected unparseable input, so the fallthrough keeps empty strings
// empty.
func isoDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := timefmt.Parse(s)
	if err != nil {
		return s
	}
	return timefmt.ISO(t)
}
