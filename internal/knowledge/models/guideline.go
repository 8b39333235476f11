package models

import (
	"time"

	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
)

// GuidelineStatus tracks a guideline through its editorial lifecycle.
type GuidelineStatus string

const (
	GuidelineStatusDraft     GuidelineStatus = "draft"
	GuidelineStatusPublished GuidelineStatus = "published"
	GuidelineStatusRetired   GuidelineStatus = "retired"
)

// IsValid checks the status against the supported values.
func (s GuidelineStatus) IsValid() bool {
	return s == GuidelineStatusDraft || s == GuidelineStatusPublished || s == GuidelineStatusRetired
}

// Guideline is one clinical guideline document within an org. The effective
// and review dates are kept in wire form (ISO-8601 strings) because they are
// calendar dates authored upstream, not instants this service measures.
type Guideline struct {
	ID            id.GuidelineID  `json:"id"`
	OrgID         id.OrgID        `json:"orgId"`
	Code          string          `json:"code"`
	Title         string          `json:"title"`
	Body          string          `json:"body"`
	Version       int             `json:"version"`
	EffectiveDate string          `json:"effectiveDate"`
	ReviewDate    string          `json:"reviewDate"`
	Status        GuidelineStatus `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateGuideline is the input for creating a guideline.
type CreateGuideline struct {
	Code          string
	Title         string
	Body          string
	EffectiveDate string
	ReviewDate    string
}

// UpdateGuideline is the partial-update input; nil fields are left
// unchanged. Every applied update bumps Version.
type UpdateGuideline struct {
	Title         *string
	Body          *string
	EffectiveDate *string
	ReviewDate    *string
	Status        *GuidelineStatus
}

// NewGuideline validates and constructs a draft guideline at version 1.
func NewGuideline(guidelineID id.GuidelineID, org id.OrgID, input CreateGuideline, now time.Time) (*Guideline, error) {
	if input.Code == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "guideline code cannot be empty")
	}
	if input.Title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "guideline title cannot be empty")
	}
	return &Guideline{
		ID:            guidelineID,
		OrgID:         org,
		Code:          input.Code,
		Title:         input.Title,
		Body:          input.Body,
		Version:       1,
		EffectiveDate: input.EffectiveDate,
		ReviewDate:    input.ReviewDate,
		Status:        GuidelineStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Apply merges a partial update, bumping Version and UpdatedAt. Retired
// guidelines are frozen.
func (g *Guideline) Apply(input UpdateGuideline, now time.Time) error {
	if g.Status == GuidelineStatusRetired {
		return dErrors.New(dErrors.CodeConflict, "retired guidelines cannot be edited")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "invalid guideline status")
	}
	if input.Title != nil {
		if *input.Title == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "guideline title cannot be empty")
		}
		g.Title = *input.Title
	}
	if input.Body != nil {
		g.Body = *input.Body
	}
	if input.EffectiveDate != nil {
		g.EffectiveDate = *input.EffectiveDate
	}
	if input.ReviewDate != nil {
		g.ReviewDate = *input.ReviewDate
	}
	if input.Status != nil {
		g.Status = *input.Status
	}
	g.Version++
	g.UpdatedAt = now
	return nil
}
