package domain

import (
	"github.com/google/uuid"

	dErrors "carebase/pkg/domain-errors"
)

// Typed entity identifiers. Each resource gets its own UUID-backed type so a
// task ID can never be passed where a patient ID is expected; the compiler
// enforces what generated call sites used to get wrong.
type (
	PatientID   uuid.UUID
	TaskID      uuid.UUID
	DecisionID  uuid.UUID
	GuidelineID uuid.UUID
	EndpointID  uuid.UUID
)

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs. All Parse helpers route through it so every ID type rejects
// the same malformed inputs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid id format")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil uuid")
	}
	return u, nil
}

// ParsePatientID validates external input into a PatientID.
func ParsePatientID(s string) (PatientID, error) {
	u, err := parseUUID(s)
	return PatientID(u), err
}

// ParseTaskID validates external input into a TaskID.
func ParseTaskID(s string) (TaskID, error) {
	u, err := parseUUID(s)
	return TaskID(u), err
}

// ParseDecisionID validates external input into a DecisionID.
func ParseDecisionID(s string) (DecisionID, error) {
	u, err := parseUUID(s)
	return DecisionID(u), err
}

// ParseGuidelineID validates external input into a GuidelineID.
func ParseGuidelineID(s string) (GuidelineID, error) {
	u, err := parseUUID(s)
	return GuidelineID(u), err
}

// ParseEndpointID validates external input into an EndpointID.
func ParseEndpointID(s string) (EndpointID, error) {
	u, err := parseUUID(s)
	return EndpointID(u), err
}

func (id PatientID) String() string   { return uuid.UUID(id).String() }
func (id TaskID) String() string      { return uuid.UUID(id).String() }
func (id DecisionID) String() string  { return uuid.UUID(id).String() }
func (id GuidelineID) String() string { return uuid.UUID(id).String() }
func (id EndpointID) String() string  { return uuid.UUID(id).String() }

func (id PatientID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id TaskID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id DecisionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id GuidelineID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EndpointID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
