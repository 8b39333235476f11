package repository

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "carebase/pkg/domain-errors"
)

// Cursors are opaque continuation tokens over the (createdAt, id) keyset.
// A token carries its direction: "after" tokens come from NextCursor, and
// "before" tokens from PrevCursor, so a client can walk the result set both
// ways with the same cursor query parameter.

// Direction says which side of the keyset position a page continues on.
type Direction byte

const (
	After  Direction = 'a'
	Before Direction = 'b'
)

// Cursor is the decoded form of a continuation token.
type Cursor struct {
	Dir       Direction
	CreatedAt time.Time
	ID        uuid.UUID
}

// EncodeAfter builds the NextCursor token for the last item of a page.
func EncodeAfter(createdAt time.Time, id uuid.UUID) string {
	return encode(After, createdAt, id)
}

// EncodeBefore builds the PrevCursor token for the first item of a page.
func EncodeBefore(createdAt time.Time, id uuid.UUID) string {
	return encode(Before, createdAt, id)
}

func encode(dir Direction, createdAt time.Time, id uuid.UUID) string {
	raw := fmt.Sprintf("%c|%s|%s", dir, createdAt.UTC().Format(time.RFC3339Nano), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a continuation token. Returns CodeInvalidInput for
// anything a previous page did not hand out.
func DecodeCursor(s string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, dErrors.New(dErrors.CodeInvalidInput, "invalid cursor")
	}
	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 || len(parts[0]) != 1 {
		return Cursor{}, dErrors.New(dErrors.CodeInvalidInput, "invalid cursor")
	}
	dir := Direction(parts[0][0])
	if dir != After && dir != Before {
		return Cursor{}, dErrors.New(dErrors.CodeInvalidInput, "invalid cursor")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, parts[1])
	if err != nil {
		return Cursor{}, dErrors.New(dErrors.CodeInvalidInput, "invalid cursor")
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return Cursor{}, dErrors.New(dErrors.CodeInvalidInput, "invalid cursor")
	}
	return Cursor{Dir: dir, CreatedAt: createdAt, ID: id}, nil
}
