// Package timefmt normalizes date-bearing fields to the wire representation:
// ISO-8601 UTC with millisecond precision and a Z offset.
package timefmt

import (
	"fmt"
	"time"
)

// Layout is the wire format for every timestamp the API emits.
const Layout = "2006-01-02T15:04:05.000Z07:00"

// DefaultDateFields applies when a caller passes an empty field list to
// Normalize.
var DefaultDateFields = []string{"createdAt", "updatedAt"}

// parseLayouts are the accepted inbound representations, tried in order.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ISO formats t in the wire layout. UTC is forced so the offset always
// renders as Z.
func ISO(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Normalize returns a shallow copy of doc with each listed string-typed date
// field re-serialized through ISO. An empty field list means
// DefaultDateFields.
//
// Only string values are touched: a time.Time (or anything else) in a listed
// field passes through unchanged. Upstream payloads are expected to carry
// dates as strings already; values of other types indicate a caller bug that
// must stay visible rather than be silently serialized. Absent fields stay
// absent, unparseable strings pass through unchanged, and unrelated fields
// are never copied beyond the shallow clone. Applying Normalize to its own
// output is a no-op.
func Normalize(doc map[string]any, dateFields []string) map[string]any {
	if doc == nil {
		return nil
	}
	if len(dateFields) == 0 {
		dateFields = DefaultDateFields
	}

	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, field := range dateFields {
		v, ok := out[field]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if t, ok := parse(s); ok {
			out[field] = ISO(t)
		}
	}
	return out
}

// NormalizeAll applies Normalize element-wise.
func NormalizeAll(docs []map[string]any, dateFields []string) []map[string]any {
	if docs == nil {
		return nil
	}
	out := make([]map[string]any, len(docs))
	for i, doc := range docs {
		out[i] = Normalize(doc, dateFields)
	}
	return out
}

// Parse reads a timestamp in any accepted inbound representation.
func Parse(s string) (time.Time, error) {
	if t, ok := parse(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parse(s string) (time.Time, bool) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
