//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParsePatientID tests that parsing never panics on arbitrary input and
// that accepted IDs round-trip.
func FuzzParsePatientID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE patients;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParsePatientID(input)

		if err == nil {
			roundTrip, err2 := ParsePatientID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
		}

		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseOrgID tests the tenant identifier charset allowlist.
func FuzzParseOrgID(f *testing.F) {
	f.Add("clinic-001")
	f.Add("")
	f.Add("ORG.WEST_2")
	f.Add("spaces are bad")
	f.Add("'; DROP TABLE orgs;--")

	f.Fuzz(func(t *testing.T, input string) {
		org, err := ParseOrgID(input)

		if err == nil {
			if org.IsNil() {
				t.Error("accepted org parsed as nil")
			}
			roundTrip, err2 := ParseOrgID(org.String())
			if err2 != nil {
				t.Errorf("valid org failed round-trip: %v", err2)
			}
			if roundTrip != org {
				t.Error("round-trip changed org value")
			}
		}
	})
}
