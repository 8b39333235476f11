package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// TestContext carries shared state between steps of one scenario: the HTTP
// client, the tenant scope and the last response.
type TestContext struct {
	baseURL string
	org     string
	client  *http.Client

	lastStatus int
	lastBody   map[string]any

	// saved carries IDs between steps ("patient" -> uuid, ...).
	saved map[string]string
}

// NewTestContext builds a context against CAREBASE_URL (default local dev
// server). The server must run with AUTH_DISABLED=true.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("CAREBASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &TestContext{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		saved:   map[string]string{},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.org = ""
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.saved = map[string]string{}
}

// SetOrg sets the tenant header for subsequent requests.
func (tc *TestContext) SetOrg(org string) {
	tc.org = org
}

// Save stores an ID under a name for later steps.
func (tc *TestContext) Save(name, value string) {
	tc.saved[name] = value
}

// Saved returns a previously stored ID.
func (tc *TestContext) Saved(name string) (string, error) {
	v, ok := tc.saved[name]
	if !ok {
		return "", fmt.Errorf("nothing saved under %q", name)
	}
	return v, nil
}

// Do issues a request under /api/v1 with the tenant header and records the
// response.
func (tc *TestContext) Do(method, path string, body any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, tc.baseURL+"/api/v1"+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.org != "" {
		req.Header.Set("X-Org-Id", tc.org)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody = nil
	_ = json.NewDecoder(resp.Body).Decode(&tc.lastBody)
	return nil
}

// LastStatus returns the status code of the last response.
func (tc *TestContext) LastStatus() int {
	return tc.lastStatus
}

// DataField returns a field from the envelope's data object.
func (tc *TestContext) DataField(field string) (any, error) {
	data, ok := tc.lastBody["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("last response has no data object: %v", tc.lastBody)
	}
	v, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("data has no field %q", field)
	}
	return v, nil
}

// ErrorCode returns the error code of the last response.
func (tc *TestContext) ErrorCode() (string, error) {
	code, ok := tc.lastBody["error"].(string)
	if !ok {
		return "", fmt.Errorf("last response carries no error: %v", tc.lastBody)
	}
	return code, nil
}
