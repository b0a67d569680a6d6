package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/tutor-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoJSONRequest sends body to handler as a JSON request and returns the
// recorded response.
func DoJSONRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	return rec
}

// AssertCORSHeaders checks the cross-origin headers every response must carry.
func AssertCORSHeaders(t *testing.T, header http.Header) {
	t.Helper()

	assert.Equal(t, "*", header.Get("Access-Control-Allow-Origin"), "Access-Control-Allow-Origin")
	assert.Equal(t, "true", header.Get("Access-Control-Allow-Credentials"), "Access-Control-Allow-Credentials")
}

// AssertErrorResponse verifies the status code and error message of an error
// response and returns the decoded body.
func AssertErrorResponse(
	t *testing.T,
	rec *httptest.ResponseRecorder,
	expectedStatus int,
	expectedError string,
) shared.ErrorResponse {
	t.Helper()

	assert.Equal(t, expectedStatus, rec.Code, "Status code should match expected")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "Error response should be valid JSON")
	assert.Equal(t, expectedError, resp.Error, "Error message should match expected")

	return resp
}

// CleanupResponseBody registers a cleanup function to close the response body.
func CleanupResponseBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp != nil && resp.Body != nil {
		t.Cleanup(func() {
			if err := resp.Body.Close(); err != nil {
				t.Logf("Warning: failed to close response body: %v", err)
			}
		})
	}
}
