package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tutor-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusOK,
			data:         map[string]interface{}{"answer": "hola"},
			expectedBody: `{"answer":"hola"}`,
		},
		{
			name:         "markdown is not html-escaped",
			status:       http.StatusOK,
			data:         map[string]string{"contentMD": "a < b && c > d"},
			expectedBody: `{"contentMD":"a < b && c > d"}`,
		},
		{
			name:         "nil response",
			status:       http.StatusOK,
			data:         nil,
			expectedBody: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, tc.expectedBody+"\n", w.Body.String())
		})
	}
}

func TestRespondWithError(t *testing.T) {
	t.Run("with trace id", func(t *testing.T) {
		l, logBuf := logger.GetTestLogger(t)
		ctx := logger.WithLogger(WithTraceID(context.Background(), "trace-123"), l)
		req := httptest.NewRequest(http.MethodPost, "/build-plan-spec", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		RespondWithError(w, req, http.StatusBadRequest, "TOPIC_REQUIRED")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "TOPIC_REQUIRED", resp.Error)
		assert.Equal(t, "trace-123", resp.TraceID)
		assert.Zero(t, resp.Code, "status code is not serialized")

		entries := logBuf.EntriesAtLevel(t, "DEBUG")
		require.Len(t, entries, 1)
		assert.Equal(t, float64(http.StatusBadRequest), entries[0]["status_code"])
	})

	t.Run("without trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/lesson-chat", nil)
		w := httptest.NewRecorder()

		RespondWithError(w, req, http.StatusInternalServerError, "ERROR")

		assert.JSONEq(t, `{"error":"ERROR"}`, w.Body.String())
	})
}
