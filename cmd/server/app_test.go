package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/tutor-api/internal/config"
	"github.com/phrazzld/tutor-api/internal/mocks"
	"github.com/phrazzld/tutor-api/internal/platform/logger"
	"github.com/phrazzld/tutor-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Stage: "test",
		Server: config.ServerConfig{
			Port:                  8080,
			LogLevel:              "debug",
			RequestTimeoutSeconds: 5,
		},
		LLM: config.LLMConfig{
			ModelName:           "gemini-2.5-flash-lite",
			PlanMaxOutputTokens: 550,
			ChatMaxOutputTokens: 700,
			ChatMode:            config.ChatModeDelimited,
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config, gen *mocks.MockGenerator) *application {
	t.Helper()
	l, _ := logger.GetTestLogger(t)
	app, err := newApplicationWithGenerator(cfg, l, gen)
	require.NoError(t, err)
	return app
}

func TestNewApplication_WithoutAPIKey(t *testing.T) {
	l, logBuf := logger.GetTestLogger(t)

	app, err := newApplication(context.Background(), testConfig(), l)

	require.NoError(t, err, "a missing key is reported per request, not at startup")
	require.NotNil(t, app.service)
	logger.AssertLogContains(t, logBuf, "MISSING_CREDENTIAL")
}

func TestNewApplication_BadPromptDir(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.PromptDir = t.TempDir()
	l, _ := logger.GetTestLogger(t)

	_, err := newApplicationWithGenerator(cfg, l, &mocks.MockGenerator{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt templates")
}

func TestNewApplication_PromptOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plan.system.tmpl"), []byte("Sistema de prueba"), 0o600))
	cfg := testConfig()
	cfg.LLM.PromptDir = dir
	gen := mocks.NewMockGeneratorWithText(`{"allowed":false}`)
	app := newTestApp(t, cfg, gen)

	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/build-plan-spec", strings.NewReader(`{"topic":"Go"}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	req, ok := gen.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "Sistema de prueba", req.SystemInstruction)
}

func TestRouter(t *testing.T) {
	gen := mocks.NewMockGeneratorWithText(`{
		"allowed": true,
		"spec": {"title": "Go concurrente", "prompt": "Curso de goroutines.", "level": "advanced", "tags": ["go", "concurrency"]}
	}`)
	router := newTestApp(t, testConfig(), gen).setupRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantBody: "OK"},
		{name: "preflight", method: http.MethodOptions, path: "/build-plan-spec", wantStatus: http.StatusNoContent},
		{name: "preflight on unknown path", method: http.MethodOptions, path: "/anything", wantStatus: http.StatusNoContent},
		{
			name:       "build plan spec",
			method:     http.MethodPost,
			path:       "/build-plan-spec",
			body:       `{"topic":"Go avanzado"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"title":"Go concurrente","prompt":"Curso de goroutines.","level":"advanced","tags":["go","concurrency"],"topic":"Go avanzado","suggestions":[]}` + "\n",
		},
		{name: "lesson chat validation", method: http.MethodPost, path: "/lesson-chat", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodGet, path: "/lesson-chat", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			testutils.AssertCORSHeaders(t, w.Header())
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRouter_ErrorCarriesTraceID(t *testing.T) {
	router := newTestApp(t, testConfig(), &mocks.MockGenerator{}).setupRouter()

	w := testutils.DoJSONRequest(t, router, http.MethodPost, "/build-plan-spec", `{"topic":""}`)

	resp := testutils.AssertErrorResponse(t, w, http.StatusBadRequest, "TOPIC_REQUIRED")
	assert.NotEmpty(t, resp.TraceID)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	app := newTestApp(t, testConfig(), &mocks.MockGenerator{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, app.setupRouter()) }()

	client := &http.Client{Timeout: 2 * time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_ReturnsListenerErrors(t *testing.T) {
	app := newTestApp(t, testConfig(), &mocks.MockGenerator{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = app.serve(context.Background(), ln, app.setupRouter())

	assert.Error(t, err)
}
