package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/tutor-api/internal/generation"
	"github.com/phrazzld/tutor-api/internal/tutor"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "topic required", err: tutor.ErrTopicRequired, want: http.StatusBadRequest},
		{name: "question required", err: tutor.ErrQuestionRequired, want: http.StatusBadRequest},
		{name: "lesson required", err: tutor.ErrLessonRequired, want: http.StatusBadRequest},
		{name: "topic not allowed", err: &tutor.TopicNotAllowedError{Reason: "no"}, want: http.StatusBadRequest},
		{name: "missing credential", err: fmt.Errorf("x: %w", generation.ErrMissingCredential), want: http.StatusInternalServerError},
		{name: "unparseable", err: tutor.ErrUnparseableModelResponse, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Solo programación", GetSafeErrorMessage(&tutor.TopicNotAllowedError{Reason: "Solo programación"}))
	assert.Equal(t, "TOPIC_NOT_ALLOWED", GetSafeErrorMessage(&tutor.TopicNotAllowedError{}))
	assert.Equal(t, "TOPIC_REQUIRED", GetSafeErrorMessage(tutor.ErrTopicRequired))
	assert.Equal(t, "MISSING_CREDENTIAL", GetSafeErrorMessage(generation.ErrMissingCredential))
	assert.Equal(t, "ERROR", GetSafeErrorMessage(errors.New("secret details at /etc/passwd")))
	assert.Equal(t, "ERROR", GetSafeErrorMessage(nil))
}
