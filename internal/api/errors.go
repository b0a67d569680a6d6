package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tutor-api/internal/tutor"
)

// MapErrorToStatusCode maps pipeline errors to HTTP status codes.
// Input problems and disallowed topics are the client's; everything else is ours.
func MapErrorToStatusCode(err error) int {
	switch tutor.Code(err) {
	case tutor.CodeTopicRequired,
		tutor.CodeQuestionRequired,
		tutor.CodeLessonRequired,
		tutor.CodeTopicNotAllowed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message sent to the client for err.
// It is the error code, except for disallowed topics where it is the model's
// reason. Raw error text never leaves the process.
func GetSafeErrorMessage(err error) string {
	var notAllowed *tutor.TopicNotAllowedError
	if errors.As(err, &notAllowed) {
		return notAllowed.Message()
	}
	if err == nil {
		return tutor.CodeError
	}
	return tutor.Code(err)
}
