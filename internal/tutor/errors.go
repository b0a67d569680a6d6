package tutor

import (
	"errors"

	"github.com/phrazzld/tutor-api/internal/generation"
)

// Machine-readable error codes returned to clients.
const (
	CodeTopicRequired            = "TOPIC_REQUIRED"
	CodeQuestionRequired         = "QUESTION_REQUIRED"
	CodeLessonRequired           = "LESSON_REQUIRED"
	CodeTopicNotAllowed          = "TOPIC_NOT_ALLOWED"
	CodeMissingCredential        = "MISSING_CREDENTIAL"
	CodeUnparseableModelResponse = "UNPARSEABLE_MODEL_RESPONSE"
	CodeError                    = "ERROR"
)

// Pipeline errors. Each message is its code so that errors.New values can be
// compared by code in logs.
var (
	ErrTopicRequired            = errors.New(CodeTopicRequired)
	ErrQuestionRequired         = errors.New(CodeQuestionRequired)
	ErrLessonRequired           = errors.New(CodeLessonRequired)
	ErrTopicNotAllowed          = errors.New(CodeTopicNotAllowed)
	ErrUnparseableModelResponse = errors.New(CodeUnparseableModelResponse)

	// ErrMalformedChatResponse is returned when a structured lesson chat
	// response cannot be parsed and delimited fallback is disabled.
	ErrMalformedChatResponse = errors.New("malformed lesson chat response")
)

// TopicNotAllowedError is returned when the model classifies a topic as out of scope.
// It matches ErrTopicNotAllowed with errors.Is.
type TopicNotAllowedError struct {
	// Reason is the model's short explanation; it may be empty.
	Reason string
}

func (e *TopicNotAllowedError) Error() string {
	if e.Reason == "" {
		return CodeTopicNotAllowed
	}
	return CodeTopicNotAllowed + ": " + e.Reason
}

// Is makes errors.Is(err, ErrTopicNotAllowed) hold.
func (e *TopicNotAllowedError) Is(target error) bool {
	return target == ErrTopicNotAllowed
}

// Message is what the client sees: the model's reason, or the code when there is none.
func (e *TopicNotAllowedError) Message() string {
	if e.Reason == "" {
		return CodeTopicNotAllowed
	}
	return e.Reason
}

// Code maps any error to its client-facing code. Unknown errors map to CodeError.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTopicRequired):
		return CodeTopicRequired
	case errors.Is(err, ErrQuestionRequired):
		return CodeQuestionRequired
	case errors.Is(err, ErrLessonRequired):
		return CodeLessonRequired
	case errors.Is(err, ErrTopicNotAllowed):
		return CodeTopicNotAllowed
	case errors.Is(err, generation.ErrMissingCredential):
		return CodeMissingCredential
	case errors.Is(err, ErrUnparseableModelResponse):
		return CodeUnparseableModelResponse
	default:
		return CodeError
	}
}

// IsValidationError reports whether err is an input validation failure,
// detected before any model call.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTopicRequired) ||
		errors.Is(err, ErrQuestionRequired) ||
		errors.Is(err, ErrLessonRequired)
}
