package tutor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tutor-api/internal/domain"
)

var (
	answerPattern  = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(AnswerStartMarker) + `(.*?)` + regexp.QuoteMeta(AnswerEndMarker))
	updatedPattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(UpdatedStartMarker) + `(.*?)` + regexp.QuoteMeta(UpdatedEndMarker))

	specValidator = validator.New()
)

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag, from model output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type coursePlanPayload struct {
	Allowed     *bool               `json:"allowed"`
	Spec        *domain.CourseSpec  `json:"spec"`
	Suggestions []domain.CourseSpec `json:"suggestions"`
	Reason      string              `json:"reason"`
}

// InterpretCoursePlan parses the model's course plan JSON.
//
// A disallowed topic is returned as a *TopicNotAllowedError alongside the
// result. Output that is not JSON, lacks "allowed", or is allowed without a
// spec fails with ErrUnparseableModelResponse. Nothing missing is invented.
func InterpretCoursePlan(raw string) (domain.CoursePlanResult, error) {
	var payload coursePlanPayload
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payload); err != nil {
		return domain.CoursePlanResult{}, fmt.Errorf("%w: %v", ErrUnparseableModelResponse, err)
	}

	if payload.Allowed == nil {
		return domain.CoursePlanResult{}, fmt.Errorf("%w: missing allowed field", ErrUnparseableModelResponse)
	}

	if !*payload.Allowed {
		reason := strings.TrimSpace(payload.Reason)
		return domain.CoursePlanResult{Allowed: false, Reason: reason}, &TopicNotAllowedError{Reason: reason}
	}

	if payload.Spec == nil {
		return domain.CoursePlanResult{}, fmt.Errorf("%w: allowed without spec", ErrUnparseableModelResponse)
	}

	spec := payload.Spec.Normalize()
	result := domain.CoursePlanResult{
		Allowed:     true,
		Spec:        &spec,
		Suggestions: make([]domain.CourseSpec, 0, len(payload.Suggestions)),
	}
	for _, s := range payload.Suggestions {
		result.Suggestions = append(result.Suggestions, s.Normalize())
	}

	if err := result.Validate(); err != nil {
		return domain.CoursePlanResult{}, fmt.Errorf("%w: %v", ErrUnparseableModelResponse, err)
	}
	return result, nil
}

// CheckSpec reports constraint violations of a generated spec. Violations are
// diagnostics only; the spec is still usable.
func CheckSpec(spec domain.CourseSpec) error {
	return specValidator.Struct(spec)
}

// ExtractDelimited returns the answer and updated lesson markdown sections of
// plain-text model output. The first non-greedy match of each marker pair wins.
// Without an answer block the whole trimmed text is the answer; without an
// updated block contentMD is empty.
func ExtractDelimited(raw string) (answer, contentMD string) {
	answer = strings.TrimSpace(raw)
	if m := answerPattern.FindStringSubmatch(raw); m != nil {
		answer = strings.TrimSpace(m[1])
	}
	if m := updatedPattern.FindStringSubmatch(raw); m != nil {
		contentMD = strings.TrimSpace(m[1])
	}
	return answer, contentMD
}

// InterpretLessonChatDelimited reads plain-text chat output. It never fails:
// missing sections fall back to the raw text and the original lesson.
func InterpretLessonChatDelimited(raw string, original domain.Lesson) domain.LessonChatResult {
	answer, contentMD := ExtractDelimited(raw)

	var patch lessonFields
	if contentMD != "" {
		patch.ContentMD = &contentMD
	}

	return domain.LessonChatResult{
		Answer:        answer,
		UpdatedLesson: mergeLessonFields(original, patch),
	}
}

// InterpretLessonChatStructured reads {answer, updatedLesson} JSON output.
// It fails when the text is not a JSON object or the answer is missing or blank.
func InterpretLessonChatStructured(raw string, original domain.Lesson) (domain.LessonChatResult, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &obj); err != nil {
		return domain.LessonChatResult{}, fmt.Errorf("%w: %v", ErrMalformedChatResponse, err)
	}

	answerField := stringField(obj, "answer")
	if isBlank(answerField) {
		return domain.LessonChatResult{}, fmt.Errorf("%w: missing answer", ErrMalformedChatResponse)
	}

	return domain.LessonChatResult{
		Answer:        strings.TrimSpace(*answerField),
		UpdatedLesson: MergeLesson(original, obj["updatedLesson"]),
	}, nil
}
