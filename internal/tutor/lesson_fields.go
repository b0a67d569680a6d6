package tutor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/phrazzld/tutor-api/internal/domain"
)

// lessonFields is a lesson read field by field from untrusted JSON.
// A field that is absent or of the wrong JSON type is left nil.
type lessonFields struct {
	Title         *string
	Summary       *string
	ContentMD     *string
	Tips          []string
	TipsPresent   bool
	MiniChallenge *string
}

// readLessonFields decodes raw leniently. ok is false when raw is not a JSON object.
func readLessonFields(raw json.RawMessage) (lessonFields, bool) {
	var obj map[string]json.RawMessage
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &obj) != nil || obj == nil {
		return lessonFields{}, false
	}

	f := lessonFields{
		Title:         stringField(obj, "title"),
		Summary:       stringField(obj, "summary"),
		ContentMD:     stringField(obj, "contentMD"),
		MiniChallenge: stringField(obj, "miniChallenge"),
	}
	f.Tips, f.TipsPresent = stringArrayField(obj, "tips")

	return f, true
}

func stringField(obj map[string]json.RawMessage, key string) *string {
	v, ok := obj[key]
	if !ok || !startsWith(v, '"') {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil
	}
	return &s
}

func stringArrayField(obj map[string]json.RawMessage, key string) ([]string, bool) {
	v, ok := obj[key]
	if !ok || !startsWith(v, '[') {
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(v, &out); err != nil {
		return nil, false
	}
	if out == nil {
		out = []string{}
	}
	return out, true
}

func startsWith(v json.RawMessage, c byte) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == c
}

// toLesson builds the caller's lesson from its fields. Missing tips become an
// empty list and a blank mini challenge becomes absent.
func (f lessonFields) toLesson() domain.Lesson {
	l := domain.Lesson{
		Title:     deref(f.Title),
		Summary:   deref(f.Summary),
		ContentMD: deref(f.ContentMD),
		Tips:      []string{},
	}
	if f.TipsPresent {
		l.Tips = f.Tips
	}
	if !isBlank(f.MiniChallenge) {
		mc := *f.MiniChallenge
		l.MiniChallenge = &mc
	}
	return l
}

// ParseLesson decodes a lesson from request JSON, ignoring fields of the wrong type.
// ok is false when raw is missing, null or not an object.
func ParseLesson(raw json.RawMessage) (domain.Lesson, bool) {
	f, ok := readLessonFields(raw)
	if !ok {
		return domain.Lesson{}, false
	}
	return f.toLesson(), true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
