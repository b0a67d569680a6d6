package tutor

import (
	"encoding/json"
	"strings"

	"github.com/phrazzld/tutor-api/internal/domain"
)

// MergeLesson overlays the model's updated lesson on the original.
// Any field of updated that is missing, blank or of the wrong JSON type keeps
// the original value; a non-object updated keeps the whole original.
func MergeLesson(original domain.Lesson, updated json.RawMessage) domain.Lesson {
	patch, _ := readLessonFields(updated)
	return mergeLessonFields(original, patch)
}

func mergeLessonFields(original domain.Lesson, patch lessonFields) domain.Lesson {
	out := domain.Lesson{
		Title:     pick(patch.Title, original.Title),
		Summary:   pick(patch.Summary, original.Summary),
		ContentMD: pick(patch.ContentMD, original.ContentMD),
		Tips:      cloneStrings(original.Tips),
	}
	if patch.TipsPresent {
		out.Tips = cloneStrings(patch.Tips)
	}

	switch {
	case !isBlank(patch.MiniChallenge):
		mc := *patch.MiniChallenge
		out.MiniChallenge = &mc
	case original.MiniChallenge != nil:
		mc := *original.MiniChallenge
		out.MiniChallenge = &mc
	}

	return out
}

func pick(candidate *string, fallback string) string {
	if candidate == nil || strings.TrimSpace(*candidate) == "" {
		return fallback
	}
	return *candidate
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
