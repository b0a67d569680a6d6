package domain

import "strings"

// Prompt-side size caps for a Lesson, counted in runes (tips in entries).
const (
	LessonTitleLimit     = 160
	LessonSummaryLimit   = 800
	LessonContentMDLimit = 8000
	LessonTipsLimit      = 8
)

// Lesson is the current state of a lesson being discussed by a student.
// It is owned by the caller and never modified in place.
type Lesson struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	ContentMD     string   `json:"contentMD"`
	Tips          []string `json:"tips"`
	MiniChallenge *string  `json:"miniChallenge"`
}

// HasContent reports whether the lesson has a non-blank markdown body.
func (l Lesson) HasContent() bool {
	return strings.TrimSpace(l.ContentMD) != ""
}

// Capped returns a copy sized for inclusion in a prompt.
// The receiver is left untouched.
func (l Lesson) Capped() Lesson {
	out := Lesson{
		Title:     truncateRunes(l.Title, LessonTitleLimit),
		Summary:   truncateRunes(l.Summary, LessonSummaryLimit),
		ContentMD: truncateRunes(l.ContentMD, LessonContentMDLimit),
		Tips:      make([]string, 0, min(len(l.Tips), LessonTipsLimit)),
	}
	for i, tip := range l.Tips {
		if i >= LessonTipsLimit {
			break
		}
		out.Tips = append(out.Tips, tip)
	}
	if l.MiniChallenge != nil {
		mc := *l.MiniChallenge
		out.MiniChallenge = &mc
	}
	return out
}

// LessonChatResult is the answer to a student's question plus the lesson as it
// should look afterwards. UpdatedLesson is always fully populated.
type LessonChatResult struct {
	Answer        string `json:"answer"`
	UpdatedLesson Lesson `json:"updatedLesson"`
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
