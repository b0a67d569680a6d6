package domain

import (
	"fmt"
	"strings"
)

// Level is the difficulty of a generated course.
type Level string

// Supported course levels.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

// CoursePlanRequest is the validated input of the course plan pipeline.
type CoursePlanRequest struct {
	Topic string `json:"topic"`
}

// CourseSpec describes one course, ready to be handed to course-content generation.
//
// The validate tags mirror the constraints written into the course plan prompt.
// The model is not guaranteed to honor them, so callers treat a failed check
// as a diagnostic rather than a reason to reject the spec.
type CourseSpec struct {
	Title  string   `json:"title"  validate:"required,max=80"`
	Prompt string   `json:"prompt" validate:"required"`
	Level  Level    `json:"level"  validate:"required,oneof=beginner intermediate advanced"`
	Tags   []string `json:"tags"   validate:"min=2,max=6,dive,required,lowercase"`
}

// Normalize trims whitespace and lower-cases level and tags.
// Empty tags are dropped. Nothing missing is filled in.
func (s CourseSpec) Normalize() CourseSpec {
	out := CourseSpec{
		Title:  strings.TrimSpace(s.Title),
		Prompt: strings.TrimSpace(s.Prompt),
		Level:  Level(strings.ToLower(strings.TrimSpace(string(s.Level)))),
		Tags:   make([]string, 0, len(s.Tags)),
	}
	for _, tag := range s.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out.Tags = append(out.Tags, tag)
		}
	}
	return out
}

// CoursePlanResult is the model's classification of a topic.
// Exactly one of Spec (when Allowed) or the not-allowed outcome holds.
type CoursePlanResult struct {
	Allowed     bool         `json:"allowed"`
	Spec        *CourseSpec  `json:"spec,omitempty"`
	Suggestions []CourseSpec `json:"suggestions,omitempty"`
	Reason      string       `json:"reason,omitempty"`
}

// Validate checks the allowed/not-allowed invariant.
func (r CoursePlanResult) Validate() error {
	if r.Allowed {
		if r.Spec == nil {
			return fmt.Errorf("%w: allowed result without spec", ErrValidation)
		}
		return nil
	}
	if r.Spec != nil || len(r.Suggestions) > 0 {
		return fmt.Errorf("%w: disallowed result carries a spec", ErrValidation)
	}
	return nil
}
