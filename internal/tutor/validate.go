package tutor

import (
	"encoding/json"
	"strings"

	"github.com/phrazzld/tutor-api/internal/domain"
)

// TopicRequestBody is the request body of the course plan pipeline.
// Title is accepted as an alias of Topic.
type TopicRequestBody struct {
	Topic string `json:"topic"`
	Title string `json:"title"`
}

// LessonChatRequestBody is the request body of the lesson chat pipeline.
// Lesson is kept raw so that mistyped fields can be ignored one by one.
type LessonChatRequestBody struct {
	Question string          `json:"question"`
	Lesson   json.RawMessage `json:"lesson"`
}

// LessonChatInput is a validated lesson chat request.
type LessonChatInput struct {
	Question string
	Lesson   domain.Lesson
}

// ValidateTopicRequest returns the trimmed topic, using the title alias when
// topic is blank.
func ValidateTopicRequest(body TopicRequestBody) (domain.CoursePlanRequest, error) {
	topic := strings.TrimSpace(body.Topic)
	if topic == "" {
		topic = strings.TrimSpace(body.Title)
	}
	if topic == "" {
		return domain.CoursePlanRequest{}, ErrTopicRequired
	}
	return domain.CoursePlanRequest{Topic: topic}, nil
}

// ValidateLessonChatRequest checks the question first, then the lesson.
// A lesson without a non-blank contentMD counts as missing.
func ValidateLessonChatRequest(body LessonChatRequestBody) (LessonChatInput, error) {
	question := strings.TrimSpace(body.Question)
	if question == "" {
		return LessonChatInput{}, ErrQuestionRequired
	}

	lesson, ok := ParseLesson(body.Lesson)
	if !ok || !lesson.HasContent() {
		return LessonChatInput{}, ErrLessonRequired
	}

	return LessonChatInput{Question: question, Lesson: lesson}, nil
}
