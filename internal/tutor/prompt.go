package tutor

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/tutor-api/internal/domain"
	"github.com/phrazzld/tutor-api/internal/generation"
)

// Markers delimiting the sections of a plain-text lesson chat response.
const (
	AnswerStartMarker  = "===ANSWER_START==="
	AnswerEndMarker    = "===ANSWER_END==="
	UpdatedStartMarker = "===UPDATED_LESSON_MD_START==="
	UpdatedEndMarker   = "===UPDATED_LESSON_MD_END==="
)

// Limits written into the course plan prompt.
const (
	specTitleLimit = 80
	specMinTags    = 2
	specMaxTags    = 6
)

// Template names. Override files must use the same names.
const (
	planSystemTemplate = "plan.system.tmpl"
	planUserTemplate   = "plan.user.tmpl"
	chatSystemTemplate = "chat.system.tmpl"
	chatUserTemplate   = "chat.user.tmpl"
)

//go:embed prompts/*.tmpl
var embeddedPrompts embed.FS

// Prompts renders model instructions from text templates.
// It is safe for concurrent use once constructed.
type Prompts struct {
	tmpl *template.Template
}

// NewPrompts parses the embedded templates. When dir is not empty, every
// *.tmpl file in it replaces the embedded template of the same name.
func NewPrompts(dir string) (*Prompts, error) {
	tmpl, err := template.New("prompts").Option("missingkey=error").ParseFS(embeddedPrompts, "prompts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded prompt templates: %w", err)
	}

	if dir != "" {
		tmpl, err = tmpl.ParseFS(os.DirFS(dir), "*.tmpl")
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt templates from %s: %w", dir, err)
		}
	}

	for _, name := range []string{planSystemTemplate, planUserTemplate, chatSystemTemplate, chatUserTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("prompt template %s is not defined", name)
		}
	}

	return &Prompts{tmpl: tmpl}, nil
}

type planPromptData struct {
	Topic      string
	TitleLimit int
	MinTags    int
	MaxTags    int
}

type chatPromptData struct {
	Lesson        domain.Lesson
	TipsJSON      string
	MiniChallenge string
	Question      string
	Structured    bool

	AnswerStart  string
	AnswerEnd    string
	UpdatedStart string
	UpdatedEnd   string
}

// BuildCoursePlanPrompt asks the model to classify the topic and answer with
// either the allowed or the disallowed JSON shape.
func (p *Prompts) BuildCoursePlanPrompt(req domain.CoursePlanRequest, maxOutputTokens int) (generation.Request, error) {
	data := planPromptData{
		Topic:      sanitizeTopic(req.Topic),
		TitleLimit: specTitleLimit,
		MinTags:    specMinTags,
		MaxTags:    specMaxTags,
	}

	system, err := p.render(planSystemTemplate, data)
	if err != nil {
		return generation.Request{}, err
	}
	user, err := p.render(planUserTemplate, data)
	if err != nil {
		return generation.Request{}, err
	}

	return generation.Request{
		SystemInstruction: system,
		UserInstruction:   user,
		MaxOutputTokens:   maxOutputTokens,
		ResponseFormat:    generation.FormatStructured,
	}, nil
}

// BuildLessonChatPrompt embeds a capped copy of the lesson and the question.
// The response format follows mode.
func (p *Prompts) BuildLessonChatPrompt(
	lesson domain.Lesson,
	question string,
	mode ChatMode,
	maxOutputTokens int,
) (generation.Request, error) {
	capped := lesson.Capped()

	tips, err := encodeTips(capped.Tips)
	if err != nil {
		return generation.Request{}, err
	}

	data := chatPromptData{
		Lesson:       capped,
		TipsJSON:     tips,
		Question:     strings.TrimSpace(question),
		Structured:   mode == ChatModeStructured,
		AnswerStart:  AnswerStartMarker,
		AnswerEnd:    AnswerEndMarker,
		UpdatedStart: UpdatedStartMarker,
		UpdatedEnd:   UpdatedEndMarker,
	}
	if capped.MiniChallenge != nil {
		data.MiniChallenge = *capped.MiniChallenge
	}

	system, err := p.render(chatSystemTemplate, data)
	if err != nil {
		return generation.Request{}, err
	}
	user, err := p.render(chatUserTemplate, data)
	if err != nil {
		return generation.Request{}, err
	}

	format := generation.FormatPlainText
	if data.Structured {
		format = generation.FormatStructured
	}

	return generation.Request{
		SystemInstruction: system,
		UserInstruction:   user,
		MaxOutputTokens:   maxOutputTokens,
		ResponseFormat:    format,
	}, nil
}

func (p *Prompts) render(name string, data any) (string, error) {
	var b strings.Builder
	if err := p.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

// sanitizeTopic collapses whitespace and swaps double quotes for single ones,
// since the topic is quoted inside the prompt.
func sanitizeTopic(topic string) string {
	topic = strings.Join(strings.Fields(topic), " ")
	return strings.ReplaceAll(topic, `"`, "'")
}

func encodeTips(tips []string) (string, error) {
	if tips == nil {
		tips = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tips); err != nil {
		return "", fmt.Errorf("failed to encode lesson tips: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
