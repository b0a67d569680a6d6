package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLesson_HasContent(t *testing.T) {
	t.Parallel()

	assert.True(t, Lesson{ContentMD: "# Intro"}.HasContent())
	assert.False(t, Lesson{ContentMD: ""}.HasContent())
	assert.False(t, Lesson{ContentMD: " \n\t"}.HasContent())
}

func TestLesson_Capped(t *testing.T) {
	t.Parallel()

	mc := "Escribe un bucle"
	tips := make([]string, 12)
	for i := range tips {
		tips[i] = "tip"
	}
	original := Lesson{
		Title:         strings.Repeat("á", 200),
		Summary:       strings.Repeat("s", 900),
		ContentMD:     strings.Repeat("ñ", 9000),
		Tips:          tips,
		MiniChallenge: &mc,
	}

	capped := original.Capped()

	assert.Equal(t, LessonTitleLimit, utf8.RuneCountInString(capped.Title))
	assert.True(t, utf8.ValidString(capped.Title), "truncation must respect rune boundaries")
	assert.Equal(t, LessonSummaryLimit, utf8.RuneCountInString(capped.Summary))
	assert.Equal(t, LessonContentMDLimit, utf8.RuneCountInString(capped.ContentMD))
	assert.Len(t, capped.Tips, LessonTipsLimit)
	require.NotNil(t, capped.MiniChallenge)
	assert.Equal(t, mc, *capped.MiniChallenge)

	// The original is never truncated.
	assert.Equal(t, 200, utf8.RuneCountInString(original.Title))
	assert.Equal(t, 9000, utf8.RuneCountInString(original.ContentMD))
	assert.Len(t, original.Tips, 12)

	capped.Tips[0] = "changed"
	*capped.MiniChallenge = "changed"
	assert.Equal(t, "tip", original.Tips[0])
	assert.Equal(t, "Escribe un bucle", *original.MiniChallenge)
}

func TestLesson_Capped_ShortLessonUnchanged(t *testing.T) {
	t.Parallel()

	l := Lesson{Title: "Variables", Summary: "Qué es una variable", ContentMD: "x := 1", Tips: []string{"usa :="}}

	capped := l.Capped()

	assert.Equal(t, l.Title, capped.Title)
	assert.Equal(t, l.Summary, capped.Summary)
	assert.Equal(t, l.ContentMD, capped.ContentMD)
	assert.Equal(t, l.Tips, capped.Tips)
	assert.Nil(t, capped.MiniChallenge)
}
