package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
)

func TestParseCandidateJSON(t *testing.T) {
	t.Run("clean JSON", func(t *testing.T) {
		parsed, err := parseCandidateJSON(`{"name":"Jane Doe","email":"jane@x.example","skills":["Go"],"years_experience":5,"confidence":90}`)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", parsed.Name)
		assert.Equal(t, []string{"Go"}, parsed.Skills)
		assert.Equal(t, 5, parsed.YearsExperience)
		assert.Equal(t, 90, parsed.Confidence)
	})

	t.Run("JSON wrapped in prose", func(t *testing.T) {
		text := "Here is the extracted data:\n```json\n{\"name\":\"John\"}\n```\nLet me know if you need more."
		parsed, err := parseCandidateJSON(text)
		require.NoError(t, err)
		assert.Equal(t, "John", parsed.Name)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := parseCandidateJSON("I could not extract anything.")
		var extErr *core.ExtractionError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, core.ExtractionFailed, extErr.Kind)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := parseCandidateJSON(`{"name": "broken`)
		var extErr *core.ExtractionError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, core.ExtractionFailed, extErr.Kind)
	})
}

func TestFormatPrompt(t *testing.T) {
	email := &core.Email{
		FromName:    "Jane Doe",
		FromAddress: "jane@x.example",
		Subject:     "Application",
		Attachments: []string{"cv.pdf", "cover_letter.pdf"},
	}

	prompt := formatPrompt("from=%s addr=%s subj=%s files=%s body=%s", email, "the body")
	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "cv.pdf, cover_letter.pdf")
	assert.Contains(t, prompt, "the body")

	noFiles := formatPrompt("%s%s%s|%s|%s", &core.Email{}, "")
	assert.Contains(t, noFiles, "|none|")
}
