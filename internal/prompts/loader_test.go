package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("classify.json", "classify-recipe")
	require.NoError(t, err)

	assert.Contains(t, prompt, "{{.Title}}")
	assert.Contains(t, prompt, "{{.Description}}")
	assert.Contains(t, prompt, "{{.URL}}")
	assert.Contains(t, prompt, "cuisine_type")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("classify.json", "no-such-prompt")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "classify-recipe")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	result := Format("Title: {{.Title}}, URL: {{.URL}}", map[string]string{
		"Title": "Carbonara",
		"URL":   "https://example.com/carbonara",
	})
	assert.Equal(t, "Title: Carbonara, URL: https://example.com/carbonara", result)
}

func TestFormat_UnknownPlaceholderLeftAlone(t *testing.T) {
	result := Format("{{.Title}} {{.Missing}}", map[string]string{"Title": "x"})
	assert.Equal(t, "x {{.Missing}}", result)
}
