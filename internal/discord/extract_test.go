package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"single URL",
			"check this https://example.com/recipe",
			[]string{"https://example.com/recipe"},
		},
		{
			"duplicates collapse to one",
			"recipe here https://example.com/a https://example.com/a",
			[]string{"https://example.com/a"},
		},
		{
			"first-seen order preserved",
			"https://example.com/b then https://example.com/a then https://example.com/b",
			[]string{"https://example.com/b", "https://example.com/a"},
		},
		{
			"http scheme accepted",
			"old site http://example.com/x",
			[]string{"http://example.com/x"},
		},
		{
			"stops at angle bracket",
			"<https://example.com/wrapped>",
			[]string{"https://example.com/wrapped"},
		},
		{
			"stops at quote and brace",
			`"https://example.com/q" {https://example.com/b}`,
			[]string{"https://example.com/q", "https://example.com/b"},
		},
		{
			"query strings survive",
			"https://example.com/r?id=1&ref=chat",
			[]string{"https://example.com/r?id=1&ref=chat"},
		},
		{
			"no URLs",
			"just talking about dinner",
			[]string{},
		},
		{
			"empty input",
			"",
			[]string{},
		},
		{
			"scheme-less tokens ignored",
			"www.example.com example.com/recipe",
			[]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}
