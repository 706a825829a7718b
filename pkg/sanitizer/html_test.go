package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailgate/pkg/sanitizer"
)

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:        "strips script injection",
			input:       `<p>Hello</p><script>alert('xss')</script>`,
			contains:    []string{"<p>Hello</p>"},
			notContains: []string{"<script", "alert"},
		},
		{
			name:        "strips event handlers",
			input:       `<img src="https://cdn.example.com/logo.png" onerror="alert('xss')">`,
			contains:    []string{"https://cdn.example.com/logo.png"},
			notContains: []string{"onerror"},
		},
		{
			name:        "strips javascript URLs",
			input:       `<a href="javascript:alert('xss')">click</a>`,
			contains:    []string{"click"},
			notContains: []string{"javascript:"},
		},
		{
			name:        "strips unsupported CSS",
			input:       `<div style="background:url(javascript:alert('xss'))">content</div>`,
			contains:    []string{"content"},
			notContains: []string{"javascript", "url("},
		},
		{
			name:     "keeps inline colors",
			input:    `<p style="color: red">Dividend</p>`,
			contains: []string{"style=", "red", "Dividend"},
		},
		{
			name:     "keeps table layout attributes",
			input:    `<table width="600"><tr><td align="center">x</td></tr></table>`,
			contains: []string{`align="center"`, `width="600"`},
		},
		{
			name:     "keeps links",
			input:    `<a href="https://stockfolio.app/verify?t=1">Verify</a>`,
			contains: []string{`href="https://stockfolio.app/verify?t=1"`, "Verify"},
		},
		{
			name:     "handles plain text",
			input:    "normal text without HTML",
			contains: []string{"normal text without HTML"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizer.SanitizeHTML(tt.input)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestSanitizeHTML_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, sanitizer.SanitizeHTML(""))
}
