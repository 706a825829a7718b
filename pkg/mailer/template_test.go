package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		metadata map[string]any
		body     string
	}{
		{
			name:     "with frontmatter",
			content:  "---\nSubject: Verify Your StockFolio Account\nButtonColor: \"#4CAF50\"\n---\n## Hello\n\nBody.\n",
			metadata: map[string]any{"Subject": "Verify Your StockFolio Account", "ButtonColor": "#4CAF50"},
			body:     "## Hello\n\nBody.\n",
		},
		{
			name:     "without frontmatter",
			content:  "# Plain\n\nJust markdown.",
			metadata: map[string]any{},
			body:     "# Plain\n\nJust markdown.",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n---\nBody content here.",
			metadata: map[string]any{},
			body:     "Body content here.",
		},
		{
			name:     "whitespace frontmatter",
			content:  "---\n\n---\nBody content.",
			metadata: map[string]any{},
			body:     "Body content.",
		},
		{
			name:     "crlf line endings",
			content:  "---\r\nSubject: Test\r\n---\r\nBody\r\n",
			metadata: map[string]any{"Subject": "Test"},
			body:     "Body\r\n",
		},
		{
			name:     "templated subject is kept verbatim",
			content:  "---\nSubject: \"{{.Symbol}} Dividend Alert ({{.DaysAdvance}} days early)\"\n---\nx",
			metadata: map[string]any{"Subject": "{{.Symbol}} Dividend Alert ({{.DaysAdvance}} days early)"},
			body:     "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, tt.metadata, tmpl.Metadata)
			require.Equal(t, tt.body, tmpl.Body)
		})
	}
}

func TestParseTemplate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "missing closing delimiter", content: "---\nSubject: Test\nBody without closing delimiter"},
		{name: "no content after opening", content: "---"},
		{name: "invalid yaml", content: "---\nSubject: Test\nBroken: [unclosed\n---\nBody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.content))
			require.ErrorIs(t, err, ErrInvalidFrontmatter)
			require.Nil(t, tmpl)
		})
	}
}
