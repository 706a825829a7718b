package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func convert(t *testing.T, source string) string {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension()))

	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(source), &buf))
	return buf.String()
}

func TestButtonExtension_RendersButton(t *testing.T) {
	t.Parallel()

	out := convert(t, `[!button|Verify Email Address](https://stockfolio.app/verify?token=abc&u=1)`)

	require.Contains(t, out, `<a href="https://stockfolio.app/verify?token=abc&amp;u=1" class="btn">Verify Email Address</a>`)
}

func TestButtonExtension_EscapesLabel(t *testing.T) {
	t.Parallel()

	out := convert(t, `[!button|<script>alert(1)</script>](https://example.com)`)

	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;script&gt;")
}

func TestButtonExtension_DropsDangerousURL(t *testing.T) {
	t.Parallel()

	out := convert(t, `[!button|Click](javascript:alert%281%29)`)

	require.Contains(t, out, `<a href="" class="btn">Click</a>`)
	require.NotContains(t, out, "javascript:")
}

func TestButtonExtension_WithSurroundingMarkdown(t *testing.T) {
	t.Parallel()

	out := convert(t, "## Reset Your Password\n\nClick below:\n\n[!button|Reset Password](https://example.com/reset)\n\nThanks!")

	require.Contains(t, out, "<h2>Reset Your Password</h2>")
	require.Contains(t, out, `class="btn">Reset Password</a>`)
	require.Contains(t, out, "<p>Thanks!</p>")
}

func TestButtonExtension_RegularLinkUntouched(t *testing.T) {
	t.Parallel()

	out := convert(t, `[docs](https://example.com/docs)`)

	require.Contains(t, out, `<a href="https://example.com/docs">docs</a>`)
	require.NotContains(t, out, `class="btn"`)
}

func TestButtonExtension_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{name: "no destination", source: `[!button|Click]`},
		{name: "unclosed destination", source: `[!button|Click](https://example.com`},
		{name: "space before destination", source: `[!button|Click] (https://example.com)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.NotContains(t, convert(t, tt.source), `class="btn"`)
		})
	}
}

func TestButtonExtension_InlineWithText(t *testing.T) {
	t.Parallel()

	out := convert(t, `Before [!button|Go](https://example.com/go) after`)

	require.Contains(t, out, `<p>Before <a href="https://example.com/go" class="btn">Go</a> after</p>`)
}
