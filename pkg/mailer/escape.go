package mailer

import (
	"strings"
	texttemplate "text/template"
)

// markdownFuncs are available inside markdown template bodies.
//
//	{{md .Name}}      value rendered as literal text
//	{{mdurl .URL}}    value safe inside a link or button destination
var markdownFuncs = texttemplate.FuncMap{
	"md":    EscapeMarkdown,
	"mdurl": EscapeDestination,
}

// EscapeMarkdown backslash-escapes ASCII punctuation so the value renders as
// literal text. HTML metacharacters are then entity-encoded by goldmark.
// Line breaks are folded to spaces to keep the value inside its block.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n':
			b.WriteByte(' ')
		case r < 0x80 && isASCIIPunct(byte(r)):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeDestination percent-encodes the bytes that would terminate a
// markdown link destination early: whitespace, control characters and parens.
func EscapeDestination(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c == 0x7f || c == '(' || c == ')' || c == '<' || c == '>' {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
