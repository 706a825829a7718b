// Package mailer renders transactional email and hands it to one provider.
//
// The package separates delivery (Sender) from rendering (Renderer) so the
// relay can be swapped without touching templates.
//
//   - Sender: one delivery attempt against a provider (smtp, resend)
//   - Renderer: markdown templates with YAML frontmatter rendered into an HTML layout
//   - Mailer: combines both; Send renders a template, SendRaw passes content through
//
// # Templates
//
// Templates are markdown files with optional YAML frontmatter:
//
//	---
//	Subject: Welcome {{.Name}}
//	---
//	Hello {{md .Name}},
//
//	[!button|Get Started]({{mdurl .URL}})
//
// The subject is itself a text/template. Inside the body, "md" escapes a value
// so it renders as literal text and "mdurl" makes it safe as a link target.
// Raw HTML in markdown is dropped. A sibling "name.txt" template, when present,
// provides the plain-text alternative.
//
// # Errors
//
// Rendering failures wrap ErrRenderFailed, ErrTemplateNotFound or
// ErrLayoutNotFound. Provider failures are returned as *SendError whose
// message is the provider's reason.
package mailer
