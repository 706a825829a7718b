package mailer

import (
	"bytes"
	"context"
	"fmt"
	texttemplate "text/template"

	"github.com/dmitrymomot/mailgate/pkg/sanitizer"
)

// Mailer renders templates and hands the result to a single Sender.
// It makes exactly one delivery attempt per call.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a new Mailer with the given sender and renderer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// Provider returns the name of the underlying Sender.
func (m *Mailer) Provider() string {
	return m.sender.Name()
}

// SendParams contains parameters for sending a templated email.
type SendParams struct {
	Data     any    // Template data
	Tags     Tags   // Provider tags
	To       string // Single recipient
	Template string // Template filename (e.g., "verification.md")

	// Optional overrides
	Subject string // Override template subject
	Layout  string // Override default layout
	From    string // Override default sender
	ReplyTo string
}

// Render builds the Email for params without sending it.
// Subject resolution: params.Subject > template metadata > config fallback.
func (m *Mailer) Render(params SendParams) (*Email, error) {
	if params.To == "" {
		return nil, ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return nil, err
	}

	subject := params.Subject
	if subject == "" {
		if subjectFromMeta, ok := result.Metadata["Subject"].(string); ok {
			subject = subjectFromMeta
		} else {
			subject = m.config.FallbackSubject
		}
	}

	processedSubject, err := m.processSubject(subject, params.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %v", ErrRenderFailed, err)
	}

	return &Email{
		To:      []string{params.To},
		Subject: processedSubject,
		HTML:    result.HTML,
		Text:    result.Text,
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Tags:    params.Tags,
	}, nil
}

// Send renders a template and sends the email.
// Delivery failures are returned as *SendError.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	email, err := m.Render(params)
	if err != nil {
		return err
	}
	return m.deliver(ctx, email)
}

// SendRaw sends caller-supplied content without template rendering.
// HTML and Text pass through verbatim and may be empty, unless
// Config.SanitizeHTML is set, in which case HTML is sanitized first.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if len(email.To) == 0 || email.To[0] == "" {
		return ErrNoRecipient
	}
	if email.Subject == "" {
		return ErrNoSubject
	}

	if m.config.SanitizeHTML && email.HTML != "" {
		sanitized := *email
		sanitized.HTML = sanitizer.SanitizeHTML(email.HTML)
		email = &sanitized
	}

	return m.deliver(ctx, email)
}

func (m *Mailer) deliver(ctx context.Context, email *Email) error {
	if err := m.sender.Send(ctx, email); err != nil {
		return &SendError{Err: err}
	}
	return nil
}

func (m *Mailer) processSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
