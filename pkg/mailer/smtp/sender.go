// Package smtp delivers mail through an authenticated SMTP relay.
//
// Each Send opens one connection, upgrades it with STARTTLS or uses
// implicit TLS, authenticates with AUTH PLAIN, transmits one message and
// quits. There is no pooling and no retry.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
)

const defaultTimeout = 30 * time.Second

// Sender implements mailer.Sender over SMTP.
// It holds no connection state and is safe for concurrent use.
type Sender struct {
	tlsConfig *tls.Config
	config    Config
}

// Option configures the Sender.
type Option func(*Sender)

// WithTLSConfig sets the TLS configuration used for STARTTLS and implicit TLS.
// ServerName defaults to Config.Host when unset.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *Sender) {
		if cfg != nil {
			s.tlsConfig = cfg
		}
	}
}

// New creates an SMTP sender. Missing configuration is not an error here;
// Send reports it as ErrNotConfigured.
func New(cfg Config, opts ...Option) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	s := &Sender{config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements mailer.Sender.
func (s *Sender) Name() string {
	return "smtp"
}

// Healthcheck returns a readiness check that reports missing configuration.
// It does not contact the relay.
func (s *Sender) Healthcheck() func(context.Context) error {
	return func(context.Context) error {
		if !s.config.Configured() {
			return ErrNotConfigured
		}
		return nil
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if !s.config.Configured() {
		return ErrNotConfigured
	}
	if len(email.To) == 0 {
		return mailer.ErrNoRecipient
	}

	message, err := s.buildMessage(email)
	if err != nil {
		return fmt.Errorf("compose message: %w", err)
	}

	return s.deliver(ctx, email.To, message)
}

// buildMessage renders the MIME message. With a text body the result is
// multipart/alternative (text first, then HTML); otherwise a single HTML part.
func (s *Sender) buildMessage(email *mailer.Email) ([]byte, error) {
	m := gomail.NewMessage()

	if email.From != "" {
		m.SetHeader("From", email.From)
	} else {
		m.SetAddressHeader("From", s.config.SenderEmail, s.config.SenderName)
	}
	m.SetHeader("To", email.To...)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(s.config.SenderEmail)))
	m.SetDateHeader("Date", time.Now())
	for name, value := range email.Headers {
		m.SetHeader(name, value)
	}

	if email.Text != "" {
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTML)
	} else {
		m.SetBody("text/html", email.HTML)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// deliver runs one SMTP exchange bounded by Config.Timeout and ctx.
func (s *Sender) deliver(ctx context.Context, to []string, message []byte) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return &TransportError{Stage: "connect", Err: err}
	}
	defer func() { _ = conn.Close() }()

	deadline := time.Now().Add(s.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	// Cancellation unblocks any pending read or write.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Unix(1, 0)) })
	defer stop()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return &TransportError{Stage: "greeting", Err: err}
	}
	defer func() { _ = client.Close() }()

	if s.config.UseTLS {
		if err := client.StartTLS(s.clientTLSConfig()); err != nil {
			return &TransportError{Stage: "starttls", Err: err}
		}
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	if err := client.Auth(auth); err != nil {
		return authFailure(err)
	}

	if err := client.Mail(s.config.SenderEmail); err != nil {
		return &TransportError{Stage: "mail from", Err: err}
	}
	for _, rcpt := range to {
		if err := client.Rcpt(mailer.Address(rcpt)); err != nil {
			return &TransportError{Stage: "rcpt to", Err: err}
		}
	}

	w, err := client.Data()
	if err != nil {
		return &TransportError{Stage: "data", Err: err}
	}
	if _, err := w.Write(message); err != nil {
		_ = w.Close()
		return &TransportError{Stage: "data", Err: err}
	}
	if err := w.Close(); err != nil {
		return &TransportError{Stage: "data", Err: err}
	}

	// The message is accepted at this point; some relays drop the
	// connection without answering QUIT.
	_ = client.Quit()

	return nil
}

// authFailure reports a reply code from the relay as a credential
// rejection. A dropped connection or a timeout during AUTH stays a
// transport failure.
func authFailure(err error) error {
	var reply *textproto.Error
	if errors.As(err, &reply) {
		return &AuthError{Err: err}
	}
	return &TransportError{Stage: "auth", Err: err}
}

func (s *Sender) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	dialer := &net.Dialer{Timeout: s.config.Timeout}

	if s.config.UseTLS {
		return dialer.DialContext(ctx, "tcp", addr)
	}

	tlsDialer := &tls.Dialer{NetDialer: dialer, Config: s.clientTLSConfig()}
	return tlsDialer.DialContext(ctx, "tcp", addr)
}

func (s *Sender) clientTLSConfig() *tls.Config {
	var cfg *tls.Config
	if s.tlsConfig != nil {
		cfg = s.tlsConfig.Clone()
	} else {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.ServerName == "" {
		cfg.ServerName = s.config.Host
	}
	return cfg
}

func domainOf(address string) string {
	if i := strings.LastIndexByte(address, '@'); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return "localhost"
}
