package smtp_test

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
	"github.com/dmitrymomot/mailgate/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailgate/pkg/mailer/smtp/smtptest"
)

func relayConfig(r *smtptest.Relay, useTLS bool) smtp.Config {
	return smtp.Config{
		Host:        r.Host(),
		Port:        r.Port(),
		UseTLS:      useTLS,
		Username:    smtptest.User,
		Password:    smtptest.Password,
		SenderEmail: "noreply@stockfolio.app",
		SenderName:  "StockFolio",
	}
}

// part is a decoded MIME body part.
type part struct {
	ContentType string
	Body        string
}

func parseMessage(t *testing.T, data []byte) (*mail.Message, []part) {
	t.Helper()

	msg, err := mail.ReadMessage(bytes.NewReader(data))
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)

	if !strings.HasPrefix(mediaType, "multipart/") {
		var body io.Reader = msg.Body
		if strings.EqualFold(msg.Header.Get("Content-Transfer-Encoding"), "quoted-printable") {
			body = quotedprintable.NewReader(msg.Body)
		}
		raw, err := io.ReadAll(body)
		require.NoError(t, err)
		// The DATA terminator leaves a trailing line break on the last line.
		return msg, []part{{ContentType: mediaType, Body: strings.TrimRight(string(raw), "\r\n")}}
	}

	require.Equal(t, "multipart/alternative", mediaType)

	var parts []part
	mr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		ct, _, err := mime.ParseMediaType(p.Header.Get("Content-Type"))
		require.NoError(t, err)
		raw, err := io.ReadAll(p)
		require.NoError(t, err)
		parts = append(parts, part{ContentType: ct, Body: string(raw)})
	}
	return msg, parts
}

func TestSender_Send_STARTTLS(t *testing.T) {
	t.Parallel()

	relay := smtptest.New(t)
	sender := smtp.New(relayConfig(relay, true), smtp.WithTLSConfig(relay.ClientTLS()))

	err := sender.Send(context.Background(), &mailer.Email{
		To:      []string{"user@example.com"},
		Subject: "Verify Your StockFolio Account",
		HTML:    "<p>Hello User,</p>",
		Text:    "Hello User,",
	})
	require.NoError(t, err)

	inbox := relay.Inbox()
	require.Len(t, inbox, 1)
	require.Equal(t, "noreply@stockfolio.app", inbox[0].From)
	require.Equal(t, []string{"user@example.com"}, inbox[0].To)

	msg, parts := parseMessage(t, inbox[0].Data)

	from, err := mail.ParseAddress(msg.Header.Get("From"))
	require.NoError(t, err)
	require.Equal(t, "StockFolio", from.Name)
	require.Equal(t, "noreply@stockfolio.app", from.Address)
	require.Equal(t, "user@example.com", msg.Header.Get("To"))
	require.Equal(t, "Verify Your StockFolio Account", msg.Header.Get("Subject"))
	require.NotEmpty(t, msg.Header.Get("Message-ID"))
	require.NotEmpty(t, msg.Header.Get("Date"))

	require.Len(t, parts, 2)
	require.Equal(t, "text/plain", parts[0].ContentType)
	require.Equal(t, "Hello User,", parts[0].Body)
	require.Equal(t, "text/html", parts[1].ContentType)
	require.Equal(t, "<p>Hello User,</p>", parts[1].Body)
}

func TestSender_Send_ImplicitTLS_HTMLOnly(t *testing.T) {
	t.Parallel()

	relay := smtptest.New(t, smtptest.WithImplicitTLS())
	sender := smtp.New(relayConfig(relay, false), smtp.WithTLSConfig(relay.ClientTLS()))

	err := sender.Send(context.Background(), &mailer.Email{
		To:      []string{"a@b.com"},
		Subject: "Hi",
		HTML:    "<p>x</p>",
	})
	require.NoError(t, err)

	inbox := relay.Inbox()
	require.Len(t, inbox, 1)

	_, parts := parseMessage(t, inbox[0].Data)
	require.Equal(t, []part{{ContentType: "text/html", Body: "<p>x</p>"}}, parts)
}

func TestSender_Send_AuthRejected(t *testing.T) {
	t.Parallel()

	relay := smtptest.New(t)
	cfg := relayConfig(relay, true)
	cfg.Password = "wrong"
	sender := smtp.New(cfg, smtp.WithTLSConfig(relay.ClientTLS()))

	err := sender.Send(context.Background(), &mailer.Email{To: []string{"a@b.com"}, Subject: "Hi", HTML: "x"})

	require.Error(t, err)
	require.True(t, smtp.IsAuthError(err))
	require.False(t, smtp.IsTransportError(err))
	require.True(t, strings.HasPrefix(err.Error(), "authentication failed: "), err.Error())
	require.Contains(t, err.Error(), "535")
	require.Empty(t, relay.Inbox())
}

func TestSender_Send_TransportFailures(t *testing.T) {
	t.Parallel()

	t.Run("recipient rejected", func(t *testing.T) {
		t.Parallel()

		relay := smtptest.New(t, smtptest.WithRejectedRcpt())
		sender := smtp.New(relayConfig(relay, true), smtp.WithTLSConfig(relay.ClientTLS()))

		err := sender.Send(context.Background(), &mailer.Email{To: []string{"ghost@b.com"}, Subject: "Hi", HTML: "x"})

		require.True(t, smtp.IsTransportError(err))
		require.True(t, strings.HasPrefix(err.Error(), "relay error: "), err.Error())
		require.Contains(t, err.Error(), "550")
	})

	t.Run("starttls unsupported", func(t *testing.T) {
		t.Parallel()

		relay := smtptest.New(t, smtptest.WithoutSTARTTLS())
		sender := smtp.New(relayConfig(relay, true), smtp.WithTLSConfig(relay.ClientTLS()))

		err := sender.Send(context.Background(), &mailer.Email{To: []string{"a@b.com"}, Subject: "Hi", HTML: "x"})

		require.True(t, smtp.IsTransportError(err))
		require.False(t, smtp.IsAuthError(err))
		require.Contains(t, err.Error(), "starttls")
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())

		sender := smtp.New(smtp.Config{
			Host: "127.0.0.1", Port: port, UseTLS: true,
			Username: smtptest.User, Password: smtptest.Password, SenderEmail: "noreply@stockfolio.app",
		})

		err = sender.Send(context.Background(), &mailer.Email{To: []string{"a@b.com"}, Subject: "Hi", HTML: "x"})

		require.True(t, smtp.IsTransportError(err))
		require.True(t, strings.HasPrefix(err.Error(), "relay error: connect"), err.Error())
	})

	t.Run("connection dropped during auth", func(t *testing.T) {
		t.Parallel()

		relay := smtptest.New(t, smtptest.WithDropOnAuth())
		sender := smtp.New(relayConfig(relay, true), smtp.WithTLSConfig(relay.ClientTLS()))

		err := sender.Send(context.Background(), &mailer.Email{To: []string{"a@b.com"}, Subject: "Hi", HTML: "x"})

		require.Error(t, err)
		require.True(t, smtp.IsTransportError(err))
		require.False(t, smtp.IsAuthError(err))
		require.True(t, strings.HasPrefix(err.Error(), "relay error: auth"), err.Error())
		require.Empty(t, relay.Inbox())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		relay := smtptest.New(t)
		sender := smtp.New(relayConfig(relay, true), smtp.WithTLSConfig(relay.ClientTLS()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := sender.Send(ctx, &mailer.Email{To: []string{"a@b.com"}, Subject: "Hi", HTML: "x"})

		require.True(t, smtp.IsTransportError(err))
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, relay.Inbox())
	})
}

func TestSender_Send_NotConfigured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*smtp.Config)
	}{
		{name: "no username", mutate: func(c *smtp.Config) { c.Username = "" }},
		{name: "no password", mutate: func(c *smtp.Config) { c.Password = "" }},
		{name: "no sender", mutate: func(c *smtp.Config) { c.SenderEmail = "" }},
		{name: "no host", mutate: func(c *smtp.Config) { c.Host = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			relay := smtptest.New(t)
			cfg := relayConfig(relay, true)
			tt.mutate(&cfg)
			sender := smtp.New(cfg, smtp.WithTLSConfig(relay.ClientTLS()))

			err := sender.Send(context.Background(), &mailer.Email{To: []string{"a@b.com"}, Subject: "Hi", HTML: "x"})

			require.ErrorIs(t, err, smtp.ErrNotConfigured)
			require.Contains(t, err.Error(), "not configured")
			require.ErrorIs(t, sender.Healthcheck()(context.Background()), smtp.ErrNotConfigured)
			require.Zero(t, relay.Connections(), "no connection may be attempted")
		})
	}
}

func TestSender_Name(t *testing.T) {
	t.Parallel()

	sender := smtp.New(smtp.Config{Host: "smtp.gmail.com", Port: 587, Username: "u", Password: "p", SenderEmail: "a@b.com"})
	require.Equal(t, "smtp", sender.Name())
	require.NoError(t, sender.Healthcheck()(context.Background()))
}
