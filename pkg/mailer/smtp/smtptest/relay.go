// Package smtptest runs an in-process SMTP relay for tests, in the spirit
// of net/http/httptest.
//
// The relay speaks just enough ESMTP for net/smtp: EHLO, STARTTLS,
// AUTH PLAIN, MAIL, RCPT, DATA and QUIT. It accepts one account, User with
// Password, and records every message it queues.
package smtptest

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"net"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Credentials accepted by AUTH PLAIN.
const (
	User     = "mailer@stockfolio.app"
	Password = "app-password"
)

// Message is one message accepted by the relay.
type Message struct {
	From string
	To   []string
	Data []byte
}

// Relay is a running test relay. It is closed by t.Cleanup.
type Relay struct {
	ln        net.Listener
	serverTLS *tls.Config
	clientTLS *tls.Config

	implicitTLS bool
	noSTARTTLS  bool
	rejectRcpt  bool
	dropOnAuth  bool

	mu          sync.Mutex
	messages    []Message
	connections atomic.Int32
}

// Option configures a Relay.
type Option func(*Relay)

// WithImplicitTLS wraps the listener in TLS from the first byte.
func WithImplicitTLS() Option { return func(r *Relay) { r.implicitTLS = true } }

// WithoutSTARTTLS stops advertising STARTTLS and refuses the command.
func WithoutSTARTTLS() Option { return func(r *Relay) { r.noSTARTTLS = true } }

// WithRejectedRcpt answers every RCPT TO with 550.
func WithRejectedRcpt() Option { return func(r *Relay) { r.rejectRcpt = true } }

// WithDropOnAuth hangs up without a reply as soon as AUTH arrives.
func WithDropOnAuth() Option { return func(r *Relay) { r.dropOnAuth = true } }

// New starts a relay on a loopback port.
func New(t testing.TB, opts ...Option) *Relay {
	t.Helper()

	// Borrow the test certificate from an httptest TLS server.
	certSrv := httptest.NewTLSServer(http.NotFoundHandler())
	t.Cleanup(certSrv.Close)

	pool := x509.NewCertPool()
	pool.AddCert(certSrv.Certificate())

	r := &Relay{
		serverTLS: &tls.Config{Certificates: certSrv.TLS.Certificates},
		clientTLS: &tls.Config{RootCAs: pool},
	}
	for _, opt := range opts {
		opt(r)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	if r.implicitTLS {
		ln = tls.NewListener(ln, r.serverTLS)
	}
	r.ln = ln
	t.Cleanup(func() { _ = ln.Close() })

	go r.serve()
	return r
}

// Host is the loopback address the relay listens on.
func (r *Relay) Host() string { return "127.0.0.1" }

func (r *Relay) Port() int {
	return r.ln.Addr().(*net.TCPAddr).Port
}

// ClientTLS trusts the relay's certificate.
func (r *Relay) ClientTLS() *tls.Config {
	return r.clientTLS.Clone()
}

// Inbox returns a copy of the queued messages.
func (r *Relay) Inbox() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Connections counts accepted connections.
func (r *Relay) Connections() int {
	return int(r.connections.Load())
}

func (r *Relay) serve() {
	for {
		conn, err := r.ln.Accept()
		if err != nil {
			return
		}
		r.connections.Add(1)
		go r.handle(conn)
	}
}

func (r *Relay) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))

	tp := textproto.NewConn(conn)
	secure := r.implicitTLS
	var msg Message

	reply := func(lines ...string) {
		for _, l := range lines {
			_ = tp.PrintfLine("%s", l)
		}
	}

	reply("220 relay.test ESMTP ready")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb, arg, _ := strings.Cut(line, " ")

		switch strings.ToUpper(verb) {
		case "EHLO", "HELO":
			lines := []string{"250-relay.test"}
			if !secure && !r.noSTARTTLS {
				lines = append(lines, "250-STARTTLS")
			}
			reply(append(lines, "250 AUTH PLAIN")...)
		case "STARTTLS":
			if r.noSTARTTLS || secure {
				reply("502 5.5.1 STARTTLS not available")
				continue
			}
			reply("220 2.0.0 Ready to start TLS")
			tlsConn := tls.Server(conn, r.serverTLS)
			if err := tlsConn.Handshake(); err != nil {
				return
			}
			conn = tlsConn
			tp = textproto.NewConn(tlsConn)
			secure = true
		case "AUTH":
			if r.dropOnAuth {
				return
			}
			mech, payload, _ := strings.Cut(arg, " ")
			decoded, _ := base64.StdEncoding.DecodeString(payload)
			parts := strings.Split(string(decoded), "\x00")
			if mech == "PLAIN" && len(parts) == 3 && parts[1] == User && parts[2] == Password {
				reply("235 2.7.0 Authentication successful")
			} else {
				reply("535 5.7.8 Username and Password not accepted")
			}
		case "*":
			reply("501 5.0.0 Authentication aborted")
		case "MAIL":
			msg = Message{From: angleAddr(arg)}
			reply("250 2.1.0 OK")
		case "RCPT":
			if r.rejectRcpt {
				reply("550 5.1.1 No such user here")
				continue
			}
			msg.To = append(msg.To, angleAddr(arg))
			reply("250 2.1.5 OK")
		case "DATA":
			reply("354 Go ahead")
			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			msg.Data = data
			r.mu.Lock()
			r.messages = append(r.messages, msg)
			r.mu.Unlock()
			reply("250 2.0.0 OK queued")
		case "RSET", "NOOP":
			reply("250 2.0.0 OK")
		case "QUIT":
			reply("221 2.0.0 Bye")
			return
		default:
			reply("502 5.5.2 Command not recognized")
		}
	}
}

func angleAddr(arg string) string {
	start := strings.IndexByte(arg, '<')
	end := strings.IndexByte(arg, '>')
	if start < 0 || end < start {
		return arg
	}
	return arg[start+1 : end]
}
