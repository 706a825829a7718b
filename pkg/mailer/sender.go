package mailer

import "context"

// Sender is the interface mail providers implement.
type Sender interface {
	// Send makes one delivery attempt for a fully-prepared Email.
	// A nil error means the provider accepted the message.
	Send(ctx context.Context, email *Email) error

	// Name identifies the provider in API responses and logs (e.g. "smtp").
	Name() string
}
