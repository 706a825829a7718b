package mailer

import (
	"fmt"
	"net/mail"
)

// Tags labels a message for providers that support categorisation.
// Presence-only tags use struct{}{} as the value.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a display name and address as "Name <email>".
// Returns the bare address when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Address returns the bare address part of a recipient string.
// Falls back to the input when it does not parse as an RFC 5322 address.
func Address(recipient string) string {
	addr, err := mail.ParseAddress(recipient)
	if err != nil {
		return recipient
	}
	return addr.Address
}

// Email is a rendered message ready for a Sender.
type Email struct {
	Headers map[string]string // Extra headers
	Tags    Tags              // Provider tags
	Subject string
	HTML    string
	Text    string // Optional plain text alternative
	From    string // Overrides the sender's configured from address
	ReplyTo string
	To      []string
}
