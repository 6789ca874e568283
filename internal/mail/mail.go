// Package mail provides the outbound mail transport used for invitations,
// alert notices and email-to-SMS batches.
package mail

import (
	"context"
	"fmt"
	"mime"
	netmail "net/mail"
	"strings"
)

type Header struct {
	Name  string
	Value string
}

type Message struct {
	To []string
	// Bcc recipients are envelope-only and never rendered into the headers.
	Bcc     []string
	Subject string
	Body    string
	Headers []Header
}

// Mailer sends a single message to all of its recipients.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// Recipients returns every envelope recipient, visible or not.
func (m *Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Bcc))
	out = append(out, m.To...)
	return append(out, m.Bcc...)
}

// header returns the value of the named header, if set.
func (m *Message) header(name string) (string, bool) {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// Bytes renders msg as an RFC 5322 message. defaultFrom is used when the
// message does not carry its own From header.
func (m *Message) Bytes(defaultFrom string) []byte {
	var b strings.Builder

	if _, ok := m.header("From"); !ok && defaultFrom != "" {
		fmt.Fprintf(&b, "From: %s\r\n", defaultFrom)
	}
	for _, h := range m.Headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h.Name, sanitizeHeader(h.Value))
	}
	if len(m.To) > 0 {
		fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	} else {
		b.WriteString("To: undisclosed-recipients:;\r\n")
	}
	if m.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", sanitizeHeader(m.Subject)))
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))

	return []byte(b.String())
}

// FormatAddress renders a mailbox for an address header. Non-ASCII display
// names become RFC 2047 encoded-words.
func FormatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return (&netmail.Address{Name: sanitizeHeader(name), Address: address}).String()
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
