package sms

import (
	"context"

	"github.com/yakoovad/buoy-notify/internal/mail"
)

// Message accumulates gateway addressees so that a single send covers all of them.
type Message struct {
	sender     string
	content    string
	addressees []string
	seen       map[string]struct{}
}

func NewMessage() *Message {
	return &Message{seen: make(map[string]struct{})}
}

// SetSender sets the From header shown to recipients, e.g. the alerting user.
func (m *Message) SetSender(name, address string) {
	if address == "" {
		m.sender = name
		return
	}
	m.sender = mail.FormatAddress(name, address)
}

func (m *Message) SetContent(content string) {
	m.content = content
}

// AddAddressee adds a gateway address. Repeated addresses are kept once.
func (m *Message) AddAddressee(address string) {
	if address == "" {
		return
	}
	if _, ok := m.seen[address]; ok {
		return
	}
	m.seen[address] = struct{}{}
	m.addressees = append(m.addressees, address)
}

func (m *Message) Addressees() []string {
	return m.addressees
}

// Send dispatches the batch with one mailer call. An empty batch is a no-op.
func (m *Message) Send(ctx context.Context, mailer mail.Mailer) error {
	if len(m.addressees) == 0 {
		return nil
	}

	// Gateways go in Bcc so no responder sees another's number.
	msg := &mail.Message{
		Bcc:  m.addressees,
		Body: m.content,
	}
	if m.sender != "" {
		msg.Headers = []mail.Header{{Name: "From", Value: m.sender}}
	}
	return mailer.Send(ctx, msg)
}
