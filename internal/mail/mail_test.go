package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Bytes(t *testing.T) {
	msg := &Message{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Help\r\nBcc: evil@example.com",
		Body:    "line one\nline two",
	}

	got := string(msg.Bytes("buoy@example.org"))

	assert.Contains(t, got, "From: buoy@example.org\r\n")
	assert.Contains(t, got, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, got, "Subject: Help  Bcc: evil@example.com\r\n")
	assert.Contains(t, got, "\r\n\r\nline one\r\nline two")
}

func TestMessage_BytesKeepsCustomFrom(t *testing.T) {
	msg := &Message{
		To:      []string{"a@example.com"},
		Headers: []Header{{Name: "From", Value: `"Alice" <buoy@example.org>`}},
	}

	got := string(msg.Bytes("default@example.org"))

	assert.Contains(t, got, "From: \"Alice\" <buoy@example.org>\r\n")
	assert.NotContains(t, got, "default@example.org")
	assert.NotContains(t, got, "Subject:")
}

func TestMessage_BytesEncodesSubject(t *testing.T) {
	msg := &Message{To: []string{"a@example.com"}, Subject: "Помогите"}

	got := string(msg.Bytes("buoy@example.org"))

	assert.Contains(t, got, "Subject: =?utf-8?q?")
	assert.NotContains(t, got, "Помогите")
}

func TestMessage_BytesHidesBcc(t *testing.T) {
	msg := &Message{Bcc: []string{"5550001111@vtext.com", "5550002222@tmomail.net"}, Body: "help"}

	got := string(msg.Bytes("buoy@example.org"))

	assert.Contains(t, got, "To: undisclosed-recipients:;\r\n")
	assert.NotContains(t, got, "vtext.com")
	assert.NotContains(t, got, "tmomail.net")
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name     string
		display  string
		expected string
	}{
		{name: "plain", display: "Alice", expected: `"Alice" <buoy@example.org>`},
		{name: "quotes", display: `Al "Ace"`, expected: `"Al \"Ace\"" <buoy@example.org>`},
		{name: "non-ascii", display: "Zoë", expected: "=?utf-8?q?Zo=C3=AB?= <buoy@example.org>"},
		{name: "line break", display: "Eve\r\nBcc: x@example.com", expected: `"Eve  Bcc: x@example.com" <buoy@example.org>`},
		{name: "empty", display: "", expected: "buoy@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAddress(tt.display, "buoy@example.org"))
		})
	}
}

func TestSMTP_SendIncludesBccInEnvelope(t *testing.T) {
	var gotTo []string
	var gotMsg string

	old := sendMailHook
	sendMailHook = func(_ string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotTo, gotMsg = to, string(msg)
		return nil
	}
	t.Cleanup(func() { sendMailHook = old })

	s := &SMTP{Host: "mail.example.org", Port: 25, From: "buoy@example.org"}
	err := s.Send(context.Background(), &Message{Bcc: []string{"5550001111@vtext.com"}, Body: "help"})

	require.NoError(t, err)
	assert.Equal(t, []string{"5550001111@vtext.com"}, gotTo)
	assert.NotContains(t, gotMsg, "5550001111")
}

func TestSMTP_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotAuth smtp.Auth

	old := sendMailHook
	sendMailHook = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo = addr, a, from, to
		return nil
	}
	t.Cleanup(func() { sendMailHook = old })

	s := &SMTP{Host: "mail.example.org", Port: 587, User: "u", Pass: "p", From: "buoy@example.org"}
	err := s.Send(context.Background(), &Message{To: []string{"a@example.com"}, Subject: "s", Body: "b"})

	require.NoError(t, err)
	assert.Equal(t, "mail.example.org:587", gotAddr)
	assert.Equal(t, "buoy@example.org", gotFrom)
	assert.Equal(t, []string{"a@example.com"}, gotTo)
	assert.NotNil(t, gotAuth)
}

func TestSMTP_SendErrors(t *testing.T) {
	old := sendMailHook
	sendMailHook = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay refused")
	}
	t.Cleanup(func() { sendMailHook = old })

	s := &SMTP{Host: "mail.example.org", Port: 25, From: "buoy@example.org"}

	err := s.Send(context.Background(), &Message{To: []string{"a@example.com"}})
	assert.ErrorContains(t, err, "relay refused")

	err = s.Send(context.Background(), &Message{})
	assert.ErrorContains(t, err, "no recipients")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Send(ctx, &Message{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLog_Send(t *testing.T) {
	assert.NoError(t, Log{}.Send(context.Background(), &Message{To: []string{"a@example.com"}}))
}
