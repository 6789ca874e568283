package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/pkg/errors"
)

// sendMailHook allows tests to override SMTP sending behavior.
var sendMailHook = smtp.SendMail

// SMTP sends messages through an SMTP relay.
type SMTP struct {
	Host, User, Pass string
	Port             int
	// From is the envelope sender and the default From header.
	From string
}

func (s *SMTP) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rcpt := msg.Recipients()
	if len(rcpt) == 0 {
		return errors.New("mail: message has no recipients")
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	if err := sendMailHook(addr, auth, s.From, rcpt, msg.Bytes(s.From)); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	return nil
}
