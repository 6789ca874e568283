package mail

import (
	"context"

	"github.com/yakoovad/buoy-notify/pkg/logger"
	"go.uber.org/zap"
)

// Log is a development mailer that writes messages to the logger instead of sending them.
type Log struct{}

func (Log) Send(ctx context.Context, msg *Message) error {
	from, _ := msg.header("From")
	logger.FromContext(ctx).Info("mail not sent, log driver active",
		zap.Strings("to", msg.To),
		zap.Int("bcc", len(msg.Bcc)),
		zap.String("from", from),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body))
	return nil
}
