// internal/app/system/mailer/mailer.go
package mailer

import (
	"go.uber.org/zap"
)

// Email is one outgoing message.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers an Email.
type Sender interface {
	Send(msg Email) error
}

// LogSender writes messages to the log instead of delivering them. Apollo
// ships without a mail transport; operators read reset links from the log.
type LogSender struct {
	Log *zap.Logger
}

func (s LogSender) Send(msg Email) error {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("email not delivered (no transport configured)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.TextBody),
	)
	return nil
}
