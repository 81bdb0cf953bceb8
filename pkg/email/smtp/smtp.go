package smtp

import (
	"context"
	"fmt"

	"github.com/go-gomail/gomail"

	"github.com/barangay-connect/backend/pkg/email"
)

type SMTPSender struct {
	from string
	pass string
	host string
	port int
}

func NewSMTPSender(from, pass, host string, port int) (*SMTPSender, error) {
	if !email.IsEmailValid(from) {
		return nil, fmt.Errorf("%w: %q", email.ErrInvalidAddress, from)
	}

	return &SMTPSender{from: from, pass: pass, host: host, port: port}, nil
}

// Send dials the server for every message. The context is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, input email.Message) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", input.To)
	msg.SetHeader("Subject", input.Subject)
	msg.SetBody("text/html", input.HTML)

	dialer := gomail.NewDialer(s.host, s.port, s.from, s.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	return nil
}
