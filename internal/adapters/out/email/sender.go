// Package email sends assembled certified documents over SMTP.
package email

import (
	"context"
	"io"

	"gopkg.in/gomail.v2"

	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

// SMTPSender implements ports.EmailSender with gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a sender. from is the envelope and header sender
// address.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers the message with its single attachment.
// gomail has no context support, so the dial-and-send runs in a goroutine and
// the call returns early on context cancellation; the transport attempt then
// finishes in the background. Failures are errs.ErrTransportFailure.
func (s *SMTPSender) Send(ctx context.Context, msg ports.OutgoingMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	m.Attach(msg.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(msg.Attachment)
		return err
	}))

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return errs.NewTransportFailureError("smtp send", err)
		}
		return nil
	case <-ctx.Done():
		return errs.NewTransportFailureError("smtp send", ctx.Err())
	}
}
