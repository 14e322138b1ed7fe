package channels

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the dialer settings for the email channel.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// EmailSender sends HTML mail over SMTP. Used for admin-facing notifications
// (ambassador triggers); customer-facing mail goes out through the webhook
// channel.
type EmailSender struct {
	cfg SMTPConfig
}

// NewEmailSender creates a sender with the given SMTP settings.
func NewEmailSender(cfg SMTPConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send delivers one message. Subject and body come from the queued payload.
func (s *EmailSender) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("smtp host is not configured")
	}
	if recipient == "" {
		return fmt.Errorf("recipient is empty")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail))
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return dialer.DialAndSend(msg)
}
