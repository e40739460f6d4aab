package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	sharedConfig "skywrench/internal/shared/config"
)

// SMTPSender delivers plain text mail through the configured relay.
type SMTPSender struct {
	cfg    sharedConfig.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg sharedConfig.EmailConfig) *SMTPSender {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPSender{
		cfg:    cfg,
		dialer: dialer,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
