package notify

import (
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// SMTPSender delivers notifications over SMTP. It implements
// common.EmailSender and is safe for concurrent use.
type SMTPSender struct {
	client *mail.Client
	from   string
}

// SMTPConfig carries the transport credentials loaded at process start.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewSMTPSender builds the SMTP transport from pre-validated configuration.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: cfg.From}, nil
}

// Send implements common.EmailSender.
func (s *SMTPSender) Send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if err := s.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
