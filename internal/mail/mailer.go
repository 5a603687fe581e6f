package mail

import (
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/insureline/helpdesk/internal/config"
)

// Mailer delivers the resolution notice to a policyholder's registered
// address. Delivery is best-effort; the caller logs and swallows
// failures.
type Mailer interface {
	SendResolutionNotice(ctx context.Context, to, ticketID, notes string) error
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct {
	cfg config.NotificationConfig
}

// NewSMTPMailer builds a mailer from notification config.
func NewSMTPMailer(cfg config.NotificationConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendResolutionNotice composes and sends the resolution email.
func (m *SMTPMailer) SendResolutionNotice(ctx context.Context, to, ticketID, notes string) error {
	if m.cfg.SMTPHost == "" {
		return errors.New("smtp host not configured")
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.EmailFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Your support ticket %s has been resolved", ticketID))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hello,\n\nYour support ticket has been resolved.\n\nResolution notes:\n%s\n\nRegards,\nInsureline Support", notes))

	opts := []gomail.Option{gomail.WithPort(m.cfg.SMTPPort)}
	if m.cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.SMTPUsername),
			gomail.WithPassword(m.cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
