package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SenderConfig holds the SMTP relay settings
type SenderConfig struct {
	SMTPHost       string
	SMTPPort       int
	ConnectTimeout time.Duration
	SendTimeout    time.Duration
}

func (c *SenderConfig) withDefaults() {
	if c.SMTPHost == "" {
		c.SMTPHost = "smtp.gmail.com"
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 587
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.SendTimeout == 0 {
		c.SendTimeout = 30 * time.Second
	}
}

// OutgoingEmail is a message sent on behalf of a user
type OutgoingEmail struct {
	To      string
	Subject string
	Body    string
}

func (e *OutgoingEmail) validate() error {
	if e.To == "" {
		return fmt.Errorf("recipient is required")
	}
	if e.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if e.Body == "" {
		return fmt.Errorf("body is required")
	}
	return nil
}

// Sender sends mail through Gmail's SMTP relay, authenticating as the
// end user with XOAUTH2.
type Sender struct {
	config SenderConfig
}

// NewSender creates the sender
func NewSender(cfg SenderConfig) *Sender {
	cfg.withDefaults()
	return &Sender{config: cfg}
}

// Send delivers the message. fromAddr is the user's Gmail address and
// accessToken a valid OAuth2 access token for it.
func (s *Sender) Send(ctx context.Context, fromAddr, accessToken string, email *OutgoingEmail) error {
	if err := email.validate(); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	client, err := mail.NewClient(s.config.SMTPHost,
		mail.WithPort(s.config.SMTPPort),
		mail.WithTimeout(s.config.ConnectTimeout),
		mail.WithSMTPAuth(mail.SMTPAuthXOAUTH2),
		mail.WithUsername(fromAddr),
		mail.WithPassword(accessToken),
	)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}
	defer client.Close()

	msg := mail.NewMsg()
	if err := msg.From(fromAddr); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)
	msg.SetDate()
	msg.SetMessageID()

	sendCtx, cancel := context.WithTimeout(ctx, s.config.SendTimeout)
	defer cancel()

	if err := client.DialAndSendWithContext(sendCtx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
