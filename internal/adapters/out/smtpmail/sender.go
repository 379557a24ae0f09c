// Package smtpmail sends rendered notification emails over SMTP. Like the
// SMS gateway, the transport is optional: without a configured host every
// send is reported as skipped.
package smtpmail

import (
	"context"
	"log/slog"

	"parcelflow/internal/core/domain/model/notification"
	"parcelflow/internal/core/ports"

	"github.com/wneessen/go-mail"
)

// Config carries the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPEmailSender implements EmailSender over an SMTP relay.
type SMTPEmailSender struct {
	cfg    Config
	client *mail.Client
	logger *slog.Logger
}

// NewSMTPEmailSender creates an email sender for the given relay. An empty
// host disables the transport.
func NewSMTPEmailSender(cfg Config, logger *slog.Logger) (*SMTPEmailSender, error) {
	sender := &SMTPEmailSender{
		cfg:    cfg,
		logger: logger.With("component", "smtp_mail"),
	}

	if cfg.Host == "" {
		return sender, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}

	sender.client = client
	return sender, nil
}

// Send delivers one rendered email. Relay failure is a FAILED outcome rather
// than an error; the error return is reserved for message construction.
func (s *SMTPEmailSender) Send(ctx context.Context, to, subject, html string) (ports.DispatchOutcome, error) {
	if s.client == nil {
		s.logger.Warn("smtp relay is not configured, skipping email notification")
		return ports.DispatchOutcome{Status: notification.DispatchSkipped}, nil
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return ports.DispatchOutcome{}, err
	}
	if err := msg.To(to); err != nil {
		return ports.DispatchOutcome{}, err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error("email dispatch failed", "error", err)
		return ports.DispatchOutcome{Status: notification.DispatchFailed}, nil
	}

	return ports.DispatchOutcome{
		Status:            notification.DispatchSent,
		ProviderMessageID: msg.GetMessageID(),
	}, nil
}
