// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer delivers transactional email over SMTP.

It renders HTML messages from embedded templates and hands them to a
go-mail client. The only message Passage sends today is the password reset
link.

Usage:

	m, err := mailer.New(mailer.Config{Host: cfg.EmailHost, Port: cfg.EmailPort, ...}, log)
	err = m.SendPasswordReset(ctx, "ann@x.com", "Ann", "https://app/resetpassword/abc")
*/
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

// smtpTimeout bounds a single dial-and-send round trip.
const smtpTimeout = 10 * time.Second

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string

	// From is the envelope sender. It defaults to Username.
	From string

	// ResetLinkValidity is quoted in the reset email body.
	ResetLinkValidity time.Duration
}

// Sender is the part of [mail.Client] used to deliver messages.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer renders and sends Passage emails.
type Mailer struct {
	sender   Sender
	from     string
	validity time.Duration
	logger   *slog.Logger
}

// New builds a [Mailer] backed by a go-mail SMTP client.
//
// Port 465 uses implicit TLS; any other port upgrades with STARTTLS when the
// server offers it. SMTP AUTH is only configured when a username is set.
func New(cfg Config, logger *slog.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("mailer: SMTP host must not be empty")
	}

	options := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(smtpTimeout),
	}

	if cfg.Port == 465 {
		options = append(options, mail.WithSSL())
	} else {
		options = append(options, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}

	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("mailer: failed to create SMTP client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return NewWithSender(client, from, cfg.ResetLinkValidity, logger), nil
}

// NewWithSender builds a [Mailer] around an existing sender.
func NewWithSender(sender Sender, from string, resetLinkValidity time.Duration, logger *slog.Logger) *Mailer {
	return &Mailer{
		sender:   sender,
		from:     from,
		validity: resetLinkValidity,
		logger:   logger,
	}
}

// # Password Reset

const resetSubject = "Password Reset Request"

var resetTemplate = template.Must(template.New("reset").Parse(`<h2>Hello {{.Name}}</h2>
<p>Please use the url below to reset your password</p>
<p>This reset link is valid for only {{.ValidMinutes}} minutes</p>
<a href="{{.ResetURL}}" clicktracking="off">{{.ResetURL}}</a>
<p>Regards...</p>
<p>The Passage Team</p>
`))

type resetData struct {
	Name         string
	ResetURL     string
	ValidMinutes int
}

// SendPasswordReset emails a reset link to recipient.
func (m *Mailer) SendPasswordReset(ctx context.Context, recipient, name, resetURL string) error {
	var body bytes.Buffer
	err := resetTemplate.Execute(&body, resetData{
		Name:         name,
		ResetURL:     resetURL,
		ValidMinutes: int(m.validity.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("mailer: failed to render reset email: %w", err)
	}

	message, err := m.newMessage(recipient, resetSubject, body.String())
	if err != nil {
		return err
	}

	if err := m.sender.DialAndSendWithContext(ctx, message); err != nil {
		m.logger.WarnContext(ctx, "mail_delivery_failed", slog.String("subject", resetSubject), slog.Any("error", err))
		return fmt.Errorf("mailer: failed to send reset email: %w", err)
	}

	m.logger.InfoContext(ctx, "mail_sent", slog.String("subject", resetSubject))
	return nil
}

// newMessage assembles an HTML message from the configured sender.
func (m *Mailer) newMessage(recipient, subject, htmlBody string) (*mail.Msg, error) {
	// 8bit keeps links intact for clients that mangle quoted-printable.
	message := mail.NewMsg(mail.WithEncoding(mail.NoEncoding))
	if err := message.From(m.from); err != nil {
		return nil, fmt.Errorf("mailer: invalid sender address: %w", err)
	}
	if err := message.To(recipient); err != nil {
		return nil, fmt.Errorf("mailer: invalid recipient address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(mail.TypeTextHTML, htmlBody)

	return message, nil
}
