// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

/*
Package mailer delivers transactional email over SMTP.

The only messages the platform sends are confirmation codes, so the surface
is deliberately small: a [Mailer] interface the auth service depends on, and
one SMTP-backed implementation.

Delivery is synchronous — the caller blocks until the SMTP transaction
completes, and a send failure is returned to the caller rather than
swallowed. Signup is specified to fail as a whole when the code cannot be
delivered.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer is the outbound-mail contract consumed by the auth service.
type Mailer interface {
	// Send delivers a plain-text message to a single recipient.
	Send(ctx context.Context, to, subject, body string) error
}

// SMTP implements [Mailer] using net/smtp with PLAIN authentication.
type SMTP struct {
	host     string
	port     string
	from     string
	password string
	logger   *slog.Logger
}

// NewSMTP constructs an SMTP mailer.
//
// When password is empty the client connects without authentication, which
// suits local development relays (e.g. MailHog).
func NewSMTP(host, port, from, password string, logger *slog.Logger) *SMTP {
	return &SMTP{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		logger:   logger,
	}
}

// Send delivers the message, blocking until the SMTP transaction completes.
//
// net/smtp has no context plumbing; the context is checked up front so a
// request that already timed out does not open a connection at all.
func (m *SMTP) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mailer: aborted before send: %w", err)
	}

	var auth smtp.Auth
	if m.password != "" {
		auth = smtp.PlainAuth("", m.from, m.password, m.host)
	}

	message := BuildMessage(m.from, to, subject, body)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, message); err != nil {
		m.logger.Error("smtp_send_failed",
			slog.String("to", to),
			slog.Any("error", err),
		)
		return fmt.Errorf("mailer: send failed: %w", err)
	}

	m.logger.Info("smtp_message_sent", slog.String("to", to), slog.String("subject", subject))
	return nil
}

// BuildMessage assembles an RFC 5322 plain-text message.
func BuildMessage(from, to, subject, body string) []byte {
	return []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}
