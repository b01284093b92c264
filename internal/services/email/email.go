// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email sends login-link mail via SMTP using go-mail.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"codeberg.org/oliverandrich/superlists/internal/config"
	"codeberg.org/oliverandrich/superlists/internal/i18n"
	"github.com/wneessen/go-mail"
)

// Service sends login emails via SMTP.
type Service struct {
	cfg     *config.SMTPConfig
	baseURL string
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// LoginURL builds the login link for a token uid.
func LoginURL(baseURL, uid string) string {
	return fmt.Sprintf("%s/accounts/login?token=%s", strings.TrimSuffix(baseURL, "/"), uid)
}

// SendLoginLink sends the login email for the given token uid. Delivery
// failures are returned to the caller untouched; there is no retry.
func (s *Service) SendLoginLink(ctx context.Context, to, uid string) error {
	loginURL := LoginURL(s.baseURL, uid)

	subject := i18n.T(ctx, "login_email_subject")
	body := i18n.TData(ctx, "login_email_body", map[string]any{
		"LoginURL": loginURL,
	})

	return s.send(to, subject, body)
}

// send sends an email via SMTP using go-mail.
func (s *Service) send(to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	// Build client options
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Configure TLS based on config and port
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Use implicit TLS (SSL) for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	// Add authentication if credentials are provided
	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

// LogMailer writes login links to the log instead of sending mail. Used when
// no SMTP host is configured, the local equivalent of a console mail backend.
type LogMailer struct {
	BaseURL string
}

// SendLoginLink logs the login URL at info level.
func (m *LogMailer) SendLoginLink(_ context.Context, to, uid string) error {
	slog.Info("login link (SMTP not configured)", "to", to, "url", LoginURL(m.BaseURL, uid))
	return nil
}
