// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements passwordless login: issuing login tokens sent by
// email, and turning a presented token uid into a resolved user account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/oliverandrich/superlists/internal/config"
	"codeberg.org/oliverandrich/superlists/internal/models"
	"codeberg.org/oliverandrich/superlists/internal/repository"
)

// Mailer delivers a login link for a token uid. Delivery semantics are owned
// by the implementation; failures propagate to the caller without retry.
type Mailer interface {
	SendLoginLink(ctx context.Context, to, uid string) error
}

// Service orchestrates login requests and token authentication.
type Service struct {
	repo   *repository.Repository
	mailer Mailer
	cfg    *config.AuthConfig
}

// NewService creates an auth service.
func NewService(repo *repository.Repository, mailer Mailer, cfg *config.AuthConfig) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
	}
}

// SendLoginEmail issues a login token for the given address and hands it to
// the mailer. The address is not validated; whether it belongs to a known
// account is deliberately not revealed to the caller.
func (s *Service) SendLoginEmail(ctx context.Context, email string) error {
	token, err := s.repo.CreateToken(ctx, email)
	if err != nil {
		return fmt.Errorf("issuing login token: %w", err)
	}

	if err := s.mailer.SendLoginLink(ctx, email, token.UID); err != nil {
		return fmt.Errorf("sending login email: %w", err)
	}

	slog.Info("login_email_sent", "email", email)
	return nil
}

// Authenticate resolves a token uid into a user. A missing, unknown or stale
// uid yields (nil, nil) — indistinguishable from no credential at all; only
// storage faults are errors. The first successful use of a token for a new
// email silently provisions the account: signing up and logging in are the
// same operation. The service never touches the caller's session.
func (s *Service) Authenticate(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, nil
	}

	token, err := s.repo.GetTokenByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up login token: %w", err)
	}

	if s.cfg.TokenMaxAge > 0 && time.Since(token.CreatedAt) > s.cfg.TokenMaxAge {
		slog.Info("login_token_expired", "email", token.Email)
		return nil, nil
	}

	if s.cfg.TokenSingleUse {
		if err := s.repo.DeleteToken(ctx, token.ID); err != nil {
			return nil, fmt.Errorf("consuming login token: %w", err)
		}
	}

	user, err := s.repo.GetOrCreateUserByEmail(ctx, token.Email)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}

	slog.Info("login_success", "user_id", user.ID, "email", user.Email)
	return user, nil
}
