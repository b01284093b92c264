// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package lists implements the single write path of the application: adding
// an item, either as the first item of a brand-new list or appended to an
// existing one. Validation outcomes are tagged sentinel errors so callers can
// re-render input with a specific message instead of a generic failure.
package lists

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/oliverandrich/superlists/internal/models"
	"codeberg.org/oliverandrich/superlists/internal/repository"
)

// ErrEmptyItem is returned for blank item text. Nothing is written.
var ErrEmptyItem = errors.New("list items cannot be empty")

// ErrDuplicateItem mirrors the repository sentinel so handlers only need this
// package to branch on validation outcomes.
var ErrDuplicateItem = repository.ErrDuplicateItem

// Service validates and persists list mutations.
type Service struct {
	repo *repository.Repository
}

// NewService creates the list service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// AddItem adds text to a list. With listID nil a new list is created
// atomically with its first item, owned by owner when given. With listID set
// the item is appended; a text already present in that list yields
// ErrDuplicateItem and leaves the list unchanged. Blank text yields
// ErrEmptyItem before any storage access. All other failures are storage
// faults and propagate.
func (s *Service) AddItem(ctx context.Context, listID *int64, text string, owner *models.User) (*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyItem
	}

	if listID == nil {
		var ownerID *int64
		if owner != nil {
			ownerID = &owner.ID
		}
		_, item, err := s.repo.CreateListWithFirstItem(ctx, text, ownerID)
		if err != nil {
			return nil, fmt.Errorf("creating list: %w", err)
		}
		return item, nil
	}

	item, err := s.repo.CreateItem(ctx, *listID, text)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateItem) {
			return nil, ErrDuplicateItem
		}
		return nil, fmt.Errorf("adding item: %w", err)
	}
	return item, nil
}

// IsValidationError reports whether err is a user-correctable validation
// outcome rather than a storage fault.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyItem) || errors.Is(err, ErrDuplicateItem)
}
