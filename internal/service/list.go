package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/minjae-ko/tasklist-api/internal/model"
	"github.com/minjae-ko/tasklist-api/internal/repository"
)

// Validation messages surfaced to clients, keyed by field name.
const (
	msgListTitleRequired = "Please provide a list name"
	msgListTitleTooLong  = "List name must be 20 characters or less"
	msgListTitleExists   = "That list already exists"
)

// FieldErrors maps a field name to a human-readable validation message.
// It is a recoverable result, not a request failure.
type FieldErrors map[string]string

type ListService struct {
	repo repository.ListRepository
}

func NewListService(repo repository.ListRepository) *ListService {
	return &ListService{repo: repo}
}

// Create validates and persists a new list for the user. A non-nil
// FieldErrors means the list was rejected and nothing was persisted; the
// error return is reserved for gateway failures.
//
// Structural checks (presence, length) run first; the uniqueness lookup
// only consults the store when the title is structurally sound.
func (s *ListService) Create(ctx context.Context, userID int64, title string) (model.List, FieldErrors, error) {
	if fieldErrs := validateListTitle(title); fieldErrs != nil {
		return model.List{}, fieldErrs, nil
	}

	exists, err := s.repo.ExistsByUserAndTitle(ctx, userID, title)
	if err != nil {
		return model.List{}, nil, fmt.Errorf("failed to check list title: %w", err)
	}
	if exists {
		return model.List{}, FieldErrors{"title": msgListTitleExists}, nil
	}

	created, err := s.repo.Create(ctx, model.List{UserID: userID, Title: title})
	if err != nil {
		return model.List{}, nil, fmt.Errorf("failed to create list: %w", err)
	}

	return created, nil, nil
}

// ListForUser returns every list the user owns.
func (s *ListService) ListForUser(ctx context.Context, userID int64) ([]model.List, error) {
	lists, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	return lists, nil
}

func validateListTitle(title string) FieldErrors {
	if strings.TrimSpace(title) == "" {
		return FieldErrors{"title": msgListTitleRequired}
	}
	if utf8.RuneCountInString(title) > model.MaxListTitleLength {
		return FieldErrors{"title": msgListTitleTooLong}
	}
	return nil
}
