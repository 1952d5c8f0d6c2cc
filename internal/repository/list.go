package repository

import (
	"context"

	"github.com/minjae-ko/tasklist-api/internal/model"
)

type ListRepository interface {
	Create(ctx context.Context, list model.List) (model.List, error)
	ListByUser(ctx context.Context, userID int64) ([]model.List, error)
	// ExistsByUserAndTitle reports whether the user already owns a list
	// with exactly this title. Uniqueness is per user, not global.
	ExistsByUserAndTitle(ctx context.Context, userID int64, title string) (bool, error)
}
