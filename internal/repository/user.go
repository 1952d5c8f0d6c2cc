package repository

import (
	"context"

	"github.com/minjae-ko/tasklist-api/internal/model"
)

// UserRepository is read-only: users are provisioned by the identity
// platform, this service only resolves and displays them.
type UserRepository interface {
	GetByID(ctx context.Context, userID int64) (model.User, error)
	GetBySubject(ctx context.Context, subject string) (model.User, error)
}
