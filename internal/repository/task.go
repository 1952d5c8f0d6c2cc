package repository

import (
	"context"

	"github.com/minjae-ko/tasklist-api/internal/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task model.Task) (model.Task, error)
	GetByID(ctx context.Context, taskID int64) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Task, error)
	ListByList(ctx context.Context, listID int64) ([]model.Task, error)
	// ListByUserAndDueDate returns the user's tasks due on the given
	// canonical YYYY-MM-DD date, ordered ascending by due time.
	ListByUserAndDueDate(ctx context.Context, userID int64, dueDate string) ([]model.Task, error)
}
