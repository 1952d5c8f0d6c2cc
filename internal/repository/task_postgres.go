package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minjae-ko/tasklist-api/internal/model"
)

const taskColumns = `id, user_id, list_id, title, description, experience_reward, completed, due_date, due_time, created_at, updated_at`

type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTask(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO tasks (user_id, list_id, title, description, experience_reward, completed, due_date, due_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		task.UserID, task.ListID, task.Title, task.Description,
		task.ExperienceReward, task.Completed, task.DueDate, task.DueTime,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, taskID int64) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, taskID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		UPDATE tasks
		SET list_id = $1, title = $2, description = $3, experience_reward = $4,
		    completed = $5, due_date = $6, due_time = $7, updated_at = now()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		task.ListID, task.Title, task.Description, task.ExperienceReward,
		task.Completed, task.DueDate, task.DueTime, task.ID, task.UserID,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, userID, taskID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *PostgresTaskRepository) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`

	return r.queryTasks(ctx, query, userID)
}

func (r *PostgresTaskRepository) ListByList(ctx context.Context, listID int64) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE list_id = $1`

	return r.queryTasks(ctx, query, listID)
}

func (r *PostgresTaskRepository) ListByUserAndDueDate(ctx context.Context, userID int64, dueDate string) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND due_date = $2
		ORDER BY due_time ASC NULLS LAST`

	return r.queryTasks(ctx, query, userID, dueDate)
}

func (r *PostgresTaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (model.Task, error) {
	var t model.Task
	var listID sql.NullInt64
	var dueDate, dueTime sql.NullString
	err := row.Scan(
		&t.ID, &t.UserID, &listID, &t.Title, &t.Description,
		&t.ExperienceReward, &t.Completed, &dueDate, &dueTime,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	if listID.Valid {
		t.ListID = &listID.Int64
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.String
	}
	if dueTime.Valid {
		t.DueTime = &dueTime.String
	}
	return t, nil
}

// ensure compile-time interface compliance
var _ TaskRepository = (*PostgresTaskRepository)(nil)
