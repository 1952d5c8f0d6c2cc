package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minjae-ko/tasklist-api/internal/model"
)

type PostgresListRepository struct {
	db *sql.DB
}

func NewPostgresList(db *sql.DB) *PostgresListRepository {
	return &PostgresListRepository{db: db}
}

func (r *PostgresListRepository) Create(ctx context.Context, list model.List) (model.List, error) {
	query := `
		INSERT INTO lists (user_id, title)
		VALUES ($1, $2)
		RETURNING id, user_id, title, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query, list.UserID, list.Title)
	return scanList(row)
}

func (r *PostgresListRepository) ListByUser(ctx context.Context, userID int64) ([]model.List, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM lists
		WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	lists := []model.List{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lists: %w", err)
	}

	return lists, nil
}

func (r *PostgresListRepository) ExistsByUserAndTitle(ctx context.Context, userID int64, title string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM lists WHERE user_id = $1 AND title = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check list title: %w", err)
	}
	return exists, nil
}

func scanList(row scannable) (model.List, error) {
	var l model.List
	err := row.Scan(&l.ID, &l.UserID, &l.Title, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return model.List{}, fmt.Errorf("failed to scan list: %w", err)
	}
	return l, nil
}

var _ ListRepository = (*PostgresListRepository)(nil)
