package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minjae-ko/tasklist-api/internal/model"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUser(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, userID int64) (model.User, error) {
	query := `
		SELECT id, subject, email, first_name, created_at, updated_at
		FROM users
		WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, userID)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetBySubject(ctx context.Context, subject string) (model.User, error) {
	query := `
		SELECT id, subject, email, first_name, created_at, updated_at
		FROM users
		WHERE subject = $1`

	row := r.db.QueryRowContext(ctx, query, subject)
	return scanUser(row)
}

func scanUser(row scannable) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Subject, &u.Email, &u.FirstName,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

var _ UserRepository = (*PostgresUserRepository)(nil)
