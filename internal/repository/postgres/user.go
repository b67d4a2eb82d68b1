package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tbessonov/securetodo-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Insert(ctx context.Context, user model.TodoUser) error {
	query := `INSERT INTO todo_users (email) VALUES ($1)`

	if _, err := r.db.Exec(ctx, query, user.Email); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.TodoUser, error) {
	var user model.TodoUser
	query := `SELECT email FROM todo_users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(&user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TodoUser{}, model.ErrNotFound
		}
		return model.TodoUser{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}
