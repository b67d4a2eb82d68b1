package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tbessonov/securetodo-server/internal/model"
)

var _ model.ItemStore = (*ItemRepository)(nil)

type ItemRepository struct {
	db *Connection
}

func NewItemRepository(db *Connection) *ItemRepository {
	return &ItemRepository{
		db: db,
	}
}

func (r *ItemRepository) Insert(ctx context.Context, params model.CreateItemParams) (int64, error) {
	var id int64
	var err error

	// A nil completed falls through to the column default.
	if params.Completed == nil {
		query := `INSERT INTO todo_items (title) VALUES ($1) RETURNING id`
		err = r.db.QueryRow(ctx, query, params.Title).Scan(&id)
	} else {
		query := `INSERT INTO todo_items (title, completed) VALUES ($1, $2) RETURNING id`
		err = r.db.QueryRow(ctx, query, params.Title, *params.Completed).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}

	return id, nil
}

func (r *ItemRepository) Update(ctx context.Context, item model.TodoItem) error {
	query := `UPDATE todo_items SET title = $2, completed = $3 WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, item.ID, item.Title, item.Completed)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM todo_items WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (model.TodoItem, error) {
	var item model.TodoItem
	query := `SELECT id, title, completed FROM todo_items WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Title, &item.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TodoItem{}, model.ErrNotFound
		}
		return model.TodoItem{}, fmt.Errorf("failed to get item by id: %w", err)
	}

	return item, nil
}

// GetByIDs returns the items matching ids. Missing ids are simply absent from
// the result; no order is guaranteed.
func (r *ItemRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.TodoItem, error) {
	query := `SELECT id, title, completed FROM todo_items WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by ids: %w", err)
	}
	defer rows.Close()

	var items []model.TodoItem
	for rows.Next() {
		var item model.TodoItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	return items, nil
}
