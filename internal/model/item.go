package model

import "context"

// ItemStore defines persistence operations for todo items.
type ItemStore interface {
	Insert(ctx context.Context, params CreateItemParams) (int64, error)
	Update(ctx context.Context, item TodoItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (TodoItem, error)
	GetByIDs(ctx context.Context, ids []int64) ([]TodoItem, error)
}

// TodoItem represents a stored todo item. The string form of the id is the
// external id of the item's resource in the authorization authority.
type TodoItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CreateItemParams contains parameters to create a todo item. A nil Completed
// leaves the flag to the store's default.
type CreateItemParams struct {
	Title     string
	Completed *bool
}

// TodoItemPatch is a partial update of a todo item. A nil field means "leave
// unchanged"; there is no way to clear a field.
type TodoItemPatch struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// IsPatch reports whether the patch carries at least one field.
func (p TodoItemPatch) IsPatch() bool {
	return p.Title != nil || p.Completed != nil
}

// Apply merges the patch onto item. Present fields overwrite, absent fields
// keep their prior value.
func (p TodoItemPatch) Apply(item TodoItem) TodoItem {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	return item
}
