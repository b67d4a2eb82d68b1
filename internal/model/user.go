package model

import "context"

// UserStore defines persistence operations for todo users.
type UserStore interface {
	Insert(ctx context.Context, user TodoUser) error
	GetByEmail(ctx context.Context, email string) (TodoUser, error)
}

// TodoUser represents an application user. The email doubles as the external
// id of the user's resource in the authorization authority. The password is
// write-only credential material: it is handed to the authority on enrollment
// and never stored in the domain store or serialized outward.
type TodoUser struct {
	Email    string `json:"email"`
	Password string `json:"-"`
}
