package user

import (
	"context"
)

// Repository persists users. Lookups report a missing row as (nil, nil),
// never as an error.
type Repository interface {
	GetById(ctx context.Context, id int64) (*User, error)
	// GetAll returns every user ordered by id.
	GetAll(ctx context.Context) ([]User, error)
	// Create stamps CreatedAt and inserts the row; the returned user carries the new ID.
	Create(ctx context.Context, u *User) (*User, error)
	// Update stamps UpdatedAt and overwrites the mutable fields of an existing row.
	Update(ctx context.Context, u *User) (*User, error)
}
