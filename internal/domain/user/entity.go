package user

import "time"

type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
	// UpdatedAt stays nil until the first update.
	UpdatedAt *time.Time
}
