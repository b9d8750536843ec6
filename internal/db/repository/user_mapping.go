package repository

import (
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"

	dom "usermanagement/internal/domain/user"
)

const (
	usersTable = "users"

	fieldID        = "id"
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
	fieldEmail     = "email"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

var userColumns = []string{
	fieldID,
	fieldFirstName,
	fieldLastName,
	fieldEmail,
	fieldCreatedAt,
	fieldUpdatedAt,
}

// userRow is the scan target for one row of the users table.
type userRow struct {
	dom.User
}

func (*userRow) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case fieldID:
			values[i] = new(sql.NullInt64)
		case fieldFirstName, fieldLastName, fieldEmail:
			values[i] = new(sql.NullString)
		case fieldCreatedAt, fieldUpdatedAt:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

func (r *userRow) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case fieldID:
			v, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", values[i])
			}
			r.ID = v.Int64
		case fieldFirstName:
			v, ok := values[i].(*sql.NullString)
			if !ok {
				return fmt.Errorf("unexpected type %T for field first_name", values[i])
			}
			r.FirstName = v.String
		case fieldLastName:
			v, ok := values[i].(*sql.NullString)
			if !ok {
				return fmt.Errorf("unexpected type %T for field last_name", values[i])
			}
			r.LastName = v.String
		case fieldEmail:
			v, ok := values[i].(*sql.NullString)
			if !ok {
				return fmt.Errorf("unexpected type %T for field email", values[i])
			}
			r.Email = v.String
		case fieldCreatedAt:
			v, ok := values[i].(*sql.NullTime)
			if !ok {
				return fmt.Errorf("unexpected type %T for field created_at", values[i])
			}
			r.CreatedAt = v.Time.UTC()
		case fieldUpdatedAt:
			v, ok := values[i].(*sql.NullTime)
			if !ok {
				return fmt.Errorf("unexpected type %T for field updated_at", values[i])
			}
			r.UpdatedAt = nil
			if v.Valid {
				t := v.Time.UTC()
				r.UpdatedAt = &t
			}
		}
	}
	return nil
}

func toDomainUser(r *userRow) *dom.User {
	if r == nil {
		return nil
	}
	u := r.User
	return &u
}

// now returns the storage timestamp: UTC, at the microsecond precision
// Postgres keeps, so a re-read row compares equal to what was written.
func now(clock func() time.Time) time.Time {
	return clock().UTC().Truncate(time.Microsecond)
}
