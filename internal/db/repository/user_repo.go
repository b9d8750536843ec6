package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"

	"usermanagement/internal/db"
	"usermanagement/internal/domain/common"
	dom "usermanagement/internal/domain/user"
	"usermanagement/internal/logging"
)

type UserRepository struct {
	client *db.Client
	logger logging.Logger
	clock  func() time.Time
}

func NewUserRepository(client *db.Client, logger logging.Logger) *UserRepository {
	return &UserRepository{
		client: client,
		logger: logger.With("component", "user_repo"),
		clock:  time.Now,
	}
}

var _ dom.Repository = (*UserRepository)(nil)

func idSpec() *sqlgraph.FieldSpec {
	return sqlgraph.NewFieldSpec(fieldID, field.TypeInt64)
}

func (r *UserRepository) query(ctx context.Context, prepare func(*sqlgraph.QuerySpec)) ([]*userRow, error) {
	var rows []*userRow
	spec := sqlgraph.NewQuerySpec(usersTable, userColumns, idSpec())
	spec.ScanValues = new(userRow).scanValues
	spec.Assign = func(columns []string, values []any) error {
		row := &userRow{}
		rows = append(rows, row)
		return row.assignValues(columns, values)
	}
	prepare(spec)

	if err := sqlgraph.QueryNodes(ctx, r.client.Driver(), spec); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UserRepository) GetById(ctx context.Context, id int64) (*dom.User, error) {
	rows, err := r.query(ctx, func(spec *sqlgraph.QuerySpec) {
		spec.Predicate = func(s *sql.Selector) {
			s.Where(sql.EQ(s.C(fieldID), id))
		}
		spec.Limit = 1
	})
	if err != nil {
		return nil, fmt.Errorf("query user %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomainUser(rows[0]), nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]dom.User, error) {
	rows, err := r.query(ctx, func(spec *sqlgraph.QuerySpec) {
		spec.Order = func(s *sql.Selector) {
			s.OrderBy(sql.Asc(s.C(fieldID)))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	res := make([]dom.User, 0, len(rows))
	for _, row := range rows {
		res = append(res, *toDomainUser(row))
	}
	return res, nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	created := *u
	created.CreatedAt = now(r.clock)
	created.UpdatedAt = nil

	spec := sqlgraph.NewCreateSpec(usersTable, idSpec())
	spec.SetField(fieldFirstName, field.TypeString, created.FirstName)
	spec.SetField(fieldLastName, field.TypeString, created.LastName)
	spec.SetField(fieldEmail, field.TypeString, created.Email)
	spec.SetField(fieldCreatedAt, field.TypeTime, created.CreatedAt)

	if err := sqlgraph.CreateNode(ctx, r.client.Driver(), spec); err != nil {
		r.logger.Debug("insert user failed", "error", err)
		return nil, db.WriteError("create user", err)
	}

	id, ok := spec.ID.Value.(int64)
	if !ok {
		return nil, fmt.Errorf("create user: unexpected id type %T", spec.ID.Value)
	}
	created.ID = id
	return &created, nil
}

// Update overwrites first name, last name and email. A missing row is
// reported as common.NotFoundError rather than inserted.
func (r *UserRepository) Update(ctx context.Context, u *dom.User) (*dom.User, error) {
	spec := sqlgraph.NewUpdateSpec(usersTable, userColumns, idSpec())
	spec.Node.ID.Value = u.ID
	spec.SetField(fieldFirstName, field.TypeString, u.FirstName)
	spec.SetField(fieldLastName, field.TypeString, u.LastName)
	spec.SetField(fieldEmail, field.TypeString, u.Email)
	spec.SetField(fieldUpdatedAt, field.TypeTime, now(r.clock))

	row := &userRow{}
	spec.ScanValues = row.scanValues
	spec.Assign = row.assignValues

	if err := sqlgraph.UpdateNode(ctx, r.client.Driver(), spec); err != nil {
		var nf *sqlgraph.NotFoundError
		if errors.As(err, &nf) {
			return nil, common.NewNotFound("user")
		}
		r.logger.Debug("update user failed", "error", err, "id", u.ID)
		return nil, db.WriteError("update user", err)
	}
	return toDomainUser(row), nil
}
