package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/barangay-connect/backend/internal/domain"
)

type roleRepository struct {
	db *sqlx.DB
}

func newRoleRepository(db *sqlx.DB) *roleRepository {
	return &roleRepository{
		db: db,
	}
}

func (r *roleRepository) Create(ctx context.Context, record *domain.RoleRecord) error {
	const op = "repository.role.Create"

	const query = `
	INSERT INTO role_record (id, personal_id, role, details)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:personal_id), :role, :details)
	`

	res, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("%s: insert role record failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *roleRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.RoleRecord, error) {
	const op = "repository.role.GetOneByID"

	const query = `
	SELECT id, personal_id, role, details, created_at
	FROM role_record
	WHERE id = uuid_to_bin(?)
	`

	var record domain.RoleRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select role record failed: %w", op, err)
	}

	return &record, nil
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.role.Delete"

	const query = `DELETE FROM role_record WHERE id = uuid_to_bin(?)`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: delete role record failed: %w", op, err)
	}

	return nil
}
