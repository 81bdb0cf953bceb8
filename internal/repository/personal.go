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

type personalRepository struct {
	db *sqlx.DB
}

func newPersonalRepository(db *sqlx.DB) *personalRepository {
	return &personalRepository{
		db: db,
	}
}

func (r *personalRepository) Create(ctx context.Context, record *domain.PersonalRecord) error {
	const op = "repository.personal.Create"

	const query = `
	INSERT INTO personal_record (id, first_name, middle_name, last_name, suffix, birth_date, sex, civil_status)
	VALUES (uuid_to_bin(:id), :first_name, :middle_name, :last_name, :suffix, :birth_date, :sex, :civil_status)
	`

	res, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("%s: insert personal record failed: %w", op, err)
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

func (r *personalRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.PersonalRecord, error) {
	const op = "repository.personal.GetOneByID"

	const query = `
	SELECT id, first_name, middle_name, last_name, suffix, birth_date, sex, civil_status, created_at, updated_at, deleted_at
	FROM personal_record
	WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
	`

	var record domain.PersonalRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select personal record failed: %w", op, err)
	}

	return &record, nil
}

// Delete removes a record created by a registration that did not complete.
func (r *personalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.personal.Delete"

	const query = `DELETE FROM personal_record WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: delete personal record failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
