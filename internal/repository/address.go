package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/barangay-connect/backend/internal/db"
	"github.com/barangay-connect/backend/internal/domain"
)

type addressRepository struct {
	db *sqlx.DB
}

func newAddressRepository(db *sqlx.DB) *addressRepository {
	return &addressRepository{
		db: db,
	}
}

// CreateMany inserts all addresses in one transaction.
func (r *addressRepository) CreateMany(ctx context.Context, records []domain.AddressRecord) error {
	const op = "repository.address.CreateMany"

	const query = `
	INSERT INTO address_record (id, kind, house_no, street, purok, barangay, city, province, zip_code)
	VALUES (uuid_to_bin(:id), :kind, :house_no, :street, :purok, :barangay, :city, :province, :zip_code)
	`

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for i := range records {
			if _, err := tx.NamedExecContext(ctx, query, &records[i]); err != nil {
				return fmt.Errorf("insert %s address failed: %w", records[i].Kind, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LinkToPersonal sets the owner of every address in ids.
func (r *addressRepository) LinkToPersonal(ctx context.Context, personalID uuid.UUID, ids []uuid.UUID) error {
	const op = "repository.address.LinkToPersonal"

	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE address_record SET personal_id = uuid_to_bin(?) WHERE id IN (?)`,
		personalID, binaryIDs(ids))
	if err != nil {
		return fmt.Errorf("%s: build query failed: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%s: update address records failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != int64(len(ids)) {
		return fmt.Errorf("%s: expected %d rows affected, got %d", op, len(ids), rows)
	}

	return nil
}

func (r *addressRepository) GetByPersonalID(ctx context.Context, personalID uuid.UUID) ([]domain.AddressRecord, error) {
	const op = "repository.address.GetByPersonalID"

	const query = `
	SELECT id, personal_id, kind, house_no, street, purok, barangay, city, province, zip_code, created_at
	FROM address_record
	WHERE personal_id = uuid_to_bin(?)
	ORDER BY kind DESC
	`

	var records []domain.AddressRecord
	if err := r.db.SelectContext(ctx, &records, query, personalID); err != nil {
		return nil, fmt.Errorf("%s: select address records failed: %w", op, err)
	}

	return records, nil
}

func (r *addressRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	const op = "repository.address.DeleteMany"

	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM address_record WHERE id IN (?)`, binaryIDs(ids))
	if err != nil {
		return fmt.Errorf("%s: build query failed: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("%s: delete address records failed: %w", op, err)
	}

	return nil
}

// binaryIDs converts ids to the BINARY(16) form stored by uuid_to_bin.
func binaryIDs(ids []uuid.UUID) [][]byte {
	out := make([][]byte, len(ids))
	for i, id := range ids {
		b := id
		out[i] = b[:]
	}
	return out
}
