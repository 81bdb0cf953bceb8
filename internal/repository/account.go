package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/barangay-connect/backend/internal/db"
	"github.com/barangay-connect/backend/internal/domain"
)

type accountRepository struct {
	db *sqlx.DB
}

func newAccountRepository(db *sqlx.DB) *accountRepository {
	return &accountRepository{
		db: db,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const op = "repository.account.Create"

	const query = `
	INSERT INTO account (id, personal_id, role_id, phone, email, password_hash, phone_verified_at, email_verified_at)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:personal_id), uuid_to_bin(:role_id), :phone, :email, :password_hash,
	        :phone_verified_at, :email_verified_at)
	`

	res, err := r.db.NamedExecContext(ctx, query, account)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert account failed: %w", op, err)
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

func (r *accountRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	const op = "repository.account.GetOneByID"

	const query = `
	SELECT id, personal_id, role_id, phone, email, password_hash, phone_verified_at, email_verified_at,
	       created_at, updated_at, deleted_at
	FROM account
	WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
	`

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select account failed: %w", op, err)
	}

	return &account, nil
}

// ExistsByContact reports whether an active account already uses the phone or the email.
func (r *accountRepository) ExistsByContact(ctx context.Context, phone string, email string) (bool, error) {
	const op = "repository.account.ExistsByContact"

	const query = `
	SELECT EXISTS(SELECT 1 FROM account WHERE (phone = ? OR email = ?) AND deleted_at IS NULL)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, phone, email); err != nil {
		return false, fmt.Errorf("%s: select account existence failed: %w", op, err)
	}

	return exists, nil
}
