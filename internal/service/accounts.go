package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/repository"
	"github.com/barangay-connect/backend/pkg/pdf"
)

type ReceiptGenerator interface {
	GenerateReceipt(r pdf.Receipt) ([]byte, error)
}

type accountService struct {
	personal  repository.Personal
	addresses repository.Addresses
	roles     repository.Roles
	accounts  repository.Accounts
	receipts  ReceiptGenerator
}

func newAccountService(repos *repository.Repositories, receipts ReceiptGenerator) *accountService {
	return &accountService{
		personal:  repos.Personal,
		addresses: repos.Addresses,
		roles:     repos.Roles,
		accounts:  repos.Accounts,
		receipts:  receipts,
	}
}

func (s *accountService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account failed: %w", err)
	}
	return account, nil
}

// Receipt renders the registration receipt of an account as a PDF.
func (s *accountService) Receipt(ctx context.Context, id uuid.UUID) ([]byte, error) {
	account, err := s.GetOneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	personal, err := s.personal.GetOneByID(ctx, account.PersonalID)
	if err != nil {
		return nil, fmt.Errorf("get personal record failed: %w", err)
	}

	addresses, err := s.addresses.GetByPersonalID(ctx, account.PersonalID)
	if err != nil {
		return nil, fmt.Errorf("get address records failed: %w", err)
	}

	role, err := s.roles.GetOneByID(ctx, account.RoleID)
	if err != nil {
		return nil, fmt.Errorf("get role record failed: %w", err)
	}

	out, err := s.receipts.GenerateReceipt(pdf.Receipt{
		Account:   *account,
		Personal:  *personal,
		Addresses: addresses,
		Role:      *role,
	})
	if err != nil {
		return nil, fmt.Errorf("generate receipt failed: %w", err)
	}

	return out, nil
}
