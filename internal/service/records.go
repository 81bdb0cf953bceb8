package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/repository"
	"github.com/barangay-connect/backend/pkg/hash"
)

const birthDateLayout = "2006-01-02"

// recordsService writes the records of a submitted registration and deletes them
// again when a later step of the same submission fails.
type recordsService struct {
	personal  repository.Personal
	addresses repository.Addresses
	roles     repository.Roles
	accounts  repository.Accounts
	hasher    hash.PasswordHasher
	now       func() time.Time
}

func newRecordsService(repos *repository.Repositories, hasher hash.PasswordHasher) *recordsService {
	return &recordsService{
		personal:  repos.Personal,
		addresses: repos.Addresses,
		roles:     repos.Roles,
		accounts:  repos.Accounts,
		hasher:    hasher,
		now:       time.Now,
	}
}

func (s *recordsService) CreatePersonalRecord(ctx context.Context, personal domain.PersonalInfo) (uuid.UUID, error) {
	birthDate, err := time.Parse(birthDateLayout, personal.BirthDate)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidBirthDate, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate personal record id failed: %w", err)
	}

	record := &domain.PersonalRecord{
		ID:          id,
		FirstName:   personal.FirstName,
		MiddleName:  nullString(personal.MiddleName),
		LastName:    personal.LastName,
		Suffix:      nullString(personal.Suffix),
		BirthDate:   birthDate,
		Sex:         personal.Sex,
		CivilStatus: personal.CivilStatus,
	}

	if err = s.personal.Create(ctx, record); err != nil {
		return uuid.Nil, fmt.Errorf("create personal record failed: %w", err)
	}

	return id, nil
}

// CreateAddressRecords stores the present address and, when entered, the permanent one.
func (s *recordsService) CreateAddressRecords(ctx context.Context, addresses domain.Addresses) ([]uuid.UUID, error) {
	if addresses.Present.IsZero() {
		return nil, ErrMissingPresentAddress
	}

	records := []domain.AddressRecord{addressRecord(domain.AddressPresent, addresses.Present)}
	if !addresses.Permanent.IsZero() {
		records = append(records, addressRecord(domain.AddressPermanent, addresses.Permanent))
	}

	ids := make([]uuid.UUID, 0, len(records))
	for i := range records {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate address record id failed: %w", err)
		}
		records[i].ID = id
		ids = append(ids, id)
	}

	if err := s.addresses.CreateMany(ctx, records); err != nil {
		return nil, fmt.Errorf("create address records failed: %w", err)
	}

	return ids, nil
}

func (s *recordsService) LinkAddressToPersonal(ctx context.Context, personalID uuid.UUID, addressIDs []uuid.UUID) error {
	if err := s.addresses.LinkToPersonal(ctx, personalID, addressIDs); err != nil {
		return fmt.Errorf("link addresses failed: %w", err)
	}
	return nil
}

func (s *recordsService) CreateRoleRecord(ctx context.Context, personalID uuid.UUID, role domain.RoleInput) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate role record id failed: %w", err)
	}

	record := &domain.RoleRecord{
		ID:         id,
		PersonalID: personalID,
		Role:       role.Role,
		Details:    role.Details,
	}

	if err = s.roles.Create(ctx, record); err != nil {
		return uuid.Nil, fmt.Errorf("create role record failed: %w", err)
	}

	return id, nil
}

func (s *recordsService) CreateAccount(ctx context.Context, personalID uuid.UUID, roleID uuid.UUID, input domain.AccountInput) (uuid.UUID, error) {
	exists, err := s.accounts.ExistsByContact(ctx, input.Phone, input.Email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check account contacts failed: %w", err)
	}
	if exists {
		return uuid.Nil, ErrAccountAlreadyExist
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate account id failed: %w", err)
	}

	now := s.now().UTC()
	account := &domain.Account{
		ID:           id,
		PersonalID:   personalID,
		RoleID:       roleID,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}
	if input.PhoneVerified {
		account.PhoneVerifiedAt = &now
	}
	if input.EmailVerified {
		account.EmailVerifiedAt = &now
	}

	if err = s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return uuid.Nil, ErrAccountAlreadyExist
		}
		return uuid.Nil, fmt.Errorf("create account failed: %w", err)
	}

	return id, nil
}

func (s *recordsService) DeletePersonalRecord(ctx context.Context, personalID uuid.UUID) error {
	if err := s.personal.Delete(ctx, personalID); err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
		return fmt.Errorf("delete personal record failed: %w", err)
	}
	return nil
}

func (s *recordsService) DeleteAddressRecords(ctx context.Context, addressIDs []uuid.UUID) error {
	if err := s.addresses.DeleteMany(ctx, addressIDs); err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
		return fmt.Errorf("delete address records failed: %w", err)
	}
	return nil
}

func (s *recordsService) DeleteRoleRecord(ctx context.Context, roleID uuid.UUID) error {
	if err := s.roles.Delete(ctx, roleID); err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
		return fmt.Errorf("delete role record failed: %w", err)
	}
	return nil
}

func addressRecord(kind domain.AddressKind, a domain.Address) domain.AddressRecord {
	return domain.AddressRecord{
		Kind:     kind,
		HouseNo:  a.HouseNo,
		Street:   a.Street,
		Purok:    a.Purok,
		Barangay: a.Barangay,
		City:     a.City,
		Province: a.Province,
		ZipCode:  a.ZipCode,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
