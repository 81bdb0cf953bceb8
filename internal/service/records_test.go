package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/repository"
)

type recordsFixture struct {
	personal  *personalRepoMock
	addresses *addressRepoMock
	roles     *roleRepoMock
	accounts  *accountRepoMock
	service   *recordsService
}

func newRecordsFixture() *recordsFixture {
	f := &recordsFixture{
		personal:  new(personalRepoMock),
		addresses: new(addressRepoMock),
		roles:     new(roleRepoMock),
		accounts:  new(accountRepoMock),
	}
	f.service = newRecordsService(&repository.Repositories{
		Personal:  f.personal,
		Addresses: f.addresses,
		Roles:     f.roles,
		Accounts:  f.accounts,
	}, plainHasher{})
	f.service.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return f
}

func TestRecordsService_CreatePersonalRecord(t *testing.T) {
	f := newRecordsFixture()
	f.personal.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.PersonalRecord) bool {
		return r.FirstName == "Juan" &&
			!r.MiddleName.Valid &&
			r.BirthDate.Equal(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	id, err := f.service.CreatePersonalRecord(context.Background(), domain.PersonalInfo{
		FirstName: "Juan", LastName: "Dela Cruz", BirthDate: "1990-04-12", Sex: "male", CivilStatus: "single",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	f.personal.AssertExpectations(t)
}

func TestRecordsService_CreatePersonalRecordBadBirthDate(t *testing.T) {
	f := newRecordsFixture()

	_, err := f.service.CreatePersonalRecord(context.Background(), domain.PersonalInfo{BirthDate: "12/04/1990"})

	assert.ErrorIs(t, err, ErrInvalidBirthDate)
	f.personal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordsService_CreateAddressRecords(t *testing.T) {
	present := domain.Address{Street: "Rizal St", Barangay: "San Roque", City: "Marikina", Province: "Metro Manila"}

	t.Run("present only", func(t *testing.T) {
		f := newRecordsFixture()
		f.addresses.On("CreateMany", mock.Anything, mock.MatchedBy(func(r []domain.AddressRecord) bool {
			return len(r) == 1 && r[0].Kind == domain.AddressPresent && r[0].PersonalID == nil
		})).Return(nil)

		ids, err := f.service.CreateAddressRecords(context.Background(), domain.Addresses{Present: present})

		require.NoError(t, err)
		assert.Len(t, ids, 1)
	})

	t.Run("present and permanent", func(t *testing.T) {
		f := newRecordsFixture()
		permanent := present
		permanent.City = "Pasig"
		f.addresses.On("CreateMany", mock.Anything, mock.MatchedBy(func(r []domain.AddressRecord) bool {
			return len(r) == 2 && r[1].Kind == domain.AddressPermanent && r[1].City == "Pasig"
		})).Return(nil)

		ids, err := f.service.CreateAddressRecords(context.Background(), domain.Addresses{Present: present, Permanent: permanent})

		require.NoError(t, err)
		assert.Len(t, ids, 2)
		assert.NotEqual(t, ids[0], ids[1])
	})

	t.Run("missing present", func(t *testing.T) {
		f := newRecordsFixture()

		_, err := f.service.CreateAddressRecords(context.Background(), domain.Addresses{})

		assert.ErrorIs(t, err, ErrMissingPresentAddress)
	})
}

func TestRecordsService_CreateAccount(t *testing.T) {
	input := domain.AccountInput{
		Phone: "09171234567", Email: "juan@example.ph", Password: "s3cret-pass",
		PhoneVerified: true, EmailVerified: false,
	}

	t.Run("stores hash and verification time", func(t *testing.T) {
		f := newRecordsFixture()
		f.accounts.On("ExistsByContact", mock.Anything, input.Phone, input.Email).Return(false, nil)
		f.accounts.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
			return a.PasswordHash == "hashed:s3cret-pass" &&
				a.PhoneVerifiedAt != nil && a.EmailVerifiedAt == nil
		})).Return(nil)

		id, err := f.service.CreateAccount(context.Background(), uuid.New(), uuid.New(), input)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		f.accounts.AssertExpectations(t)
	})

	t.Run("existing contact", func(t *testing.T) {
		f := newRecordsFixture()
		f.accounts.On("ExistsByContact", mock.Anything, input.Phone, input.Email).Return(true, nil)

		_, err := f.service.CreateAccount(context.Background(), uuid.New(), uuid.New(), input)

		assert.ErrorIs(t, err, ErrAccountAlreadyExist)
		f.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate on insert", func(t *testing.T) {
		f := newRecordsFixture()
		f.accounts.On("ExistsByContact", mock.Anything, input.Phone, input.Email).Return(false, nil)
		f.accounts.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEntry)

		_, err := f.service.CreateAccount(context.Background(), uuid.New(), uuid.New(), input)

		assert.ErrorIs(t, err, ErrAccountAlreadyExist)
	})
}

func TestRecordsService_DeleteIgnoresMissingRows(t *testing.T) {
	f := newRecordsFixture()
	id := uuid.New()
	f.personal.On("Delete", mock.Anything, id).Return(domain.ErrNoRowsAffected)
	f.roles.On("Delete", mock.Anything, id).Return(errors.New("lock wait timeout"))

	assert.NoError(t, f.service.DeletePersonalRecord(context.Background(), id))
	assert.Error(t, f.service.DeleteRoleRecord(context.Background(), id))
}
