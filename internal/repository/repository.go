package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/barangay-connect/backend/internal/domain"
)

type Repositories struct {
	Personal             Personal
	Addresses            Addresses
	Roles                Roles
	Accounts             Accounts
	RegistrationSessions RegistrationSessions
	OTPCodes             OTPCodes
}

func NewRepositories(db *sqlx.DB, rdb redis.UniversalClient) *Repositories {
	return &Repositories{
		Personal:             newPersonalRepository(db),
		Addresses:            newAddressRepository(db),
		Roles:                newRoleRepository(db),
		Accounts:             newAccountRepository(db),
		RegistrationSessions: newRegistrationSessionRepository(rdb),
		OTPCodes:             newOTPCodeRepository(rdb),
	}
}

type Personal interface {
	Create(ctx context.Context, record *domain.PersonalRecord) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.PersonalRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Addresses interface {
	CreateMany(ctx context.Context, records []domain.AddressRecord) error
	LinkToPersonal(ctx context.Context, personalID uuid.UUID, ids []uuid.UUID) error
	GetByPersonalID(ctx context.Context, personalID uuid.UUID) ([]domain.AddressRecord, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
}

type Roles interface {
	Create(ctx context.Context, record *domain.RoleRecord) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.RoleRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Accounts interface {
	Create(ctx context.Context, account *domain.Account) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ExistsByContact(ctx context.Context, phone string, email string) (bool, error)
}

type RegistrationSessions interface {
	Save(ctx context.Context, session *domain.RegistrationSession, ttl time.Duration) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.RegistrationSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OTPCodes interface {
	Save(ctx context.Context, code *domain.OTPCode, ttl time.Duration) error
	Get(ctx context.Context, purpose string, destination string) (*domain.OTPCode, error)
	IncrementAttempts(ctx context.Context, purpose string, destination string) (int, error)
	Delete(ctx context.Context, purpose string, destination string) error
}
