package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/barangay-connect/backend/internal/config"
	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/metrics"
	"github.com/barangay-connect/backend/internal/repository"
	"github.com/barangay-connect/backend/pkg/auth"
	"github.com/barangay-connect/backend/pkg/hash"
	"github.com/barangay-connect/backend/pkg/otp"
)

type Services struct {
	Registrations Registrations
	MatchStatuses MatchStatuses
	Accounts      Accounts
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	Repos        *repository.Repositories
	Matching     MatchingBackend
	MatchStatus  MatchStatusRelay
	Receipts     ReceiptGenerator
	Validate     *validator.Validate
	Metrics      *metrics.Metrics
}

func NewServices(deps Deps) *Services {
	otpService := newOTPService(deps.Repos.OTPCodes, deps.OtpGenerator, deps.Config.OTP, deps.Metrics)
	records := newRecordsService(deps.Repos, deps.Hasher)

	return &Services{
		Registrations: newRegistrationService(
			deps.Repos.RegistrationSessions,
			deps.TokenManager,
			otpService,
			deps.Matching,
			deps.MatchStatus,
			records,
			deps.Validate,
			deps.Config,
			deps.Metrics,
		),
		MatchStatuses: newMatchStatusService(deps.MatchStatus),
		Accounts:      newAccountService(deps.Repos, deps.Receipts),
	}
}

type Registrations interface {
	Start(ctx context.Context, kind domain.RegistrationKind) (*StartedRegistration, error)
	Get(ctx context.Context, id uuid.UUID) (*RegistrationView, error)
	UpdateForm(ctx context.Context, id uuid.UUID, patch []byte) (*RegistrationView, error)
	SubmitStep(ctx context.Context, id uuid.UUID) (*RegistrationView, error)
	CompleteStep(ctx context.Context, id uuid.UUID, step domain.StepID) (*RegistrationView, error)
	SkipStep(ctx context.Context, id uuid.UUID) (*RegistrationView, error)
	Back(ctx context.Context, id uuid.UUID) (*RegistrationView, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	RequestOTP(ctx context.Context, id uuid.UUID, channel domain.Channel, destination string) (*RegistrationView, error)
	ResendOTP(ctx context.Context, id uuid.UUID, channel domain.Channel) (*RegistrationView, error)
	EnterDigit(ctx context.Context, id uuid.UUID, channel domain.Channel, index int, value string) (*RegistrationView, error)
	CaptureID(ctx context.Context, id uuid.UUID, photo domain.Photo) (*RegistrationView, error)
	CaptureFace(ctx context.Context, id uuid.UUID, photo domain.Photo) (*RegistrationView, error)
	Submit(ctx context.Context, id uuid.UUID) (*RegistrationView, error)
}

type MatchStatuses interface {
	Publish(ctx context.Context, update domain.MatchUpdate) error
}

type Accounts interface {
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	Receipt(ctx context.Context, id uuid.UUID) ([]byte, error)
}
