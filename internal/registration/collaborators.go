package registration

import (
	"context"

	"github.com/google/uuid"

	"github.com/barangay-connect/backend/internal/domain"
)

// OTPSender dispatches a code to a destination. For the phone channel the
// dispatch may hand the code back so the challenge can compare locally.
type OTPSender interface {
	SendOTP(ctx context.Context, channel domain.Channel, destination string, purpose string) (domain.OTPDispatch, error)
}

// OTPVerifier checks a code against the server-held value.
type OTPVerifier interface {
	VerifyOTP(ctx context.Context, destination string, code string) (bool, error)
}

// DocumentMatcher matches an ID photo against entered personal data and
// returns a match id, or "" when the document does not match.
type DocumentMatcher interface {
	MatchDocument(ctx context.Context, photo domain.Photo, subject domain.DocumentSubject) (string, error)
}

// FaceMatcher triggers the face match for a match id. The result arrives
// through a MatchStatusSubscriber.
type FaceMatcher interface {
	MatchFace(ctx context.Context, photo domain.Photo, matchID string) error
}

type MatchStatusSubscriber interface {
	// Subscribe returns once the subscription is live.
	Subscribe(ctx context.Context, matchID string) (Subscription, error)
}

type Subscription interface {
	Updates() <-chan domain.MatchUpdate
	Close() error
}

// RecordCreator performs the ordered create calls of a submission.
type RecordCreator interface {
	CreatePersonalRecord(ctx context.Context, personal domain.PersonalInfo) (uuid.UUID, error)
	CreateAddressRecords(ctx context.Context, addresses domain.Addresses) ([]uuid.UUID, error)
	LinkAddressToPersonal(ctx context.Context, personalID uuid.UUID, addressIDs []uuid.UUID) error
	CreateRoleRecord(ctx context.Context, personalID uuid.UUID, role domain.RoleInput) (uuid.UUID, error)
	CreateAccount(ctx context.Context, personalID uuid.UUID, roleID uuid.UUID, account domain.AccountInput) (uuid.UUID, error)
}

// RecordCompensator undoes records created by a failed submission.
type RecordCompensator interface {
	DeletePersonalRecord(ctx context.Context, personalID uuid.UUID) error
	DeleteAddressRecords(ctx context.Context, addressIDs []uuid.UUID) error
	DeleteRoleRecord(ctx context.Context, roleID uuid.UUID) error
}

// Notifier surfaces transient, toast level messages.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string) {}
