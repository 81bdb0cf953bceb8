package registration

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/barangay-connect/backend/internal/domain"
)

type senderMock struct {
	mock.Mock
}

func (m *senderMock) SendOTP(ctx context.Context, channel domain.Channel, destination string, purpose string) (domain.OTPDispatch, error) {
	args := m.Called(ctx, channel, destination, purpose)
	return args.Get(0).(domain.OTPDispatch), args.Error(1)
}

type verifierMock struct {
	mock.Mock
}

func (m *verifierMock) VerifyOTP(ctx context.Context, destination string, code string) (bool, error) {
	args := m.Called(ctx, destination, code)
	return args.Bool(0), args.Error(1)
}

type documentMatcherMock struct {
	mock.Mock
}

func (m *documentMatcherMock) MatchDocument(ctx context.Context, photo domain.Photo, subject domain.DocumentSubject) (string, error) {
	args := m.Called(ctx, photo, subject)
	return args.String(0), args.Error(1)
}

type notifierSpy struct {
	mu       sync.Mutex
	messages []string
}

func (n *notifierSpy) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *notifierSpy) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

// callLog records the order in which collaborators were called.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeSubscription struct {
	updates chan domain.MatchUpdate
	closed  atomic.Bool
}

func (s *fakeSubscription) Updates() <-chan domain.MatchUpdate { return s.updates }

func (s *fakeSubscription) Close() error {
	s.closed.Store(true)
	return nil
}

// fakeMatching plays both the face matcher and the status subscriber.
// reply, when set, is delivered on the subscription as soon as the face is posted.
type fakeMatching struct {
	log          *callLog
	reply        *domain.MatchUpdate
	subscribeErr error
	faceErr      error
	closeUpdates bool

	sub *fakeSubscription
}

func (f *fakeMatching) Subscribe(_ context.Context, matchID string) (Subscription, error) {
	f.log.add("subscribe:" + matchID)
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	f.sub = &fakeSubscription{updates: make(chan domain.MatchUpdate, 4)}
	return f.sub, nil
}

func (f *fakeMatching) MatchFace(_ context.Context, _ domain.Photo, matchID string) error {
	f.log.add("match_face:" + matchID)
	if f.faceErr != nil {
		return f.faceErr
	}
	if f.reply != nil {
		f.sub.updates <- *f.reply
	}
	if f.closeUpdates {
		close(f.sub.updates)
	}
	return nil
}

// fakeRecords records create calls and fails at a configured step.
type fakeRecords struct {
	log    *callLog
	failAt domain.SubmissionStep
	err    error

	deleteErr error
	role      domain.RoleInput
	account   domain.AccountInput
}

func (r *fakeRecords) fail(step domain.SubmissionStep) error {
	r.log.add(string(step))
	if r.failAt == step {
		return r.err
	}
	return nil
}

func (r *fakeRecords) CreatePersonalRecord(_ context.Context, _ domain.PersonalInfo) (uuid.UUID, error) {
	if err := r.fail(domain.StepCreatePersonal); err != nil {
		return uuid.Nil, err
	}
	return uuid.New(), nil
}

func (r *fakeRecords) CreateAddressRecords(_ context.Context, _ domain.Addresses) ([]uuid.UUID, error) {
	if err := r.fail(domain.StepCreateAddress); err != nil {
		return nil, err
	}
	return []uuid.UUID{uuid.New()}, nil
}

func (r *fakeRecords) LinkAddressToPersonal(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error {
	return r.fail(domain.StepLinkAddress)
}

func (r *fakeRecords) CreateRoleRecord(_ context.Context, _ uuid.UUID, role domain.RoleInput) (uuid.UUID, error) {
	r.role = role
	if err := r.fail(domain.StepCreateRole); err != nil {
		return uuid.Nil, err
	}
	return uuid.New(), nil
}

func (r *fakeRecords) CreateAccount(_ context.Context, _ uuid.UUID, _ uuid.UUID, account domain.AccountInput) (uuid.UUID, error) {
	r.account = account
	if err := r.fail(domain.StepCreateAccount); err != nil {
		return uuid.Nil, err
	}
	return uuid.New(), nil
}

// compensatingRecords also implements RecordCompensator.
type compensatingRecords struct {
	*fakeRecords
}

func (r compensatingRecords) DeletePersonalRecord(_ context.Context, _ uuid.UUID) error {
	r.log.add("delete_personal")
	return r.deleteErr
}

func (r compensatingRecords) DeleteAddressRecords(_ context.Context, _ []uuid.UUID) error {
	r.log.add("delete_addresses")
	return nil
}

func (r compensatingRecords) DeleteRoleRecord(_ context.Context, _ uuid.UUID) error {
	r.log.add("delete_role")
	return nil
}

// verifiedForm is validForm with both contacts verified.
func verifiedForm() domain.RegistrationForm {
	f := validForm()
	f.Account.PhoneVerified = true
	f.Account.EmailVerified = true
	return f
}

func validForm() domain.RegistrationForm {
	return domain.RegistrationForm{
		Account: domain.AccountInfo{
			Phone:           "09171234567",
			Email:           "juan@example.ph",
			Password:        "s3cret-pass",
			ConfirmPassword: "s3cret-pass",
		},
		Personal: domain.PersonalInfo{
			FirstName:   "Juan",
			LastName:    "Dela Cruz",
			BirthDate:   "1990-04-12",
			Sex:         "male",
			CivilStatus: "single",
		},
		Addresses: domain.Addresses{
			Present: domain.Address{
				HouseNo:  "12",
				Street:   "Rizal St.",
				Barangay: "San Isidro",
				City:     "Quezon City",
				Province: "Metro Manila",
				ZipCode:  "1100",
			},
		},
		Business: domain.BusinessInfo{
			Name:               "Sari-Sari ni Juan",
			Type:               "sole_proprietorship",
			TIN:                "123456789",
			RespondentPosition: "Owner",
		},
		Family: domain.FamilyInfo{
			Mother: domain.FamilyMember{
				FirstName: "Maria",
				LastName:  "Dela Cruz",
				BirthDate: "1965-01-30",
			},
		},
	}
}

func enterCode(t interface{ Helper() }, c *OTPChallenge, code string) (DigitResult, error) {
	t.Helper()
	var (
		res DigitResult
		err error
	)
	for i, r := range code {
		res, err = c.SubmitDigit(context.Background(), i, string(r))
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
