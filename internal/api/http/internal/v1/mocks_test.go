package v1

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/service"
)

type registrationsMock struct {
	mock.Mock
}

func (m *registrationsMock) view(args mock.Arguments) (*service.RegistrationView, error) {
	v, _ := args.Get(0).(*service.RegistrationView)
	return v, args.Error(1)
}

func (m *registrationsMock) Start(ctx context.Context, kind domain.RegistrationKind) (*service.StartedRegistration, error) {
	args := m.Called(ctx, kind)
	s, _ := args.Get(0).(*service.StartedRegistration)
	return s, args.Error(1)
}

func (m *registrationsMock) Get(ctx context.Context, id uuid.UUID) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *registrationsMock) UpdateForm(ctx context.Context, id uuid.UUID, patch []byte) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id, patch))
}

func (m *registrationsMock) SubmitStep(ctx context.Context, id uuid.UUID) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *registrationsMock) CompleteStep(ctx context.Context, id uuid.UUID, step domain.StepID) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id, step))
}

func (m *registrationsMock) SkipStep(ctx context.Context, id uuid.UUID) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *registrationsMock) Back(ctx context.Context, id uuid.UUID) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *registrationsMock) Cancel(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *registrationsMock) RequestOTP(ctx context.Context, id uuid.UUID, channel domain.Channel, destination string) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id, channel, destination))
}

func (m *registrationsMock) ResendOTP(ctx context.Context, id uuid.UUID, channel domain.Channel) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id, channel))
}

func (m *registrationsMock) EnterDigit(ctx context.Context, id uuid.UUID, channel domain.Channel, index int, value string) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id, channel, index, value))
}

func (m *registrationsMock) CaptureID(ctx context.Context, id uuid.UUID, photo domain.Photo) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id, photo))
}

func (m *registrationsMock) CaptureFace(ctx context.Context, id uuid.UUID, photo domain.Photo) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id, photo))
}

func (m *registrationsMock) Submit(ctx context.Context, id uuid.UUID) (*service.RegistrationView, error) {
	return m.view(m.Called(ctx, id))
}

type matchStatusesMock struct {
	mock.Mock
}

func (m *matchStatusesMock) Publish(ctx context.Context, update domain.MatchUpdate) error {
	return m.Called(ctx, update).Error(0)
}

type accountsMock struct {
	mock.Mock
}

func (m *accountsMock) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

func (m *accountsMock) Receipt(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type tokenManagerMock struct {
	mock.Mock
}

func (m *tokenManagerMock) NewJWT(accountID uuid.UUID) (string, time.Duration, error) {
	args := m.Called(accountID)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *tokenManagerMock) Parse(accessToken string) (uuid.UUID, error) {
	args := m.Called(accessToken)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *tokenManagerMock) NewRegistrationToken(sessionID uuid.UUID) (string, time.Duration, error) {
	args := m.Called(sessionID)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *tokenManagerMock) ParseRegistrationToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
