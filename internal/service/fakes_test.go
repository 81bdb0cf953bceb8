package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	"github.com/barangay-connect/backend/internal/domain"
)

type memOTPCodes struct {
	mu    sync.Mutex
	codes map[string]domain.OTPCode
}

func newMemOTPCodes() *memOTPCodes {
	return &memOTPCodes{codes: make(map[string]domain.OTPCode)}
}

func (m *memOTPCodes) key(purpose, destination string) string { return purpose + ":" + destination }

func (m *memOTPCodes) Save(_ context.Context, code *domain.OTPCode, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *code
	c.Attempts = 0
	m.codes[m.key(code.Purpose, code.Destination)] = c
	return nil
}

func (m *memOTPCodes) Get(_ context.Context, purpose string, destination string) (*domain.OTPCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[m.key(purpose, destination)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *memOTPCodes) IncrementAttempts(_ context.Context, purpose string, destination string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[m.key(purpose, destination)]
	if !ok {
		return 0, domain.ErrNotFound
	}
	c.Attempts++
	m.codes[m.key(purpose, destination)] = c
	return c.Attempts, nil
}

func (m *memOTPCodes) Delete(_ context.Context, purpose string, destination string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, m.key(purpose, destination))
	return nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.RegistrationSession
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[uuid.UUID]domain.RegistrationSession)}
}

func (m *memSessions) Save(_ context.Context, session *domain.RegistrationSession, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *memSessions) GetOneByID(_ context.Context, id uuid.UUID) (*domain.RegistrationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *memSessions) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type fixedGenerator string

func (g fixedGenerator) Generate(int) string { return string(g) }

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (r *recordingEnqueuer) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Type())
	}
	return out
}

type tokenManagerMock struct {
	mock.Mock
}

func (m *tokenManagerMock) NewJWT(accountID uuid.UUID) (string, time.Duration, error) {
	args := m.Called(accountID)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *tokenManagerMock) Parse(token string) (uuid.UUID, error) {
	args := m.Called(token)
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

type personalRepoMock struct {
	mock.Mock
}

func (m *personalRepoMock) Create(ctx context.Context, record *domain.PersonalRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *personalRepoMock) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.PersonalRecord, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.PersonalRecord)
	return r, args.Error(1)
}

func (m *personalRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type addressRepoMock struct {
	mock.Mock
}

func (m *addressRepoMock) CreateMany(ctx context.Context, records []domain.AddressRecord) error {
	return m.Called(ctx, records).Error(0)
}

func (m *addressRepoMock) LinkToPersonal(ctx context.Context, personalID uuid.UUID, ids []uuid.UUID) error {
	return m.Called(ctx, personalID, ids).Error(0)
}

func (m *addressRepoMock) GetByPersonalID(ctx context.Context, personalID uuid.UUID) ([]domain.AddressRecord, error) {
	args := m.Called(ctx, personalID)
	r, _ := args.Get(0).([]domain.AddressRecord)
	return r, args.Error(1)
}

func (m *addressRepoMock) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

type roleRepoMock struct {
	mock.Mock
}

func (m *roleRepoMock) Create(ctx context.Context, record *domain.RoleRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *roleRepoMock) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.RoleRecord, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.RoleRecord)
	return r, args.Error(1)
}

func (m *roleRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type accountRepoMock struct {
	mock.Mock
}

func (m *accountRepoMock) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *accountRepoMock) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Account)
	return r, args.Error(1)
}

func (m *accountRepoMock) ExistsByContact(ctx context.Context, phone string, email string) (bool, error) {
	args := m.Called(ctx, phone, email)
	return args.Bool(0), args.Error(1)
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash string, password string) bool {
	return hash == "hashed:"+password
}
