package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/config"
	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/metrics"
	"github.com/barangay-connect/backend/internal/registration"
	"github.com/barangay-connect/backend/internal/repository"
	"github.com/barangay-connect/backend/pkg/auth"
	"github.com/barangay-connect/backend/pkg/logger"
)

type RegistrationStatus string

const (
	RegistrationInProgress RegistrationStatus = "in_progress"
	RegistrationFinished   RegistrationStatus = "finished"
	RegistrationExited     RegistrationStatus = "exited"
)

type StartedRegistration struct {
	ID        uuid.UUID
	Token     string
	ExpiresIn time.Duration
}

type StepView struct {
	domain.StepDescriptor
	Completed bool `json:"completed"`
}

// OTPView is what a client may see of an OTP session. The expected code never leaves the server.
type OTPView struct {
	Destination string                   `json:"destination"`
	Open        bool                     `json:"open"`
	Digits      [domain.OTPLength]string `json:"digits"`
	Focus       int                      `json:"focus"`
	Invalid     bool                     `json:"invalid"`
	Pending     bool                     `json:"pending"`
	Verified    bool                     `json:"verified"`
}

// CaptureView is the client side of the capture stage. Match ids stay on the server.
type CaptureView struct {
	Phase         domain.CapturePhase `json:"phase"`
	StatusMessage string              `json:"status_message,omitempty"`
}

type RegistrationView struct {
	ID            uuid.UUID                   `json:"id"`
	Kind          domain.RegistrationKind     `json:"kind"`
	Status        RegistrationStatus          `json:"status"`
	Step          *domain.StepDescriptor      `json:"step,omitempty"`
	Phase         int                         `json:"phase"`
	Steps         []StepView                  `json:"steps"`
	CanSubmit     bool                        `json:"can_submit"`
	Form          domain.RegistrationForm     `json:"form"`
	FieldErrors   map[domain.FormField]string `json:"field_errors,omitempty"`
	PhoneOTP      OTPView                     `json:"phone_otp"`
	EmailOTP      OTPView                     `json:"email_otp"`
	OTPOutcome    domain.VerifyOutcome        `json:"otp_outcome,omitempty"`
	Capture       CaptureView                 `json:"capture"`
	Notifications []string                    `json:"notifications,omitempty"`
	Result        *domain.SubmissionResult    `json:"result,omitempty"`
}

// MatchingBackend is the document and face matching API.
type MatchingBackend interface {
	registration.DocumentMatcher
	registration.FaceMatcher
}

// MatchStatusRelay carries pushed match statuses to waiting face captures.
type MatchStatusRelay interface {
	registration.MatchStatusSubscriber
	Publish(ctx context.Context, update domain.MatchUpdate) (int64, error)
}

type registrationService struct {
	sessions repository.RegistrationSessions
	tokens   auth.TokenManager
	otp      *otpService
	matching MatchingBackend
	statuses MatchStatusRelay
	records  *recordsService
	validate *validator.Validate
	config   config.RegistrationConfig
	purpose  string
	metrics  *metrics.Metrics
	locks    *sessionLocks
	now      func() time.Time
}

func newRegistrationService(
	sessions repository.RegistrationSessions,
	tokens auth.TokenManager,
	otp *otpService,
	matching MatchingBackend,
	statuses MatchStatusRelay,
	records *recordsService,
	validate *validator.Validate,
	cfg *config.Config,
	m *metrics.Metrics,
) *registrationService {
	return &registrationService{
		sessions: sessions,
		tokens:   tokens,
		otp:      otp,
		matching: matching,
		statuses: statuses,
		records:  records,
		validate: validate,
		config:   cfg.Registration,
		purpose:  cfg.OTP.Purpose,
		metrics:  m,
		locks:    newSessionLocks(),
		now:      time.Now,
	}
}

// Start opens a new registration session and issues the token that addresses it.
func (s *registrationService) Start(ctx context.Context, kind domain.RegistrationKind) (*StartedRegistration, error) {
	if !kind.Valid() {
		return nil, ErrUnknownRegistrationKind
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generate registration id failed: %w", err)
	}

	now := s.now().UTC()
	flow, err := registration.NewFlow(domain.RegistrationSession{ID: id, Kind: kind, CreatedAt: now}, registration.Collaborators{}, s.flowConfig())
	if err != nil {
		return nil, fmt.Errorf("build registration flow failed: %w", err)
	}

	session := flow.Snapshot()
	session.UpdatedAt = now
	if err = s.sessions.Save(ctx, &session, s.config.SessionTTL); err != nil {
		return nil, fmt.Errorf("save registration session failed: %w", err)
	}

	token, ttl, err := s.tokens.NewRegistrationToken(id)
	if err != nil {
		return nil, fmt.Errorf("generate registration token failed: %w", err)
	}

	s.metrics.IncrementSessionsStarted(string(kind))

	return &StartedRegistration{ID: id, Token: token, ExpiresIn: ttl}, nil
}

func (s *registrationService) Get(ctx context.Context, id uuid.UUID) (*RegistrationView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	flow, err := registration.NewFlow(*session, registration.Collaborators{}, s.flowConfig())
	if err != nil {
		return nil, fmt.Errorf("build registration flow failed: %w", err)
	}

	return s.view(flow, nil), nil
}

func (s *registrationService) UpdateForm(ctx context.Context, id uuid.UUID, patch []byte) (*RegistrationView, error) {
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		return f.UpdateForm(patch)
	})
}

func (s *registrationService) SubmitStep(ctx context.Context, id uuid.UUID) (*RegistrationView, error) {
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		return f.SubmitStep(ctx)
	})
}

func (s *registrationService) CompleteStep(ctx context.Context, id uuid.UUID, step domain.StepID) (*RegistrationView, error) {
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		return f.CompleteStep(ctx, step)
	})
}

func (s *registrationService) SkipStep(ctx context.Context, id uuid.UUID) (*RegistrationView, error) {
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		return f.SkipStep()
	})
}

func (s *registrationService) Back(ctx context.Context, id uuid.UUID) (*RegistrationView, error) {
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		f.Back()
		return nil
	})
}

func (s *registrationService) Cancel(ctx context.Context, id uuid.UUID) error {
	_, err := s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		f.Cancel()
		return nil
	})
	return err
}

func (s *registrationService) RequestOTP(ctx context.Context, id uuid.UUID, channel domain.Channel, destination string) (*RegistrationView, error) {
	if !channel.Valid() {
		return nil, ErrUnknownChannel
	}
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		return f.RequestOTP(ctx, channel, destination)
	})
}

func (s *registrationService) ResendOTP(ctx context.Context, id uuid.UUID, channel domain.Channel) (*RegistrationView, error) {
	if !channel.Valid() {
		return nil, ErrUnknownChannel
	}
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		return f.ResendOTP(ctx, channel)
	})
}

func (s *registrationService) EnterDigit(ctx context.Context, id uuid.UUID, channel domain.Channel, index int, value string) (*RegistrationView, error) {
	if !channel.Valid() {
		return nil, ErrUnknownChannel
	}
	var outcome domain.VerifyOutcome
	view, err := s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		res, err := f.EnterDigit(ctx, channel, index, value)
		outcome = res.Outcome
		return err
	})
	if outcome != "" && outcome != domain.OutcomePending {
		s.metrics.ObserveOTPOutcome(string(channel), string(outcome))
	}
	if view != nil {
		view.OTPOutcome = outcome
	}
	return view, err
}

func (s *registrationService) CaptureID(ctx context.Context, id uuid.UUID, photo domain.Photo) (*RegistrationView, error) {
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		res, err := f.CaptureID(ctx, photo)
		s.metrics.ObserveCapture("id", res.Success, err)
		return err
	})
}

func (s *registrationService) CaptureFace(ctx context.Context, id uuid.UUID, photo domain.Photo) (*RegistrationView, error) {
	return s.withFlow(ctx, id, func(f *registration.Flow, _ *RegistrationView) error {
		res, err := f.CaptureFace(ctx, photo)
		s.metrics.ObserveCapture("face", res.Success, err)
		return err
	})
}

func (s *registrationService) Submit(ctx context.Context, id uuid.UUID) (*RegistrationView, error) {
	return s.withFlow(ctx, id, func(f *registration.Flow, v *RegistrationView) error {
		res, err := f.Submit(ctx)
		s.metrics.ObserveSubmission(string(f.Kind()), err)
		v.Result = res
		return err
	})
}

// withFlow runs op against the session under its lock and persists the outcome.
// State changes are kept even when op fails; a finished or exited journey is deleted.
func (s *registrationService) withFlow(ctx context.Context, id uuid.UUID, op func(*registration.Flow, *RegistrationView) error) (*RegistrationView, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	notes := &collectingNotifier{}
	flow, err := registration.NewFlow(*session, s.collaborators(notes), s.flowConfig())
	if err != nil {
		return nil, fmt.Errorf("build registration flow failed: %w", err)
	}

	result := &RegistrationView{}
	opErr := op(flow, result)

	if flow.Exited() || flow.Finished() {
		if err = s.sessions.Delete(ctx, id); err != nil {
			logger.Error("failed to delete registration session", zap.String("id", id.String()), zap.Error(err))
		}
	} else {
		snapshot := flow.Snapshot()
		snapshot.UpdatedAt = s.now().UTC()
		if err = s.sessions.Save(ctx, &snapshot, s.config.SessionTTL); err != nil {
			return nil, errors.Join(opErr, fmt.Errorf("save registration session failed: %w", err))
		}
	}

	view := s.view(flow, notes.list())
	view.Result = result.Result

	return view, opErr
}

func (s *registrationService) load(ctx context.Context, id uuid.UUID) (*domain.RegistrationSession, error) {
	session, err := s.sessions.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration session failed: %w", err)
	}
	return session, nil
}

func (s *registrationService) collaborators(n registration.Notifier) registration.Collaborators {
	return registration.Collaborators{
		Sender:    s.otp,
		Verifier:  s.otp,
		Documents: s.matching,
		Faces:     s.matching,
		Statuses:  s.statuses,
		Records:   s.records,
		Notifier:  n,
	}
}

func (s *registrationService) flowConfig() registration.FlowConfig {
	return registration.FlowConfig{
		OTPPurpose:       s.purpose,
		CaptureStatusTTL: s.config.CaptureStatusTTL,
		FaceMatchTimeout: s.config.FaceMatchTimeout,
		Compensate:       s.config.Compensate,
		Validate:         s.validate,
	}
}

func (s *registrationService) view(f *registration.Flow, notifications []string) *RegistrationView {
	form := f.Form().Values()
	form.Account.Password = ""
	form.Account.ConfirmPassword = ""

	seq := f.Sequencer()
	steps := f.Steps()
	stepViews := make([]StepView, 0, len(steps))
	for _, step := range steps {
		stepViews = append(stepViews, StepView{StepDescriptor: step, Completed: seq.IsStepCompleted(step.ID)})
	}

	view := &RegistrationView{
		ID:            f.ID(),
		Kind:          f.Kind(),
		Status:        RegistrationInProgress,
		Phase:         seq.Phase(),
		Steps:         stepViews,
		CanSubmit:     seq.CanSubmit(),
		Form:          form,
		FieldErrors:   f.Form().Errors(),
		PhoneOTP:      otpView(f.Challenge(domain.ChannelPhone).Session(), form.Account.PhoneVerified),
		EmailOTP:      otpView(f.Challenge(domain.ChannelEmail).Session(), form.Account.EmailVerified),
		Capture:       captureView(f.Capture().State()),
		Notifications: notifications,
	}

	switch {
	case f.Finished():
		view.Status = RegistrationFinished
	case f.Exited():
		view.Status = RegistrationExited
	}

	if step, err := f.ActiveStep(); err == nil && view.Status == RegistrationInProgress {
		view.Step = &step
	}

	return view
}

func otpView(s domain.OTPSession, verified bool) OTPView {
	return OTPView{
		Destination: s.Destination,
		Open:        s.Open,
		Digits:      s.Digits,
		Focus:       s.Focus,
		Invalid:     s.Invalid,
		Pending:     s.Pending,
		Verified:    verified,
	}
}

func captureView(s domain.CaptureState) CaptureView {
	return CaptureView{Phase: s.Phase, StatusMessage: s.StatusMessage}
}

// collectingNotifier gathers the toasts raised during one request.
type collectingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *collectingNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
}

func (n *collectingNotifier) list() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}
