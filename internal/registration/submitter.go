package registration

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/pkg/logger"
)

// Submitter performs the terminal chain of create calls for one journey.
type Submitter struct {
	kind       domain.RegistrationKind
	form       *FormStore
	sequencer  *StepSequencer
	creator    RecordCreator
	compensate bool
	notifier   Notifier
}

type SubmitterOption func(*Submitter)

// WithCompensation deletes already created records when a later call fails.
// It has no effect unless the creator also implements RecordCompensator.
func WithCompensation(enabled bool) SubmitterOption {
	return func(s *Submitter) {
		s.compensate = enabled
	}
}

func WithSubmitNotifier(n Notifier) SubmitterOption {
	return func(s *Submitter) {
		if n != nil {
			s.notifier = n
		}
	}
}

func NewSubmitter(kind domain.RegistrationKind, form *FormStore, sequencer *StepSequencer, creator RecordCreator, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		kind:      kind,
		form:      form,
		sequencer: sequencer,
		creator:   creator,
		notifier:  nopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs CreatePersonalRecord, CreateAddressRecords, LinkAddressToPersonal,
// CreateRoleRecord and CreateAccount in that order. The first failure stops the
// chain. On success the form and the sequencer are reset.
func (s *Submitter) Submit(ctx context.Context) (*domain.SubmissionResult, error) {
	form := s.form.Values()
	if !s.sequencer.CanSubmit() || !form.Account.PhoneVerified || !form.Account.EmailVerified {
		return nil, domain.ErrNotReadyToSubmit
	}

	var (
		res  domain.SubmissionResult
		undo []func(context.Context) error
	)

	fail := func(step domain.SubmissionStep, err error) error {
		serr := &domain.SubmissionError{Step: step, Err: err}
		if s.compensate && len(undo) > 0 {
			serr.Compensated = s.rollback(ctx, undo)
		}
		s.notifier.Notify(ctx, "We could not complete your registration. Please try again.")
		return serr
	}

	comp, canCompensate := s.creator.(RecordCompensator)

	personalID, err := s.creator.CreatePersonalRecord(ctx, form.Personal)
	if err != nil {
		return nil, fail(domain.StepCreatePersonal, err)
	}
	res.PersonalID = personalID
	if canCompensate {
		undo = append(undo, func(ctx context.Context) error {
			return comp.DeletePersonalRecord(ctx, personalID)
		})
	}

	addressIDs, err := s.creator.CreateAddressRecords(ctx, form.Addresses)
	if err != nil {
		return nil, fail(domain.StepCreateAddress, err)
	}
	res.AddressIDs = addressIDs
	if canCompensate {
		undo = append(undo, func(ctx context.Context) error {
			return comp.DeleteAddressRecords(ctx, addressIDs)
		})
	}

	if err := s.creator.LinkAddressToPersonal(ctx, personalID, addressIDs); err != nil {
		return nil, fail(domain.StepLinkAddress, err)
	}

	roleID, err := s.creator.CreateRoleRecord(ctx, personalID, s.roleInput(form))
	if err != nil {
		return nil, fail(domain.StepCreateRole, err)
	}
	res.RoleID = roleID
	if canCompensate {
		undo = append(undo, func(ctx context.Context) error {
			return comp.DeleteRoleRecord(ctx, roleID)
		})
	}

	accountID, err := s.creator.CreateAccount(ctx, personalID, roleID, domain.AccountInput{
		Phone:         form.Account.Phone,
		Email:         form.Account.Email,
		Password:      form.Account.Password,
		PhoneVerified: form.Account.PhoneVerified,
		EmailVerified: form.Account.EmailVerified,
	})
	if err != nil {
		return nil, fail(domain.StepCreateAccount, err)
	}
	res.AccountID = accountID

	s.form.Reset()
	s.sequencer.Reset()

	return &res, nil
}

// rollback runs undo actions newest first and reports whether all of them succeeded.
func (s *Submitter) rollback(ctx context.Context, undo []func(context.Context) error) bool {
	var errs []error
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error("rollback of partial registration failed", zap.Error(err))
		return false
	}
	return true
}

func (s *Submitter) roleInput(form domain.RegistrationForm) domain.RoleInput {
	switch s.kind {
	case domain.KindBusiness:
		business := form.Business
		return domain.RoleInput{
			Role:    domain.RoleBusinessRespondent,
			Details: domain.RoleDetails{Business: &business},
		}
	case domain.KindFamily:
		members := make(map[domain.FamilyRole]domain.FamilyMember)
		for _, step := range s.sequencer.Steps() {
			if step.FamilyRole == "" || !s.sequencer.IsStepCompleted(step.ID) {
				continue
			}
			if m := form.Family.Member(step.FamilyRole); !m.IsZero() {
				members[step.FamilyRole] = m
			}
		}
		return domain.RoleInput{
			Role:    domain.RoleFamilyHead,
			Details: domain.RoleDetails{Members: members},
		}
	default:
		return domain.RoleInput{Role: domain.RoleResident}
	}
}
