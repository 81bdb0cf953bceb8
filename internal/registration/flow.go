package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/barangay-connect/backend/internal/domain"
)

// Collaborators are the external services a Flow talks to.
type Collaborators struct {
	Sender    OTPSender
	Verifier  OTPVerifier
	Documents DocumentMatcher
	Faces     FaceMatcher
	Statuses  MatchStatusSubscriber
	Records   RecordCreator
	Notifier  Notifier
}

type FlowConfig struct {
	OTPPurpose       string
	CaptureStatusTTL time.Duration
	FaceMatchTimeout time.Duration
	Compensate       bool
	Validate         *validator.Validate
}

// Flow hosts one registration journey. It gates every operation on the
// active step's stage and advances the sequencer when a stage succeeds.
// A Flow is not safe for concurrent use; callers serialize access per session.
type Flow struct {
	id        uuid.UUID
	kind      domain.RegistrationKind
	createdAt time.Time

	form      *FormStore
	phone     *OTPChallenge
	email     *OTPChallenge
	capture   *IdentityCapture
	sequencer *StepSequencer
	submitter *Submitter

	exited   bool
	finished bool
}

// NewFlow builds a Flow and restores it from a persisted session.
func NewFlow(session domain.RegistrationSession, deps Collaborators, cfg FlowConfig) (*Flow, error) {
	if !session.Kind.Valid() {
		return nil, fmt.Errorf("unknown registration kind %q", session.Kind)
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}

	f := &Flow{
		id:        session.ID,
		kind:      session.Kind,
		createdAt: session.CreatedAt,
		form:      NewFormStore(cfg.Validate),
	}

	f.phone = NewOTPChallenge(domain.ChannelPhone, f.form, deps.Sender, deps.Verifier,
		WithOTPPurpose(cfg.OTPPurpose), WithOTPNotifier(notifier))
	f.email = NewOTPChallenge(domain.ChannelEmail, f.form, deps.Sender, deps.Verifier,
		WithOTPPurpose(cfg.OTPPurpose), WithOTPNotifier(notifier))
	f.capture = NewIdentityCapture(f.form, deps.Documents, deps.Faces, deps.Statuses,
		WithCaptureStatusTTL(cfg.CaptureStatusTTL),
		WithFaceMatchTimeout(cfg.FaceMatchTimeout),
		WithCaptureNotifier(notifier))
	f.sequencer = NewStepSequencer(StepsFor(session.Kind), f.exit)
	f.submitter = NewSubmitter(session.Kind, f.form, f.sequencer, deps.Records,
		WithCompensation(cfg.Compensate), WithSubmitNotifier(notifier))

	f.form.Restore(session.Form)
	f.phone.Restore(session.PhoneOTP)
	f.email.Restore(session.EmailOTP)
	f.capture.Restore(session.Capture)
	if session.Progress.CurrentStep > 0 {
		f.sequencer.Restore(session.Progress)
	}

	return f, nil
}

func (f *Flow) ID() uuid.UUID                  { return f.id }
func (f *Flow) Kind() domain.RegistrationKind  { return f.kind }
func (f *Flow) Form() *FormStore               { return f.form }
func (f *Flow) Sequencer() *StepSequencer      { return f.sequencer }
func (f *Flow) Steps() []domain.StepDescriptor { return f.sequencer.Steps() }

// Exited reports whether the journey was left by going back from the first step or by Cancel.
func (f *Flow) Exited() bool { return f.exited }

// Finished reports whether the journey was submitted.
func (f *Flow) Finished() bool { return f.finished }

func (f *Flow) Challenge(channel domain.Channel) *OTPChallenge {
	if channel == domain.ChannelEmail {
		return f.email
	}
	return f.phone
}

func (f *Flow) Capture() *IdentityCapture { return f.capture }

// Snapshot returns the persisted form of the journey.
func (f *Flow) Snapshot() domain.RegistrationSession {
	return domain.RegistrationSession{
		ID:        f.id,
		Kind:      f.kind,
		Form:      f.form.Values(),
		Progress:  f.sequencer.Progress(),
		PhoneOTP:  f.phone.Session(),
		EmailOTP:  f.email.Session(),
		Capture:   f.capture.State(),
		CreatedAt: f.createdAt,
	}
}

// ActiveStep returns the current step descriptor.
func (f *Flow) ActiveStep() (domain.StepDescriptor, error) {
	step, ok := f.sequencer.Current()
	if !ok {
		return domain.StepDescriptor{}, domain.ErrSequenceFinished
	}
	return step, nil
}

func (f *Flow) requireStage(stage domain.Stage) (domain.StepDescriptor, error) {
	step, err := f.ActiveStep()
	if err != nil {
		return step, err
	}
	if step.Stage != stage {
		return step, domain.ErrStageNotActive
	}
	return step, nil
}

func (f *Flow) advance(step domain.StepDescriptor) error {
	if err := f.sequencer.Complete(step.ID); err != nil {
		return err
	}
	return f.sequencer.Next()
}

func otpStage(channel domain.Channel) domain.Stage {
	if channel == domain.ChannelEmail {
		return domain.StageEmailOTP
	}
	return domain.StagePhoneOTP
}

func (f *Flow) RequestOTP(ctx context.Context, channel domain.Channel, destination string) error {
	if _, err := f.requireStage(otpStage(channel)); err != nil {
		return err
	}
	return f.Challenge(channel).RequestCode(ctx, destination)
}

func (f *Flow) ResendOTP(ctx context.Context, channel domain.Channel) error {
	if _, err := f.requireStage(otpStage(channel)); err != nil {
		return err
	}
	return f.Challenge(channel).Resend(ctx)
}

// EnterDigit writes one OTP digit and moves to the next step once the code is verified.
func (f *Flow) EnterDigit(ctx context.Context, channel domain.Channel, index int, value string) (DigitResult, error) {
	step, err := f.requireStage(otpStage(channel))
	if err != nil {
		return DigitResult{}, err
	}

	res, err := f.Challenge(channel).SubmitDigit(ctx, index, value)
	if err != nil {
		return res, err
	}
	if res.Outcome == domain.OutcomeVerified {
		if err := f.advance(step); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (f *Flow) CancelOTP(channel domain.Channel) {
	f.Challenge(channel).Cancel()
}

// UpdateForm merges a partial form document. Changing a verified contact
// reopens its OTP step, and changing personal data the ID was matched against
// reopens the identity step.
func (f *Flow) UpdateForm(patch []byte) error {
	before := f.form.Values()
	if err := f.form.Merge(patch); err != nil {
		return err
	}
	after := f.form.Values()

	if before.Account.PhoneVerified && !after.Account.PhoneVerified {
		f.phone.Cancel()
		f.reopen(domain.StagePhoneOTP)
	}
	if before.Account.EmailVerified && !after.Account.EmailVerified {
		f.email.Cancel()
		f.reopen(domain.StageEmailOTP)
	}
	if f.capture.IDMatched() && before.Personal.DocumentSubject() != after.Personal.DocumentSubject() {
		f.capture.Reset()
		f.reopen(domain.StageIdentityCapture)
	}
	return nil
}

func (f *Flow) reopen(stage domain.Stage) {
	for _, step := range f.sequencer.Steps() {
		if step.Stage == stage {
			_ = f.sequencer.Uncomplete(step.ID)
		}
	}
}

// SubmitStep validates the active step and moves forward. OTP and capture
// steps only move forward once their verification already succeeded.
func (f *Flow) SubmitStep(ctx context.Context) error {
	step, err := f.ActiveStep()
	if err != nil {
		return err
	}

	switch step.Stage {
	case domain.StageForm:
		if !f.form.Trigger(ctx, step.Fields...) {
			return f.form.ValidationError(step.Fields...)
		}
	case domain.StagePhoneOTP:
		if !f.form.Values().Account.PhoneVerified {
			return domain.ErrStepIncomplete
		}
	case domain.StageEmailOTP:
		if !f.form.Values().Account.EmailVerified {
			return domain.ErrStepIncomplete
		}
	case domain.StageIdentityCapture:
		if f.capture.Phase() != domain.CaptureFaceVerified {
			return domain.ErrStepIncomplete
		}
	case domain.StageReview:
		return domain.ErrStageNotActive
	}

	return f.advance(step)
}

// CompleteStep validates a form step out of order and marks it completed
// without moving the current step.
func (f *Flow) CompleteStep(ctx context.Context, id domain.StepID) error {
	var step *domain.StepDescriptor
	for _, s := range f.sequencer.Steps() {
		if s.ID == id {
			step = &s
			break
		}
	}
	if step == nil {
		return domain.ErrUnknownStep
	}
	if step.Stage != domain.StageForm {
		return domain.ErrStageNotActive
	}
	if !f.form.Trigger(ctx, step.Fields...) {
		return f.form.ValidationError(step.Fields...)
	}
	return f.sequencer.Complete(step.ID)
}

// SkipStep moves past an optional or grouped step without completing it.
func (f *Flow) SkipStep() error {
	step, err := f.ActiveStep()
	if err != nil {
		return err
	}
	if !step.Optional && step.Group == "" {
		return domain.ErrStepNotSkippable
	}
	return f.sequencer.Next()
}

// Back leaves the active stage and moves back one phase or step. Going back
// from the first step exits the journey.
func (f *Flow) Back() (exited bool) {
	if step, ok := f.sequencer.Current(); ok {
		switch step.Stage {
		case domain.StagePhoneOTP:
			f.phone.Cancel()
		case domain.StageEmailOTP:
			f.email.Cancel()
		case domain.StageIdentityCapture:
			if f.sequencer.Phase() == 0 {
				f.capture.Reset()
			} else {
				f.capture.Restore(domain.CaptureState{Phase: domain.CaptureCapturingID})
			}
		}
	}
	return f.sequencer.Back()
}

func (f *Flow) CaptureID(ctx context.Context, photo domain.Photo) (domain.CaptureResult, error) {
	if _, err := f.requireStage(domain.StageIdentityCapture); err != nil {
		return domain.CaptureResult{}, err
	}
	f.capture.Begin()

	res, err := f.capture.CaptureID(ctx, photo)
	if err != nil {
		return res, err
	}
	if res.Success {
		f.sequencer.NextPhase()
	}
	return res, nil
}

func (f *Flow) CaptureFace(ctx context.Context, photo domain.Photo) (domain.CaptureResult, error) {
	step, err := f.requireStage(domain.StageIdentityCapture)
	if err != nil {
		return domain.CaptureResult{}, err
	}

	res, err := f.capture.CaptureFace(ctx, photo)
	if err != nil {
		return res, err
	}
	if res.Success {
		if err := f.advance(step); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Submit runs the submission chain from the review step.
func (f *Flow) Submit(ctx context.Context) (*domain.SubmissionResult, error) {
	if _, err := f.requireStage(domain.StageReview); err != nil {
		return nil, err
	}

	res, err := f.submitter.Submit(ctx)
	if err != nil {
		return nil, err
	}

	f.phone.Cancel()
	f.email.Cancel()
	f.capture.Reset()
	f.finished = true

	return res, nil
}

// Cancel abandons the journey and clears everything entered so far.
func (f *Flow) Cancel() {
	f.sequencer.Reset()
	f.exit()
}

func (f *Flow) exit() {
	f.form.Reset()
	f.phone.Cancel()
	f.email.Cancel()
	f.capture.Reset()
	f.exited = true
}
