package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNotFound       = errors.New("not found")
	ErrNoRowsAffected = errors.New("no rows affected")
)

var (
	ErrDispatch             = errors.New("dispatch failed")
	ErrVerificationMismatch = errors.New("verification mismatch")

	ErrStageNotActive     = errors.New("stage is not active")
	ErrNoActiveOTPSession = errors.New("no active otp session")
	ErrCaptureInProgress  = errors.New("capture already in progress")
	ErrCameraUnavailable  = errors.New("camera unavailable")
	ErrMatchTimeout       = errors.New("face match timed out")
	ErrNotReadyToSubmit   = errors.New("registration is not ready to submit")
	ErrSequenceFinished   = errors.New("registration sequence already finished")
	ErrUnknownStep        = errors.New("unknown step")
	ErrStepIncomplete     = errors.New("step is not complete")
	ErrStepNotSkippable   = errors.New("step cannot be skipped")
)

// ValidationError carries field level messages. It never leaves the stage that produced it
// except as a response to the client.
type ValidationError struct {
	Fields map[FormField]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// DispatchError is a network failure before a verifiable result was produced.
type DispatchError struct {
	Op  string
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatch
}

type SubmissionStep string

const (
	StepCreatePersonal SubmissionStep = "create_personal_record"
	StepCreateAddress  SubmissionStep = "create_address_records"
	StepLinkAddress    SubmissionStep = "link_address_to_personal"
	StepCreateRole     SubmissionStep = "create_role_record"
	StepCreateAccount  SubmissionStep = "create_account"
)

// SubmissionError reports which create call stopped the submission chain.
type SubmissionError struct {
	Step        SubmissionStep
	Err         error
	Compensated bool
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed at %s: %v", e.Step, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
