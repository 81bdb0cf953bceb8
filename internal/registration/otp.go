package registration

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/barangay-connect/backend/internal/domain"
)

const defaultOTPPurpose = "registration"

// OTPChallenge drives one OTP round-trip for a single channel.
type OTPChallenge struct {
	channel  domain.Channel
	purpose  string
	form     *FormStore
	sender   OTPSender
	verifier OTPVerifier
	notifier Notifier
	now      func() time.Time

	session     domain.OTPSession
	destination string
}

type OTPOption func(*OTPChallenge)

func WithOTPPurpose(purpose string) OTPOption {
	return func(c *OTPChallenge) {
		if purpose != "" {
			c.purpose = purpose
		}
	}
}

func WithOTPNotifier(n Notifier) OTPOption {
	return func(c *OTPChallenge) {
		if n != nil {
			c.notifier = n
		}
	}
}

func NewOTPChallenge(channel domain.Channel, form *FormStore, sender OTPSender, verifier OTPVerifier, opts ...OTPOption) *OTPChallenge {
	c := &OTPChallenge{
		channel:  channel,
		purpose:  defaultOTPPurpose,
		form:     form,
		sender:   sender,
		verifier: verifier,
		notifier: nopNotifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session.Channel = channel
	return c
}

func (c *OTPChallenge) Channel() domain.Channel {
	return c.channel
}

// Session returns a copy of the current OTP session.
func (c *OTPChallenge) Session() domain.OTPSession {
	return c.session
}

// Restore loads a persisted session.
func (c *OTPChallenge) Restore(s domain.OTPSession) {
	s.Channel = c.channel
	c.session = s
	c.destination = s.Destination
}

// RequestCode validates the destination and asks the dispatcher for a code.
// An invalid destination never reaches the network.
func (c *OTPChallenge) RequestCode(ctx context.Context, destination string) error {
	field := c.channel.Field()
	c.form.Update(func(f *domain.RegistrationForm) {
		switch c.channel {
		case domain.ChannelPhone:
			if f.Account.Phone != destination {
				f.Account.PhoneVerified = false
			}
			f.Account.Phone = destination
		case domain.ChannelEmail:
			if f.Account.Email != destination {
				f.Account.EmailVerified = false
			}
			f.Account.Email = destination
		}
	})

	if !c.form.Trigger(ctx, field) {
		return c.form.ValidationError(field)
	}

	c.session.Pending = true
	dispatch, err := c.sender.SendOTP(ctx, c.channel, destination, c.purpose)
	if err == nil && !dispatch.Dispatched {
		err = errors.New("code was not dispatched")
	}
	if err != nil {
		c.session.Pending = false
		c.notifier.Notify(ctx, "We could not send the verification code. Please try again.")
		return &domain.DispatchError{Op: "send otp", Err: err}
	}

	c.destination = destination
	c.session = domain.OTPSession{
		Channel:     c.channel,
		Destination: destination,
		Open:        true,
		RequestedAt: c.now(),
	}
	if c.channel == domain.ChannelPhone {
		c.session.ExpectedCode = dispatch.Code
	}

	return nil
}

// Resend repeats RequestCode for the last destination.
func (c *OTPChallenge) Resend(ctx context.Context) error {
	if c.destination == "" {
		return domain.ErrNoActiveOTPSession
	}
	return c.RequestCode(ctx, c.destination)
}

// DigitResult tells the caller where entry focus went and whether the code was verified.
type DigitResult struct {
	Focus   int
	Outcome domain.VerifyOutcome
}

// SubmitDigit writes one digit cell. An empty value is a backspace: it clears the
// cell, or moves focus back when the cell is already empty. Filling the last
// empty cell triggers verification.
func (c *OTPChallenge) SubmitDigit(ctx context.Context, index int, value string) (DigitResult, error) {
	if !c.session.Open {
		return DigitResult{}, domain.ErrNoActiveOTPSession
	}
	if index < 0 || index >= domain.OTPLength {
		return DigitResult{Focus: c.session.Focus, Outcome: domain.OutcomePending}, nil
	}

	if value == "" {
		if c.session.Digits[index] == "" && index > 0 {
			index--
			c.session.Digits[index] = ""
		} else {
			c.session.Digits[index] = ""
		}
		c.session.Focus = index
		return DigitResult{Focus: c.session.Focus, Outcome: domain.OutcomePending}, nil
	}

	// keep the last typed character when the cell receives more than one
	value = value[len(value)-1:]
	if value[0] < '0' || value[0] > '9' {
		return DigitResult{Focus: c.session.Focus, Outcome: domain.OutcomePending}, nil
	}

	c.session.Invalid = false
	c.session.Digits[index] = value
	if index < domain.OTPLength-1 {
		c.session.Focus = index + 1
	}

	if !c.session.Filled() {
		return DigitResult{Focus: c.session.Focus, Outcome: domain.OutcomePending}, nil
	}

	outcome, err := c.AttemptVerify(ctx)
	return DigitResult{Focus: c.session.Focus, Outcome: outcome}, err
}

// AttemptVerify checks the entered code once all digits are present.
func (c *OTPChallenge) AttemptVerify(ctx context.Context) (domain.VerifyOutcome, error) {
	if !c.session.Open {
		return domain.OutcomePending, domain.ErrNoActiveOTPSession
	}
	if !c.session.Filled() {
		return domain.OutcomePending, nil
	}

	code := c.session.Code()

	var ok bool
	if c.session.ExpectedCode != "" {
		ok = subtle.ConstantTimeCompare([]byte(code), []byte(c.session.ExpectedCode)) == 1
	} else {
		c.session.Pending = true
		matched, err := c.verifier.VerifyOTP(ctx, c.session.Destination, code)
		c.session.Pending = false
		if err != nil {
			c.notifier.Notify(ctx, "We could not verify the code. Please try again.")
			return domain.OutcomePending, &domain.DispatchError{Op: "verify otp", Err: err}
		}
		ok = matched
	}

	if !ok {
		c.session.Invalid = true
		c.session.ClearDigits()
		return domain.OutcomeInvalid, nil
	}

	c.session = domain.OTPSession{Channel: c.channel}
	c.form.markVerified(c.channel)

	return domain.OutcomeVerified, nil
}

// Cancel drops the session; the destination stays in the form.
func (c *OTPChallenge) Cancel() {
	c.session = domain.OTPSession{Channel: c.channel}
	c.destination = ""
}
