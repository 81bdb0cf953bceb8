package domain

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationSession is the persisted state of one registration journey.
type RegistrationSession struct {
	ID       uuid.UUID            `json:"id"`
	Kind     RegistrationKind     `json:"kind"`
	Form     RegistrationForm     `json:"form"`
	Progress RegistrationProgress `json:"progress"`
	PhoneOTP OTPSession           `json:"phone_otp"`
	EmailOTP OTPSession           `json:"email_otp"`
	Capture  CaptureState         `json:"capture"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
