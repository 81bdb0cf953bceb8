package service

import "errors"

var (
	ErrAccountAlreadyExist     = errors.New("account already exist")
	ErrAccountNotFound         = errors.New("account not found")
	ErrRegistrationNotFound    = errors.New("registration not found")
	ErrInvalidBirthDate        = errors.New("invalid birth date")
	ErrMissingPresentAddress   = errors.New("present address is required")
	ErrUnknownChannel          = errors.New("unknown otp channel")
	ErrUnknownRegistrationKind = errors.New("unknown registration kind")
)
