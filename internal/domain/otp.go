package domain

import (
	"strings"
	"time"
)

type Channel string

const (
	ChannelPhone Channel = "phone"
	ChannelEmail Channel = "email"
)

func (c Channel) Valid() bool {
	return c == ChannelPhone || c == ChannelEmail
}

// Field returns the form field holding the channel destination.
func (c Channel) Field() FormField {
	if c == ChannelEmail {
		return FieldAccountEmail
	}
	return FieldAccountPhone
}

const OTPLength = 6

// OTPSession is one in-progress OTP round-trip for a single channel.
// ExpectedCode is only set when the dispatcher handed the code back (phone)
// and is never exposed outside the server.
type OTPSession struct {
	Channel      Channel           `json:"channel"`
	Destination  string            `json:"destination"`
	ExpectedCode string            `json:"expected_code,omitempty"`
	Digits       [OTPLength]string `json:"digits"`
	Focus        int               `json:"focus"`
	Invalid      bool              `json:"invalid"`
	Pending      bool              `json:"pending"`
	Open         bool              `json:"open"`
	RequestedAt  time.Time         `json:"requested_at"`
}

// Code joins the entered digits.
func (s OTPSession) Code() string {
	return strings.Join(s.Digits[:], "")
}

// Filled reports whether every digit cell holds a value.
func (s OTPSession) Filled() bool {
	for _, d := range s.Digits {
		if d == "" {
			return false
		}
	}
	return true
}

func (s *OTPSession) ClearDigits() {
	s.Digits = [OTPLength]string{}
	s.Focus = 0
}

// OTPDispatch is the dispatch collaborator's answer to a send request.
type OTPDispatch struct {
	Dispatched bool
	Code       string
}

type VerifyOutcome string

const (
	OutcomePending  VerifyOutcome = "pending"
	OutcomeVerified VerifyOutcome = "verified"
	OutcomeInvalid  VerifyOutcome = "invalid"
)

// OTPCode is the server-held code record used for remote verification.
type OTPCode struct {
	Destination string    `json:"destination"`
	Purpose     string    `json:"purpose"`
	Code        string    `json:"code"`
	Attempts    int       `json:"attempts"`
	CreatedAt   time.Time `json:"created_at"`
}
