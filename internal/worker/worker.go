package worker

import (
	"context"

	"github.com/barangay-connect/backend/internal/config"
	emailProvider "github.com/barangay-connect/backend/pkg/email"
	smsProvider "github.com/barangay-connect/backend/pkg/sms"
)

type Workers struct {
	EmailSender EmailSender
	SMSSender   SMSSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	SMSProvider   smsProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendOTPEmail(ctx context.Context, email string, code string, ttlMinutes int) error
}

type SMSSender interface {
	SendOTPSMS(ctx context.Context, phone string, code string, ttlMinutes int) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
		SMSSender:   newSMSSender(deps.SMSProvider, deps.Config.SMS),
	}
}
