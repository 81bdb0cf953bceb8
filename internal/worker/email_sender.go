package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/config"
	emailProvider "github.com/barangay-connect/backend/pkg/email"
	"github.com/barangay-connect/backend/pkg/logger"
)

type emailSender struct {
	sender    emailProvider.Sender
	templates *emailProvider.Templates
	config    config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender:    sender,
		templates: emailProvider.NewTemplates(config.Templates.Dir),
		config:    config,
	}
}

type verificationEmailInput struct {
	Code       string
	TTLMinutes int
}

func (s *emailSender) SendOTPEmail(ctx context.Context, email string, code string, ttlMinutes int) error {
	if !s.config.Enabled {
		logger.Info("email delivery disabled, otp email dropped", zap.String("email", email))
		return nil
	}

	subject := "Your Barangay verification code"

	templateInput := verificationEmailInput{Code: code, TTLMinutes: ttlMinutes}
	body, err := s.templates.Render(s.config.Templates.Verification, templateInput)
	if err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err = s.sender.Send(ctx, emailProvider.Message{To: email, Subject: subject, HTML: body}); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
