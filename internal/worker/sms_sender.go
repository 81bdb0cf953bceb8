package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/config"
	"github.com/barangay-connect/backend/pkg/logger"
	smsProvider "github.com/barangay-connect/backend/pkg/sms"
)

type smsSender struct {
	sender smsProvider.Sender
	config config.SMSConfig
}

func newSMSSender(sender smsProvider.Sender, config config.SMSConfig) *smsSender {
	return &smsSender{
		sender: sender,
		config: config,
	}
}

func (s *smsSender) SendOTPSMS(ctx context.Context, phone string, code string, ttlMinutes int) error {
	if !s.config.Enabled || s.sender == nil {
		logger.Info("sms delivery disabled, otp sms dropped", zap.String("phone", phone))
		return nil
	}

	input := smsProvider.SendSMSInput{
		To:      phone,
		Message: fmt.Sprintf("%s is your Barangay verification code. It expires in %d minutes. Never share it.", code, ttlMinutes),
	}

	if err := s.sender.Send(ctx, input); err != nil {
		return fmt.Errorf("send sms failed: %w", err)
	}

	return nil
}
