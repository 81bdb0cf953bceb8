package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/config"
	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/metrics"
	"github.com/barangay-connect/backend/internal/queue/client"
	"github.com/barangay-connect/backend/internal/queue/task"
	"github.com/barangay-connect/backend/internal/repository"
	"github.com/barangay-connect/backend/pkg/logger"
	"github.com/barangay-connect/backend/pkg/otp"
)

type otpService struct {
	codes     repository.OTPCodes
	generator otp.Generator
	config    config.OTPConfig
	metrics   *metrics.Metrics
	now       func() time.Time
}

func newOTPService(codes repository.OTPCodes, generator otp.Generator, config config.OTPConfig, m *metrics.Metrics) *otpService {
	return &otpService{
		codes:     codes,
		generator: generator,
		config:    config,
		metrics:   m,
		now:       time.Now,
	}
}

// SendOTP stores a fresh code and queues its delivery. The phone code is handed
// back only when local comparison is enabled.
func (s *otpService) SendOTP(ctx context.Context, channel domain.Channel, destination string, purpose string) (domain.OTPDispatch, error) {
	dispatch, err := s.sendOTP(ctx, channel, destination, purpose)
	s.metrics.ObserveOTPDispatch(string(channel), err)
	return dispatch, err
}

func (s *otpService) sendOTP(ctx context.Context, channel domain.Channel, destination string, purpose string) (domain.OTPDispatch, error) {
	if purpose == "" {
		purpose = s.config.Purpose
	}

	code := &domain.OTPCode{
		Destination: destination,
		Purpose:     purpose,
		Code:        s.generator.Generate(domain.OTPLength),
		CreatedAt:   s.now(),
	}

	ttlMinutes := int(s.config.TTL.Minutes())
	var (
		t   *asynq.Task
		err error
	)
	switch channel {
	case domain.ChannelPhone:
		t, err = task.NewSendOTPSMSTask(destination, code.Code, ttlMinutes)
	case domain.ChannelEmail:
		t, err = task.NewSendOTPEmailTask(destination, code.Code, ttlMinutes)
	default:
		return domain.OTPDispatch{}, ErrUnknownChannel
	}
	if err != nil {
		return domain.OTPDispatch{}, fmt.Errorf("create otp task failed: %w", err)
	}

	if err = s.codes.Save(ctx, code, s.config.TTL); err != nil {
		return domain.OTPDispatch{}, fmt.Errorf("save otp code failed: %w", err)
	}

	if _, err = client.Enqueue(ctx, t, asynq.Timeout(s.config.TTL)); err != nil {
		if delErr := s.codes.Delete(ctx, purpose, destination); delErr != nil {
			logger.Warn("failed to drop undelivered otp code", zap.Error(delErr))
		}
		return domain.OTPDispatch{}, fmt.Errorf("enqueue otp task failed: %w", err)
	}

	dispatch := domain.OTPDispatch{Dispatched: true}
	if channel == domain.ChannelPhone && s.config.ExposePhoneCode {
		dispatch.Code = code.Code
	}

	return dispatch, nil
}

// VerifyOTP counts every attempt. Once the cap is reached the code is dropped and
// a new one has to be requested.
func (s *otpService) VerifyOTP(ctx context.Context, destination string, code string) (bool, error) {
	purpose := s.config.Purpose

	stored, err := s.codes.Get(ctx, purpose, destination)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get otp code failed: %w", err)
	}

	attempts, err := s.codes.IncrementAttempts(ctx, purpose, destination)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("count otp attempt failed: %w", err)
	}

	if s.config.MaxAttempts > 0 && attempts > s.config.MaxAttempts {
		logger.Info("otp attempts exhausted", zap.Int("attempts", attempts))
		if err = s.codes.Delete(ctx, purpose, destination); err != nil {
			return false, fmt.Errorf("drop otp code failed: %w", err)
		}
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(stored.Code), []byte(code)) != 1 {
		return false, nil
	}

	if err = s.codes.Delete(ctx, purpose, destination); err != nil {
		logger.Warn("failed to drop used otp code", zap.Error(err))
	}

	return true, nil
}
