package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/barangay-connect/backend/internal/queue/task"
	"github.com/barangay-connect/backend/internal/worker"
)

type sendOTPEmailProcessor struct {
	workers *worker.Workers
}

func NewSendOTPEmailProcessor(workers *worker.Workers) *sendOTPEmailProcessor {
	return &sendOTPEmailProcessor{
		workers: workers,
	}
}

func (p *sendOTPEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendOTPEmail
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("process send otp email task json unmarshal failed: %w: %w", err, asynq.SkipRetry)
	}

	if err := p.workers.EmailSender.SendOTPEmail(ctx, data.Email, data.Code, data.TTLMinutes); err != nil {
		return fmt.Errorf("send otp email failed: %w", err)
	}

	return nil
}

type sendOTPSMSProcessor struct {
	workers *worker.Workers
}

func NewSendOTPSMSProcessor(workers *worker.Workers) *sendOTPSMSProcessor {
	return &sendOTPSMSProcessor{
		workers: workers,
	}
}

func (p *sendOTPSMSProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendOTPSMS
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("process send otp sms task json unmarshal failed: %w: %w", err, asynq.SkipRetry)
	}

	if err := p.workers.SMSSender.SendOTPSMS(ctx, data.Phone, data.Code, data.TTLMinutes); err != nil {
		return fmt.Errorf("send otp sms failed: %w", err)
	}

	return nil
}
