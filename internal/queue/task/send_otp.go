package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendOTPEmailTaskName  = "sendOTPEmailTask"
	SendOTPEmailQueueName = "sendOTPEmailQueue"

	SendOTPSMSTaskName  = "sendOTPSMSTask"
	SendOTPSMSQueueName = "sendOTPSMSQueue"
)

type SendOTPEmail struct {
	Email      string `json:"email"`
	Code       string `json:"code"`
	TTLMinutes int    `json:"ttl_minutes"`
}

type SendOTPSMS struct {
	Phone      string `json:"phone"`
	Code       string `json:"code"`
	TTLMinutes int    `json:"ttl_minutes"`
}

func NewSendOTPEmailTask(email string, code string, ttlMinutes int) (*asynq.Task, error) {
	payload, err := json.Marshal(SendOTPEmail{
		Email:      email,
		Code:       code,
		TTLMinutes: ttlMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendOTPEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendOTPEmailQueueName),
	), nil
}

func NewSendOTPSMSTask(phone string, code string, ttlMinutes int) (*asynq.Task, error) {
	payload, err := json.Marshal(SendOTPSMS{
		Phone:      phone,
		Code:       code,
		TTLMinutes: ttlMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	// a code that reaches the phone after it expired is useless
	return asynq.NewTask(
		SendOTPSMSTaskName,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(SendOTPSMSQueueName),
	), nil
}
