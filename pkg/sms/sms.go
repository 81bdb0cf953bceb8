package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/barangay-connect/backend/pkg/logger"
)

type SendSMSInput struct {
	To      string
	Message string
}

type Sender interface {
	Send(ctx context.Context, input SendSMSInput) error
}

// Client posts text messages to an HTTP SMS gateway.
type Client struct {
	gatewayURL string
	apiKey     string
	senderName string
	httpClient *http.Client
}

func NewClient(gatewayURL, apiKey, senderName string, timeout time.Duration) (*Client, error) {
	if gatewayURL == "" {
		return nil, errors.New("empty sms gateway url")
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		senderName: senderName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

func (c *Client) Send(ctx context.Context, input SendSMSInput) error {
	if input.To == "" || input.Message == "" {
		return errors.New("empty to/message")
	}

	body, err := json.Marshal(sendRequest{To: input.To, From: c.senderName, Message: input.Message})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	logger.Debug("sms accepted by gateway", zap.String("message_id", out.MessageID), zap.String("status", out.Status))

	return nil
}
