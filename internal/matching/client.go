package matching

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/config"
	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/pkg/logger"
)

const (
	documentMatchPath = "/api/v1/documents/match"
	faceMatchPath     = "/api/v1/faces/match"
)

type DocumentMatchRequest struct {
	Photo       string                 `json:"photo"`
	ContentType string                 `json:"content_type"`
	Subject     domain.DocumentSubject `json:"subject"`
}

type DocumentMatchResponse struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id"`
}

type FaceMatchRequest struct {
	MatchID     string `json:"match_id"`
	Photo       string `json:"photo"`
	ContentType string `json:"content_type"`
}

// Client talks to the document and face matching backend.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.MatchingConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// MatchDocument returns "" when the backend reports no match.
func (c *Client) MatchDocument(ctx context.Context, photo domain.Photo, subject domain.DocumentSubject) (string, error) {
	reqBody := DocumentMatchRequest{
		Photo:       base64.StdEncoding.EncodeToString(photo.Data),
		ContentType: photo.ContentType,
		Subject:     subject,
	}

	var resp DocumentMatchResponse
	if err := c.post(ctx, documentMatchPath, reqBody, &resp); err != nil {
		return "", fmt.Errorf("match document: %w", err)
	}

	if !resp.Matched {
		return "", nil
	}

	return resp.MatchID, nil
}

// MatchFace only triggers the match. The result is pushed to the match status webhook.
func (c *Client) MatchFace(ctx context.Context, photo domain.Photo, matchID string) error {
	reqBody := FaceMatchRequest{
		MatchID:     matchID,
		Photo:       base64.StdEncoding.EncodeToString(photo.Data),
		ContentType: photo.ContentType,
	}

	if err := c.post(ctx, faceMatchPath, reqBody, nil); err != nil {
		return fmt.Errorf("match face: %w", err)
	}

	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	logger.Debug("matching request", zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
