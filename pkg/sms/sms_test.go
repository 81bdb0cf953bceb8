package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message_id":"m-1","status":"queued"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "key-1", "BARANGAY", time.Second)
	require.NoError(t, err)

	require.NoError(t, c.Send(context.Background(), SendSMSInput{To: "09171234567", Message: "Your code is 482193"}))
	assert.Equal(t, sendRequest{To: "09171234567", From: "BARANGAY", Message: "Your code is 482193"}, got)
}

func TestClient_SendGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "", "BARANGAY", time.Second)
	require.NoError(t, err)

	err = c.Send(context.Background(), SendSMSInput{To: "09171234567", Message: "hi"})
	assert.ErrorContains(t, err, "429")

	assert.Error(t, c.Send(context.Background(), SendSMSInput{To: "09171234567"}))
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient("", "", "", 0)
	assert.Error(t, err)
}
