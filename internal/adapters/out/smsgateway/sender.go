// Package smsgateway sends SMS messages through a configurable webhook
// provider. The gateway is optional: without a configured URL every send is
// reported as skipped, which the notification pipeline treats as "do not log".
package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"parcelflow/internal/core/domain/model/notification"
	"parcelflow/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// WebhookSMSSender implements SMSSender over an HTTP webhook provider.
type WebhookSMSSender struct {
	url    string
	token  string
	client *http.Client
	logger *slog.Logger
}

// NewWebhookSMSSender creates an SMS sender posting to the given webhook URL.
// An empty URL disables the gateway; token is attached as a bearer
// credential when non-empty.
func NewWebhookSMSSender(url, token string, logger *slog.Logger) *WebhookSMSSender {
	return &WebhookSMSSender{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger.With("component", "sms_gateway"),
	}
}

// smsRequest is the provider wire format.
type smsRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// smsResponse covers the id field variants of the supported providers.
type smsResponse struct {
	ID  string `json:"id"`
	SID string `json:"sid"`
}

// Send posts the message to the provider. Delivery failure is an outcome, not
// an error: the returned error is reserved for conditions the caller cannot
// log as a dispatch attempt (request construction failure).
func (s *WebhookSMSSender) Send(ctx context.Context, to, text string) (ports.DispatchOutcome, error) {
	if s.url == "" {
		s.logger.Warn("sms webhook is not configured, skipping sms notification")
		return ports.DispatchOutcome{Status: notification.DispatchSkipped}, nil
	}

	raw, err := json.Marshal(smsRequest{To: to, Message: text})
	if err != nil {
		return ports.DispatchOutcome{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return ports.DispatchOutcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("sms dispatch failed", "error", err)
		return ports.DispatchOutcome{Status: notification.DispatchFailed}, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("sms dispatch failed",
			"error", fmt.Sprintf("provider responded with %d: %s", resp.StatusCode, body))
		return ports.DispatchOutcome{Status: notification.DispatchFailed}, nil
	}

	var parsed smsResponse
	_ = json.Unmarshal(body, &parsed)

	providerMessageID := parsed.ID
	if providerMessageID == "" {
		providerMessageID = parsed.SID
	}

	return ports.DispatchOutcome{
		Status:            notification.DispatchSent,
		ProviderMessageID: providerMessageID,
	}, nil
}
