// internal/app/system/mailer/mailer.go
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Email is a single outbound message.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers transactional email. The accept notifier depends on
// this interface so tests can capture messages without a network.
type Sender interface {
	Send(ctx context.Context, msg Email) error
}

// Mailer sends mail through a transactional-email HTTP API
// (POST {APIURL} with a JSON body and a bearer key). Delivery failures
// are reported to the caller, which logs and moves on; there is no retry
// queue.
type Mailer struct {
	apiURL   string
	apiKey   string
	from     string
	fromName string
	client   *http.Client
	log      *zap.Logger
}

// New creates a Mailer for the given provider endpoint.
func New(apiURL, apiKey, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		apiURL:   apiURL,
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
		client:   &http.Client{Timeout: 15 * time.Second},
		log:      logger,
	}
}

type apiPayload struct {
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name,omitempty"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Text      string `json:"text,omitempty"`
	HTML      string `json:"html,omitempty"`
}

// Send posts the message to the provider. A non-2xx response is an error.
func (m *Mailer) Send(ctx context.Context, msg Email) error {
	payload := apiPayload{
		FromEmail: m.from,
		FromName:  m.fromName,
		To:        msg.To,
		Subject:   msg.Subject,
		Text:      msg.TextBody,
		HTML:      msg.HTMLBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned %s", resp.Status)
	}

	m.log.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
