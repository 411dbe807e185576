package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultResendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest is the body of POST /emails.
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// resendReply covers both the success ({"id"}) and error ({"message"}) shapes.
type resendReply struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Message is one outgoing email. ReplyTo may be empty.
type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Mailer sends email through the Resend HTTP API.
type Mailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: defaultResendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log.With().Str("service", "resend").Logger(),
	}
}

// NewMailerFromConfig reads RESEND_API_KEY and RESEND_FROM_EMAIL.
// RESEND_ENDPOINT overrides the API URL.
func NewMailerFromConfig(cfg map[string]string) (*Mailer, error) {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return nil, errs.NewMissingSettingError("RESEND_API_KEY")
	}
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if from == "" {
		return nil, errs.NewMissingSettingError("RESEND_FROM_EMAIL")
	}

	m := NewMailer(apiKey, from)
	m.endpoint = config.GetString(cfg, "RESEND_ENDPOINT", defaultResendEndpoint)
	return m, nil
}

// Send delivers msg and returns the Resend email id.
func (m *Mailer) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", errors.New("send email: no recipients")
	}

	payload, err := json.Marshal(ResendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", errs.NewUpstreamError("Resend", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", errs.NewUpstreamError("Resend", err)
	}

	var reply resendReply
	decodeErr := json.Unmarshal(raw, &reply)

	if resp.StatusCode/100 != 2 {
		detail := reply.Message
		if decodeErr != nil || detail == "" {
			detail = string(raw)
		}
		return "", fmt.Errorf("resend: status %d: %s", resp.StatusCode, detail)
	}

	if decodeErr != nil {
		m.logger.Warn().Err(decodeErr).Msg("email accepted but the reply was unreadable")
	}
	m.logger.Info().Str("emailId", reply.ID).Int("recipients", len(msg.To)).Msg("email sent")
	return reply.ID, nil
}
