// Package mail delivers merchant alerts through the SendGrid v3 mail API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-feedback-triage/internal/config"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.sendgrid.com"

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

type errorResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("sendgrid http %d: %s", e.StatusCode, e.Message)
}

// SendGridMailer sends each message once; retry policy belongs to the caller.
type SendGridMailer struct {
	cnf        config.SendGrid
	httpClient *http.Client
}

func NewSendGridMailer(cnf config.SendGrid) (*SendGridMailer, error) {
	if strings.TrimSpace(cnf.ApiKey) == "" {
		return nil, fmt.Errorf("sendgrid: missing api key")
	}
	if strings.TrimSpace(cnf.FromEmail) == "" {
		return nil, fmt.Errorf("sendgrid: missing from email")
	}
	if cnf.BaseUrl == "" {
		cnf.BaseUrl = defaultBaseURL
	}
	cnf.BaseUrl = strings.TrimRight(cnf.BaseUrl, "/")
	if cnf.Timeout <= 0 {
		cnf.Timeout = 10 * time.Second
	}

	return &SendGridMailer{
		cnf:        cnf,
		httpClient: &http.Client{Timeout: cnf.Timeout},
	}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return fmt.Errorf("sendgrid: recipient required")
	}

	wire := mailSendRequest{
		Personalizations: []personalization{{To: []emailAddress{{Email: recipient}}}},
		From:             emailAddress{Email: m.cnf.FromEmail, Name: m.cnf.FromName},
		Subject:          subject,
		Content:          []mailContent{{Type: "text/html", Value: htmlBody}},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(wire); err != nil {
		return fmt.Errorf("sendgrid: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cnf.BaseUrl+"/v3/mail/send", &buf)
	if err != nil {
		return fmt.Errorf("sendgrid: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cnf.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && len(er.Errors) > 0 {
			he.Message = er.Errors[0].Message
		}
		return he
	}

	log.Debug().Msgf("sendgrid: mail accepted, message id %s", resp.Header.Get("X-Message-Id"))
	return nil
}
