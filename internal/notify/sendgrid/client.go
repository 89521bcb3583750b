package sendgrid

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tradecase-backend/internal/notify"
	"tradecase-backend/internal/shared/telemetry"
)

const defaultBaseURL = "https://api.sendgrid.com"

// Client sends mail through the SendGrid v3 mail/send API.
type Client struct {
	APIKey    string
	FromEmail string
	FromName  string
	BaseURL   string
	HTTP      *http.Client
}

// New constructs a Client. The API key and from address are required.
func New(apiKey, fromEmail, fromName string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("sendgrid: api key is required")
	}
	if strings.TrimSpace(fromEmail) == "" {
		return nil, fmt.Errorf("sendgrid: from email is required")
	}
	return &Client{
		APIKey:    strings.TrimSpace(apiKey),
		FromEmail: strings.TrimSpace(fromEmail),
		FromName:  strings.TrimSpace(fromName),
		BaseURL:   defaultBaseURL,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

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

type wireAttachment struct {
	Content     string `json:"content"`
	Type        string `json:"type,omitempty"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition,omitempty"`
}

type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
	Attachments      []wireAttachment  `json:"attachments,omitempty"`
}

// Send delivers the message. Any non-2xx provider response is an error; the
// caller must not treat the message as delivered.
func (c *Client) Send(ctx context.Context, msg notify.Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("sendgrid: recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("sendgrid: subject is required")
	}

	wire := mailSendRequest{
		Personalizations: []personalization{{
			To: []emailAddress{{Email: msg.To, Name: msg.ToName}},
		}},
		From:    emailAddress{Email: c.FromEmail, Name: c.FromName},
		Subject: msg.Subject,
		Content: []mailContent{{Type: "text/html", Value: msg.HTMLBody}},
	}
	for _, att := range msg.Attachments {
		wire.Attachments = append(wire.Attachments, wireAttachment{
			Content:     base64.StdEncoding.EncodeToString(att.Data),
			Type:        att.ContentType,
			Filename:    att.FileName,
			Disposition: "attachment",
		})
	}

	payload, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("sendgrid: encode request: %w", err)
	}

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/v3/mail/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sendgrid: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		telemetry.Error("mail.sendgrid.rejected", map[string]any{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}

	telemetry.Info("mail.sendgrid.sent", map[string]any{
		"to":          msg.To,
		"attachments": len(msg.Attachments),
	})
	return nil
}

var _ notify.Mailer = (*Client)(nil)
