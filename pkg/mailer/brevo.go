package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"food-delivery/pkg/utils"
)

// BrevoMailer sends transactional emails through the Brevo HTTP API.
type BrevoMailer struct {
	client     *http.Client
	apiKey     string
	apiURL     string
	senderName string
	from       string
	baseURL    string
}

func NewBrevoMailer(config utils.EmailConfig, baseURL string, client *http.Client) *BrevoMailer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &BrevoMailer{
		client:     client,
		apiKey:     config.APIKey,
		apiURL:     config.APIURL,
		senderName: config.SenderName,
		from:       config.From,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoMessage struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (m *BrevoMailer) send(ctx context.Context, to, name, subject, html string) error {
	body, err := json.Marshal(brevoMessage{
		Sender:      brevoContact{Name: m.senderName, Email: m.from},
		To:          []brevoContact{{Name: name, Email: to}},
		Subject:     subject,
		HTMLContent: html,
	})
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("brevo returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return nil
}

func (m *BrevoMailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	html, err := render(verificationTemplate, templateData{
		Name: name,
		URL:  m.baseURL + "/api/auth/verify-email/" + token,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, to, name, "Verify Your Email - Food Delivery App", html)
}

func (m *BrevoMailer) SendOTPEmail(ctx context.Context, to, name, code string) error {
	html, err := render(otpTemplate, templateData{Name: name, Code: code})
	if err != nil {
		return err
	}
	return m.send(ctx, to, name, "Your OTP Code - Food Delivery App", html)
}

func (m *BrevoMailer) SendPasswordChangedEmail(ctx context.Context, to, name string) error {
	html, err := render(passwordChangedTemplate, templateData{Name: name})
	if err != nil {
		return err
	}
	return m.send(ctx, to, name, "Your Password Was Changed - Food Delivery App", html)
}
