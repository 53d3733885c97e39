package mailer

import (
	"context"

	"food-delivery/pkg/metrics"
	"food-delivery/pkg/utils"

	"go.uber.org/zap"
)

// Mailer sends the account emails.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendOTPEmail(ctx context.Context, to, name, code string) error
	SendPasswordChangedEmail(ctx context.Context, to, name string) error
}

// New returns the Brevo mailer when an API key is configured and a logging
// mailer otherwise. Either way deliveries are counted in metrics.
func New(email utils.EmailConfig, app utils.AppConfig, log *zap.Logger) Mailer {
	log = log.With(zap.String("component", "mailer"))

	var m Mailer
	if email.APIKey == "" {
		log.Warn("BREVO_API_KEY not set, emails will only be logged")
		m = NewLogMailer(app.Debug, log)
	} else {
		m = NewBrevoMailer(email, app.BaseURL, nil)
	}

	return &instrumented{next: m}
}

type instrumented struct {
	next Mailer
}

func (i *instrumented) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	err := i.next.SendVerificationEmail(ctx, to, name, token)
	metrics.RecordNotification("verification", err == nil)
	return err
}

func (i *instrumented) SendOTPEmail(ctx context.Context, to, name, code string) error {
	err := i.next.SendOTPEmail(ctx, to, name, code)
	metrics.RecordNotification("otp", err == nil)
	return err
}

func (i *instrumented) SendPasswordChangedEmail(ctx context.Context, to, name string) error {
	err := i.next.SendPasswordChangedEmail(ctx, to, name)
	metrics.RecordNotification("password_changed", err == nil)
	return err
}

// LogMailer writes emails to the log instead of sending them. Secrets are
// only included in debug mode.
type LogMailer struct {
	debug bool
	log   *zap.Logger
}

func NewLogMailer(debug bool, log *zap.Logger) *LogMailer {
	return &LogMailer{debug: debug, log: log}
}

// recipient masks the address outside debug mode.
func (m *LogMailer) recipient(to string) zap.Field {
	if m.debug {
		return zap.String("to", to)
	}
	return zap.String("to", utils.MaskEmail(to))
}

func (m *LogMailer) secret(key, value string) zap.Field {
	if !m.debug {
		return zap.Skip()
	}
	return zap.String(key, value)
}

func (m *LogMailer) SendVerificationEmail(_ context.Context, to, _, token string) error {
	m.log.Info("Verification email (not sent)", m.recipient(to), m.secret("token", token))
	return nil
}

func (m *LogMailer) SendOTPEmail(_ context.Context, to, _, code string) error {
	m.log.Info("OTP email (not sent)", m.recipient(to), m.secret("otp", code))
	return nil
}

func (m *LogMailer) SendPasswordChangedEmail(_ context.Context, to, _ string) error {
	m.log.Info("Password changed email (not sent)", m.recipient(to))
	return nil
}
