package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

type templateData struct {
	Name string
	URL  string
	Code string
}

var (
	verificationTemplate = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #FF6B35;">Welcome to Food Delivery App!</h2>
  <p>Hi {{.Name}},</p>
  <p>Thank you for registering with us. Please verify your email address by clicking the button below:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.URL}}" style="background-color: #FF6B35; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Verify Email</a>
  </div>
  <p>Or copy and paste this link in your browser:</p>
  <p style="color: #666; word-break: break-all;">{{.URL}}</p>
  <p style="color: #999; font-size: 12px; margin-top: 30px;">This link will expire in 24 hours. If you didn't create an account, please ignore this email.</p>
</div>`))

	otpTemplate = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #FF6B35;">Verification Code</h2>
  <p>Hi {{.Name}},</p>
  <p>Your verification code is:</p>
  <div style="text-align: center; margin: 30px 0;">
    <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #FF6B35;">{{.Code}}</div>
  </div>
  <p style="color: #999; font-size: 12px; margin-top: 30px;">This code will expire in 10 minutes. If you didn't request this code, please ignore this email.</p>
</div>`))

	passwordChangedTemplate = template.Must(template.New("password_changed").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #FF6B35;">Password Changed</h2>
  <p>Hi {{.Name}},</p>
  <p>Your password has just been reset. If this wasn't you, contact support immediately.</p>
</div>`))
)

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
