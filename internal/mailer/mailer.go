package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"gopkg.in/gomail.v2"

	"inkblog/internal/config"
)

// Sender delivers a single HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Mailer renders the account emails and hands them to a Sender.
type Mailer interface {
	SendVerification(ctx context.Context, to, baseURL, token string) error
	SendPasswordReset(ctx context.Context, to, baseURL, token string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	name   string
}

func NewSMTPSender(cfg config.SMTP, projectName string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		name:   projectName,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.name)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

var (
	verifyTemplate = template.Must(template.New("verify").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Email Verification</h2>
  <p>Thank you for registering. Please verify your email address by clicking the link below:</p>
  <a href="{{.Link}}" style="color: #1a73e8;">{{.Link}}</a>
  <p>If you didn't sign up, you can ignore this email.</p>
</div>`))

	resetTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Password Reset Request</h2>
  <p>You requested to reset your password.</p>
  <p>Use the following link:</p>
  <a href="{{.Link}}" style="color: #1a73e8;">{{.Link}}</a>
  <p>This token will expire in 15 minutes.</p>
  <hr />
  <p>If you didn't request this, you can ignore this email.</p>
</div>`))
)

type templateMailer struct {
	sender  Sender
	project string
}

func New(sender Sender, projectName string) Mailer {
	return &templateMailer{sender: sender, project: projectName}
}

func (m *templateMailer) SendVerification(ctx context.Context, to, baseURL, token string) error {
	body, err := render(verifyTemplate, Link(baseURL, "/api/auth/verify-email", token))
	if err != nil {
		return err
	}

	return m.sender.Send(ctx, to, m.project+": verify your email", body)
}

func (m *templateMailer) SendPasswordReset(ctx context.Context, to, baseURL, token string) error {
	body, err := render(resetTemplate, Link(baseURL, "/auth/reset-password", token))
	if err != nil {
		return err
	}

	return m.sender.Send(ctx, to, m.project+": password reset", body)
}

// Link joins baseURL and path and appends the token as a query parameter.
func Link(baseURL, path, token string) string {
	return baseURL + path + "?" + url.Values{"token": {token}}.Encode()
}

func render(t *template.Template, link string) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, struct{ Link string }{Link: link}); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
