package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"volunteer-hub/internal/config"
)

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, name, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var bodyTmpl = template.Must(template.New("email").Parse(`
<html>
<body style="font-family: sans-serif; color: #222;">
	<h2>{{.Title}}</h2>
	<p>Hi {{.Name}},</p>
	<p>{{.Text}}</p>
	<p><a href="{{.Link}}">{{.LinkLabel}}</a></p>
	<p>If you did not request this, you can safely ignore this email.</p>
</body>
</html>`))

type bodyData struct {
	Title     string
	Name      string
	Text      string
	Link      string
	LinkLabel string
}

func (s *service) sendEmail(toEmail, subject string, data bodyData) error {
	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Volunteer Hub <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, name, verificationToken string) error {
	return s.sendEmail(toEmail, "Verify your email - Volunteer Hub", bodyData{
		Title:     "Verify your email",
		Name:      name,
		Text:      "Welcome to Volunteer Hub! Please confirm your email address to activate your account.",
		Link:      fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
		LinkLabel: "Verify email",
	})
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error {
	return s.sendEmail(toEmail, "Reset your password - Volunteer Hub", bodyData{
		Title:     "Reset your password",
		Name:      name,
		Text:      "We received a request to reset your password. The link below is valid for one hour.",
		Link:      fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
		LinkLabel: "Reset password",
	})
}
