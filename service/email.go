package service

import (
	"fmt"
	"time"

	"fintrack/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates an email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendContactNotification emails the site owner about a contact-form
// submission. The mail carries a plain-text body and a matching HTML
// alternative.
func (s *EmailService) SendContactNotification(name, email, message string, createdAt time.Time) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set EMAIL_ENABLED=true")
	}

	to := s.cfg.Owner
	if to == "" {
		// fall back to the relay account itself
		to = s.cfg.Username
	}

	subject := "New Contact Message from " + name
	text, html := s.contactNotificationBodies(name, email, message, createdAt)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	return s.dialAndSend(m)
}

// contactNotificationBodies renders the two bodies of the owner email.
func (s *EmailService) contactNotificationBodies(name, email, message string, createdAt time.Time) (text, html string) {
	timestamp := createdAt.Format(time.RFC3339)

	text = fmt.Sprintf(`Name: %s
Email: %s
Message: %s
Sent at: %s
`, name, email, message, timestamp)

	html = fmt.Sprintf(`<h3>New Contact Message</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong> %s</p>
<p><strong>Sent at:</strong> %s</p>
`, name, email, message, timestamp)

	return text, html
}

// SendPasswordResetEmail sends the reset link to a user.
func (s *EmailService) SendPasswordResetEmail(toEmail, displayName, resetLink string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set EMAIL_ENABLED=true")
	}

	subject := "Finance Tracker password reset"
	body := s.generateResetEmailBody(displayName, resetLink)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialAndSend(m)
}

// generateResetEmailBody renders the reset email.
func (s *EmailService) generateResetEmailBody(displayName, resetLink string) string {
	if displayName == "" {
		displayName = "there"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Reset your password</h2>
    <p>Hi %s,</p>
    <p>We received a request to reset your Finance Tracker password. Click the link below to choose a new one:</p>
    <p><a href="%s">Reset password</a></p>
    <p>This link is valid for <strong>30 minutes</strong>. If you did not request a reset, you can ignore this email.</p>
    <p style="color: #666;">If the link does not work, copy this address into your browser:<br>%s</p>
</body>
</html>
`, displayName, resetLink, resetLink)
}

// dialAndSend delivers one message via the configured relay.
func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
