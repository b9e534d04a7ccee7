// Package mail delivers the account-creation and password-reset emails over
// SMTP. Delivery is asynchronous: callers enqueue and move on, failures are
// logged and counted but never surface to the request that triggered them.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/infrastructure/config"
)

// SMTPSender renders and sends a single message synchronously. It is wrapped
// by Dispatcher for the fire-and-forget behaviour services rely on.
type SMTPSender struct {
	cfg       config.SMTPConfig
	publicURL string
}

func NewSMTPSender(cfg config.SMTPConfig, publicURL string) *SMTPSender {
	return &SMTPSender{cfg: cfg, publicURL: strings.TrimRight(publicURL, "/")}
}

type templateData struct {
	User *domain.User
	URL  string
}

func (s *SMTPSender) userCreated(user *domain.User, token string) error {
	return s.send(user.Email, "Account creation", userCreatedTemplate, templateData{
		User: user,
		URL:  s.publicURL + "/set-password/" + token,
	})
}

func (s *SMTPSender) passwordReset(user *domain.User, token string) error {
	return s.send(user.Email, "Password reset", passwordResetTemplate, templateData{
		User: user,
		URL:  s.publicURL + "/reset-password/" + token,
	})
}

func (s *SMTPSender) send(to, subject string, tmpl *template.Template, data templateData) error {
	if s.cfg.Host == "" || s.cfg.From == "" {
		return fmt.Errorf("smtp not configured")
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering %s: %w", tmpl.Name(), err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.From, "Fluxt"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
