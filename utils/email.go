package utils

import (
	"CloudVault/config"
	"crypto/tls"
	"errors"
	"net/smtp"
	"os"
	"strings"

	"github.com/jordan-wright/email"
)

// SendShareNotice tells a user that a file was shared with them.
// Callers treat failures as best-effort and only log them.
func SendShareNotice(to, ownerName, filename string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" || cfg.SMTPFrom == "" {
		return errors.New("smtp config missing")
	}

	e := email.NewEmail()
	e.From = cfg.SMTPFrom
	e.To = []string{to}
	e.Subject = ownerName + " shared a file with you"
	e.HTML = []byte(`
		<h2>A file was shared with you</h2>
		<p><b>` + ownerName + `</b> shared <b>` + filename + `</b> with your account.</p>
		<p>Sign in to view it under "Shared with me".</p>
	`)

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	tlsConfig := &tls.Config{ServerName: cfg.SMTPHost}
	if cfg.SMTPPort == "465" || strings.EqualFold(os.Getenv("SMTP_TLS"), "true") {
		return e.SendWithTLS(addr, auth, tlsConfig)
	}
	if strings.EqualFold(os.Getenv("SMTP_STARTTLS"), "true") {
		return e.SendWithStartTLS(addr, auth, tlsConfig)
	}
	return e.Send(addr, auth)
}
