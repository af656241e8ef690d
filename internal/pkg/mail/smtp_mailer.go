package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/mindspark-labs/localpages/internal/pkg/env"
)

// SendMail delivers one HTML mail through the configured SMTP relay. All
// directory notifications (welcome, rejection, lead alerts) go through here.
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "587")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		// Fall back to a no-reply address on the public site domain.
		domain := env.GetEnv("PUBLIC_DOMAIN", "localhost")
		domain = strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://")
		sender = fmt.Sprintf("no-reply@%s", domain)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%s", host, port)
	if err := smtp.SendMail(addr, auth, sender, []string{to}, []byte(msg.String())); err != nil {
		log.Printf("mail to %s via %s failed: %v", to, addr, err)
		return err
	}
	return nil
}
